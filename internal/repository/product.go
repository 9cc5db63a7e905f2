package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
)

// sortColumns whitelists client-supplied sort keys to real columns.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"name":      "name",
	"soldCount": "sold_count",
	"rating":    "rating",
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error)
	FindAll(ctx context.Context) ([]model.Product, error)
	FindFiltered(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, productID string) error

	// AdjustStockAndSold decrements stock and increments sold count for one
	// product, guarded so stock never goes below zero. Returns
	// gorm.ErrRecordNotFound when the product is missing or stock is
	// insufficient.
	AdjustStockAndSold(ctx context.Context, tx *gorm.DB, productID string, quantity int) error

	FindFeatured(ctx context.Context) ([]model.Product, error)
	ReplaceFeatured(ctx context.Context, productIDs []string) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) FindFiltered(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{})

	if len(filter.Categories) > 0 {
		q = q.Where("LOWER(category) IN ?", lowerAll(filter.Categories))
	}
	if len(filter.Brands) > 0 {
		q = q.Where("LOWER(brand) IN ?", lowerAll(filter.Brands))
	}
	// Sizes and colors are stored as JSON-encoded lists; a LIKE against the
	// quoted value matches rows containing any requested entry.
	q = applyListOverlap(q, "sizes", filter.Sizes)
	q = applyListOverlap(q, "colors", filter.Colors)

	if !filter.MinPrice.IsZero() {
		q = q.Where("price >= ?", filter.MinPrice)
	}
	if !filter.MaxPrice.IsZero() {
		q = q.Where("price <= ?", filter.MaxPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}

	var products []model.Product
	err := q.Order(column + " " + direction).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"brand":       product.Brand,
			"description": product.Description,
			"category":    product.Category,
			"gender":      product.Gender,
			"sizes":       product.Sizes,
			"colors":      product.Colors,
			"price":       product.Price,
			"stock":       product.Stock,
			"rating":      product.Rating,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *productRepoImpl) Delete(ctx context.Context, productID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", productID).Delete(&model.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *productRepoImpl) AdjustStockAndSold(ctx context.Context, tx *gorm.DB, productID string, quantity int) error {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"sold_count": gorm.Expr("sold_count + ?", quantity),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *productRepoImpl) FindFeatured(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) ReplaceFeatured(ctx context.Context, productIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).
			Where("is_featured = ?", true).
			Update("is_featured", false).Error; err != nil {
			return err
		}

		return tx.Model(&model.Product{}).
			Where("id IN ?", productIDs).
			Update("is_featured", true).Error
	})
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func applyListOverlap(q *gorm.DB, column string, values []string) *gorm.DB {
	if len(values) == 0 {
		return q
	}

	or := q.Session(&gorm.Session{NewDB: true})
	cond := or.Where("1 = 0")
	for _, v := range values {
		cond = cond.Or(column+" LIKE ?", `%"`+v+`"%`)
	}
	return q.Where(cond)
}
