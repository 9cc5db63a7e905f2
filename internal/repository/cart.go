package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-backend/internal/model"
)

type CartRepository interface {
	// UpsertCart returns the user's cart, creating it on first use.
	UpsertCart(ctx context.Context, userID string) (*model.Cart, error)
	FindCartByUser(ctx context.Context, userID string) (*model.Cart, error)

	FindItem(ctx context.Context, cartID, productID, size, color string) (*model.CartItem, error)
	FindItemByID(ctx context.Context, userID, itemID string) (*model.CartItem, error)
	FindItems(ctx context.Context, cartID string) ([]model.CartItem, error)

	CreateItem(ctx context.Context, item *model.CartItem) error
	IncrementItemQuantity(ctx context.Context, itemID string, delta int) error
	UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) error
	DeleteItem(ctx context.Context, userID, itemID string) error

	// ClearByUser removes every cart item belonging to the user's cart.
	ClearByUser(ctx context.Context, tx *gorm.DB, userID string) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) UpsertCart(ctx context.Context, userID string) (*model.Cart, error) {
	cart := model.Cart{
		ID:     uuid.NewString(),
		UserID: userID,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&cart).Error
	if err != nil {
		return nil, err
	}

	// Re-read: on conflict the generated ID above was discarded.
	var existing model.Cart
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; err != nil {
		return nil, err
	}

	return &existing, nil
}

func (r *cartRepoImpl) FindCartByUser(ctx context.Context, userID string) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepoImpl) FindItem(ctx context.Context, cartID, productID, size, color string) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ? AND size = ? AND color = ?",
			cartID, productID, size, color).
		First(&item).Error
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepoImpl) FindItemByID(ctx context.Context, userID, itemID string) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepoImpl) FindItems(ctx context.Context, cartID string) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) CreateItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepoImpl) IncrementItemQuantity(ctx context.Context, itemID string, delta int) error {
	return r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		}).Error
}

func (r *cartRepoImpl) UpdateItemQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	item, err := r.FindItemByID(ctx, userID, itemID)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ?", item.ID).
		Update("quantity", quantity).Error
}

func (r *cartRepoImpl) DeleteItem(ctx context.Context, userID, itemID string) error {
	item, err := r.FindItemByID(ctx, userID, itemID)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&model.CartItem{}, "id = ?", item.ID).Error
}

func (r *cartRepoImpl) ClearByUser(ctx context.Context, tx *gorm.DB, userID string) error {
	return tx.WithContext(ctx).
		Where("cart_id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).
				Model(&model.Cart{}).
				Select("id").
				Where("user_id = ?", userID),
		).
		Delete(&model.CartItem{}).Error
}
