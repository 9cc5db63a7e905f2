package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront-backend/internal/model"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	FindByID(ctx context.Context, couponID string) (*model.Coupon, error)
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	FindAll(ctx context.Context) ([]model.Coupon, error)
	Delete(ctx context.Context, couponID string) error

	// IncrementUsage bumps usage count by exactly 1, guarded against
	// exceeding the usage limit. Returns gorm.ErrRecordNotFound when the
	// coupon is missing or exhausted.
	IncrementUsage(ctx context.Context, tx *gorm.DB, couponID string) error
}

type couponRepoImpl struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepoImpl{
		db: db,
	}
}

func (r *couponRepoImpl) Create(ctx context.Context, coupon *model.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

func (r *couponRepoImpl) FindByID(ctx context.Context, couponID string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.WithContext(ctx).
		Where("id = ?", couponID).
		First(&coupon).Error
	if err != nil {
		return nil, err
	}

	return &coupon, nil
}

func (r *couponRepoImpl) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&coupon).Error
	if err != nil {
		return nil, err
	}

	return &coupon, nil
}

func (r *couponRepoImpl) FindAll(ctx context.Context) ([]model.Coupon, error) {
	var coupons []model.Coupon
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&coupons).Error
	if err != nil {
		return nil, err
	}

	return coupons, nil
}

func (r *couponRepoImpl) Delete(ctx context.Context, couponID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", couponID).Delete(&model.Coupon{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *couponRepoImpl) IncrementUsage(ctx context.Context, tx *gorm.DB, couponID string) error {
	result := tx.WithContext(ctx).Model(&model.Coupon{}).
		Where("id = ? AND usage_count < usage_limit", couponID).
		Update("usage_count", gorm.Expr("usage_count + 1"))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
