package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront-backend/internal/model"
)

type BannerRepository interface {
	Create(ctx context.Context, banner *model.FeatureBanner) error
	FindAll(ctx context.Context) ([]model.FeatureBanner, error)
}

type bannerRepoImpl struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepoImpl{
		db: db,
	}
}

func (r *bannerRepoImpl) Create(ctx context.Context, banner *model.FeatureBanner) error {
	return r.db.WithContext(ctx).Create(banner).Error
}

func (r *bannerRepoImpl) FindAll(ctx context.Context) ([]model.FeatureBanner, error) {
	var banners []model.FeatureBanner
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&banners).Error
	if err != nil {
		return nil, err
	}

	return banners, nil
}
