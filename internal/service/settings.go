package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"storefront-backend/internal/client"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

var ErrTooManyFeaturedProducts = errors.New("at most 8 products can be featured")

type SettingsService interface {
	AddBanners(ctx context.Context, images []ProductImage) ([]model.FeatureBanner, error)
	ListBanners(ctx context.Context) ([]model.FeatureBanner, error)
	UpdateFeaturedProducts(ctx context.Context, productIDs []string) error
	ListFeaturedProducts(ctx context.Context) ([]model.Product, error)
}

type settingsServiceImpl struct {
	bannerRepo  repository.BannerRepository
	productRepo repository.ProductRepository
	imageClient client.ImageClient
}

func NewSettingsService(
	bannerRepo repository.BannerRepository,
	productRepo repository.ProductRepository,
	imageClient client.ImageClient,
) SettingsService {
	return &settingsServiceImpl{
		bannerRepo:  bannerRepo,
		productRepo: productRepo,
		imageClient: imageClient,
	}
}

func (s *settingsServiceImpl) AddBanners(ctx context.Context, images []ProductImage) ([]model.FeatureBanner, error) {
	banners := make([]model.FeatureBanner, 0, len(images))
	for _, img := range images {
		url, err := s.imageClient.Upload(ctx, img.Filename, img.Body)
		if err != nil {
			return nil, fmt.Errorf("upload banner %s: %w", img.Filename, err)
		}

		banner := model.FeatureBanner{
			ID:       uuid.NewString(),
			ImageURL: url,
		}
		if err := s.bannerRepo.Create(ctx, &banner); err != nil {
			return nil, fmt.Errorf("store banner in db: %w", err)
		}
		banners = append(banners, banner)
	}

	return banners, nil
}

func (s *settingsServiceImpl) ListBanners(ctx context.Context) ([]model.FeatureBanner, error) {
	banners, err := s.bannerRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}

	return banners, nil
}

func (s *settingsServiceImpl) UpdateFeaturedProducts(ctx context.Context, productIDs []string) error {
	if len(productIDs) > 8 {
		return ErrTooManyFeaturedProducts
	}

	return s.productRepo.ReplaceFeatured(ctx, productIDs)
}

func (s *settingsServiceImpl) ListFeaturedProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.FindFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}

	return products, nil
}
