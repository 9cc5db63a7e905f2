package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront-backend/internal/client"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

var ErrInvalidPrice = errors.New("invalid price")

// ProductImage is one uploaded file attached to a product create request.
type ProductImage struct {
	Filename string
	Body     io.Reader
}

type ProductService interface {
	Create(ctx context.Context, req *dto.CreateProductRequest, images []ProductImage) (*model.Product, error)
	Update(ctx context.Context, productID string, req *dto.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, productID string) error
	GetByID(ctx context.Context, productID string) (*model.Product, error)
	ListAdmin(ctx context.Context) ([]model.Product, error)
	ListFiltered(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
	imageClient client.ImageClient
}

func NewProductService(
	productRepo repository.ProductRepository,
	imageClient client.ImageClient,
) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
		imageClient: imageClient,
	}
}

func (s *productServiceImpl) Create(ctx context.Context, req *dto.CreateProductRequest, images []ProductImage) (*model.Product, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, ErrInvalidPrice
	}

	imageURLs := make(model.StringList, 0, len(images))
	for _, img := range images {
		url, err := s.imageClient.Upload(ctx, img.Filename, img.Body)
		if err != nil {
			return nil, fmt.Errorf("upload image %s: %w", img.Filename, err)
		}
		imageURLs = append(imageURLs, url)
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Category:    req.Category,
		Gender:      req.Gender,
		Price:       price,
		Stock:       req.Stock,
		SoldCount:   0,
		Rating:      0,
		Sizes:       splitList(req.Sizes),
		Colors:      splitList(req.Colors),
		Images:      imageURLs,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("store product in db: %w", err)
	}

	return product, nil
}

func (s *productServiceImpl) Update(ctx context.Context, productID string, req *dto.UpdateProductRequest) (*model.Product, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, ErrInvalidPrice
	}

	product := &model.Product{
		ID:          productID,
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Category:    req.Category,
		Gender:      req.Gender,
		Price:       price,
		Stock:       req.Stock,
		Rating:      req.Rating,
		Sizes:       splitList(req.Sizes),
		Colors:      splitList(req.Colors),
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	return s.GetByID(ctx, productID)
}

func (s *productServiceImpl) Delete(ctx context.Context, productID string) error {
	err := s.productRepo.Delete(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}

	return err
}

func (s *productServiceImpl) GetByID(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

func (s *productServiceImpl) ListAdmin(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

func (s *productServiceImpl) ListFiltered(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	products, total, err := s.productRepo.FindFiltered(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list filtered products: %w", err)
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &dto.ProductListResponse{
		Success:       true,
		Products:      products,
		CurrentPage:   filter.Page,
		TotalPages:    totalPages,
		TotalProducts: total,
	}, nil
}

// splitList turns a comma-joined form value into a trimmed list, dropping
// empty entries.
func splitList(value string) model.StringList {
	if value == "" {
		return model.StringList{}
	}

	parts := strings.Split(value, ",")
	out := make(model.StringList, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}
