package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

var ErrCartItemNotFound = errors.New("cart item not found")

type CartService interface {
	// AddItem merges into an existing line for the same
	// (product, size, color) variant, otherwise creates a new one.
	AddItem(ctx context.Context, userID string, req *dto.AddToCartRequest) (*dto.CartItemResponse, error)
	GetCart(ctx context.Context, userID string) ([]dto.CartItemResponse, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*dto.CartItemResponse, error)
	RemoveItem(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
}

type cartServiceImpl struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &cartServiceImpl{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartServiceImpl) AddItem(ctx context.Context, userID string, req *dto.AddToCartRequest) (*dto.CartItemResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	cart, err := s.cartRepo.UpsertCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("upsert cart: %w", err)
	}

	item, err := s.cartRepo.FindItem(ctx, cart.ID, req.ProductID, req.Size, req.Color)
	switch {
	case err == nil:
		if err := s.cartRepo.IncrementItemQuantity(ctx, item.ID, req.Quantity); err != nil {
			return nil, fmt.Errorf("increment cart item: %w", err)
		}
		item.Quantity += req.Quantity
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = &model.CartItem{
			ID:        uuid.NewString(),
			CartID:    cart.ID,
			ProductID: req.ProductID,
			Size:      req.Size,
			Color:     req.Color,
			Quantity:  req.Quantity,
		}
		if err := s.cartRepo.CreateItem(ctx, item); err != nil {
			return nil, fmt.Errorf("create cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("find cart item: %w", err)
	}

	return itemResponse(item, product), nil
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) ([]dto.CartItemResponse, error) {
	cart, err := s.cartRepo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.CartItemResponse{}, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	items, err := s.cartRepo.FindItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("get cart items: %w", err)
	}
	if len(items) == 0 {
		return []dto.CartItemResponse{}, nil
	}

	productIDs := make([]string, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.FindMany(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get cart products: %w", err)
	}
	productMap := make(map[string]*model.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	responses := make([]dto.CartItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *itemResponse(&items[i], productMap[items[i].ProductID]))
	}

	return responses, nil
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*dto.CartItemResponse, error) {
	if err := s.cartRepo.UpdateItemQuantity(ctx, userID, itemID, quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("update cart item: %w", err)
	}

	item, err := s.cartRepo.FindItemByID(ctx, userID, itemID)
	if err != nil {
		return nil, fmt.Errorf("reload cart item: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, item.ProductID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("get product: %w", err)
	}

	return itemResponse(item, product), nil
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, itemID string) error {
	err := s.cartRepo.DeleteItem(ctx, userID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCartItemNotFound
	}

	return err
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID string) error {
	return s.cartRepo.ClearByUser(ctx, s.db, userID)
}

func itemResponse(item *model.CartItem, product *model.Product) *dto.CartItemResponse {
	resp := &dto.CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Size:      item.Size,
		Color:     item.Color,
		Quantity:  item.Quantity,
	}
	if product != nil {
		resp.Name = product.Name
		resp.Price = product.Price
		if len(product.Images) > 0 {
			resp.Image = product.Images[0]
		}
	}

	return resp
}
