package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront-backend/internal/client"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/events"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidStatusTransition is returned when an admin tries to move an
	// order backwards in its lifecycle.
	ErrInvalidStatusTransition = errors.New("order status can only move forward")
)

// statusRank orders the lifecycle for forward-only transition checks.
var statusRank = map[string]int{
	model.OrderStatusPending:    0,
	model.OrderStatusProcessing: 1,
	model.OrderStatusShipped:    2,
	model.OrderStatusDelivered:  3,
}

type OrderService interface {
	CreateGatewayOrder(ctx context.Context, req *dto.CreateGatewayOrderRequest) (*client.CreateGatewayOrderResponse, error)
	CaptureGatewayOrder(ctx context.Context, orderID string) (*client.CaptureResult, error)

	// Finalize converts cart contents plus a completed payment into a
	// persisted order, atomically.
	Finalize(ctx context.Context, userID string, req *dto.CreateFinalOrderRequest) (*model.Order, error)

	GetOrder(ctx context.Context, userID, orderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

type orderServiceImpl struct {
	db            *gorm.DB
	paymentClient client.PaymentClient
	productRepo   repository.ProductRepository
	cartRepo      repository.CartRepository
	couponRepo    repository.CouponRepository
	orderRepo     repository.OrderRepository
	publisher     events.OrderPublisher
	logger        *zap.Logger
	now           func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	paymentClient client.PaymentClient,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	couponRepo repository.CouponRepository,
	orderRepo repository.OrderRepository,
	publisher events.OrderPublisher,
	logger *zap.Logger,
) OrderService {
	return &orderServiceImpl{
		db:            db,
		paymentClient: paymentClient,
		productRepo:   productRepo,
		cartRepo:      cartRepo,
		couponRepo:    couponRepo,
		orderRepo:     orderRepo,
		publisher:     publisher,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *orderServiceImpl) CreateGatewayOrder(ctx context.Context, req *dto.CreateGatewayOrderRequest) (*client.CreateGatewayOrderResponse, error) {
	items := make([]client.GatewayOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = client.GatewayOrderItem{
			Sku:      item.ProductID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	resp, err := s.paymentClient.CreateOrder(ctx, items, req.Total)
	if err != nil {
		return nil, fmt.Errorf("gateway create order: %w", err)
	}

	return resp, nil
}

func (s *orderServiceImpl) CaptureGatewayOrder(ctx context.Context, orderID string) (*client.CaptureResult, error) {
	result, err := s.paymentClient.CaptureOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("gateway capture order: %w", err)
	}

	return result, nil
}

func (s *orderServiceImpl) Finalize(ctx context.Context, userID string, req *dto.CreateFinalOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("items required")
	}

	productIDs := make([]string, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.FindMany(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}
	productMap := make(map[string]*model.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	// Subtotal from catalog prices, not the client's copies.
	subtotal := decimal.Zero
	for _, item := range req.Items {
		p, ok := productMap[item.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	// Coupon applicability is decided before the transaction; the guarded
	// usage increment inside it closes the remaining race.
	var couponID *string
	total := subtotal
	if req.CouponID != "" {
		coupon, err := s.couponRepo.FindByID(ctx, req.CouponID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCouponNotFound
			}
			return nil, fmt.Errorf("get coupon: %w", err)
		}
		if err := ValidateCoupon(coupon, s.now()); err != nil {
			return nil, err
		}
		total = subtotal.Sub(CouponDiscount(subtotal, coupon.DiscountPercent))
		if total.IsNegative() {
			total = decimal.Zero
		}
		couponID = &coupon.ID
	}
	total = total.Round(2)

	order := &model.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		AddressID:     req.AddressID,
		CouponID:      couponID,
		Total:         total,
		Status:        model.OrderStatusPending,
		PaymentMethod: model.PaymentMethodCreditCard,
		PaymentStatus: model.PaymentStatusCompleted,
		PaymentID:     req.PaymentID,
	}

	orderItems := make([]*model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		p := productMap[item.ProductID]
		orderItems[i] = &model.OrderItem{
			ID:              uuid.NewString(),
			OrderID:         order.ID,
			ProductID:       p.ID,
			ProductName:     p.Name,
			ProductCategory: p.Category,
			Price:           p.Price,
			Size:            item.Size,
			Color:           item.Color,
			Quantity:        item.Quantity,
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}
		if err := s.orderRepo.CreateItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items in db: %w", err)
		}

		for _, item := range req.Items {
			if err := s.productRepo.AdjustStockAndSold(ctx, tx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrInsufficientStock
				}
				return fmt.Errorf("adjust stock for product %s: %w", item.ProductID, err)
			}
		}

		if err := s.cartRepo.ClearByUser(ctx, tx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		if couponID != nil {
			if err := s.couponRepo.IncrementUsage(ctx, tx, *couponID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCouponUsageExceeded
				}
				return fmt.Errorf("increment coupon usage: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, item := range orderItems {
		order.Items = append(order.Items, *item)
	}

	// Best effort; a lost event never fails a committed order.
	if err := s.publisher.OrderPlaced(ctx, events.OrderPlaced{
		OrderID: order.ID,
		UserID:  order.UserID,
		Total:   order.Total.StringFixed(2),
	}); err != nil {
		s.logger.Warn("publish order event", zap.String("order_id", order.ID), zap.Error(err))
	}

	return order, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, userID, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	return order, nil
}

func (s *orderServiceImpl) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	return orders, nil
}

func (s *orderServiceImpl) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}

	return orders, nil
}

func (s *orderServiceImpl) UpdateStatus(ctx context.Context, orderID, status string) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("get order: %w", err)
	}

	if statusRank[status] <= statusRank[order.Status] {
		return ErrInvalidStatusTransition
	}

	return s.orderRepo.UpdateStatus(ctx, orderID, status)
}
