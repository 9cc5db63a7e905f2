package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront-backend/internal/config"
	"storefront-backend/internal/dto"
	"storefront-backend/internal/events"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

func newOrderServiceForTest(t *testing.T, db *gorm.DB, now time.Time) OrderService {
	t.Helper()

	svc := NewOrderService(
		db, nil,
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		repository.NewCouponRepository(db),
		repository.NewOrderRepository(db),
		events.NewOrderPublisher(&config.Kafka{}),
		zap.NewNop(),
	)
	svc.(*orderServiceImpl).now = func() time.Time { return now }

	return svc
}

func seedCoupon(t *testing.T, db *gorm.DB, percent, usageLimit int, start, end time.Time) *model.Coupon {
	t.Helper()

	coupon := &model.Coupon{
		ID:              uuid.NewString(),
		Code:            "TEST" + uuid.NewString()[:8],
		DiscountPercent: percent,
		StartDate:       start,
		EndDate:         end,
		UsageLimit:      usageLimit,
	}
	require.NoError(t, db.Create(coupon).Error)

	return coupon
}

func TestFinalizeAppliesCouponAndAdjustsState(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := newOrderServiceForTest(t, db, now)

	product := seedProduct(t, db, "50.00", 3)
	coupon := seedCoupon(t, db, 20, 5, now.AddDate(0, -1, 0), now.AddDate(0, 1, 0))

	// The user has a pending cart that finalization must empty.
	cartSvc := NewCartService(db, repository.NewCartRepository(db), repository.NewProductRepository(db))
	_, err := cartSvc.AddItem(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: product.ID, Quantity: 2, Size: "M", Color: "black",
	})
	require.NoError(t, err)

	order, err := svc.Finalize(context.Background(), "user-1", &dto.CreateFinalOrderRequest{
		AddressID: "addr-1",
		CouponID:  coupon.ID,
		Items: []dto.FinalOrderItem{
			{ProductID: product.ID, Quantity: 2, Size: "M", Color: "black"},
		},
		PaymentID: "PAY-1",
	})
	require.NoError(t, err)

	// 50.00 * 2 = 100.00, minus 20% = 80.00, priced from the catalog.
	assert.True(t, order.Total.Equal(decimal.RequireFromString("80.00")), "got %s", order.Total)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, model.PaymentStatusCompleted, order.PaymentStatus)
	require.NotNil(t, order.CouponID)
	assert.Equal(t, coupon.ID, *order.CouponID)

	require.Len(t, order.Items, 1)
	assert.Equal(t, product.Name, order.Items[0].ProductName)
	assert.Equal(t, product.Category, order.Items[0].ProductCategory)
	assert.True(t, order.Items[0].Price.Equal(product.Price))
	assert.Equal(t, 2, order.Items[0].Quantity)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 1, reloaded.Stock)
	assert.Equal(t, 2, reloaded.SoldCount)

	var usage model.Coupon
	require.NoError(t, db.First(&usage, "id = ?", coupon.ID).Error)
	assert.Equal(t, 1, usage.UsageCount)

	var cartItems int64
	require.NoError(t, db.Model(&model.CartItem{}).Count(&cartItems).Error)
	assert.Zero(t, cartItems, "cart must be emptied on finalize")
}

func TestFinalizeWithoutCoupon(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderServiceForTest(t, db, time.Now())

	product := seedProduct(t, db, "49.90", 10)

	order, err := svc.Finalize(context.Background(), "user-1", &dto.CreateFinalOrderRequest{
		AddressID: "addr-1",
		Items: []dto.FinalOrderItem{
			{ProductID: product.ID, Quantity: 3},
		},
		PaymentID: "PAY-2",
	})
	require.NoError(t, err)

	assert.Nil(t, order.CouponID)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("149.70")), "got %s", order.Total)
}

func TestFinalizeRollsBackOnInsufficientStock(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderServiceForTest(t, db, time.Now())

	plenty := seedProduct(t, db, "50.00", 10)
	scarce := seedProduct(t, db, "30.00", 1)

	cartSvc := NewCartService(db, repository.NewCartRepository(db), repository.NewProductRepository(db))
	_, err := cartSvc.AddItem(context.Background(), "user-1", &dto.AddToCartRequest{
		ProductID: plenty.ID, Quantity: 1,
	})
	require.NoError(t, err)

	_, err = svc.Finalize(context.Background(), "user-1", &dto.CreateFinalOrderRequest{
		AddressID: "addr-1",
		Items: []dto.FinalOrderItem{
			{ProductID: plenty.ID, Quantity: 2},
			{ProductID: scarce.ID, Quantity: 2},
		},
		PaymentID: "PAY-3",
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing from the failed attempt may persist.
	var orders, items int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", plenty.ID).Error)
	assert.Equal(t, 10, reloaded.Stock, "first item's decrement must roll back")
	assert.Zero(t, reloaded.SoldCount)

	var cartItems int64
	require.NoError(t, db.Model(&model.CartItem{}).Count(&cartItems).Error)
	assert.EqualValues(t, 1, cartItems, "cart survives a failed finalize")
}

func TestFinalizeEnforcesCouponUsageLimit(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := newOrderServiceForTest(t, db, now)

	product := seedProduct(t, db, "20.00", 100)
	coupon := seedCoupon(t, db, 10, 2, now.AddDate(0, -1, 0), now.AddDate(0, 1, 0))

	order := func(user string) error {
		_, err := svc.Finalize(context.Background(), user, &dto.CreateFinalOrderRequest{
			AddressID: "addr-1",
			CouponID:  coupon.ID,
			Items: []dto.FinalOrderItem{
				{ProductID: product.ID, Quantity: 1},
			},
			PaymentID: "PAY-" + user,
		})
		return err
	}

	require.NoError(t, order("user-1"))
	require.NoError(t, order("user-2"))
	require.ErrorIs(t, order("user-3"), ErrCouponUsageExceeded)

	var usage model.Coupon
	require.NoError(t, db.First(&usage, "id = ?", coupon.ID).Error)
	assert.Equal(t, 2, usage.UsageCount)

	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 98, reloaded.Stock, "rejected attempt must not touch stock")
}

func TestFinalizeRejectsBadReferences(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderServiceForTest(t, db, time.Now())
	product := seedProduct(t, db, "20.00", 10)

	_, err := svc.Finalize(context.Background(), "user-1", &dto.CreateFinalOrderRequest{
		AddressID: "addr-1",
		Items: []dto.FinalOrderItem{
			{ProductID: "missing", Quantity: 1},
		},
		PaymentID: "PAY-9",
	})
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.Finalize(context.Background(), "user-1", &dto.CreateFinalOrderRequest{
		AddressID: "addr-1",
		CouponID:  "missing",
		Items: []dto.FinalOrderItem{
			{ProductID: product.ID, Quantity: 1},
		},
		PaymentID: "PAY-9",
	})
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestUpdateStatusForwardOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderServiceForTest(t, db, time.Now())
	product := seedProduct(t, db, "20.00", 10)

	order, err := svc.Finalize(context.Background(), "user-1", &dto.CreateFinalOrderRequest{
		AddressID: "addr-1",
		Items: []dto.FinalOrderItem{
			{ProductID: product.ID, Quantity: 1},
		},
		PaymentID: "PAY-10",
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), order.ID, model.OrderStatusProcessing))
	require.NoError(t, svc.UpdateStatus(context.Background(), order.ID, model.OrderStatusShipped))

	// Backwards and no-op transitions are rejected.
	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), order.ID, model.OrderStatusProcessing), ErrInvalidStatusTransition)
	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), order.ID, model.OrderStatusShipped), ErrInvalidStatusTransition)

	require.NoError(t, svc.UpdateStatus(context.Background(), order.ID, model.OrderStatusDelivered))

	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), "missing", model.OrderStatusShipped), ErrOrderNotFound)

	fetched, err := svc.GetOrder(context.Background(), "user-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, fetched.Status)
	require.Len(t, fetched.Items, 1)

	// Another user cannot read it.
	_, err = svc.GetOrder(context.Background(), "user-2", order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
