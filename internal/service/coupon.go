package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

var (
	// ErrCouponNotYetActive is returned when now is strictly before the
	// coupon's start date.
	ErrCouponNotYetActive = errors.New("coupon is not active yet")
	// ErrCouponExpired is returned when now is strictly after the coupon's
	// end date.
	ErrCouponExpired = errors.New("coupon expired")
	// ErrCouponUsageExceeded is returned when the coupon has exhausted its
	// allowed uses, regardless of the date window.
	ErrCouponUsageExceeded = errors.New("coupon has reached its usage limit")

	ErrCouponNotFound    = errors.New("coupon not found")
	ErrInvalidDateWindow = errors.New("start date must be before end date")
)

// ValidateCoupon decides whether a coupon is applicable at the given instant.
// Pure and side-effect free; safe to call repeatedly. Usage exhaustion wins
// over the date window; boundary instants equal to the start or end date are
// valid (strict comparisons against now).
func ValidateCoupon(coupon *model.Coupon, now time.Time) error {
	if coupon.UsageCount >= coupon.UsageLimit {
		return ErrCouponUsageExceeded
	}
	if now.Before(coupon.StartDate) {
		return ErrCouponNotYetActive
	}
	if now.After(coupon.EndDate) {
		return ErrCouponExpired
	}
	return nil
}

// CouponDiscount computes the discount a coupon grants on a subtotal:
// subtotal * discountPercent / 100, rounded to 2 decimal places.
func CouponDiscount(subtotal decimal.Decimal, discountPercent int) decimal.Decimal {
	return subtotal.
		Mul(decimal.NewFromInt(int64(discountPercent))).
		Div(decimal.NewFromInt(100)).
		Round(2)
}

type CouponService interface {
	Create(ctx context.Context, req *dto.CreateCouponRequest) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
	Delete(ctx context.Context, couponID string) error
}

type couponServiceImpl struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponServiceImpl{
		couponRepo: couponRepo,
	}
}

func (s *couponServiceImpl) Create(ctx context.Context, req *dto.CreateCouponRequest) (*model.Coupon, error) {
	if !req.StartDate.Before(req.EndDate) {
		return nil, ErrInvalidDateWindow
	}

	coupon := &model.Coupon{
		ID:              uuid.NewString(),
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		UsageLimit:      req.UsageLimit,
		UsageCount:      0,
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, fmt.Errorf("store coupon in db: %w", err)
	}

	return coupon, nil
}

func (s *couponServiceImpl) List(ctx context.Context) ([]model.Coupon, error) {
	coupons, err := s.couponRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch coupons: %w", err)
	}

	return coupons, nil
}

func (s *couponServiceImpl) Delete(ctx context.Context, couponID string) error {
	err := s.couponRepo.Delete(ctx, couponID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCouponNotFound
	}

	return err
}
