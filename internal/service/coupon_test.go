package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/model"
	"storefront-backend/internal/repository"
)

func TestValidateCoupon(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	base := model.Coupon{
		Code:            "SPRING20",
		DiscountPercent: 20,
		StartDate:       start,
		EndDate:         end,
		UsageLimit:      5,
	}

	tests := []struct {
		name    string
		mutate  func(c *model.Coupon)
		now     time.Time
		wantErr error
	}{
		{
			name: "valid inside window",
			now:  start.AddDate(0, 0, 10),
		},
		{
			name: "boundary start date is valid",
			now:  start,
		},
		{
			name: "boundary end date is valid",
			now:  end,
		},
		{
			name:    "not yet active",
			now:     start.Add(-time.Second),
			wantErr: ErrCouponNotYetActive,
		},
		{
			name:    "expired",
			now:     end.Add(time.Second),
			wantErr: ErrCouponExpired,
		},
		{
			name:    "usage exhausted",
			mutate:  func(c *model.Coupon) { c.UsageCount = 5 },
			now:     start.AddDate(0, 0, 10),
			wantErr: ErrCouponUsageExceeded,
		},
		{
			name:    "usage over limit",
			mutate:  func(c *model.Coupon) { c.UsageCount = 7 },
			now:     start.AddDate(0, 0, 10),
			wantErr: ErrCouponUsageExceeded,
		},
		{
			name:    "usage exhaustion wins over expired window",
			mutate:  func(c *model.Coupon) { c.UsageCount = 5 },
			now:     end.AddDate(0, 1, 0),
			wantErr: ErrCouponUsageExceeded,
		},
		{
			name:    "usage exhaustion wins before window opens",
			mutate:  func(c *model.Coupon) { c.UsageCount = 5 },
			now:     start.AddDate(0, -1, 0),
			wantErr: ErrCouponUsageExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := base
			if tt.mutate != nil {
				tt.mutate(&coupon)
			}

			err := ValidateCoupon(&coupon, tt.now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCouponDiscount(t *testing.T) {
	subtotal := decimal.RequireFromString("100.00")

	discount := CouponDiscount(subtotal, 20)
	assert.True(t, discount.Equal(decimal.RequireFromString("20.00")), "got %s", discount)

	total := subtotal.Sub(discount)
	assert.True(t, total.Equal(decimal.RequireFromString("80.00")), "got %s", total)

	assert.True(t, CouponDiscount(subtotal, 0).IsZero())
	assert.True(t, CouponDiscount(subtotal, 100).Equal(subtotal))

	// Fractional subtotals round to cents.
	odd := CouponDiscount(decimal.RequireFromString("99.99"), 15)
	assert.True(t, odd.Equal(decimal.RequireFromString("15.00")), "got %s", odd)
}

func TestCouponServiceCreate(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(repository.NewCouponRepository(db))

	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("rejects inverted date window", func(t *testing.T) {
		_, err := svc.Create(context.Background(), &dto.CreateCouponRequest{
			Code:            "BROKEN",
			DiscountPercent: 10,
			StartDate:       start,
			EndDate:         start.AddDate(0, 0, -1),
			UsageLimit:      5,
		})
		assert.ErrorIs(t, err, ErrInvalidDateWindow)
	})

	t.Run("creates with zero usage count", func(t *testing.T) {
		coupon, err := svc.Create(context.Background(), &dto.CreateCouponRequest{
			Code:            "SUMMER15",
			DiscountPercent: 15,
			StartDate:       start,
			EndDate:         start.AddDate(0, 1, 0),
			UsageLimit:      10,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, coupon.UsageCount)
		assert.NotEmpty(t, coupon.ID)

		var count int64
		require.NoError(t, db.Model(&model.Coupon{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})
}
