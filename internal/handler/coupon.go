package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/service"
)

type CouponHandler struct {
	couponService service.CouponService
}

func NewCouponHandler(couponService service.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

func (h *CouponHandler) CreateCoupon(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateCouponRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	coupon, err := h.couponService.Create(ctx, &req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Created coupon successfully",
		"coupon":  coupon,
	})
}

func (h *CouponHandler) FetchAllCoupons(c echo.Context) error {
	ctx := c.Request().Context()

	coupons, err := h.couponService.List(ctx)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"couponList": coupons,
	})
}

func (h *CouponHandler) DeleteCoupon(c echo.Context) error {
	ctx := c.Request().Context()

	id := c.Param("id")
	if err := h.couponService.Delete(ctx, id); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      id,
	})
}
