package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/service"
)

// Uniform response envelope: every failure is a flat message beside the
// paired HTTP status, every success carries its payload fields.

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// mapServiceError converts known service errors to their HTTP shape;
// anything unrecognized becomes a generic 500.
func mapServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrAddressNotFound),
		errors.Is(err, service.ErrCouponNotFound),
		errors.Is(err, service.ErrCartItemNotFound):
		return respondError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrCouponNotYetActive),
		errors.Is(err, service.ErrCouponExpired),
		errors.Is(err, service.ErrCouponUsageExceeded):
		return respondError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidStatusTransition),
		errors.Is(err, service.ErrInvalidDateWindow),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrTooManyFeaturedProducts):
		return respondError(c, http.StatusBadRequest, err.Error())

	default:
		return respondError(c, http.StatusInternalServerError, "Some error occured!")
	}
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}
