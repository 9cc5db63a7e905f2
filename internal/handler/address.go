package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/service"
)

type AddressHandler struct {
	addressService service.AddressService
}

func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
	}
}

func (h *AddressHandler) CreateAddress(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateAddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	address, err := h.addressService.Create(ctx, userID, &req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"address": address,
	})
}

func (h *AddressHandler) GetAddresses(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	addresses, err := h.addressService.List(ctx, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"address": addresses,
	})
}

func (h *AddressHandler) UpdateAddress(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateAddressRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	address, err := h.addressService.Update(ctx, userID, c.Param("id"), &req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"address": address,
	})
}

func (h *AddressHandler) DeleteAddress(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	if err := h.addressService.Delete(ctx, userID, c.Param("id")); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Address deleted successfully",
	})
}
