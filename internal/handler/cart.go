package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/service"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.AddToCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.cartService.AddItem(ctx, userID, &req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    item,
	})
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	items, err := h.cartService.GetCart(ctx, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Cart fetch successfully",
		"data":    items,
	})
}

func (h *CartHandler) UpdateCartItemQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.cartService.UpdateQuantity(ctx, userID, c.Param("id"), req.Quantity)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    item,
	})
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	if err := h.cartService.RemoveItem(ctx, userID, c.Param("id")); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Item was removed from cart",
	})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	if err := h.cartService.Clear(ctx, userID); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Cart cleared successfully",
	})
}
