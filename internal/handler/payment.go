package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront-backend/internal/dto"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/service"
)

type PaymentHandler struct {
	orderService service.OrderService
}

func NewPaymentHandler(orderService service.OrderService) *PaymentHandler {
	return &PaymentHandler{
		orderService: orderService,
	}
}

func (h *PaymentHandler) CreateGatewayOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateGatewayOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.orderService.CreateGatewayOrder(ctx, &req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":          resp.OrderID,
		"status":      resp.Status,
		"approve_url": resp.ApproveURL,
	})
}

func (h *PaymentHandler) CaptureGatewayOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CaptureGatewayOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.orderService.CaptureGatewayOrder(ctx, req.OrderID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":     result.Status,
		"payment_id": result.PaymentID,
	})
}

func (h *PaymentHandler) CreateFinalOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateFinalOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.Finalize(ctx, userID, &req)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h *PaymentHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.GetOrder(ctx, userID, c.Param("orderId"))
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "fetch order successfully",
		"order":   order,
	})
}

func (h *PaymentHandler) GetOrdersByUser(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := middleware.UserID(c)
	if err != nil {
		return err
	}

	orders, err := h.orderService.ListByUser(ctx, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

func (h *PaymentHandler) GetAllOrdersForAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListAll(ctx)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

func (h *PaymentHandler) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.orderService.UpdateStatus(ctx, c.Param("orderId"), req.Status); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "updated order successfully",
	})
}
