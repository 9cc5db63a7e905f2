package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/model"
)

// AddToCartRequest adds a product variant to the session user's cart.
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// CartItemResponse is a cart line enriched with product display data.
type CartItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
}

type CreateProductRequest struct {
	Name        string `form:"name" validate:"required"`
	Brand       string `form:"brand" validate:"required"`
	Description string `form:"description"`
	Category    string `form:"category" validate:"required"`
	Gender      string `form:"gender"`
	Sizes       string `form:"sizes"`
	Colors      string `form:"colors"`
	Price       string `form:"price" validate:"required"`
	Stock       int    `form:"stock" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Brand       string  `json:"brand" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" validate:"required"`
	Gender      string  `json:"gender"`
	Sizes       string  `json:"sizes"`
	Colors      string  `json:"colors"`
	Price       string  `json:"price" validate:"required"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
}

// ProductFilter carries the parsed listing query parameters.
type ProductFilter struct {
	Categories []string
	Brands     []string
	Sizes      []string
	Colors     []string
	MinPrice   decimal.Decimal
	MaxPrice   decimal.Decimal
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

type ProductListResponse struct {
	Success       bool            `json:"success"`
	Products      []model.Product `json:"products"`
	CurrentPage   int             `json:"currentPage"`
	TotalPages    int             `json:"totalPages"`
	TotalProducts int64           `json:"totalProducts"`
}

type CreateAddressRequest struct {
	Name       string `json:"name" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	Country    string `json:"country" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	IsDefault  bool   `json:"isDefault"`
}

type CreateCouponRequest struct {
	Code            string    `json:"code" validate:"required"`
	DiscountPercent int       `json:"discountPercent" validate:"gte=0,lte=100"`
	StartDate       time.Time `json:"startDate" validate:"required"`
	EndDate         time.Time `json:"endDate" validate:"required"`
	UsageLimit      int       `json:"usageLimit" validate:"required,gt=0"`
}

// FinalOrderItem is one checkout line as submitted by the client. Name,
// category and price are re-read from the catalog server-side; the client
// copies are ignored for pricing.
type FinalOrderItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type CreateFinalOrderRequest struct {
	AddressID string           `json:"addressId" validate:"required"`
	CouponID  string           `json:"couponId"`
	Items     []FinalOrderItem `json:"items" validate:"required,min=1,dive"`
	Total     decimal.Decimal  `json:"total" validate:"required"`
	PaymentID string           `json:"paymentId" validate:"required"`
}

type CreateGatewayOrderItem struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
}

type CreateGatewayOrderRequest struct {
	Items []CreateGatewayOrderItem `json:"items" validate:"required,min=1,dive"`
	Total decimal.Decimal          `json:"total" validate:"required"`
}

type CaptureGatewayOrderRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PROCESSING SHIPPED DELIVERED"`
}

type UpdateFeatureProductsRequest struct {
	ProductIDs []string `json:"productId" validate:"required,max=8"`
}
