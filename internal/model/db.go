package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order status lifecycle. Transitions are forward-only; see
// service.OrderService.UpdateStatus.
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
)

const (
	PaymentMethodCreditCard = "CREDIT_CARD"
	PaymentStatusCompleted  = "COMPLETED"
)

// StringList stores a list of strings as a JSON-encoded TEXT column so the
// same model works on both mysql and sqlite.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}
}

type Product struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Brand       string          `gorm:"size:128;index;not null" json:"brand"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"size:128;index;not null" json:"category"`
	Gender      string          `gorm:"size:32" json:"gender"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int             `gorm:"not null" json:"stock"`
	SoldCount   int             `gorm:"not null;default:0" json:"soldCount"`
	Rating      float64         `gorm:"not null;default:0" json:"rating"`
	Sizes       StringList      `gorm:"type:text" json:"sizes"`
	Colors      StringList      `gorm:"type:text" json:"colors"`
	Images      StringList      `gorm:"type:text" json:"images"`
	IsFeatured  bool            `gorm:"index;not null;default:false" json:"isFeatured"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Cart is the per-user container for pending line items. One cart per user.
type Cart struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartItem is one line in a cart. The (cart, product, size, color) tuple is
// unique: adding the same variant again increments Quantity instead of
// inserting a second row.
type CartItem struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CartID    string    `gorm:"size:36;uniqueIndex:idx_cart_variant;not null" json:"cartId"`
	ProductID string    `gorm:"size:36;uniqueIndex:idx_cart_variant;not null" json:"productId"`
	Size      string    `gorm:"size:32;uniqueIndex:idx_cart_variant" json:"size"`
	Color     string    `gorm:"size:32;uniqueIndex:idx_cart_variant" json:"color"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Address struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;index;not null" json:"userId"`
	Name       string    `gorm:"size:128;not null" json:"name"`
	Address    string    `gorm:"size:255;not null" json:"address"`
	City       string    `gorm:"size:128;not null" json:"city"`
	Country    string    `gorm:"size:128;not null" json:"country"`
	PostalCode string    `gorm:"size:32;not null" json:"postalCode"`
	Phone      string    `gorm:"size:32;not null" json:"phone"`
	IsDefault  bool      `gorm:"not null;default:false" json:"isDefault"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Coupon struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Code            string    `gorm:"size:64;uniqueIndex;not null" json:"code"`
	DiscountPercent int       `gorm:"not null" json:"discountPercent"`
	StartDate       time.Time `gorm:"not null" json:"startDate"`
	EndDate         time.Time `gorm:"not null" json:"endDate"`
	UsageLimit      int       `gorm:"not null" json:"usageLimit"`
	UsageCount      int       `gorm:"not null;default:0" json:"usageCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Order struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	UserID        string          `gorm:"size:36;index;not null" json:"userId"`
	AddressID     string          `gorm:"size:36;not null" json:"addressId"`
	CouponID      *string         `gorm:"size:36" json:"couponId,omitempty"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status        string          `gorm:"size:32;index;not null" json:"status"`
	PaymentMethod string          `gorm:"size:32;not null" json:"paymentMethod"`
	PaymentStatus string          `gorm:"size:32;not null" json:"paymentStatus"`
	PaymentID     string          `gorm:"size:64" json:"paymentId"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// OrderItem snapshots product name, category and price at order time so later
// product edits or deletions do not alter historical orders.
type OrderItem struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	OrderID         string          `gorm:"size:36;index;not null" json:"orderId"`
	ProductID       string          `gorm:"size:36;not null" json:"productId"`
	ProductName     string          `gorm:"size:255;not null" json:"productName"`
	ProductCategory string          `gorm:"size:128;not null" json:"productCategory"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Size            string          `gorm:"size:32" json:"size"`
	Color           string          `gorm:"size:32" json:"color"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type FeatureBanner struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ImageURL  string    `gorm:"size:512;not null" json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}
