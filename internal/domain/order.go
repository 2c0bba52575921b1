package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// Order mirrors one row of the order ledger.
type Order struct {
	ID            uuid.UUID     `json:"id"`
	SessionID     string        `json:"session_id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Items         []OrderItem   `json:"items"`
	Total         int64         `json:"total"`
	ShippingFee   int64         `json:"shipping_fee"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Currency      string        `json:"currency"`
	Status        OrderStatus   `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}
