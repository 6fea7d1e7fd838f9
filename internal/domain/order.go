package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	TotalAmount     decimal.Decimal
	DeliveryAddress string
	PaymentMethod   *string
	Notes           string
	Status          OrderStatus
	OrderDate       time.Time
	UpdatedAt       time.Time
}

// OrderFilter narrows ListOrders; nil fields are ignored.
type OrderFilter struct {
	UserID    *uuid.UUID
	Status    *OrderStatus
	StartDate *time.Time
	EndDate   *time.Time
}
