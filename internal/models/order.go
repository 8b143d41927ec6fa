package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status values. Status is Paid iff PaymentStatus is Paid; Paid and
// Cancelled are terminal.
const (
	OrderStatusPending   = "Pending"
	OrderStatusPaid      = "Paid"
	OrderStatusCancelled = "Cancelled"
)

// Payment status values.
const (
	PaymentStatusUnpaid = "Unpaid"
	PaymentStatusPaid   = "Paid"
	PaymentStatusFailed = "Failed"
)

// Order is a customer order with price snapshots taken at creation time.
// TotalAmount is computed once, from the line totals, and never recalculated.
// Version is the optimistic-concurrency token: status transitions are only
// committed when the stored version still matches the one that was read.
type Order struct {
	BaseModel
	CustomerID       uuid.UUID       `gorm:"type:uuid;index" json:"customer_id"`
	Customer         *Customer       `json:"customer,omitempty"`
	OrderDate        time.Time       `json:"order_date"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_amount"`
	Status           string          `json:"status"`
	PaymentStatus    string          `json:"payment_status"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	Version          int             `json:"-"`
	Items            []OrderItem     `json:"items,omitempty"`
}

// OrderItem is an immutable order line carrying the product name and unit
// price as they were when the order was placed.
type OrderItem struct {
	BaseModel
	OrderID     uuid.UUID       `gorm:"type:uuid;index" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid" json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2)" json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `gorm:"type:numeric(12,2)" json:"line_total"`
}

// Terminal reports whether no further status transitions are accepted.
func (o *Order) Terminal() bool {
	return o.Status == OrderStatusPaid || o.Status == OrderStatusCancelled
}
