package models

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Orders snapshot the name and price at order
// creation time, so later catalog edits never alter historical orders.
type Product struct {
	BaseModel
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
}
