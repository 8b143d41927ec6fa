package models

import (
	"github.com/google/uuid"
)

// Customer is the profile attached 1:1 to a Customer-role user. An account
// without a profile cannot place orders.
type Customer struct {
	BaseModel
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	User           *User     `json:"user,omitempty"`
	FullName       string    `json:"full_name"`
	Email          string    `gorm:"index" json:"email"`
	BillingAddress string    `json:"billing_address"`
	ContactNumber  string    `json:"contact_number"`
}
