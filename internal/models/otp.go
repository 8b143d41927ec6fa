package models

import (
	"time"

	"github.com/google/uuid"
)

// OtpCode keeps track of one-time login codes issued to customers.
// Rows are append-only; the only mutation is flipping Used to true on a
// successful verification. Expired and used rows are swept periodically.
type OtpCode struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User      *User     `json:"-"`
	Email     string    `gorm:"index" json:"email"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}
