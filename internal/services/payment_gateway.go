package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the fixed provider-independent status vocabulary. Every
// concrete gateway maps its own status strings into this set; the order
// engine never sees a provider-specific value.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentAwaiting   PaymentStatus = "awaiting_payment"
	PaymentProcessing PaymentStatus = "processing"
	PaymentPaid       PaymentStatus = "paid"
	PaymentFailed     PaymentStatus = "failed"
	PaymentCancelled  PaymentStatus = "cancelled"
)

// PayerDetails identifies the paying customer to the provider.
type PayerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// PaymentRequest is the provider-independent payment creation input.
type PaymentRequest struct {
	Amount      decimal.Decimal   `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	Method      string            `json:"method"` // card, gcash, paymaya, grab_pay
	Payer       PayerDetails      `json:"payer"`
	Metadata    map[string]string `json:"metadata"`
}

// Payment is the provider-independent view of a payment attempt.
type Payment struct {
	Reference   string          `json:"reference"`
	Status      PaymentStatus   `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	// CheckoutURL is set for redirect-based methods such as e-wallets.
	CheckoutURL string            `json:"checkout_url,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	PaidAt      *time.Time        `json:"paid_at,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// PaymentGateway is the capability set every payment provider implements.
// The concrete provider is chosen by configuration at process start.
type PaymentGateway interface {
	// CreatePayment registers a payment attempt with the provider. Transport
	// failures surface as domain.ErrGatewayUnavailable.
	CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error)

	// GetStatus re-fetches the current status. Unknown references return
	// domain.ErrNotFound.
	GetStatus(ctx context.Context, reference string) (*Payment, error)

	// VerifyPayment reports whether the payment's current status is paid.
	VerifyPayment(ctx context.Context, reference string) (bool, error)

	// CancelPayment cancels a payment that has not been paid yet. Cancelling
	// a paid payment is not a refund and returns domain.ErrInvalidState.
	CancelPayment(ctx context.Context, reference string) (*Payment, error)
}
