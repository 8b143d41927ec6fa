package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/salesapp/internal/domain"
)

// MockGateway is an in-memory PaymentGateway used in development and tests.
// It honors the full gateway contract, including the rejection of cancelling
// an already-paid payment, so it is a valid stand-in for a real provider.
type MockGateway struct {
	mu       sync.Mutex
	payments map[string]*Payment
}

// NewMockGateway constructs an empty MockGateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{payments: make(map[string]*Payment)}
}

func (g *MockGateway) CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	reference := "pay_mock_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]

	p := &Payment{
		Reference:   reference,
		Status:      statusForMethod(req.Method),
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		CheckoutURL: checkoutURLForMethod(reference, req.Method),
		CreatedAt:   time.Now(),
		Metadata:    req.Metadata,
	}

	if p.Status == PaymentPaid {
		now := time.Now()
		p.PaidAt = &now
	}

	g.payments[reference] = p
	return clonePayment(p), nil
}

func (g *MockGateway) GetStatus(ctx context.Context, reference string) (*Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.payments[reference]
	if !ok {
		return nil, fmt.Errorf("payment %s: %w", reference, domain.ErrNotFound)
	}
	return clonePayment(p), nil
}

func (g *MockGateway) VerifyPayment(ctx context.Context, reference string) (bool, error) {
	p, err := g.GetStatus(ctx, reference)
	if err != nil {
		return false, err
	}
	return p.Status == PaymentPaid, nil
}

func (g *MockGateway) CancelPayment(ctx context.Context, reference string) (*Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.payments[reference]
	if !ok {
		return nil, fmt.Errorf("payment %s: %w", reference, domain.ErrNotFound)
	}
	if p.Status == PaymentPaid {
		return nil, fmt.Errorf("cancel paid payment %s: %w", reference, domain.ErrInvalidState)
	}

	p.Status = PaymentCancelled
	return clonePayment(p), nil
}

// CompleteCheckout simulates the payer finishing a redirect-based checkout.
func (g *MockGateway) CompleteCheckout(reference string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.payments[reference]
	if !ok {
		return fmt.Errorf("payment %s: %w", reference, domain.ErrNotFound)
	}
	if p.Status == PaymentCancelled {
		return fmt.Errorf("complete cancelled payment %s: %w", reference, domain.ErrInvalidState)
	}

	p.Status = PaymentPaid
	now := time.Now()
	p.PaidAt = &now
	return nil
}

// statusForMethod mirrors real provider behavior: cards settle immediately,
// e-wallets wait for the payer to complete a redirect checkout.
func statusForMethod(method string) PaymentStatus {
	switch method {
	case "card":
		return PaymentPaid
	case "gcash", "paymaya", "grab_pay":
		return PaymentAwaiting
	default:
		return PaymentPending
	}
}

func checkoutURLForMethod(reference, method string) string {
	switch method {
	case "gcash", "paymaya", "grab_pay":
		return "https://mock-gateway.local/checkout/" + reference
	default:
		return ""
	}
}

func clonePayment(p *Payment) *Payment {
	out := *p
	if p.PaidAt != nil {
		paidAt := *p.PaidAt
		out.PaidAt = &paidAt
	}
	return &out
}
