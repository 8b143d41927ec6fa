package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/salesapp/internal/models"
)

// Repository persists orders and their line items.
type Repository interface {
	// Create persists the order and its items as a single transaction.
	Create(ctx context.Context, o *models.Order) error

	// GetByID returns the order with items preloaded, or domain.ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)

	// UpdateStatus commits a status transition guarded by the version the
	// order was read at. A transition computed from a stale read returns
	// domain.ErrConflict instead of overwriting the newer state.
	UpdateStatus(ctx context.Context, o *models.Order) error

	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.Order, int64, error)
}
