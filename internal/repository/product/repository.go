package product

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/salesapp/internal/models"
)

// Repository persists and fetches catalog products. The order engine reads
// through this interface to snapshot names and prices at order creation.
type Repository interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
