package customer

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/salesapp/internal/models"
)

// Repository persists and fetches customer profiles.
type Repository interface {
	// Create persists the profile together with its associated user record
	// in one transaction when c.User is set.
	Create(ctx context.Context, c *models.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
	List(ctx context.Context, limit, offset int) ([]models.Customer, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
