package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/salesapp/internal/models"
)

// Repository persists and fetches user accounts.
type Repository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	ListAdmins(ctx context.Context) ([]models.User, error)
}
