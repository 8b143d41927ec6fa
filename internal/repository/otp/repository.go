package otp

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/example/salesapp/internal/models"
)

// Repository persists one-time login codes. The store is append-only apart
// from MarkUsed; DeleteExpired is storage hygiene with no correctness role.
type Repository interface {
	Create(ctx context.Context, code *models.OtpCode) error

	// GetValid returns the newest unused, unexpired code matching email and
	// code, or domain.ErrNotFound.
	GetValid(ctx context.Context, email, code string, now time.Time) (*models.OtpCode, error)

	// MarkUsed flips the used flag. It only succeeds if the row is still
	// unused, so two concurrent verifications of the same code resolve to
	// exactly one winner; the loser gets domain.ErrConflict.
	MarkUsed(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes used or expired rows and reports how many went.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
