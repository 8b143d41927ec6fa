package otp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/salesapp/internal/domain"
	"github.com/example/salesapp/internal/models"
)

type postgresRepo struct {
	db *gorm.DB
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(db *gorm.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) Create(ctx context.Context, code *models.OtpCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *postgresRepo) GetValid(ctx context.Context, email, code string, now time.Time) (*models.OtpCode, error) {
	var record models.OtpCode
	err := r.db.WithContext(ctx).
		Where("email = ? AND code = ? AND used = ? AND expires_at > ?", email, code, false, now).
		Order("created_at desc").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *postgresRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&models.OtpCode{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *postgresRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR used = ?", now, true).
		Delete(&models.OtpCode{})
	return res.RowsAffected, res.Error
}
