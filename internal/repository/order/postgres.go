package order

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

func (r *postgresRepo) Create(ctx context.Context, o *models.Order) error {
	// gorm creates the items through the association inside one transaction.
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, o *models.Order) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND version = ?", o.ID, o.Version).
		Updates(map[string]any{
			"status":            o.Status,
			"payment_status":    o.PaymentStatus,
			"payment_reference": o.PaymentReference,
			"version":           o.Version + 1,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrConflict
	}
	o.Version++
	return nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *postgresRepo) ListAll(ctx context.Context, limit, offset int) ([]models.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("order_date desc").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
