package customer

import (
	"context"
	"errors"

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

func (r *postgresRepo) Create(ctx context.Context, c *models.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).Preload("User").First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *postgresRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *postgresRepo) Update(ctx context.Context, c *models.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *postgresRepo) List(ctx context.Context, limit, offset int) ([]models.Customer, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []models.Customer
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id).Error
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
