package repository

import (
	"context"

	"health_guardian/internal/domain"

	"gorm.io/gorm"
)

// AlertRepository defines alert data operations
type AlertRepository interface {
	Create(ctx context.Context, alert *domain.Alert) error
	SetActive(ctx context.Context, id uint, active bool) error
	// List returns alerts newest first with disease and creator loaded as they are now
	List(ctx context.Context) ([]domain.Alert, error)
}

type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository creates a GORM backed AlertRepository
func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	return r.db.WithContext(ctx).Omit("Disease", "Creator").Create(alert).Error
}

func (r *alertRepository) SetActive(ctx context.Context, id uint, active bool) error {
	// MySQL reports zero affected rows when the flag already holds the value, so existence is checked first
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Alert{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.Missing("alert", id)
	}
	return r.db.WithContext(ctx).Model(&domain.Alert{}).Where("id = ?", id).Update("active", active).Error
}

func (r *alertRepository) List(ctx context.Context) ([]domain.Alert, error) {
	var alerts []domain.Alert
	err := r.db.WithContext(ctx).
		Preload("Disease").
		Preload("Creator").
		Order("created_at DESC, id DESC").
		Find(&alerts).Error
	return alerts, err
}
