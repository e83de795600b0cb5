package repository

import (
	"context"

	"health_guardian/internal/domain"

	"gorm.io/gorm"
)

// DiseaseRepository defines disease prediction data operations
type DiseaseRepository interface {
	// CreateBatch inserts every disease or none of them
	CreateBatch(ctx context.Context, diseases []domain.Disease) error
	FindByID(ctx context.Context, id uint) (*domain.Disease, error)
	List(ctx context.Context) ([]domain.Disease, error)
}

type diseaseRepository struct {
	db *gorm.DB
}

// NewDiseaseRepository creates a GORM backed DiseaseRepository
func NewDiseaseRepository(db *gorm.DB) DiseaseRepository {
	return &diseaseRepository{db: db}
}

func (r *diseaseRepository) CreateBatch(ctx context.Context, diseases []domain.Disease) error {
	if len(diseases) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&diseases).Error
	})
}

func (r *diseaseRepository) FindByID(ctx context.Context, id uint) (*domain.Disease, error) {
	var disease domain.Disease
	if err := r.db.WithContext(ctx).First(&disease, id).Error; err != nil {
		return nil, translate(err, "disease", id)
	}
	return &disease, nil
}

func (r *diseaseRepository) List(ctx context.Context) ([]domain.Disease, error) {
	var diseases []domain.Disease
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&diseases).Error
	return diseases, err
}
