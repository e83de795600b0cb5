package repository

import (
	"context"

	"health_guardian/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DonorRepository defines donor data operations
type DonorRepository interface {
	// Upsert inserts the donor or overwrites the row already owned by donor.UserID, returning its id
	Upsert(ctx context.Context, donor *domain.Donor) (uint, error)
	FindByID(ctx context.Context, id uint) (*domain.Donor, error)
	FindView(ctx context.Context, id uint) (*domain.DonorView, error)
	List(ctx context.Context, filter domain.DonorFilter) ([]domain.DonorView, error)
}

type donorRepository struct {
	db *gorm.DB
}

// NewDonorRepository creates a GORM backed DonorRepository
func NewDonorRepository(db *gorm.DB) DonorRepository {
	return &donorRepository{db: db}
}

// donorRow is the shape of a donor joined with its owner
type donorRow struct {
	domain.Donor
	Name  string
	Email string
}

func (row donorRow) view() domain.DonorView {
	return domain.DonorView{
		ID:           row.ID,
		UserID:       row.UserID,
		Name:         row.Name,
		Email:        row.Email,
		BloodType:    row.BloodType,
		OrganDonor:   row.OrganDonor,
		Location:     domain.Location{Lat: row.Lat, Lng: row.Lng, Address: row.Address},
		Phone:        row.Phone,
		LastDonation: row.LastDonation,
	}
}

func (r *donorRepository) Upsert(ctx context.Context, donor *domain.Donor) (uint, error) {
	var id uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The unique index on user_id turns a concurrent double submit into an update
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"blood_type", "organ_donor", "lat", "lng", "address", "phone", "last_donation", "updated_at",
			}),
		}).Create(donor).Error
		if err != nil {
			return err
		}
		return tx.Model(&domain.Donor{}).Where("user_id = ?", donor.UserID).Pluck("id", &id).Error
	})
	if err != nil {
		return 0, translate(err, "donor", 0)
	}
	return id, nil
}

func (r *donorRepository) FindByID(ctx context.Context, id uint) (*domain.Donor, error) {
	var donor domain.Donor
	if err := r.db.WithContext(ctx).First(&donor, id).Error; err != nil {
		return nil, translate(err, "donor", id)
	}
	return &donor, nil
}

func (r *donorRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("donors").
		Select("donors.*, users.name, users.email").
		Joins("JOIN users ON users.id = donors.user_id")
}

func (r *donorRepository) FindView(ctx context.Context, id uint) (*domain.DonorView, error) {
	var rows []donorRow
	if err := r.joined(ctx).Where("donors.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.Missing("donor", id)
	}
	v := rows[0].view()
	return &v, nil
}

func (r *donorRepository) List(ctx context.Context, filter domain.DonorFilter) ([]domain.DonorView, error) {
	q := r.joined(ctx)
	if filter.BloodType != "" {
		q = q.Where("donors.blood_type = ?", filter.BloodType)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	var rows []donorRow
	if err := q.Order("donors.id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	views := make([]domain.DonorView, len(rows))
	for i, row := range rows {
		views[i] = row.view()
	}
	return views, nil
}
