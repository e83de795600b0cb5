package repository

import (
	"context"
	"errors"

	"health_guardian/internal/domain"

	"gorm.io/gorm"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id uint, name, email string) error
	List(ctx context.Context, offset, limit int) ([]domain.User, int64, error)
	// IDsByRole reads the ids of every user holding role in one query
	IDsByRole(ctx context.Context, role string) ([]uint, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a GORM backed UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error, "user", 0)
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Preload("Donor").First(&user, id).Error; err != nil {
		return nil, translate(err, "user", id)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, id uint, name, email string) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "email": email})
	if res.Error != nil {
		return translate(res.Error, "user", id)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	err := r.db.WithContext(ctx).Preload("Donor").Order("id").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

func (r *userRepository) IDsByRole(ctx context.Context, role string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("role = ?", role).Order("id").Pluck("id", &ids).Error
	return ids, err
}
