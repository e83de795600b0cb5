package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"health_guardian/internal/domain"
	"health_guardian/internal/geo"
	"health_guardian/internal/repository"

	"github.com/sirupsen/logrus"
)

// DonorService is the donor registry
type DonorService struct {
	donors   repository.DonorRepository
	users    repository.UserRepository
	cache    Cache
	cacheTTL time.Duration
}

// NewDonorService creates a DonorService
func NewDonorService(donors repository.DonorRepository, users repository.UserRepository, cache Cache, cacheTTL time.Duration) *DonorService {
	return &DonorService{donors: donors, users: users, cache: cache, cacheTTL: cacheTTL}
}

func validateDonorProfile(profile domain.DonorProfile) error {
	if profile.BloodType == "" {
		return domain.Invalid("bloodType", "required")
	}
	if !domain.ValidBloodType(profile.BloodType) {
		return domain.Invalid("bloodType", "must be one of "+strings.Join(domain.BloodTypes, ", "))
	}
	if strings.TrimSpace(profile.Phone) == "" {
		return domain.Invalid("phone", "required")
	}
	if strings.TrimSpace(profile.Address) == "" {
		return domain.Invalid("address", "required")
	}
	if profile.Lat == nil || profile.Lng == nil {
		return domain.Invalid("location", "required")
	}
	if !(geo.Point{Lat: *profile.Lat, Lng: *profile.Lng}).Valid() {
		if *profile.Lat < -90 || *profile.Lat > 90 {
			return domain.Invalid("lat", "must be within [-90, 90]")
		}
		return domain.Invalid("lng", "must be within [-180, 180]")
	}
	return nil
}

// Upsert creates or fully overwrites the caller's own donor profile
func (s *DonorService) Upsert(ctx context.Context, p domain.Principal, profile domain.DonorProfile) (uint, error) {
	if p.UserID == 0 {
		return 0, domain.ErrUnauthenticated
	}
	if err := validateDonorProfile(profile); err != nil {
		return 0, err
	}
	if _, err := s.users.FindByID(ctx, p.UserID); err != nil {
		return 0, err
	}
	donor := &domain.Donor{
		UserID:       p.UserID,
		BloodType:    profile.BloodType,
		OrganDonor:   profile.OrganDonor,
		Lat:          *profile.Lat,
		Lng:          *profile.Lng,
		Address:      strings.TrimSpace(profile.Address),
		Phone:        strings.TrimSpace(profile.Phone),
		LastDonation: profile.LastDonation,
	}
	id, err := s.donors.Upsert(ctx, donor)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": p.UserID, "error": err.Error()}).Error("Donor registration failed")
		return 0, err
	}
	invalidate(ctx, s.cache, donorListPrefix, userListPrefix)
	logrus.WithFields(logrus.Fields{
		"user_id":    p.UserID,
		"donor_id":   id,
		"blood_type": donor.BloodType,
	}).Info("Donor registered")
	return id, nil
}

// List returns donors joined with their owners, optionally restricted to one blood type
func (s *DonorService) List(ctx context.Context, filter domain.DonorFilter) ([]domain.DonorView, error) {
	if filter.BloodType != "" && !domain.ValidBloodType(filter.BloodType) {
		return nil, domain.Invalid("bloodType", "must be one of "+strings.Join(domain.BloodTypes, ", "))
	}
	if filter.Limit < 0 {
		return nil, domain.Invalid("limit", "must not be negative")
	}
	key := fmt.Sprintf("%sbt=%s:limit=%d", donorListPrefix, filter.BloodType, filter.Limit)
	var cached []domain.DonorView
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return cached, nil
	}
	donors, err := s.donors.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, donors, s.cacheTTL)
	return donors, nil
}

// Get returns one donor or NotFound
func (s *DonorService) Get(ctx context.Context, id uint) (*domain.DonorView, error) {
	return s.donors.FindView(ctx, id)
}
