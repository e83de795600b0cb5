package service

import (
	"context"
	"sort"
	"strings"

	"health_guardian/internal/domain"
	"health_guardian/internal/geo"
)

// DefaultNearestLimit is how many donors a proximity search returns when the caller does not say
const DefaultNearestLimit = 5

// CandidateSource yields the donors a proximity search ranks. It is read uncached so a
// relocated donor is ranked at the new position. A spatial index can stand in for the full scan.
type CandidateSource interface {
	List(ctx context.Context, filter domain.DonorFilter) ([]domain.DonorView, error)
}

// Matcher ranks donors by great-circle distance
type Matcher struct {
	source CandidateSource
}

// NewMatcher creates a Matcher over source
func NewMatcher(source CandidateSource) *Matcher {
	return &Matcher{source: source}
}

// FindNearest returns at most k donors closest to origin, nearest first, ties broken by donor id
func (m *Matcher) FindNearest(ctx context.Context, origin *geo.Point, bloodType string, k int) ([]domain.RankedDonor, error) {
	if origin == nil {
		return nil, domain.ErrLocationRequired
	}
	if !origin.Valid() {
		return nil, domain.Invalid("location", "latitude must be within [-90, 90] and longitude within [-180, 180]")
	}
	if bloodType != "" && !domain.ValidBloodType(bloodType) {
		return nil, domain.Invalid("bloodType", "must be one of "+strings.Join(domain.BloodTypes, ", "))
	}
	if k <= 0 {
		k = DefaultNearestLimit
	}
	candidates, err := m.source.List(ctx, domain.DonorFilter{BloodType: bloodType})
	if err != nil {
		return nil, err
	}
	ranked := make([]domain.RankedDonor, len(candidates))
	for i, d := range candidates {
		ranked[i] = domain.RankedDonor{
			DonorView:  d,
			DistanceKm: geo.DistanceKm(origin.Lat, origin.Lng, d.Location.Lat, d.Location.Lng),
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceKm != ranked[j].DistanceKm {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked, nil
}
