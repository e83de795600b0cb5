package domain

import (
	"slices"
	"time"
)

// BloodTypes lists the canonical ABO/Rh tokens a donor may declare
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// ValidBloodType reports whether bt is one of the canonical tokens
func ValidBloodType(bt string) bool {
	return slices.Contains(BloodTypes, bt)
}

// Donor Model
type Donor struct {
	ID           uint       `gorm:"primaryKey" json:"id"`                      // Primary key
	UserID       uint       `gorm:"uniqueIndex;not null" json:"userId"`        // Owning user, at most one donor per user
	BloodType    string     `gorm:"size:5" json:"bloodType"`                   // ABO/Rh token
	OrganDonor   bool       `gorm:"not null;default:false" json:"organDonor"`  // Organ donor flag
	Lat          float64    `gorm:"type:decimal(10,8)" json:"lat"`             // Latitude
	Lng          float64    `gorm:"type:decimal(11,8)" json:"lng"`             // Longitude
	Address      string     `gorm:"type:text" json:"address"`                  // Free-text address
	Phone        string     `gorm:"size:20" json:"phone"`                      // Contact phone
	LastDonation *time.Time `gorm:"type:date" json:"lastDonation"`             // Optional last donation date
	CreatedAt    time.Time  `json:"created_at"`                                // Creation time
	UpdatedAt    time.Time  `json:"updated_at"`                                // Last upsert time
}

// DonorProfile is the full set of mutable donor fields submitted by the owner
type DonorProfile struct {
	BloodType    string
	OrganDonor   bool
	Lat          *float64
	Lng          *float64
	Address      string
	Phone        string
	LastDonation *time.Time
}

// DonorView is a donor joined with its owner's name and email
type DonorView struct {
	ID           uint       `json:"id"`
	UserID       uint       `json:"userId"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	BloodType    string     `json:"bloodType"`
	OrganDonor   bool       `json:"organDonor"`
	Location     Location   `json:"location"`
	Phone        string     `json:"phone"`
	LastDonation *time.Time `json:"lastDonation"`
}

// DonorFilter narrows a donor listing
type DonorFilter struct {
	BloodType string // Exact match when non-empty
	Limit     int    // 0 means unlimited
}

// RankedDonor is a donor with its distance from a search origin
type RankedDonor struct {
	DonorView
	DistanceKm float64 `json:"distanceKm"`
}
