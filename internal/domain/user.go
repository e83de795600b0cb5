package domain

import "time"

// Roles a user can hold
const (
	RoleAdmin = "admin" // Administrator: ingests predictions, raises alerts, contacts donors
	RoleUser  = "user"  // Standard user: receives alerts, may register as a donor
)

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                  // Primary key
	Name      string    `gorm:"not null" json:"name"`                                  // Display name
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`            // Unique email
	Password  string    `gorm:"not null" json:"-"`                                     // Hashed password, never serialized
	Role      string    `gorm:"size:16;not null;default:user;index" json:"role"`       // Role: user or admin
	CreatedAt time.Time `json:"created_at"`                                            // Creation time
	Donor     *Donor    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // Optional one-to-one donor profile
}

// Profile is the user as seen by the user themselves, with donor status folded in
type Profile struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	IsDonor    bool      `json:"isDonor"`
	BloodType  *string   `json:"bloodType"`
	OrganDonor bool      `json:"organDonor"`
	Location   *Location `json:"location"`
	CreatedAt  time.Time `json:"created_at"`
}

// Location is a coordinate with its free-text address
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// NewProfile folds the optional donor row into the user's profile
func NewProfile(u User) Profile {
	p := Profile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
	if u.Donor != nil {
		bt := u.Donor.BloodType
		p.IsDonor = true
		p.BloodType = &bt
		p.OrganDonor = u.Donor.OrganDonor
		p.Location = &Location{Lat: u.Donor.Lat, Lng: u.Donor.Lng, Address: u.Donor.Address}
	}
	return p
}

// Principal is an already-verified caller identity
type Principal struct {
	UserID uint
	Role   string
}

// IsAdmin reports whether the principal holds the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Require fails with ErrUnauthorized unless the principal holds role
func (p Principal) Require(role string) error {
	if p.UserID == 0 {
		return ErrUnauthenticated
	}
	if p.Role != role {
		return ErrUnauthorized
	}
	return nil
}
