package domain

import (
	"slices"
	"time"
)

// Alert severities
var Severities = []string{"low", "medium", "high"}

// ValidSeverity reports whether s is a known severity
func ValidSeverity(s string) bool {
	return slices.Contains(Severities, s)
}

// Alert Model
type Alert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                // Primary key
	Title     string    `gorm:"not null" json:"title"`               // Alert title
	Message   string    `gorm:"type:text;not null" json:"message"`   // Alert body
	DiseaseID uint      `gorm:"not null;index" json:"diseaseId"`     // Referenced disease
	Severity  string    `gorm:"size:8;not null" json:"severity"`     // low, medium or high
	Active    bool      `gorm:"not null;default:true" json:"active"` // Toggled, never deleted
	CreatedBy uint      `gorm:"not null" json:"createdBy"`           // Creating admin
	CreatedAt time.Time `gorm:"index" json:"date"`                   // Creation time
	Disease   Disease   `gorm:"foreignKey:DiseaseID" json:"-"`
	Creator   User      `gorm:"foreignKey:CreatedBy" json:"-"`
}

// AlertInput carries the fields an admin submits to raise an alert
type AlertInput struct {
	Title     string
	Message   string
	DiseaseID uint
	Severity  string
}

// DiseaseSnapshot is the disease as it reads when an alert is listed
type DiseaseSnapshot struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
	Location    *string `json:"location"`
}

// AlertView is an alert joined at read time with its disease and creator
type AlertView struct {
	ID        uint            `json:"id"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Severity  string          `json:"severity"`
	Active    bool            `json:"active"`
	Date      time.Time       `json:"date"`
	Disease   DiseaseSnapshot `json:"disease"`
	CreatedBy Sender          `json:"createdBy"`
}

// FanoutResult reports how many recipients a broadcast reached
type FanoutResult struct {
	Eligible  int    `json:"eligible"`
	Delivered int    `json:"delivered"`
	Failed    []uint `json:"failed,omitempty"` // Recipient ids whose notification insert failed
}
