package domain

import "time"

// DefaultSignificanceThreshold is the probability a prediction must exceed to be persisted
const DefaultSignificanceThreshold = 0.5

// Disease Model, one row per significant prediction
type Disease struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                          // Primary key
	Name        string    `gorm:"not null" json:"name"`                          // Disease name
	Probability float64   `gorm:"type:decimal(5,4);not null" json:"probability"` // Predicted probability
	Location    *string   `gorm:"type:text" json:"location"`                     // Optional location
	Details     *string   `gorm:"type:text" json:"details"`                      // Optional detail text
	CreatedAt   time.Time `gorm:"index" json:"date"`                             // Prediction time
}

// Prediction is a single scorer output entry
type Prediction struct {
	Disease     string   `json:"disease"`
	Probability *float64 `json:"probability"`
	Location    *string  `json:"location,omitempty"`
}
