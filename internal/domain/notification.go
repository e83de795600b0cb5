package domain

import "time"

// Notification types
const (
	NotificationAlert   = "alert"
	NotificationContact = "contact"
)

// Emergency levels a donor contact may carry
var EmergencyLevels = []string{"normal", "urgent", "critical"}

// Notification Model, append-only
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                                           // Primary key
	Type        string    `gorm:"size:16;not null" json:"type"`                                   // alert or contact
	RecipientID uint      `gorm:"not null;index" json:"recipientId"`                              // Owning user
	SenderID    *uint     `json:"senderId"`                                                       // Sender, nullified if removed
	Message     string    `gorm:"type:text" json:"message"`                                       // Message text
	ReferenceID uint      `json:"referenceId"`                                                    // Alert or donor id
	IsRead      bool      `gorm:"not null;default:false" json:"isRead"`                           // Read flag
	CreatedAt   time.Time `gorm:"index" json:"date"`                                              // Creation time
	Recipient   User      `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE;" json:"-"`
	Sender      *User     `gorm:"foreignKey:SenderID;constraint:OnDelete:SET NULL;" json:"-"`
}

// Sender is the name-bearing back-reference on a listed notification
type Sender struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NotificationView is a notification joined with its sender's name
type NotificationView struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"isRead"`
	Date        time.Time `json:"date"`
	Sender      *Sender   `json:"sender"`
	ReferenceID uint      `json:"referenceId"`
}
