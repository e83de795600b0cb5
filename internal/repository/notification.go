package repository

import (
	"context"

	"health_guardian/internal/domain"

	"gorm.io/gorm"
)

// NotificationRepository defines notification data operations
type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	ListForRecipient(ctx context.Context, recipientID uint) ([]domain.Notification, error)
	// MarkRead flags the notification read only when it belongs to recipientID
	MarkRead(ctx context.Context, id, recipientID uint) (int64, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a GORM backed NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	return r.db.WithContext(ctx).Omit("Recipient", "Sender").Create(notification).Error
}

func (r *notificationRepository) ListForRecipient(ctx context.Context, recipientID uint) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, recipientID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}
