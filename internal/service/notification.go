package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"health_guardian/internal/domain"
	"health_guardian/internal/repository"

	"github.com/sirupsen/logrus"
)

// NotificationService serves a user's own notifications and the donor contact action
type NotificationService struct {
	notifications repository.NotificationRepository
	donors        repository.DonorRepository
	fanout        *Fanout
}

// NewNotificationService creates a NotificationService
func NewNotificationService(notifications repository.NotificationRepository, donors repository.DonorRepository, fanout *Fanout) *NotificationService {
	return &NotificationService{notifications: notifications, donors: donors, fanout: fanout}
}

// ContactMessage prefixes the message with its emergency level
func ContactMessage(level, message string) string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(level), message)
}

// ContactDonor notifies the owner of donorID, admin only
func (s *NotificationService) ContactDonor(ctx context.Context, p domain.Principal, donorID uint, message, level string) (*domain.Notification, error) {
	if err := p.Require(domain.RoleAdmin); err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.Invalid("message", "required")
	}
	if level == "" {
		level = "normal"
	}
	if !slices.Contains(domain.EmergencyLevels, level) {
		return nil, domain.Invalid("emergencyLevel", "must be one of "+strings.Join(domain.EmergencyLevels, ", "))
	}
	donor, err := s.donors.FindByID(ctx, donorID)
	if err != nil {
		return nil, err
	}
	n, err := s.fanout.ContactDonor(context.WithoutCancel(ctx), p.UserID, donor, ContactMessage(level, message))
	if err != nil {
		logrus.WithFields(logrus.Fields{"donor_id": donorID, "error": err.Error()}).Error("Donor contact failed")
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"donor_id":     donorID,
		"recipient_id": donor.UserID,
		"sender_id":    p.UserID,
		"level":        level,
	}).Info("Donor contacted")
	return n, nil
}

// List returns the caller's notifications newest first
func (s *NotificationService) List(ctx context.Context, p domain.Principal) ([]domain.NotificationView, error) {
	if p.UserID == 0 {
		return nil, domain.ErrUnauthenticated
	}
	notifications, err := s.notifications.ListForRecipient(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	views := make([]domain.NotificationView, len(notifications))
	for i, n := range notifications {
		views[i] = domain.NotificationView{
			ID:          n.ID,
			Type:        n.Type,
			Message:     n.Message,
			IsRead:      n.IsRead,
			Date:        n.CreatedAt,
			ReferenceID: n.ReferenceID,
		}
		if n.SenderID != nil && n.Sender != nil {
			views[i].Sender = &domain.Sender{ID: *n.SenderID, Name: n.Sender.Name}
		}
	}
	return views, nil
}

// MarkRead flags the notification read when it belongs to the caller.
// Someone else's notification is left untouched and reported exactly like success.
func (s *NotificationService) MarkRead(ctx context.Context, p domain.Principal, notificationID uint) error {
	if p.UserID == 0 {
		return domain.ErrUnauthenticated
	}
	_, err := s.notifications.MarkRead(ctx, notificationID, p.UserID)
	return err
}

// UnreadCount returns how many of the caller's notifications are unread
func (s *NotificationService) UnreadCount(ctx context.Context, p domain.Principal) (int64, error) {
	if p.UserID == 0 {
		return 0, domain.ErrUnauthenticated
	}
	return s.notifications.CountUnread(ctx, p.UserID)
}
