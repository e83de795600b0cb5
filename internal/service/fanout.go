package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"health_guardian/internal/domain"
	"health_guardian/internal/repository"

	"github.com/sirupsen/logrus"
)

// Fanout materializes one notification per recipient of an administrative action
type Fanout struct {
	users         repository.UserRepository
	notifications repository.NotificationRepository
	workers       int
}

// NewFanout creates a Fanout writing with at most workers concurrent inserts
func NewFanout(users repository.UserRepository, notifications repository.NotificationRepository, workers int) *Fanout {
	if workers < 1 {
		workers = 1
	}
	return &Fanout{users: users, notifications: notifications, workers: workers}
}

// AlertMessage is the notification text every recipient of an alert sees
func AlertMessage(title string) string {
	return "New health alert: " + title
}

// BroadcastAlert notifies every standard user existing at call time.
// The recipient set is read once; users created while writes are in flight are not notified.
// Individual insert failures are counted, not retried.
func (f *Fanout) BroadcastAlert(ctx context.Context, alert *domain.Alert) (domain.FanoutResult, error) {
	recipients, err := f.users.IDsByRole(ctx, domain.RoleUser)
	if err != nil {
		return domain.FanoutResult{}, fmt.Errorf("snapshot recipients: %w", err)
	}
	result := domain.FanoutResult{Eligible: len(recipients)}
	if len(recipients) == 0 {
		return result, nil
	}

	sender := alert.CreatedBy
	message := AlertMessage(alert.Title)
	jobs := make(chan uint)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	workers := min(f.workers, len(recipients))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for recipientID := range jobs {
				n := &domain.Notification{
					Type:        domain.NotificationAlert,
					RecipientID: recipientID,
					SenderID:    &sender,
					Message:     message,
					ReferenceID: alert.ID,
				}
				err := f.notifications.Create(ctx, n)
				mu.Lock()
				if err != nil {
					result.Failed = append(result.Failed, recipientID)
				} else {
					result.Delivered++
				}
				mu.Unlock()
				if err != nil {
					logrus.WithFields(logrus.Fields{
						"alert_id":     alert.ID,
						"recipient_id": recipientID,
						"error":        err.Error(),
					}).Warn("Alert notification failed")
				}
			}
		}()
	}
	for _, id := range recipients {
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	slices.Sort(result.Failed)
	logrus.WithFields(logrus.Fields{
		"alert_id":  alert.ID,
		"eligible":  result.Eligible,
		"delivered": result.Delivered,
		"failed":    len(result.Failed),
	}).Info("Alert fan-out complete")
	return result, nil
}

// ContactDonor writes the single contact notification addressed to the donor's owner
func (f *Fanout) ContactDonor(ctx context.Context, senderID uint, donor *domain.Donor, message string) (*domain.Notification, error) {
	n := &domain.Notification{
		Type:        domain.NotificationContact,
		RecipientID: donor.UserID,
		SenderID:    &senderID,
		Message:     message,
		ReferenceID: donor.ID,
	}
	if err := f.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}
