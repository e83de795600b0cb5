package service

import (
	"context"
	"strings"

	"health_guardian/internal/domain"
	"health_guardian/internal/repository"

	"github.com/sirupsen/logrus"
)

// AlertService raises alerts from stored predictions
type AlertService struct {
	alerts   repository.AlertRepository
	diseases repository.DiseaseRepository
	fanout   *Fanout
}

// NewAlertService creates an AlertService
func NewAlertService(alerts repository.AlertRepository, diseases repository.DiseaseRepository, fanout *Fanout) *AlertService {
	return &AlertService{alerts: alerts, diseases: diseases, fanout: fanout}
}

// AlertCreated is the outcome of raising an alert
type AlertCreated struct {
	Alert       domain.Alert        `json:"alert"`
	Fanout      domain.FanoutResult `json:"fanout"`
	FanoutError string              `json:"fanoutError,omitempty"`
}

// CreateAlert stores the alert and then notifies every standard user.
// The alert stays created when notification delivery is partial.
func (s *AlertService) CreateAlert(ctx context.Context, p domain.Principal, in domain.AlertInput) (*AlertCreated, error) {
	if err := p.Require(domain.RoleAdmin); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Message = strings.TrimSpace(in.Message)
	switch {
	case in.Title == "":
		return nil, domain.Invalid("title", "required")
	case in.Message == "":
		return nil, domain.Invalid("message", "required")
	case in.DiseaseID == 0:
		return nil, domain.Invalid("diseaseId", "required")
	case !domain.ValidSeverity(in.Severity):
		return nil, domain.Invalid("severity", "must be one of "+strings.Join(domain.Severities, ", "))
	}
	if _, err := s.diseases.FindByID(ctx, in.DiseaseID); err != nil {
		return nil, err
	}

	alert := domain.Alert{
		Title:     in.Title,
		Message:   in.Message,
		DiseaseID: in.DiseaseID,
		Severity:  in.Severity,
		Active:    true,
		CreatedBy: p.UserID,
	}
	if err := s.alerts.Create(ctx, &alert); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"alert_id":   alert.ID,
		"disease_id": alert.DiseaseID,
		"severity":   alert.Severity,
		"created_by": p.UserID,
	}).Info("Alert created")

	created := &AlertCreated{Alert: alert}
	result, err := s.fanout.BroadcastAlert(context.WithoutCancel(ctx), &alert) // alert row is committed, delivery outlives the request
	created.Fanout = result
	if err != nil {
		logrus.WithFields(logrus.Fields{"alert_id": alert.ID, "error": err.Error()}).Error("Alert fan-out failed")
		created.FanoutError = err.Error()
	}
	return created, nil
}

// SetActive toggles the alert's active flag without notifying anyone
func (s *AlertService) SetActive(ctx context.Context, p domain.Principal, alertID uint, active bool) error {
	if err := p.Require(domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.alerts.SetActive(ctx, alertID, active); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"alert_id": alertID, "active": active}).Info("Alert status updated")
	return nil
}

// ListAlerts returns alerts newest first joined with current disease and creator state
func (s *AlertService) ListAlerts(ctx context.Context) ([]domain.AlertView, error) {
	alerts, err := s.alerts.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]domain.AlertView, len(alerts))
	for i, a := range alerts {
		views[i] = domain.AlertView{
			ID:       a.ID,
			Title:    a.Title,
			Message:  a.Message,
			Severity: a.Severity,
			Active:   a.Active,
			Date:     a.CreatedAt,
			Disease: domain.DiseaseSnapshot{
				ID:          a.Disease.ID,
				Name:        a.Disease.Name,
				Probability: a.Disease.Probability,
				Location:    a.Disease.Location,
			},
			CreatedBy: domain.Sender{ID: a.CreatedBy, Name: a.Creator.Name},
		}
	}
	return views, nil
}
