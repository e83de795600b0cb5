package api

import (
	"context"

	"health_guardian/internal/domain"
	"health_guardian/internal/geo"
	"health_guardian/internal/service"
)

// Accounts is the account service as seen by handlers
type Accounts interface {
	Register(ctx context.Context, name, email, password string) (*service.Session, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
	Profile(ctx context.Context, p domain.Principal) (domain.Profile, error)
	UpdateProfile(ctx context.Context, p domain.Principal, name, email string) (domain.Profile, error)
	ListUsers(ctx context.Context, p domain.Principal, page, pageSize int) (*service.UserPage, error)
}

// Donors is the donor registry
type Donors interface {
	Upsert(ctx context.Context, p domain.Principal, profile domain.DonorProfile) (uint, error)
	List(ctx context.Context, filter domain.DonorFilter) ([]domain.DonorView, error)
	Get(ctx context.Context, id uint) (*domain.DonorView, error)
}

// NearestFinder ranks donors by distance
type NearestFinder interface {
	FindNearest(ctx context.Context, origin *geo.Point, bloodType string, k int) ([]domain.RankedDonor, error)
}

// Alerts raises and lists alerts
type Alerts interface {
	CreateAlert(ctx context.Context, p domain.Principal, in domain.AlertInput) (*service.AlertCreated, error)
	SetActive(ctx context.Context, p domain.Principal, alertID uint, active bool) error
	ListAlerts(ctx context.Context) ([]domain.AlertView, error)
}

// Notifications serves inbox reads and donor contact
type Notifications interface {
	ContactDonor(ctx context.Context, p domain.Principal, donorID uint, message, level string) (*domain.Notification, error)
	List(ctx context.Context, p domain.Principal) ([]domain.NotificationView, error)
	MarkRead(ctx context.Context, p domain.Principal, notificationID uint) error
	UnreadCount(ctx context.Context, p domain.Principal) (int64, error)
}

// Predictions ingests scorer uploads and lists stored diseases
type Predictions interface {
	Ingest(ctx context.Context, p domain.Principal, up service.Upload) (*service.IngestResult, error)
	ListDiseases(ctx context.Context) ([]domain.Disease, error)
}
