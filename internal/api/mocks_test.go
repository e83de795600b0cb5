package api

import (
	"context"

	"health_guardian/internal/domain"
	"health_guardian/internal/geo"
	"health_guardian/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAccounts struct{ mock.Mock }

func (m *MockAccounts) Register(ctx context.Context, name, email, password string) (*service.Session, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAccounts) Login(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAccounts) Profile(ctx context.Context, p domain.Principal) (domain.Profile, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *MockAccounts) UpdateProfile(ctx context.Context, p domain.Principal, name, email string) (domain.Profile, error) {
	args := m.Called(ctx, p, name, email)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *MockAccounts) ListUsers(ctx context.Context, p domain.Principal, page, pageSize int) (*service.UserPage, error) {
	args := m.Called(ctx, p, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserPage), args.Error(1)
}

type MockDonors struct{ mock.Mock }

func (m *MockDonors) Upsert(ctx context.Context, p domain.Principal, profile domain.DonorProfile) (uint, error) {
	args := m.Called(ctx, p, profile)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockDonors) List(ctx context.Context, filter domain.DonorFilter) ([]domain.DonorView, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DonorView), args.Error(1)
}

func (m *MockDonors) Get(ctx context.Context, id uint) (*domain.DonorView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DonorView), args.Error(1)
}

type MockMatcher struct{ mock.Mock }

func (m *MockMatcher) FindNearest(ctx context.Context, origin *geo.Point, bloodType string, k int) ([]domain.RankedDonor, error) {
	args := m.Called(ctx, origin, bloodType, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RankedDonor), args.Error(1)
}

type MockAlerts struct{ mock.Mock }

func (m *MockAlerts) CreateAlert(ctx context.Context, p domain.Principal, in domain.AlertInput) (*service.AlertCreated, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AlertCreated), args.Error(1)
}

func (m *MockAlerts) SetActive(ctx context.Context, p domain.Principal, alertID uint, active bool) error {
	return m.Called(ctx, p, alertID, active).Error(0)
}

func (m *MockAlerts) ListAlerts(ctx context.Context) ([]domain.AlertView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AlertView), args.Error(1)
}

type MockNotifications struct{ mock.Mock }

func (m *MockNotifications) ContactDonor(ctx context.Context, p domain.Principal, donorID uint, message, level string) (*domain.Notification, error) {
	args := m.Called(ctx, p, donorID, message, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

func (m *MockNotifications) List(ctx context.Context, p domain.Principal) ([]domain.NotificationView, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationView), args.Error(1)
}

func (m *MockNotifications) MarkRead(ctx context.Context, p domain.Principal, notificationID uint) error {
	return m.Called(ctx, p, notificationID).Error(0)
}

func (m *MockNotifications) UnreadCount(ctx context.Context, p domain.Principal) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

type MockPredictions struct{ mock.Mock }

func (m *MockPredictions) Ingest(ctx context.Context, p domain.Principal, up service.Upload) (*service.IngestResult, error) {
	args := m.Called(ctx, p, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.IngestResult), args.Error(1)
}

func (m *MockPredictions) ListDiseases(ctx context.Context) ([]domain.Disease, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Disease), args.Error(1)
}
