package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"health_guardian/internal/domain"
	"health_guardian/internal/utils"

	"github.com/stretchr/testify/mock"
)

// memDB is an in-memory stand-in for the relational store
type memDB struct {
	mu            sync.Mutex
	clock         time.Time
	users         map[uint]*domain.User
	donors        map[uint]*domain.Donor
	diseases      map[uint]*domain.Disease
	alerts        map[uint]*domain.Alert
	notifications map[uint]*domain.Notification
	nextID        uint
	failInsertFor map[uint]bool // recipient ids whose notification insert fails
}

func newMemDB() *memDB {
	return &memDB{
		clock:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:         map[uint]*domain.User{},
		donors:        map[uint]*domain.Donor{},
		diseases:      map[uint]*domain.Disease{},
		alerts:        map[uint]*domain.Alert{},
		notifications: map[uint]*domain.Notification{},
		failInsertFor: map[uint]bool{},
	}
}

func (db *memDB) id() uint {
	db.nextID++
	return db.nextID
}

func (db *memDB) now() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

func (db *memDB) addUser(name, role string) *domain.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	u := &domain.User{ID: db.id(), Name: name, Email: name + "@example.com", Role: role, CreatedAt: db.now()}
	db.users[u.ID] = u
	return u
}

func (db *memDB) addDisease(name string, prob float64) *domain.Disease {
	db.mu.Lock()
	defer db.mu.Unlock()
	d := &domain.Disease{ID: db.id(), Name: name, Probability: prob, CreatedAt: db.now()}
	db.diseases[d.ID] = d
	return d
}

func (db *memDB) notificationsFor(recipientID uint) []domain.Notification {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []domain.Notification
	for _, n := range db.notifications {
		if n.RecipientID == recipientID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type memUsers struct{ db *memDB }

func (r memUsers) Create(ctx context.Context, user *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == user.Email {
			return domain.ErrConflict
		}
	}
	user.ID = r.db.id()
	user.CreatedAt = r.db.now()
	cp := *user
	r.db.users[user.ID] = &cp
	return nil
}

func (r memUsers) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, domain.Missing("user", id)
	}
	cp := *u
	for _, d := range r.db.donors {
		if d.UserID == id {
			dc := *d
			cp.Donor = &dc
		}
	}
	return &cp, nil
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memUsers) Update(ctx context.Context, id uint, name, email string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return domain.Missing("user", id)
	}
	u.Name, u.Email = name, email
	return nil
}

func (r memUsers) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var all []domain.User
	for _, u := range r.db.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := min(offset+limit, len(all))
	return all[offset:end], total, nil
}

func (r memUsers) IDsByRole(ctx context.Context, role string) ([]uint, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var ids []uint
	for _, u := range r.db.users {
		if u.Role == role {
			ids = append(ids, u.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type memDonors struct{ db *memDB }

func (r memDonors) Upsert(ctx context.Context, donor *domain.Donor) (uint, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, d := range r.db.donors {
		if d.UserID == donor.UserID {
			id, created := d.ID, d.CreatedAt
			*d = *donor
			d.ID, d.CreatedAt, d.UpdatedAt = id, created, r.db.now()
			return id, nil
		}
	}
	cp := *donor
	cp.ID = r.db.id()
	cp.CreatedAt = r.db.now()
	r.db.donors[cp.ID] = &cp
	return cp.ID, nil
}

func (r memDonors) FindByID(ctx context.Context, id uint) (*domain.Donor, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.db.donors[id]
	if !ok {
		return nil, domain.Missing("donor", id)
	}
	cp := *d
	return &cp, nil
}

func (r memDonors) view(d *domain.Donor) domain.DonorView {
	u := r.db.users[d.UserID]
	return domain.DonorView{
		ID:           d.ID,
		UserID:       d.UserID,
		Name:         u.Name,
		Email:        u.Email,
		BloodType:    d.BloodType,
		OrganDonor:   d.OrganDonor,
		Location:     domain.Location{Lat: d.Lat, Lng: d.Lng, Address: d.Address},
		Phone:        d.Phone,
		LastDonation: d.LastDonation,
	}
}

func (r memDonors) FindView(ctx context.Context, id uint) (*domain.DonorView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.db.donors[id]
	if !ok {
		return nil, domain.Missing("donor", id)
	}
	v := r.view(d)
	return &v, nil
}

func (r memDonors) List(ctx context.Context, filter domain.DonorFilter) ([]domain.DonorView, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.DonorView
	for _, d := range r.db.donors {
		if filter.BloodType == "" || d.BloodType == filter.BloodType {
			out = append(out, r.view(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type memDiseases struct{ db *memDB }

func (r memDiseases) CreateBatch(ctx context.Context, diseases []domain.Disease) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i := range diseases {
		diseases[i].ID = r.db.id()
		diseases[i].CreatedAt = r.db.now()
		cp := diseases[i]
		r.db.diseases[cp.ID] = &cp
	}
	return nil
}

func (r memDiseases) FindByID(ctx context.Context, id uint) (*domain.Disease, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.db.diseases[id]
	if !ok {
		return nil, domain.Missing("disease", id)
	}
	cp := *d
	return &cp, nil
}

func (r memDiseases) List(ctx context.Context) ([]domain.Disease, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.Disease
	for _, d := range r.db.diseases {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type memAlerts struct{ db *memDB }

func (r memAlerts) Create(ctx context.Context, alert *domain.Alert) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	alert.ID = r.db.id()
	alert.CreatedAt = r.db.now()
	cp := *alert
	r.db.alerts[cp.ID] = &cp
	return nil
}

func (r memAlerts) SetActive(ctx context.Context, id uint, active bool) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.alerts[id]
	if !ok {
		return domain.Missing("alert", id)
	}
	a.Active = active
	return nil
}

func (r memAlerts) List(ctx context.Context) ([]domain.Alert, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.Alert
	for _, a := range r.db.alerts {
		cp := *a
		cp.Disease = *r.db.diseases[a.DiseaseID]
		cp.Creator = *r.db.users[a.CreatedBy]
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type memNotifications struct{ db *memDB }

var errInsert = errors.New("insert failed")

func (r memNotifications) Create(ctx context.Context, n *domain.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failInsertFor[n.RecipientID] {
		return errInsert
	}
	n.ID = r.db.id()
	n.CreatedAt = r.db.now()
	cp := *n
	r.db.notifications[cp.ID] = &cp
	return nil
}

func (r memNotifications) ListForRecipient(ctx context.Context, recipientID uint) ([]domain.Notification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.Notification
	for _, n := range r.db.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		cp := *n
		if n.SenderID != nil {
			if s, ok := r.db.users[*n.SenderID]; ok {
				sc := *s
				cp.Sender = &sc
			}
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memNotifications) MarkRead(ctx context.Context, id, recipientID uint) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n, ok := r.db.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return 0, nil
	}
	n.IsRead = true
	return 1, nil
}

func (r memNotifications) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var c int64
	for _, n := range r.db.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			c++
		}
	}
	return c, nil
}

// MockDiseaseRepository mocks the DiseaseRepository interface
type MockDiseaseRepository struct {
	mock.Mock
}

func (m *MockDiseaseRepository) CreateBatch(ctx context.Context, diseases []domain.Disease) error {
	args := m.Called(ctx, diseases)
	return args.Error(0)
}

func (m *MockDiseaseRepository) FindByID(ctx context.Context, id uint) (*domain.Disease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Disease), args.Error(1)
}

func (m *MockDiseaseRepository) List(ctx context.Context) ([]domain.Disease, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Disease), args.Error(1)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uint, name, email string) error {
	return m.Called(ctx, id, name, email).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) IDsByRole(ctx context.Context, role string) ([]uint, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// memCache is a map backed Cache
type memCache struct {
	mu   sync.Mutex
	data map[string]any
}

func newMemCache() *memCache { return &memCache{data: map[string]any{}} }

func (c *memCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *[]domain.DonorView:
		*d = v.([]domain.DonorView)
	case *UserPage:
		*d = *v.(*UserPage)
	default:
		return false, errors.New("unsupported cache type")
	}
	return true, nil
}

func (c *memCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memCache) DeletePrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.data, k)
		}
	}
	return nil
}

var (
	_ Cache = utils.NopCache{}
	_ Cache = (*utils.RedisCache)(nil)
	_ Cache = (*memCache)(nil)
)

func asAdmin(u *domain.User) domain.Principal {
	return domain.Principal{UserID: u.ID, Role: domain.RoleAdmin}
}

func asUser(u *domain.User) domain.Principal {
	return domain.Principal{UserID: u.ID, Role: domain.RoleUser}
}

func ptr[T any](v T) *T { return &v }
