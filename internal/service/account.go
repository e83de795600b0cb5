package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"health_guardian/internal/domain"
	"health_guardian/internal/repository"
	"health_guardian/internal/utils"

	"github.com/sirupsen/logrus"
)

const minPasswordLen = 6

// AccountService registers users, issues credentials and manages profiles
type AccountService struct {
	users    repository.UserRepository
	cache    Cache
	secret   string
	tokenTTL time.Duration
	cacheTTL time.Duration
}

// NewAccountService creates an AccountService
func NewAccountService(users repository.UserRepository, cache Cache, secret string, tokenTTL, cacheTTL time.Duration) *AccountService {
	return &AccountService{users: users, cache: cache, secret: secret, tokenTTL: tokenTTL, cacheTTL: cacheTTL}
}

// Session is what a successful register or login hands back
type Session struct {
	Token string         `json:"token"`
	User  domain.Profile `json:"user"`
}

// UserPage is one page of the admin user listing
type UserPage struct {
	Users      []domain.Profile `json:"users"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"total_pages"`
	Cached     bool             `json:"cached"`
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", domain.Invalid("email", "required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", domain.Invalid("email", "malformed")
	}
	return email, nil
}

// Register creates a standard user and signs them in
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Invalid("name", "required")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLen {
		return nil, domain.Invalid("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already in use", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Name: name, Email: email, Password: hash, Role: domain.RoleUser}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: email already in use", domain.ErrConflict)
		}
		return nil, err
	}
	invalidate(ctx, s.cache, userListPrefix)
	logrus.WithFields(logrus.Fields{"user_id": user.ID}).Info("User registered")
	return s.session(user)
}

// Login verifies the password and issues a credential
func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.Invalid("email", "required")
	}
	if password == "" {
		return nil, domain.Invalid("password", "required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	hash := ""
	if user != nil {
		hash = user.Password
	}
	if !utils.CheckPassword(hash, password) {
		return nil, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthenticated)
	}
	return s.session(user)
}

func (s *AccountService) session(user *domain.User) (*Session, error) {
	token, err := utils.GenerateJWT(user.ID, user.Role, s.secret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: domain.NewProfile(*user)}, nil
}

// Profile returns the caller's own profile with donor status
func (s *AccountService) Profile(ctx context.Context, p domain.Principal) (domain.Profile, error) {
	if p.UserID == 0 {
		return domain.Profile{}, domain.ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.NewProfile(*user), nil
}

// UpdateProfile persists a new name and email for the caller
func (s *AccountService) UpdateProfile(ctx context.Context, p domain.Principal, name, email string) (domain.Profile, error) {
	if p.UserID == 0 {
		return domain.Profile{}, domain.ErrUnauthenticated
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Profile{}, domain.Invalid("name", "required")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return domain.Profile{}, err
	}
	if other, err := s.users.FindByEmail(ctx, email); err == nil && other.ID != p.UserID {
		return domain.Profile{}, fmt.Errorf("%w: email already in use", domain.ErrConflict)
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Profile{}, err
	}
	if err := s.users.Update(ctx, p.UserID, name, email); err != nil {
		return domain.Profile{}, err
	}
	// donor listings carry the owner's name and email
	invalidate(ctx, s.cache, donorListPrefix, userListPrefix)
	logrus.WithFields(logrus.Fields{"user_id": p.UserID}).Info("Profile updated")
	return s.Profile(ctx, p)
}

// ListUsers pages through every account, admin only
func (s *AccountService) ListUsers(ctx context.Context, p domain.Principal, page, pageSize int) (*UserPage, error) {
	if err := p.Require(domain.RoleAdmin); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	key := fmt.Sprintf("%spage=%d:size=%d", userListPrefix, page, pageSize)
	var cached UserPage
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		cached.Cached = true
		return &cached, nil
	}
	users, total, err := s.users.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	result := &UserPage{
		Users:      make([]domain.Profile, len(users)),
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: (int(total) + pageSize - 1) / pageSize,
	}
	for i, u := range users {
		result.Users[i] = domain.NewProfile(u)
	}
	_ = s.cache.Set(ctx, key, result, s.cacheTTL)
	return result, nil
}
