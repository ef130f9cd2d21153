package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ordercheff/api/internal/events"
	"github.com/ordercheff/api/internal/store"
	"github.com/ordercheff/api/internal/token"
	"github.com/ordercheff/api/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrSubdomainTaken     = errors.New("subdomain already in use")
	ErrInvalidSubdomain   = errors.New("subdomain must be 3-30 lowercase letters, digits or hyphens")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles tenant onboarding and login. Registration creates the
// tenant and its admin user together and returns a token bound to the new
// tenant.
type AuthService struct {
	store     store.Store
	tokens    *token.Manager
	publisher events.Publisher
}

func NewAuthService(s store.Store, tm *token.Manager, pub events.Publisher) *AuthService {
	return &AuthService{store: s, tokens: tm, publisher: pub}
}

// RegisterParams are the onboarding inputs.
type RegisterParams struct {
	BusinessName string
	Subdomain    string
	Email        string
	Password     string
	Phone        string
}

// AuthResult is a successful registration or login.
type AuthResult struct {
	Token    string    `json:"token"`
	TenantID uuid.UUID `json:"tenant_id"`
	UserID   uuid.UUID `json:"user_id"`
	Role     string    `json:"role"`
}

// Register onboards a new tenant with its admin user.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*AuthResult, error) {
	if !models.ValidSubdomain(p.Subdomain) {
		return nil, ErrInvalidSubdomain
	}

	taken, err := s.store.SubdomainTaken(ctx, p.Subdomain)
	if err != nil {
		return nil, fmt.Errorf("check subdomain: %w", err)
	}
	if taken {
		return nil, ErrSubdomainTaken
	}

	if _, err := s.store.GetUserByEmail(ctx, p.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	t := &models.Tenant{
		ID:           uuid.New(),
		Subdomain:    p.Subdomain,
		BusinessName: p.BusinessName,
		Email:        p.Email,
		Phone:        p.Phone,
		IsActive:     true,
		Settings:     models.TenantSettings{Theme: "default", Currency: "USD", Language: "en"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	admin := &models.User{
		ID:           uuid.New(),
		TenantID:     t.ID,
		Name:         p.BusinessName,
		Email:        p.Email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateTenantWithAdmin(ctx, t, admin); err != nil {
		// Pre-checks race with concurrent registrations; the unique
		// constraints are the source of truth.
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, ErrSubdomainTaken
		}
		return nil, fmt.Errorf("create tenant: %w", err)
	}

	if err := s.publisher.PublishTenantEvent(ctx, events.TenantEvent{
		Type:      events.TypeTenantCreated,
		TenantID:  t.ID,
		Subdomain: t.Subdomain,
		At:        now,
	}); err != nil {
		slog.Warn("tenant event publish failed", "type", events.TypeTenantCreated, "tenant_id", t.ID, "error", err)
	}

	signed, err := s.tokens.Issue(admin.ID, t.ID, admin.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: signed, TenantID: t.ID, UserID: admin.ID, Role: admin.Role}, nil
}

// Login verifies credentials and issues a token bound to the user's tenant.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(u.ID, u.TenantID, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: signed, TenantID: u.TenantID, UserID: u.ID, Role: u.Role}, nil
}

// CheckSubdomain reports whether a subdomain is well-formed and free.
func (s *AuthService) CheckSubdomain(ctx context.Context, subdomain string) (bool, error) {
	if !models.ValidSubdomain(subdomain) {
		return false, ErrInvalidSubdomain
	}
	taken, err := s.store.SubdomainTaken(ctx, subdomain)
	if err != nil {
		return false, fmt.Errorf("check subdomain: %w", err)
	}
	return !taken, nil
}
