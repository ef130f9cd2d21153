package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ordercheff/api/internal/events"
	"github.com/ordercheff/api/internal/store"
	"github.com/ordercheff/api/pkg/models"
)

// Invalidator drops a tenant's cached lookup entries.
type Invalidator interface {
	Invalidate(ctx context.Context, id uuid.UUID, subdomain string) error
}

// NopInvalidator satisfies Invalidator when no cache is in front of the
// tenant store.
type NopInvalidator struct{}

func (NopInvalidator) Invalidate(context.Context, uuid.UUID, string) error { return nil }

// TenantService handles tenant profile reads and mutations. Every mutation
// invalidates the lookup cache before returning, then publishes a lifecycle
// event; the event is fire-and-forget, the invalidation is not.
type TenantService struct {
	store     store.Store
	cache     Invalidator
	publisher events.Publisher
}

func NewTenantService(s store.Store, inv Invalidator, pub events.Publisher) *TenantService {
	return &TenantService{store: s, cache: inv, publisher: pub}
}

// Get returns the tenant's full record.
func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return s.store.GetActiveTenant(ctx, id)
}

// UpdateProfile applies partial profile changes. The subdomain cannot change.
func (s *TenantService) UpdateProfile(ctx context.Context, id uuid.UUID, p store.TenantProfileParams) (*models.Tenant, error) {
	t, err := s.store.UpdateTenantProfile(ctx, id, p)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, t.ID, t.Subdomain); err != nil {
		return nil, fmt.Errorf("invalidate tenant cache: %w", err)
	}

	s.publish(ctx, events.TenantEvent{
		Type:      events.TypeTenantUpdated,
		TenantID:  t.ID,
		Subdomain: t.Subdomain,
		At:        time.Now().UTC(),
	})
	return t, nil
}

// Deactivate soft-deletes the tenant. After it returns, no resolution
// attempt for this tenant can succeed via any signal.
func (s *TenantService) Deactivate(ctx context.Context, id uuid.UUID) error {
	t, err := s.store.GetActiveTenant(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeactivateTenant(ctx, id); err != nil {
		return err
	}

	// The cache must not outlive the flag flip. A failed delete here is
	// surfaced as an error even though the database row is already
	// deactivated.
	if err := s.cache.Invalidate(ctx, t.ID, t.Subdomain); err != nil {
		return fmt.Errorf("invalidate tenant cache: %w", err)
	}

	s.publish(ctx, events.TenantEvent{
		Type:      events.TypeTenantDeactivated,
		TenantID:  t.ID,
		Subdomain: t.Subdomain,
		At:        time.Now().UTC(),
	})
	return nil
}

func (s *TenantService) publish(ctx context.Context, ev events.TenantEvent) {
	if err := s.publisher.PublishTenantEvent(ctx, ev); err != nil {
		slog.Warn("tenant event publish failed", "type", ev.Type, "tenant_id", ev.TenantID, "error", err)
	}
}
