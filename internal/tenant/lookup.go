package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ordercheff/api/internal/cache"
	"github.com/ordercheff/api/internal/store"
	"github.com/ordercheff/api/pkg/models"
)

// ErrNotFound means no active tenant matches the signal. It deliberately
// covers both "no such tenant" and "tenant deactivated"; any other error
// from a Lookup is an infrastructure failure and must not be conflated
// with not-found.
var ErrNotFound = errors.New("tenant not found")

// Lookup resolves tenant signals to active tenant records. Lookups are
// single-shot reads; implementations never retry and never write.
type Lookup interface {
	ByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	BySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error)
}

// StoreLookup adapts the data store to the Lookup interface.
type StoreLookup struct {
	store store.Store
}

func NewStoreLookup(s store.Store) *StoreLookup {
	return &StoreLookup{store: s}
}

func (l *StoreLookup) ByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	t, err := l.store.GetActiveTenant(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("tenant lookup by id: %w", err)
	}
	return t, nil
}

func (l *StoreLookup) BySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	t, err := l.store.GetActiveTenantBySubdomain(ctx, subdomain)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("tenant lookup by subdomain: %w", err)
	}
	return t, nil
}

// CachedLookup is a read-through cache in front of another Lookup. Only
// successful lookups of active tenants are cached; negative results are
// not. Tenant mutations must call Invalidate before returning — a stale
// entry that keeps serving a deactivated tenant is a security bug, not a
// performance nuisance.
type CachedLookup struct {
	inner Lookup
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedLookup(inner Lookup, c cache.Cache, ttl time.Duration) *CachedLookup {
	return &CachedLookup{inner: inner, cache: c, ttl: ttl}
}

func (l *CachedLookup) ByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return l.lookup(ctx, cache.TenantByIDKey(id), func() (*models.Tenant, error) {
		return l.inner.ByID(ctx, id)
	})
}

func (l *CachedLookup) BySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	return l.lookup(ctx, cache.TenantBySubdomainKey(subdomain), func() (*models.Tenant, error) {
		return l.inner.BySubdomain(ctx, subdomain)
	})
}

func (l *CachedLookup) lookup(ctx context.Context, key string, fetch func() (*models.Tenant, error)) (*models.Tenant, error) {
	// A cache failure degrades to a store read; it never fails the lookup.
	if raw, found, err := l.cache.Get(ctx, key); err != nil {
		slog.Warn("tenant cache read failed", "key", key, "error", err)
	} else if found {
		var t models.Tenant
		if err := json.Unmarshal(raw, &t); err == nil && t.IsActive {
			return &t, nil
		}
	}

	t, err := fetch()
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(t); err == nil {
		if err := l.cache.Set(ctx, cache.TenantByIDKey(t.ID), raw, l.ttl); err != nil {
			slog.Warn("tenant cache write failed", "tenant_id", t.ID, "error", err)
		}
		if err := l.cache.Set(ctx, cache.TenantBySubdomainKey(t.Subdomain), raw, l.ttl); err != nil {
			slog.Warn("tenant cache write failed", "tenant_id", t.ID, "error", err)
		}
	}
	return t, nil
}

// Invalidate drops both cache entries for a tenant. Callers mutating a
// tenant invoke this synchronously, before reporting success.
func (l *CachedLookup) Invalidate(ctx context.Context, id uuid.UUID, subdomain string) error {
	return l.cache.Delete(ctx, cache.TenantByIDKey(id), cache.TenantBySubdomainKey(subdomain))
}
