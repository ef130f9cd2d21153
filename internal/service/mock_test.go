package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/ordercheff/api/internal/store"
	"github.com/ordercheff/api/pkg/models"
)

// mockStore is an in-memory Store. Optional func fields override single
// methods where a test needs to inject a failure.
type mockStore struct {
	tenants    map[uuid.UUID]*models.Tenant
	users      map[string]*models.User
	categories map[uuid.UUID]*models.Category
	products   map[uuid.UUID]*models.Product
	menus      map[uuid.UUID]*models.Menu

	createTenantErr error
	deactivateErr   error
}

func newMockStore() *mockStore {
	return &mockStore{
		tenants:    make(map[uuid.UUID]*models.Tenant),
		users:      make(map[string]*models.User),
		categories: make(map[uuid.UUID]*models.Category),
		products:   make(map[uuid.UUID]*models.Product),
		menus:      make(map[uuid.UUID]*models.Menu),
	}
}

func (s *mockStore) Ping(context.Context) error { return nil }

func (s *mockStore) CreateTenantWithAdmin(_ context.Context, t *models.Tenant, admin *models.User) error {
	if s.createTenantErr != nil {
		return s.createTenantErr
	}
	for _, existing := range s.tenants {
		if existing.Subdomain == t.Subdomain {
			return store.ErrDuplicateKey
		}
	}
	if _, ok := s.users[admin.Email]; ok {
		return store.ErrDuplicateKey
	}
	s.tenants[t.ID] = t
	s.users[admin.Email] = admin
	return nil
}

func (s *mockStore) GetActiveTenant(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	t, ok := s.tenants[id]
	if !ok || !t.IsActive {
		return nil, store.ErrNotFound
	}
	return t, nil
}

func (s *mockStore) GetActiveTenantBySubdomain(_ context.Context, subdomain string) (*models.Tenant, error) {
	for _, t := range s.tenants {
		if t.Subdomain == subdomain && t.IsActive {
			return t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *mockStore) SubdomainTaken(_ context.Context, subdomain string) (bool, error) {
	for _, t := range s.tenants {
		if t.Subdomain == subdomain {
			return true, nil
		}
	}
	return false, nil
}

func (s *mockStore) UpdateTenantProfile(_ context.Context, id uuid.UUID, p store.TenantProfileParams) (*models.Tenant, error) {
	t, ok := s.tenants[id]
	if !ok || !t.IsActive {
		return nil, store.ErrNotFound
	}
	if p.BusinessName != nil {
		t.BusinessName = *p.BusinessName
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Email != nil {
		t.Email = *p.Email
	}
	if p.Phone != nil {
		t.Phone = *p.Phone
	}
	if p.Address != nil {
		t.Address = *p.Address
	}
	if p.LogoURL != nil {
		t.LogoURL = *p.LogoURL
	}
	if p.Settings != nil {
		t.Settings = *p.Settings
	}
	return t, nil
}

func (s *mockStore) DeactivateTenant(_ context.Context, id uuid.UUID) error {
	if s.deactivateErr != nil {
		return s.deactivateErr
	}
	t, ok := s.tenants[id]
	if !ok {
		return store.ErrNotFound
	}
	t.IsActive = false
	return nil
}

func (s *mockStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (s *mockStore) CreateCategory(_ context.Context, c *models.Category) error {
	s.categories[c.ID] = c
	return nil
}

func (s *mockStore) ListCategories(_ context.Context, tenantID uuid.UUID, activeOnly bool) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range s.categories {
		if c.TenantID != tenantID {
			continue
		}
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *mockStore) GetCategory(_ context.Context, tenantID, id uuid.UUID) (*models.Category, error) {
	c, ok := s.categories[id]
	if !ok || c.TenantID != tenantID {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (s *mockStore) UpdateCategory(_ context.Context, tenantID uuid.UUID, c *models.Category) error {
	existing, ok := s.categories[c.ID]
	if !ok || existing.TenantID != tenantID {
		return store.ErrNotFound
	}
	c.TenantID = tenantID
	s.categories[c.ID] = c
	return nil
}

func (s *mockStore) DeleteCategory(_ context.Context, tenantID, id uuid.UUID) error {
	c, ok := s.categories[id]
	if !ok || c.TenantID != tenantID {
		return store.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s *mockStore) CreateProduct(_ context.Context, p *models.Product) error {
	cat, ok := s.categories[p.CategoryID]
	if !ok || cat.TenantID != p.TenantID {
		return store.ErrNotFound
	}
	s.products[p.ID] = p
	return nil
}

func (s *mockStore) ListProducts(_ context.Context, f store.ProductFilter) ([]*models.Product, int, error) {
	var out []*models.Product
	for _, p := range s.products {
		if p.TenantID != f.TenantID {
			continue
		}
		if f.CategoryID != uuid.Nil && p.CategoryID != f.CategoryID {
			continue
		}
		if f.ActiveOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (s *mockStore) GetProduct(_ context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, store.ErrNotFound
	}
	return p, nil
}

func (s *mockStore) UpdateProduct(_ context.Context, tenantID uuid.UUID, p *models.Product) error {
	existing, ok := s.products[p.ID]
	if !ok || existing.TenantID != tenantID {
		return store.ErrNotFound
	}
	cat, ok := s.categories[p.CategoryID]
	if !ok || cat.TenantID != tenantID {
		return store.ErrNotFound
	}
	p.TenantID = tenantID
	s.products[p.ID] = p
	return nil
}

func (s *mockStore) DeleteProduct(_ context.Context, tenantID, id uuid.UUID) error {
	p, ok := s.products[id]
	if !ok || p.TenantID != tenantID {
		return store.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *mockStore) CreateMenu(_ context.Context, m *models.Menu) error {
	s.menus[m.ID] = m
	return nil
}

func (s *mockStore) ListMenus(_ context.Context, tenantID uuid.UUID) ([]*models.Menu, error) {
	var out []*models.Menu
	for _, m := range s.menus {
		if m.TenantID == tenantID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *mockStore) GetMenu(_ context.Context, tenantID, id uuid.UUID) (*models.Menu, error) {
	m, ok := s.menus[id]
	if !ok || m.TenantID != tenantID {
		return nil, store.ErrNotFound
	}
	return m, nil
}

func (s *mockStore) UpdateMenu(_ context.Context, tenantID uuid.UUID, m *models.Menu) error {
	existing, ok := s.menus[m.ID]
	if !ok || existing.TenantID != tenantID {
		return store.ErrNotFound
	}
	m.TenantID = tenantID
	s.menus[m.ID] = m
	return nil
}

func (s *mockStore) DeleteMenu(_ context.Context, tenantID, id uuid.UUID) error {
	m, ok := s.menus[id]
	if !ok || m.TenantID != tenantID {
		return store.ErrNotFound
	}
	delete(s.menus, id)
	return nil
}
