package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/ordercheff/api/pkg/models"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All database operations go through here.
//
// Every method that touches tenant-owned data takes the tenant ID as an
// explicit parameter and conjoins it with the entity ID in the query
// predicate. A bare entity ID is never trusted on its own; omitting the
// tenant ID is an interface-level error, not a reviewable convention.
type Store interface {
	Ping(ctx context.Context) error

	// Tenants. Lookups used by request resolution return only active
	// tenants; an inactive tenant is reported as ErrNotFound.
	CreateTenantWithAdmin(ctx context.Context, t *models.Tenant, admin *models.User) error
	GetActiveTenant(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetActiveTenantBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error)
	SubdomainTaken(ctx context.Context, subdomain string) (bool, error)
	UpdateTenantProfile(ctx context.Context, id uuid.UUID, p TenantProfileParams) (*models.Tenant, error)
	DeactivateTenant(ctx context.Context, id uuid.UUID) error

	// Users
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Categories
	CreateCategory(ctx context.Context, c *models.Category) error
	ListCategories(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*models.Category, error)
	GetCategory(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error)
	UpdateCategory(ctx context.Context, tenantID uuid.UUID, c *models.Category) error
	DeleteCategory(ctx context.Context, tenantID, id uuid.UUID) error

	// Products
	CreateProduct(ctx context.Context, p *models.Product) error
	ListProducts(ctx context.Context, filter ProductFilter) ([]*models.Product, int, error)
	GetProduct(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, tenantID uuid.UUID, p *models.Product) error
	DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error

	// Menus
	CreateMenu(ctx context.Context, m *models.Menu) error
	ListMenus(ctx context.Context, tenantID uuid.UUID) ([]*models.Menu, error)
	GetMenu(ctx context.Context, tenantID, id uuid.UUID) (*models.Menu, error)
	UpdateMenu(ctx context.Context, tenantID uuid.UUID, m *models.Menu) error
	DeleteMenu(ctx context.Context, tenantID, id uuid.UUID) error
}

// TenantProfileParams are the mutable tenant fields. The subdomain is
// immutable once assigned and deliberately absent here.
type TenantProfileParams struct {
	BusinessName *string
	Description  *string
	LogoURL      *string
	Email        *string
	Phone        *string
	Address      *string
	Settings     *models.TenantSettings
}

type ProductFilter struct {
	TenantID   uuid.UUID
	CategoryID uuid.UUID
	ActiveOnly bool
	Page       int
	Limit      int
}
