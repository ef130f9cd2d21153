package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/ordercheff/api/internal/store"
	"github.com/ordercheff/api/pkg/models"
)

var ErrValidation = errors.New("validation failed")

// MenuService is tenant-scoped CRUD over categories, products and menus.
// Every operation takes the resolved tenant id; the store conjoins it with
// the entity id in every predicate, so a request bound to one tenant
// cannot address another tenant's rows.
type MenuService struct {
	store store.Store
}

func NewMenuService(s store.Store) *MenuService {
	return &MenuService{store: s}
}

func stampNew(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	*createdAt = now
	*updatedAt = now
}

// --- Categories ---

func (s *MenuService) CreateCategory(ctx context.Context, tenantID uuid.UUID, c *models.Category) error {
	if c.Name == "" {
		return ErrValidation
	}
	c.ID = uuid.New()
	c.TenantID = tenantID
	stampNew(&c.CreatedAt, &c.UpdatedAt)
	return s.store.CreateCategory(ctx, c)
}

func (s *MenuService) ListCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.Category, error) {
	return s.store.ListCategories(ctx, tenantID, false)
}

func (s *MenuService) GetCategory(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error) {
	return s.store.GetCategory(ctx, tenantID, id)
}

func (s *MenuService) UpdateCategory(ctx context.Context, tenantID uuid.UUID, c *models.Category) (*models.Category, error) {
	if c.Name == "" {
		return nil, ErrValidation
	}
	if err := s.store.UpdateCategory(ctx, tenantID, c); err != nil {
		return nil, err
	}
	return s.store.GetCategory(ctx, tenantID, c.ID)
}

func (s *MenuService) DeleteCategory(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.DeleteCategory(ctx, tenantID, id)
}

// --- Products ---

func (s *MenuService) CreateProduct(ctx context.Context, tenantID uuid.UUID, p *models.Product) error {
	if p.Name == "" || p.PriceCents < 0 || p.CategoryID == uuid.Nil {
		return ErrValidation
	}
	p.ID = uuid.New()
	p.TenantID = tenantID
	stampNew(&p.CreatedAt, &p.UpdatedAt)
	return s.store.CreateProduct(ctx, p)
}

func (s *MenuService) ListProducts(ctx context.Context, filter store.ProductFilter) ([]*models.Product, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	return s.store.ListProducts(ctx, filter)
}

func (s *MenuService) GetProduct(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	return s.store.GetProduct(ctx, tenantID, id)
}

func (s *MenuService) UpdateProduct(ctx context.Context, tenantID uuid.UUID, p *models.Product) (*models.Product, error) {
	if p.Name == "" || p.PriceCents < 0 || p.CategoryID == uuid.Nil {
		return nil, ErrValidation
	}
	if err := s.store.UpdateProduct(ctx, tenantID, p); err != nil {
		return nil, err
	}
	return s.store.GetProduct(ctx, tenantID, p.ID)
}

func (s *MenuService) DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.DeleteProduct(ctx, tenantID, id)
}

// --- Menus ---

func (s *MenuService) CreateMenu(ctx context.Context, tenantID uuid.UUID, m *models.Menu) error {
	if m.Name == "" {
		return ErrValidation
	}
	m.ID = uuid.New()
	m.TenantID = tenantID
	stampNew(&m.CreatedAt, &m.UpdatedAt)
	return s.store.CreateMenu(ctx, m)
}

func (s *MenuService) ListMenus(ctx context.Context, tenantID uuid.UUID) ([]*models.Menu, error) {
	return s.store.ListMenus(ctx, tenantID)
}

func (s *MenuService) GetMenu(ctx context.Context, tenantID, id uuid.UUID) (*models.Menu, error) {
	return s.store.GetMenu(ctx, tenantID, id)
}

func (s *MenuService) UpdateMenu(ctx context.Context, tenantID uuid.UUID, m *models.Menu) (*models.Menu, error) {
	if m.Name == "" {
		return nil, ErrValidation
	}
	if err := s.store.UpdateMenu(ctx, tenantID, m); err != nil {
		return nil, err
	}
	return s.store.GetMenu(ctx, tenantID, m.ID)
}

func (s *MenuService) DeleteMenu(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.store.DeleteMenu(ctx, tenantID, id)
}

// --- Storefront ---

// Storefront returns the tenant's public menu: active categories in display
// order, each with its active products.
func (s *MenuService) Storefront(ctx context.Context, tenantID uuid.UUID) ([]models.MenuSection, error) {
	cats, err := s.store.ListCategories(ctx, tenantID, true)
	if err != nil {
		return nil, err
	}

	sections := make([]models.MenuSection, 0, len(cats))
	for _, c := range cats {
		products, _, err := s.store.ListProducts(ctx, store.ProductFilter{
			TenantID:   tenantID,
			CategoryID: c.ID,
			ActiveOnly: true,
		})
		if err != nil {
			return nil, err
		}
		sections = append(sections, models.MenuSection{Category: *c, Products: products})
	}
	return sections, nil
}
