package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ordercheff/api/internal/service"
	"github.com/ordercheff/api/internal/store"
	"github.com/ordercheff/api/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategoryStampsOwnership(t *testing.T) {
	s := newMockStore()
	svc := service.NewMenuService(s)
	tenantID := uuid.New()

	c := &models.Category{Name: "Antipasti", IsActive: true}
	require.NoError(t, svc.CreateCategory(context.Background(), tenantID, c))

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, tenantID, c.TenantID)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCreateCategoryValidates(t *testing.T) {
	svc := service.NewMenuService(newMockStore())

	err := svc.CreateCategory(context.Background(), uuid.New(), &models.Category{})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCreateProductValidates(t *testing.T) {
	s := newMockStore()
	svc := service.NewMenuService(s)
	tenantID := uuid.New()

	cat := &models.Category{Name: "Antipasti", IsActive: true}
	require.NoError(t, svc.CreateCategory(context.Background(), tenantID, cat))

	tests := []struct {
		name    string
		product *models.Product
	}{
		{"missing name", &models.Product{CategoryID: cat.ID, PriceCents: 100}},
		{"negative price", &models.Product{Name: "Bruschetta", CategoryID: cat.ID, PriceCents: -1}},
		{"missing category", &models.Product{Name: "Bruschetta", PriceCents: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CreateProduct(context.Background(), tenantID, tt.product)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}

	ok := &models.Product{Name: "Bruschetta", CategoryID: cat.ID, PriceCents: 650, IsActive: true}
	require.NoError(t, svc.CreateProduct(context.Background(), tenantID, ok))
	assert.Equal(t, tenantID, ok.TenantID)
}

func TestCreateProductRejectsForeignCategory(t *testing.T) {
	s := newMockStore()
	svc := service.NewMenuService(s)

	tenantA := uuid.New()
	tenantB := uuid.New()

	cat := &models.Category{Name: "Antipasti", IsActive: true}
	require.NoError(t, svc.CreateCategory(context.Background(), tenantA, cat))

	// Tenant B cannot hang a product off tenant A's category.
	p := &models.Product{Name: "Bruschetta", CategoryID: cat.ID, PriceCents: 650}
	err := svc.CreateProduct(context.Background(), tenantB, p)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetProductIsTenantScoped(t *testing.T) {
	s := newMockStore()
	svc := service.NewMenuService(s)

	tenantA := uuid.New()
	tenantB := uuid.New()

	cat := &models.Category{Name: "Antipasti", IsActive: true}
	require.NoError(t, svc.CreateCategory(context.Background(), tenantA, cat))
	p := &models.Product{Name: "Bruschetta", CategoryID: cat.ID, PriceCents: 650, IsActive: true}
	require.NoError(t, svc.CreateProduct(context.Background(), tenantA, p))

	got, err := svc.GetProduct(context.Background(), tenantA, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	// The same id under another tenant is a miss, not a leak.
	_, err = svc.GetProduct(context.Background(), tenantB, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = svc.DeleteProduct(context.Background(), tenantB, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.GetProduct(context.Background(), tenantA, p.ID)
	assert.NoError(t, err)
}

func TestListProductsClampsPagination(t *testing.T) {
	s := newMockStore()
	svc := service.NewMenuService(s)

	_, _, err := svc.ListProducts(context.Background(), store.ProductFilter{
		TenantID: uuid.New(),
		Page:     -3,
		Limit:    100000,
	})
	require.NoError(t, err)
}

func TestStorefrontServesActiveOnly(t *testing.T) {
	s := newMockStore()
	svc := service.NewMenuService(s)
	tenantID := uuid.New()

	active := &models.Category{Name: "Antipasti", IsActive: true, Position: 1}
	hidden := &models.Category{Name: "Seasonal", IsActive: false, Position: 2}
	require.NoError(t, svc.CreateCategory(context.Background(), tenantID, active))
	require.NoError(t, svc.CreateCategory(context.Background(), tenantID, hidden))

	onMenu := &models.Product{Name: "Bruschetta", CategoryID: active.ID, PriceCents: 650, IsActive: true}
	offMenu := &models.Product{Name: "Crostini", CategoryID: active.ID, PriceCents: 500, IsActive: false}
	require.NoError(t, svc.CreateProduct(context.Background(), tenantID, onMenu))
	require.NoError(t, svc.CreateProduct(context.Background(), tenantID, offMenu))

	sections, err := svc.Storefront(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Antipasti", sections[0].Category.Name)
	require.Len(t, sections[0].Products, 1)
	assert.Equal(t, "Bruschetta", sections[0].Products[0].Name)
}

func TestMenuCRUD(t *testing.T) {
	s := newMockStore()
	svc := service.NewMenuService(s)
	tenantID := uuid.New()

	cat := &models.Category{Name: "Antipasti", IsActive: true}
	require.NoError(t, svc.CreateCategory(context.Background(), tenantID, cat))

	m := &models.Menu{Name: "Lunch", IsActive: true, CategoryIDs: []uuid.UUID{cat.ID}}
	require.NoError(t, svc.CreateMenu(context.Background(), tenantID, m))

	got, err := svc.GetMenu(context.Background(), tenantID, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lunch", got.Name)

	got.Name = "Pranzo"
	updated, err := svc.UpdateMenu(context.Background(), tenantID, got)
	require.NoError(t, err)
	assert.Equal(t, "Pranzo", updated.Name)

	_, err = svc.GetMenu(context.Background(), uuid.New(), m.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, svc.DeleteMenu(context.Background(), tenantID, m.ID))
	_, err = svc.GetMenu(context.Background(), tenantID, m.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
