package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ordercheff/api/internal/api/response"
	"github.com/ordercheff/api/internal/service"
	"github.com/ordercheff/api/internal/store"
	"github.com/ordercheff/api/internal/tenant"
	"github.com/ordercheff/api/pkg/models"
)

// MenuService is the tenant-scoped menu CRUD surface the handlers depend on.
type MenuService interface {
	CreateCategory(ctx context.Context, tenantID uuid.UUID, c *models.Category) error
	ListCategories(ctx context.Context, tenantID uuid.UUID) ([]*models.Category, error)
	GetCategory(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error)
	UpdateCategory(ctx context.Context, tenantID uuid.UUID, c *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, tenantID, id uuid.UUID) error

	CreateProduct(ctx context.Context, tenantID uuid.UUID, p *models.Product) error
	ListProducts(ctx context.Context, filter store.ProductFilter) ([]*models.Product, int, error)
	GetProduct(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, tenantID uuid.UUID, p *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, tenantID, id uuid.UUID) error

	CreateMenu(ctx context.Context, tenantID uuid.UUID, m *models.Menu) error
	ListMenus(ctx context.Context, tenantID uuid.UUID) ([]*models.Menu, error)
	GetMenu(ctx context.Context, tenantID, id uuid.UUID) (*models.Menu, error)
	UpdateMenu(ctx context.Context, tenantID uuid.UUID, m *models.Menu) (*models.Menu, error)
	DeleteMenu(ctx context.Context, tenantID, id uuid.UUID) error

	Storefront(ctx context.Context, tenantID uuid.UUID) ([]models.MenuSection, error)
}

// requireTenant pulls the resolved tenant off the request, writing the
// rejection itself when absent.
func requireTenant(w http.ResponseWriter, r *http.Request) (tenant.Context, bool) {
	tc, ok := tenant.FromRequest(r)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "TENANT_MISSING", "Tenant information missing", nil)
	}
	return tc, ok
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", param+" must be a UUID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		response.Error(w, http.StatusNotFound, "NOT_FOUND", "Resource not found", nil)
	case errors.Is(err, service.ErrValidation):
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Validation failed", nil)
	default:
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed", nil)
	}
}

// MenuHandler serves the named-menu CRUD endpoints.
type MenuHandler struct {
	svc MenuService
}

func NewMenuHandler(svc MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

type menuRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	IsActive    *bool       `json:"is_active"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

func (req menuRequest) toModel() *models.Menu {
	m := &models.Menu{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		CategoryIDs: req.CategoryIDs,
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	return m
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}
	var req menuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}

	m := req.toModel()
	if err := h.svc.CreateMenu(r.Context(), tc.ID, m); err != nil {
		writeServiceError(w, err)
		return
	}
	response.Created(w, m)
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}
	menus, err := h.svc.ListMenus(r.Context(), tc.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, menus)
}

func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "menuID")
	if !ok {
		return
	}
	m, err := h.svc.GetMenu(r.Context(), tc.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, m)
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "menuID")
	if !ok {
		return
	}
	var req menuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}

	m := req.toModel()
	m.ID = id
	updated, err := h.svc.UpdateMenu(r.Context(), tc.ID, m)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, updated)
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "menuID")
	if !ok {
		return
	}
	if err := h.svc.DeleteMenu(r.Context(), tc.ID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	response.NoContent(w)
}

// NewStorefrontMenuHandler returns the public storefront menu for the
// resolved tenant: GET /api/v1/storefront/menu.
func NewStorefrontMenuHandler(svc MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc, ok := requireTenant(w, r)
		if !ok {
			return
		}
		sections, err := svc.Storefront(r.Context(), tc.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		response.JSON(w, map[string]any{
			"tenant": tc,
			"menu":   sections,
		})
	}
}
