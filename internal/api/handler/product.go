package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/ordercheff/api/internal/api/response"
	"github.com/ordercheff/api/internal/store"
	"github.com/ordercheff/api/pkg/models"
)

// ProductHandler serves the product CRUD endpoints.
type ProductHandler struct {
	svc MenuService
}

func NewProductHandler(svc MenuService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type productRequest struct {
	CategoryID      uuid.UUID             `json:"category_id"`
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	PriceCents      int64                 `json:"price_cents"`
	ImageURL        string                `json:"image_url"`
	IsActive        *bool                 `json:"is_active"`
	Nutrition       *models.NutritionInfo `json:"nutrition"`
	Allergens       []string              `json:"allergens"`
	PrepTimeMinutes int                   `json:"prep_time_minutes"`
}

func (req productRequest) toModel() *models.Product {
	p := &models.Product{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		PriceCents:      req.PriceCents,
		ImageURL:        req.ImageURL,
		IsActive:        true,
		Nutrition:       req.Nutrition,
		Allergens:       req.Allergens,
		PrepTimeMinutes: req.PrepTimeMinutes,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	return p
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}

	p := req.toModel()
	if err := h.svc.CreateProduct(r.Context(), tc.ID, p); err != nil {
		writeServiceError(w, err)
		return
	}
	response.Created(w, p)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}

	filter := store.ProductFilter{TenantID: tc.ID}
	q := r.URL.Query()
	if raw := q.Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "category_id must be a UUID", nil)
			return
		}
		filter.CategoryID = id
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	products, total, err := h.svc.ListProducts(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	response.Collection(w, products, response.PaginationMeta{
		Page:    filter.Page,
		Limit:   filter.Limit,
		Total:   total,
		HasNext: filter.Page*filter.Limit < total,
	})
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "productID")
	if !ok {
		return
	}
	p, err := h.svc.GetProduct(r.Context(), tc.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "productID")
	if !ok {
		return
	}
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}

	p := req.toModel()
	p.ID = id
	updated, err := h.svc.UpdateProduct(r.Context(), tc.ID, p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, updated)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "productID")
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(r.Context(), tc.ID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	response.NoContent(w)
}
