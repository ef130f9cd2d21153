package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ordercheff/api/internal/api/response"
	"github.com/ordercheff/api/pkg/models"
)

// CategoryHandler serves the category CRUD endpoints.
type CategoryHandler struct {
	svc MenuService
}

func NewCategoryHandler(svc MenuService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
	Position    int    `json:"position"`
}

func (req categoryRequest) toModel() *models.Category {
	c := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
		Position:    req.Position,
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	return c
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}

	c := req.toModel()
	if err := h.svc.CreateCategory(r.Context(), tc.ID, c); err != nil {
		writeServiceError(w, err)
		return
	}
	response.Created(w, c)
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}
	cats, err := h.svc.ListCategories(r.Context(), tc.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, cats)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	c, err := h.svc.GetCategory(r.Context(), tc.ID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, c)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
		return
	}

	c := req.toModel()
	c.ID = id
	updated, err := h.svc.UpdateCategory(r.Context(), tc.ID, c)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.JSON(w, updated)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tc, ok := requireTenant(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	if err := h.svc.DeleteCategory(r.Context(), tc.ID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	response.NoContent(w)
}
