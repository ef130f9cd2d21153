package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/ordercheff/api/internal/api/response"
	"github.com/ordercheff/api/internal/store"
	"github.com/ordercheff/api/internal/tenant"
	"github.com/ordercheff/api/pkg/models"
)

// TenantService is the tenant profile surface the handlers depend on.
type TenantService interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, p store.TenantProfileParams) (*models.Tenant, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// QRService renders storefront QR codes.
type QRService interface {
	StorefrontQR(subdomain string) ([]byte, error)
}

// NewGetTenantHandler returns the handler for GET /api/v1/tenant.
func NewGetTenantHandler(svc TenantService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc, ok := tenant.FromRequest(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "TENANT_MISSING", "Tenant information missing", nil)
			return
		}

		t, err := svc.Get(r.Context(), tc.ID)
		switch {
		case err == nil:
			response.JSON(w, t)
		case errors.Is(err, store.ErrNotFound):
			response.Error(w, http.StatusUnauthorized, "TENANT_NOT_FOUND", "Tenant not found", nil)
		default:
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load tenant", nil)
		}
	}
}

// NewUpdateTenantHandler returns the handler for PUT /api/v1/tenant.
// Only provided fields change; the subdomain is immutable and absent from
// the request shape.
func NewUpdateTenantHandler(svc TenantService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc, ok := tenant.FromRequest(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "TENANT_MISSING", "Tenant information missing", nil)
			return
		}

		var req struct {
			BusinessName *string                `json:"business_name"`
			Description  *string                `json:"description"`
			LogoURL      *string                `json:"logo_url"`
			Email        *string                `json:"email"`
			Phone        *string                `json:"phone"`
			Address      *string                `json:"address"`
			Settings     *models.TenantSettings `json:"settings"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		t, err := svc.UpdateProfile(r.Context(), tc.ID, store.TenantProfileParams{
			BusinessName: req.BusinessName,
			Description:  req.Description,
			LogoURL:      req.LogoURL,
			Email:        req.Email,
			Phone:        req.Phone,
			Address:      req.Address,
			Settings:     req.Settings,
		})
		switch {
		case err == nil:
			response.JSON(w, t)
		case errors.Is(err, store.ErrNotFound):
			response.Error(w, http.StatusUnauthorized, "TENANT_NOT_FOUND", "Tenant not found", nil)
		default:
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update tenant", nil)
		}
	}
}

// NewDeactivateTenantHandler returns the handler for DELETE /api/v1/tenant.
func NewDeactivateTenantHandler(svc TenantService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc, ok := tenant.FromRequest(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "TENANT_MISSING", "Tenant information missing", nil)
			return
		}

		err := svc.Deactivate(r.Context(), tc.ID)
		switch {
		case err == nil:
			response.NoContent(w)
		case errors.Is(err, store.ErrNotFound):
			response.Error(w, http.StatusUnauthorized, "TENANT_NOT_FOUND", "Tenant not found", nil)
		default:
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to deactivate tenant", nil)
		}
	}
}

// NewTenantQRHandler returns the handler for GET /api/v1/tenant/qr.
func NewTenantQRHandler(svc QRService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc, ok := tenant.FromRequest(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "TENANT_MISSING", "Tenant information missing", nil)
			return
		}

		png, err := svc.StorefrontQR(tc.Subdomain)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to render QR code", nil)
			return
		}
		response.PNG(w, png)
	}
}
