package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ordercheff/api/internal/api/response"
	"github.com/ordercheff/api/internal/service"
)

// AuthService is the onboarding/login surface the handlers depend on.
type AuthService interface {
	Register(ctx context.Context, p service.RegisterParams) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
	CheckSubdomain(ctx context.Context, subdomain string) (bool, error)
}

// NewRegisterHandler returns the handler for POST /api/v1/auth/register.
func NewRegisterHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			BusinessName string `json:"business_name"`
			Subdomain    string `json:"subdomain"`
			Email        string `json:"email"`
			Password     string `json:"password"`
			Phone        string `json:"phone"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.BusinessName == "" || req.Subdomain == "" || req.Email == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"business_name, subdomain and email are required", nil)
			return
		}
		if len(req.Password) < 8 {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"password must be at least 8 characters", nil)
			return
		}

		result, err := svc.Register(r.Context(), service.RegisterParams{
			BusinessName: req.BusinessName,
			Subdomain:    req.Subdomain,
			Email:        req.Email,
			Password:     req.Password,
			Phone:        req.Phone,
		})
		switch {
		case err == nil:
			response.Created(w, result)
		case errors.Is(err, service.ErrInvalidSubdomain):
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		case errors.Is(err, service.ErrSubdomainTaken), errors.Is(err, service.ErrEmailTaken):
			response.Error(w, http.StatusConflict, "CONFLICT", err.Error(), nil)
		default:
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Registration failed", nil)
		}
	}
}

// NewLoginHandler returns the handler for POST /api/v1/auth/login.
func NewLoginHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Email == "" || req.Password == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "email and password are required", nil)
			return
		}

		result, err := svc.Login(r.Context(), req.Email, req.Password)
		switch {
		case err == nil:
			response.JSON(w, result)
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
		default:
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Login failed", nil)
		}
	}
}

// NewCheckSubdomainHandler returns the handler for
// GET /api/v1/auth/check-subdomain/{subdomain}.
func NewCheckSubdomainHandler(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := chi.URLParam(r, "subdomain")

		available, err := svc.CheckSubdomain(r.Context(), sub)
		switch {
		case err == nil:
			response.JSON(w, map[string]any{"subdomain": sub, "available": available})
		case errors.Is(err, service.ErrInvalidSubdomain):
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		default:
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Subdomain check failed", nil)
		}
	}
}
