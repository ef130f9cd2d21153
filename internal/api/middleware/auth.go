package middleware

import (
	"net/http"
	"strings"

	"github.com/ordercheff/api/internal/api/response"
	"github.com/ordercheff/api/internal/token"
)

// Auth provides bearer-token verification and role-checking middleware.
type Auth struct {
	tokens *token.Manager
}

// NewAuth creates a new Auth middleware.
func NewAuth(tm *token.Manager) *Auth {
	return &Auth{tokens: tm}
}

// Verify validates the Authorization header when present and attaches the
// claims to the request context. A request with no credential passes
// through untouched — whether credentials are required is decided per
// route by RequireAuth and by the tenant resolver. A credential that is
// present but invalid is always rejected.
func (a *Auth) Verify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearerToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := a.tokens.Verify(raw)
		if err != nil {
			response.Error(w, http.StatusUnauthorized,
				"INVALID_TOKEN", "Invalid or expired token", nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(setClaims(r.Context(), claims)))
	})
}

// RequireAuth rejects requests that did not present a valid credential.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFrom(r); !ok {
			response.Error(w, http.StatusUnauthorized,
				"INVALID_TOKEN", "Missing or invalid Authorization header", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole returns middleware that checks the authenticated user's role.
func (a *Auth) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r)
			if !ok {
				response.Error(w, http.StatusUnauthorized,
					"INVALID_TOKEN", "Missing or invalid Authorization header", nil)
				return
			}
			if claims.Role != role {
				response.Error(w, http.StatusForbidden,
					"FORBIDDEN", "Insufficient permissions", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
