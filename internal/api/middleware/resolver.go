package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/ordercheff/api/internal/api/response"
	"github.com/ordercheff/api/internal/api/routes"
	"github.com/ordercheff/api/internal/tenant"
	"github.com/ordercheff/api/pkg/models"
)

// TenantIDHeader is the explicit tenant override for API clients that
// cannot present a subdomain.
const TenantIDHeader = "x-tenant-id"

// Resolver binds every protected request to exactly one active tenant, or
// rejects it before any handler runs.
//
// Signals, in trust order: verified bearer claims (a logged-in session's
// tenant binding beats ambient signals, so a stale browser subdomain can
// never override it), then the host-derived subdomain, then the explicit
// header. A subdomain that fails to resolve is treated as "no subdomain
// signal" and falls through — misconfigured DNS and proxy Host headers are
// common and should not be fatal when another signal is usable. A header
// that fails to resolve is a hard rejection.
type Resolver struct {
	lookup tenant.Lookup
	table  *routes.Table
}

// NewResolver creates a Resolver over the given lookup and route table.
func NewResolver(lookup tenant.Lookup, table *routes.Table) *Resolver {
	return &Resolver{lookup: lookup, table: table}
}

// Resolve is the middleware entry point.
func (rs *Resolver) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rs.table.IsPublic(r.Method, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if claims, ok := ClaimsFrom(r); ok {
			t, err := rs.lookup.ByID(r.Context(), claims.TenantID)
			switch {
			case err == nil:
				rs.bind(w, r, next, t)
			case errors.Is(err, tenant.ErrNotFound):
				// The claim is the authoritative binding; if its tenant is
				// gone or deactivated the session is dead, no fallback.
				rejectNotFound(w)
			default:
				rejectLookupFailure(w, r, "claims", err)
			}
			return
		}

		if sub, ok := SubdomainFrom(r); ok {
			t, err := rs.lookup.BySubdomain(r.Context(), sub)
			switch {
			case err == nil:
				rs.bind(w, r, next, t)
				return
			case errors.Is(err, tenant.ErrNotFound):
				// Fall through to the header signal.
			default:
				rejectLookupFailure(w, r, "subdomain", err)
				return
			}
		}

		if raw := r.Header.Get(TenantIDHeader); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				// Malformed ids fail closed as not-found; the format check
				// must not be distinguishable from a miss.
				rejectNotFound(w)
				return
			}
			t, err := rs.lookup.ByID(r.Context(), id)
			switch {
			case err == nil:
				rs.bind(w, r, next, t)
			case errors.Is(err, tenant.ErrNotFound):
				rejectNotFound(w)
			default:
				rejectLookupFailure(w, r, "header", err)
			}
			return
		}

		response.Error(w, http.StatusUnauthorized,
			"TENANT_MISSING", "Tenant information missing", nil)
	})
}

func (rs *Resolver) bind(w http.ResponseWriter, r *http.Request, next http.Handler, t *models.Tenant) {
	if !t.IsActive {
		rejectNotFound(w)
		return
	}
	ctx := tenant.NewContext(r.Context(), tenant.ContextOf(t))
	next.ServeHTTP(w, r.WithContext(ctx))
}

func rejectNotFound(w http.ResponseWriter) {
	response.Error(w, http.StatusUnauthorized,
		"TENANT_NOT_FOUND", "Tenant not found", nil)
}

func rejectLookupFailure(w http.ResponseWriter, r *http.Request, signal string, err error) {
	slog.Error("tenant lookup failed",
		"signal", signal,
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	response.Error(w, http.StatusServiceUnavailable,
		"TENANT_LOOKUP_FAILED", "Unable to resolve tenant", nil)
}
