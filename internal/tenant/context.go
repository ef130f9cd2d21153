// Package tenant implements tenant resolution: deciding, for each request,
// which tenant's data the request may touch.
package tenant

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/ordercheff/api/pkg/models"
)

// Context is the resolved tenant identity for a single request. It is
// immutable and lives only for the request's processing lifetime; a Context
// is never published for an inactive tenant.
type Context struct {
	ID           uuid.UUID `json:"id"`
	Subdomain    string    `json:"subdomain"`
	BusinessName string    `json:"business_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
}

// ContextOf builds a request Context from a tenant record.
func ContextOf(t *models.Tenant) Context {
	return Context{
		ID:           t.ID,
		Subdomain:    t.Subdomain,
		BusinessName: t.BusinessName,
		Email:        t.Email,
		Phone:        t.Phone,
	}
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying the resolved tenant.
func NewContext(ctx context.Context, tc Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, tc)
}

// FromContext returns the resolved tenant, if any.
func FromContext(ctx context.Context) (Context, bool) {
	tc, ok := ctx.Value(ctxKey{}).(Context)
	return tc, ok
}

// FromRequest returns the resolved tenant attached to the request, if any.
func FromRequest(r *http.Request) (Context, bool) {
	return FromContext(r.Context())
}
