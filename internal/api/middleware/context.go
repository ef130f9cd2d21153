package middleware

import (
	"context"
	"net/http"

	"github.com/ordercheff/api/internal/token"
)

type contextKey string

const (
	subdomainKey contextKey = "subdomain"
	claimsKey    contextKey = "claims"
)

func setSubdomain(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, subdomainKey, sub)
}

// SubdomainFrom returns the host-derived candidate subdomain, if the
// request carried one.
func SubdomainFrom(r *http.Request) (string, bool) {
	sub, ok := r.Context().Value(subdomainKey).(string)
	return sub, ok
}

func setClaims(ctx context.Context, c *token.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFrom returns the verified bearer claims, if the request carried a
// valid credential.
func ClaimsFrom(r *http.Request) (*token.Claims, bool) {
	c, ok := r.Context().Value(claimsKey).(*token.Claims)
	return c, ok
}
