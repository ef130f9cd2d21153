package middleware

import (
	"net/http"

	"github.com/ordercheff/api/internal/tenant"
)

// Subdomain annotates every request with the candidate subdomain derived
// from its Host header. Pure extraction, no lookup; the resolver decides
// what the candidate means.
func Subdomain(mainDomain string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sub, ok := tenant.ExtractSubdomain(r.Host, mainDomain); ok {
				r = r.WithContext(setSubdomain(r.Context(), sub))
			}
			next.ServeHTTP(w, r)
		})
	}
}
