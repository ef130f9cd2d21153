package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	mw "github.com/ordercheff/api/internal/api/middleware"
	"github.com/ordercheff/api/internal/api/routes"
	"github.com/ordercheff/api/internal/tenant"
	"github.com/ordercheff/api/internal/token"
	"github.com/ordercheff/api/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMainDomain = "ordercheff.com"

var testSecret = "test-secret-at-least-32-bytes-long!!"

// mapLookup resolves from fixed maps and counts calls.
type mapLookup struct {
	byID        map[uuid.UUID]*models.Tenant
	bySubdomain map[string]*models.Tenant
	err         error
	calls       int
}

func (l *mapLookup) ByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	if t, ok := l.byID[id]; ok {
		return t, nil
	}
	return nil, tenant.ErrNotFound
}

func (l *mapLookup) BySubdomain(_ context.Context, sub string) (*models.Tenant, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	if t, ok := l.bySubdomain[sub]; ok {
		return t, nil
	}
	return nil, tenant.ErrNotFound
}

func newMapLookup(tenants ...*models.Tenant) *mapLookup {
	l := &mapLookup{
		byID:        make(map[uuid.UUID]*models.Tenant),
		bySubdomain: make(map[string]*models.Tenant),
	}
	for _, t := range tenants {
		l.byID[t.ID] = t
		l.bySubdomain[t.Subdomain] = t
	}
	return l
}

func makeTenant(subdomain string) *models.Tenant {
	return &models.Tenant{
		ID:           uuid.New(),
		Subdomain:    subdomain,
		BusinessName: subdomain,
		IsActive:     true,
	}
}

func protectedTable() *routes.Table {
	table := routes.NewTable()
	table.MarkPublic(http.MethodGet, "/api/v1/health")
	table.MarkPublicPrefix("/api/v1/auth/")
	return table.Freeze()
}

// buildChain assembles the middleware stack the router uses around a
// handler that records the resolved tenant.
func buildChain(lookup tenant.Lookup, resolved *tenant.Context, hits *int) http.Handler {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			*hits++
		}
		if tc, ok := tenant.FromRequest(r); ok && resolved != nil {
			*resolved = tc
		}
		w.WriteHeader(http.StatusNoContent)
	})

	tokens := token.NewManager(testSecret, time.Hour)
	auth := mw.NewAuth(tokens)
	resolver := mw.NewResolver(lookup, protectedTable())

	var h http.Handler = final
	h = resolver.Resolve(h)
	h = auth.Verify(h)
	h = mw.Subdomain(testMainDomain)(h)
	return h
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

func issueToken(t *testing.T, tenantID uuid.UUID) string {
	t.Helper()
	tokens := token.NewManager(testSecret, time.Hour)
	raw, err := tokens.Issue(uuid.New(), tenantID, models.RoleAdmin)
	require.NoError(t, err)
	return raw
}

func TestResolvePublicRouteBypassesResolution(t *testing.T) {
	lookup := newMapLookup()
	var hits int
	h := buildChain(lookup, nil, &hits)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Host = testMainDomain
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, hits)
	assert.Equal(t, 0, lookup.calls)
}

func TestResolveMissingSignalRejects(t *testing.T) {
	h := buildChain(newMapLookup(), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Host = testMainDomain
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TENANT_MISSING", errorCode(t, rec))
}

func TestResolveBySubdomain(t *testing.T) {
	tn := makeTenant("pizza-roma")
	var resolved tenant.Context
	h := buildChain(newMapLookup(tn), &resolved, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Host = "pizza-roma.ordercheff.com"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, tn.ID, resolved.ID)
	assert.Equal(t, "pizza-roma", resolved.Subdomain)
}

func TestResolveByHeader(t *testing.T) {
	tn := makeTenant("pizza-roma")
	var resolved tenant.Context
	h := buildChain(newMapLookup(tn), &resolved, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Host = testMainDomain
	req.Header.Set(mw.TenantIDHeader, tn.ID.String())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, tn.ID, resolved.ID)
}

func TestResolveByClaims(t *testing.T) {
	tn := makeTenant("pizza-roma")
	var resolved tenant.Context
	h := buildChain(newMapLookup(tn), &resolved, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Host = testMainDomain
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tn.ID))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, tn.ID, resolved.ID)
}

func TestResolveClaimsWinOverSubdomain(t *testing.T) {
	claimed := makeTenant("claimed")
	ambient := makeTenant("ambient")
	var resolved tenant.Context
	h := buildChain(newMapLookup(claimed, ambient), &resolved, nil)

	// The session's tenant binding must beat the host the browser happens
	// to be on.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Host = "ambient.ordercheff.com"
	req.Header.Set("Authorization", "Bearer "+issueToken(t, claimed.ID))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, claimed.ID, resolved.ID)
}

func TestResolveClaimsMissDoesNotFallBack(t *testing.T) {
	ambient := makeTenant("ambient")
	h := buildChain(newMapLookup(ambient), nil, nil)

	// Valid signature, but the claimed tenant no longer exists. The
	// subdomain would resolve, and must not be consulted.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Host = "ambient.ordercheff.com"
	req.Header.Set("Authorization", "Bearer "+issueToken(t, uuid.New()))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TENANT_NOT_FOUND", errorCode(t, rec))
}

func TestResolveSubdomainMissFallsThroughToHeader(t *testing.T) {
	tn := makeTenant("pizza-roma")
	var resolved tenant.Context
	h := buildChain(newMapLookup(tn), &resolved, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Host = "no-such-tenant.ordercheff.com"
	req.Header.Set(mw.TenantIDHeader, tn.ID.String())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, tn.ID, resolved.ID)
}

func TestResolveSubdomainMissWithoutHeaderRejects(t *testing.T) {
	h := buildChain(newMapLookup(), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Host = "no-such-tenant.ordercheff.com"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TENANT_MISSING", errorCode(t, rec))
}

func TestResolveMalformedHeaderRejectsAsNotFound(t *testing.T) {
	h := buildChain(newMapLookup(makeTenant("pizza-roma")), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Host = testMainDomain
	req.Header.Set(mw.TenantIDHeader, "not-a-uuid")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TENANT_NOT_FOUND", errorCode(t, rec))
}

func TestResolveUnknownHeaderRejects(t *testing.T) {
	h := buildChain(newMapLookup(), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Host = testMainDomain
	req.Header.Set(mw.TenantIDHeader, uuid.NewString())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TENANT_NOT_FOUND", errorCode(t, rec))
}

func TestResolveLookupFailureReturns503(t *testing.T) {
	lookup := newMapLookup()
	lookup.err = context.DeadlineExceeded

	h := buildChain(lookup, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Host = "pizza-roma.ordercheff.com"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "TENANT_LOOKUP_FAILED", errorCode(t, rec))
}

func TestResolveInactiveTenantRejects(t *testing.T) {
	tn := makeTenant("pizza-roma")
	tn.IsActive = false
	lookup := newMapLookup()
	// Simulate a lookup that still returns the record despite the flag.
	lookup.bySubdomain[tn.Subdomain] = tn

	h := buildChain(lookup, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Host = "pizza-roma.ordercheff.com"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TENANT_NOT_FOUND", errorCode(t, rec))
}

func TestResolveIsDeterministic(t *testing.T) {
	tn := makeTenant("pizza-roma")
	lookup := newMapLookup(tn)
	var resolved tenant.Context
	h := buildChain(lookup, &resolved, nil)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Host = "pizza-roma.ordercheff.com"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, tn.ID, resolved.ID)
	}
}
