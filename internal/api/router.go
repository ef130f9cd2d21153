package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/ordercheff/api/internal/api/handler"
	mw "github.com/ordercheff/api/internal/api/middleware"
	"github.com/ordercheff/api/internal/api/routes"
	"github.com/ordercheff/api/internal/tenant"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	MainDomain     string
	AllowedOrigins []string

	TenantLookup tenant.Lookup
	Auth         *mw.Auth
	RateLimit    *mw.RateLimit

	HealthHandler http.HandlerFunc

	Register       http.HandlerFunc
	Login          http.HandlerFunc
	CheckSubdomain http.HandlerFunc

	GetTenant        http.HandlerFunc
	UpdateTenant     http.HandlerFunc
	DeactivateTenant http.HandlerFunc
	TenantQR         http.HandlerFunc

	Categories *handler.CategoryHandler
	Products   *handler.ProductHandler
	Menus      *handler.MenuHandler

	StorefrontMenu http.HandlerFunc
}

// NewRouter builds the Chi router with the middleware stack and all routes.
//
// The public/protected classification is a static table populated here,
// at registration time, and consulted by the tenant resolver before
// dispatch. Any route not listed in the table is protected.
func NewRouter(deps Dependencies) http.Handler {
	table := routes.NewTable()
	table.MarkPublic(http.MethodGet, "/api/v1/health")
	// Onboarding can never require a pre-existing tenant.
	table.MarkPublicPrefix("/api/v1/auth/")
	table.Freeze()

	resolver := mw.NewResolver(deps.TenantLookup, table)

	r := chi.NewRouter()

	// Subdomain annotation runs first so every later stage (including the
	// request log) sees the candidate.
	r.Use(mw.Subdomain(deps.MainDomain))
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", mw.TenantIDHeader},
	}).Handler)
	r.Use(deps.Auth.Verify)
	r.Use(resolver.Resolve)
	r.Use(deps.RateLimit.Limit)

	// Public routes
	r.Get("/api/v1/health", deps.HealthHandler)
	r.Post("/api/v1/auth/register", deps.Register)
	r.Post("/api/v1/auth/login", deps.Login)
	r.Get("/api/v1/auth/check-subdomain/{subdomain}", deps.CheckSubdomain)

	// Storefront: tenant-resolved (usually via subdomain), no login needed.
	r.Get("/api/v1/storefront/menu", deps.StorefrontMenu)

	// Dashboard routes: resolved tenant plus a logged-in user.
	r.Group(func(r chi.Router) {
		r.Use(deps.Auth.RequireAuth)

		r.Get("/api/v1/tenant", deps.GetTenant)
		r.Get("/api/v1/tenant/qr", deps.TenantQR)

		r.Post("/api/v1/categories", deps.Categories.Create)
		r.Get("/api/v1/categories", deps.Categories.List)
		r.Get("/api/v1/categories/{categoryID}", deps.Categories.Get)
		r.Put("/api/v1/categories/{categoryID}", deps.Categories.Update)
		r.Delete("/api/v1/categories/{categoryID}", deps.Categories.Delete)

		r.Post("/api/v1/products", deps.Products.Create)
		r.Get("/api/v1/products", deps.Products.List)
		r.Get("/api/v1/products/{productID}", deps.Products.Get)
		r.Put("/api/v1/products/{productID}", deps.Products.Update)
		r.Delete("/api/v1/products/{productID}", deps.Products.Delete)

		r.Post("/api/v1/menus", deps.Menus.Create)
		r.Get("/api/v1/menus", deps.Menus.List)
		r.Get("/api/v1/menus/{menuID}", deps.Menus.Get)
		r.Put("/api/v1/menus/{menuID}", deps.Menus.Update)
		r.Delete("/api/v1/menus/{menuID}", deps.Menus.Delete)

		// Admin-only tenant mutations
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.RequireRole("admin"))

			r.Put("/api/v1/tenant", deps.UpdateTenant)
			r.Delete("/api/v1/tenant", deps.DeactivateTenant)
		})
	})

	return r
}
