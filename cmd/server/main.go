// Package main is the entrypoint for the OrderCheff API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ordercheff/api/internal/api"
	"github.com/ordercheff/api/internal/api/handler"
	mw "github.com/ordercheff/api/internal/api/middleware"
	"github.com/ordercheff/api/internal/api/response"
	"github.com/ordercheff/api/internal/cache"
	"github.com/ordercheff/api/internal/config"
	"github.com/ordercheff/api/internal/events"
	"github.com/ordercheff/api/internal/service"
	"github.com/ordercheff/api/internal/store"
	"github.com/ordercheff/api/internal/tenant"
	"github.com/ordercheff/api/internal/token"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env, "main_domain", cfg.Server.MainDomain)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to database
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	slog.Info("database connected")

	// 3. Run migrations
	if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// 4. Create Redis cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("create redis cache: %w", err)
	}
	defer redisCache.Close()

	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis connected")

	// 5. Tenant event publisher (optional)
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kp.Close()
		publisher = kp
		slog.Info("kafka publisher initialized", "topic", cfg.Kafka.Topic)
	}

	// 6. Store, tenant lookup, services
	pgStore := store.NewPostgresStore(pool)
	lookup := tenant.NewCachedLookup(tenant.NewStoreLookup(pgStore), redisCache, cfg.Redis.TenantTTL)
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authSvc := service.NewAuthService(pgStore, tokens, publisher)
	tenantSvc := service.NewTenantService(pgStore, lookup, publisher)
	menuSvc := service.NewMenuService(pgStore)
	qrSvc := service.NewQRService(cfg.Server.MainDomain)

	// 7. Build router with dependencies
	deps := api.Dependencies{
		MainDomain:     cfg.Server.MainDomain,
		AllowedOrigins: cfg.Server.AllowedOrigins,

		TenantLookup: lookup,
		Auth:         mw.NewAuth(tokens),
		RateLimit:    mw.NewRateLimit(redisCache, cfg.Server.RequestsPerMin),

		HealthHandler: healthHandler(pgStore, redisCache),

		Register:       handler.NewRegisterHandler(authSvc),
		Login:          handler.NewLoginHandler(authSvc),
		CheckSubdomain: handler.NewCheckSubdomainHandler(authSvc),

		GetTenant:        handler.NewGetTenantHandler(tenantSvc),
		UpdateTenant:     handler.NewUpdateTenantHandler(tenantSvc),
		DeactivateTenant: handler.NewDeactivateTenantHandler(tenantSvc),
		TenantQR:         handler.NewTenantQRHandler(qrSvc),

		Categories: handler.NewCategoryHandler(menuSvc),
		Products:   handler.NewProductHandler(menuSvc),
		Menus:      handler.NewMenuHandler(menuSvc),

		StorefrontMenu: handler.NewStorefrontMenuHandler(menuSvc),
	}

	router := api.NewRouter(deps)

	// 8. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// healthHandler checks database and cache connectivity.
func healthHandler(s store.Store, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"database": "ok",
			"cache":    "ok",
		}

		if err := s.Ping(r.Context()); err != nil {
			checks["database"] = "degraded"
		}
		if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}

		if checks["database"] != "ok" || checks["cache"] != "ok" {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
