// Package server wires configuration, storage, domain services and the
// HTTP router into a runnable application.
package server

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

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/compensation"
	"hrms/internal/domain/dashboard"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/movement"
	"hrms/internal/domain/org"
	"hrms/internal/platform/config"
	"hrms/internal/platform/db"
	"hrms/internal/platform/metrics"
	"hrms/internal/transport/http/api"
	authhandler "hrms/internal/transport/http/handlers/auth"
	compensationhandler "hrms/internal/transport/http/handlers/compensation"
	dashboardhandler "hrms/internal/transport/http/handlers/dashboard"
	employeehandler "hrms/internal/transport/http/handlers/employees"
	movementhandler "hrms/internal/transport/http/handlers/movements"
	orghandler "hrms/internal/transport/http/handlers/org"
	"hrms/internal/transport/http/middleware"
)

type App struct {
	Cfg    config.Config
	Pool   *pgxpool.Pool
	Router chi.Router
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	if cfg.RunSeed {
		hash, err := auth.HashPassword(cfg.SeedAdminPassword)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
		if err := db.Seed(ctx, pool, cfg, hash); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	authService := auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.JWTExpiry)
	orgStore := org.NewStore(pool)
	orgService := org.NewService(orgStore)
	employeeStore := employee.NewStore(pool)
	employeeService := employee.NewService(employeeStore, orgStore)
	compService := compensation.NewService(compensation.NewStore(pool))
	movementService := movement.NewService(movement.NewStore(pool), employeeStore, orgStore)
	dashboardService := dashboard.NewService(dashboard.NewStore(pool), compService)

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Metrics(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(authService))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	router.Route("/api/v1", func(r chi.Router) {
		if collector != nil {
			r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
				actor, ok := middleware.GetActor(r.Context())
				if !ok || actor.Role != auth.RoleAdmin {
					api.Fail(w, http.StatusForbidden, "forbidden", "admin access required", middleware.GetRequestID(r.Context()))
					return
				}
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
			})
		}
		authhandler.NewHandler(authService).RegisterRoutes(r)
		orghandler.NewHandler(orgService, cfg.DefaultPageLimit, cfg.MaxPageLimit).RegisterRoutes(r)
		employeehandler.NewHandler(employeeService, cfg.DefaultPageLimit, cfg.MaxPageLimit).RegisterRoutes(r)
		compensationhandler.NewHandler(compService, cfg.DefaultPageLimit, cfg.MaxPageLimit).RegisterRoutes(r)
		movementhandler.NewHandler(movementService, cfg.DefaultPageLimit, cfg.MaxPageLimit).RegisterRoutes(r)
		dashboardhandler.NewHandler(dashboardService).RegisterRoutes(r)
	})

	return &App{Cfg: cfg, Pool: pool, Router: router}, nil
}

// Run serves until the context is cancelled or an interrupt arrives,
// then drains in-flight requests before returning.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Cfg.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", a.Cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.Pool.Close()
	return nil
}
