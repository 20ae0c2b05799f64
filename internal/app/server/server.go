package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"perftrack/internal/domain/audit"
	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/core"
	"perftrack/internal/domain/performance"
	"perftrack/internal/domain/reports"
	"perftrack/internal/platform/config"
	"perftrack/internal/platform/db"
	"perftrack/internal/platform/docstore"
	"perftrack/internal/platform/metrics"
	audithandler "perftrack/internal/transport/http/handlers/audit"
	authhandler "perftrack/internal/transport/http/handlers/auth"
	corehandler "perftrack/internal/transport/http/handlers/core"
	performancehandler "perftrack/internal/transport/http/handlers/performance"
	reportshandler "perftrack/internal/transport/http/handlers/reports"
	"perftrack/internal/transport/http/middleware"
)

const shutdownTimeout = 10 * time.Second

// Deps are the opened stores the router is built on.
type Deps struct {
	DB      *db.DB
	Reviews performance.ReviewStore
	Metrics *metrics.Collector
}

func NewRouter(cfg config.Config, deps Deps) http.Handler {
	auditSvc := audit.New(deps.DB)
	coreStore := core.NewStore(deps.DB)
	coreSvc := core.NewService(coreStore, auditSvc, cfg.CheckReferences)
	performanceSvc := performance.NewService(deps.Reviews, coreSvc, auditSvc, cfg.CheckReferences)
	reportsSvc := reports.NewService(reports.NewStore(deps.DB), coreStore, deps.Reviews)
	authSvc := auth.NewService(auth.NewStore(deps.DB), cfg.JWTSecret, cfg.SessionTTL)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := deps.DB.PingContext(ctx); err != nil {
			http.Error(w, "relational store not ready", http.StatusServiceUnavailable)
			return
		}
		if err := deps.Reviews.Ping(ctx); err != nil {
			http.Error(w, "document store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if deps.Metrics != nil {
		router.Handle("/metrics", deps.Metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authSvc, cfg.LoginRateLimit, cfg.LoginRateWindow, cfg.TrustedProxies).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)

			performanceHandler := performancehandler.NewHandler(performanceSvc)
			performanceHandler.RegisterRoutes(r)

			coreHandler := corehandler.NewHandler(coreSvc)
			coreHandler.RegisterRoutes(r, performanceHandler.RegisterEmployeeRoutes)

			reportshandler.NewHandler(reportsSvc).RegisterRoutes(r)
			audithandler.NewHandler(auditSvc).RegisterRoutes(r)
		})
	})

	return router
}

// OpenReviews returns the review store named by the configuration and a
// function releasing it.
func OpenReviews(ctx context.Context, cfg config.Config) (performance.ReviewStore, func(), error) {
	if cfg.MemoryDocuments() {
		slog.Warn("using in-memory review store; reviews are lost on restart")
		return performance.NewMemoryStore(), func() {}, nil
	}

	client, err := docstore.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Warn("document store disconnect failed", "err", err)
		}
	}

	store := performance.NewMongoStore(docstore.Collection(client, cfg))
	if err := store.EnsureIndexes(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return store, closeFn, nil
}

// Run opens both stores, seeds accounts and serves until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config) error {
	database, err := db.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("relational store: %w", err)
	}
	defer database.Close()

	if err := db.EnsureSchema(ctx, database); err != nil {
		return fmt.Errorf("schema: %w", err)
	}

	authSvc := auth.NewService(auth.NewStore(database), cfg.JWTSecret, cfg.SessionTTL)
	if err := authSvc.Seed(ctx, cfg); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	reviews, closeReviews, err := OpenReviews(ctx, cfg)
	if err != nil {
		return fmt.Errorf("document store: %w", err)
	}
	defer closeReviews()

	deps := Deps{DB: database, Reviews: reviews}
	if cfg.MetricsEnabled {
		deps.Metrics = metrics.New()
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("perftrack listening", "addr", cfg.Addr, "driver", cfg.RelationalDriver, "memoryDocuments", cfg.MemoryDocuments())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	slog.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
