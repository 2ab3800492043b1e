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

	"golang.org/x/sync/errgroup"

	shhttp "github.com/shelfspace/shelfspace/internal/adapter/http"
	"github.com/shelfspace/shelfspace/internal/adapter/otel"
	"github.com/shelfspace/shelfspace/internal/adapter/postgres"
	"github.com/shelfspace/shelfspace/internal/adapter/ristretto"
	"github.com/shelfspace/shelfspace/internal/config"
	"github.com/shelfspace/shelfspace/internal/logger"
	"github.com/shelfspace/shelfspace/internal/middleware"
	"github.com/shelfspace/shelfspace/internal/service"
)

const version = "0.1.0"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "admin" {
		if err := runAdmin(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		return
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.New(cfg.Logging)
	slog.SetDefault(log)

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"environment", cfg.Server.Environment,
		"log_level", cfg.Logging.Level,
		"pg_max_conns", cfg.Postgres.MaxConns,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	slog.Info("postgres connected")

	if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	slog.Info("migrations applied")

	storeCache, err := ristretto.New(cfg.Cache.MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	defer storeCache.Close()

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return fmt.Errorf("upload dir: %w", err)
	}

	// --- Telemetry ---

	shutdownOtel, err := otel.Init(ctx, log, cfg.Logging.Service, version)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(sctx); err != nil {
			slog.Warn("otel shutdown", "error", err)
		}
	}()

	metrics, err := otel.NewMetrics()
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// --- Services ---

	store := postgres.NewStore(pool)
	authSvc := service.NewAuthService(store, &cfg.Auth)
	publicSvc := service.NewPublicService(store, storeCache, cfg.Cache.TTL, log)
	bookSvc := service.NewBookService(store, publicSvc, log)
	tenantSvc := service.NewTenantService(store, publicSvc, log)

	handlers := &shhttp.Handlers{
		Auth:    authSvc,
		Books:   bookSvc,
		Tenants: tenantSvc,
		Public:  publicSvc,
		Ping:    pool.Ping,
		Metrics: metrics,
		Config:  cfg,
		Log:     log,
	}

	// --- HTTP ---

	apiLimiter := middleware.NewRateLimiter(cfg.Rate.API.RequestsPerSecond, cfg.Rate.API.Burst)
	defer apiLimiter.StartCleanup(time.Minute, 10*time.Minute)()
	authLimiter := middleware.NewRateLimiter(cfg.Rate.Auth.RequestsPerSecond, cfg.Rate.Auth.Burst)
	defer authLimiter.StartCleanup(time.Minute, 10*time.Minute)()

	r := shhttp.NewRouter(handlers, store, apiLimiter, authLimiter)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           otel.HTTPMiddleware(cfg.Logging.Service)(r),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
