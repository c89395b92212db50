// Package main is the entry point for the service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http"
	"github.com/jsamuelsen/quotes-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotes-service/internal/adapters/memory"
	"github.com/jsamuelsen/quotes-service/internal/adapters/mongo"
	"github.com/jsamuelsen/quotes-service/internal/app"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
	"github.com/jsamuelsen/quotes-service/internal/platform/telemetry"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Startup is abandoned on a signal; afterwards the same signal starts
	// the graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("store", cfg.Store.Driver),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, telemetry.ConfigFrom(cfg.App, cfg.Telemetry))
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Open the quote store
	store, err := openStore(ctx, cfg, telProvider.Enabled(), logger)
	if err != nil {
		return err
	}

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		if closeErr := store.closeFn(closeCtx); closeErr != nil {
			logger.Error("store close error", slog.Any("error", closeErr))
		}
	}()

	// 6. Create health registry with the store check
	healthRegistry := ports.NewHealthRegistry(ports.WithCheckTimeout(cfg.Server.CheckTimeout))
	if err := healthRegistry.Register(store.health); err != nil {
		return fmt.Errorf("registering store health check: %w", err)
	}

	// 7. Create quote service (application layer)
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: store.quotes,
		Logger:     logger,
	})

	// 8. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	if err := registerCollector(buildInfo.Collector()); err != nil {
		return fmt.Errorf("registering build info: %w", err)
	}

	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo, handlers.WithHealthLogger(logger))
	quoteHandler := handlers.NewQuoteHandler(quoteService)

	// 9. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 10. Setup router with all middleware and routes
	routerCfg := http.NewDefaultRouterConfig(logger, &cfg.App, healthHandler, quoteHandler)
	routerCfg.Timeout = cfg.Server.RequestTimeout
	http.SetupRouter(server.Engine(), routerCfg)

	// 11. Start server (non-blocking)
	serverErr, err := server.Start()
	if err != nil {
		return err
	}

	// 12. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// quoteStore is the repository selected by store.driver plus its health
// check and cleanup.
type quoteStore struct {
	quotes  ports.QuoteRepository
	health  ports.HealthChecker
	closeFn func(ctx context.Context) error
}

func openStore(ctx context.Context, cfg *config.Config, instrumented bool, logger *slog.Logger) (*quoteStore, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		repo, err := memory.LoadFile(cfg.Store.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("loading memory store: %w", err)
		}

		logger.Info("serving quotes from memory", slog.String("seed_file", cfg.Store.SeedFile))

		return &quoteStore{
			quotes:  repo,
			health:  repo,
			closeFn: func(context.Context) error { return nil },
		}, nil

	default:
		connectCtx := ctx
		if cfg.Mongo.ConnectTimeout > 0 {
			var cancel context.CancelFunc
			connectCtx, cancel = context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout+cfg.Mongo.ServerSelectionTimeout)
			defer cancel()
		}

		store, err := mongo.Open(connectCtx, &cfg.Mongo, mongo.Options{
			AppName: cfg.App.Name,
			Tracing: instrumented,
			Metrics: instrumented,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("opening mongo store: %w", err)
		}

		return &quoteStore{
			quotes:  store.Quotes,
			health:  store.Health,
			closeFn: store.Close,
		}, nil
	}
}

// waitForShutdown blocks until ctx is cancelled by a signal or the server
// fails, then drains in-flight requests within shutdownTimeout.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	select {
	case err, ok := <-serverErr:
		if ok && err != nil {
			return fmt.Errorf("server error: %w", err)
		}

		return nil

	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

// registerCollector registers c on the default Prometheus registry,
// tolerating a collector that is already present.
func registerCollector(c prometheus.Collector) error {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return err
		}
	}

	return nil
}
