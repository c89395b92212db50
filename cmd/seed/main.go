// Package main provides the seed CLI, which loads quote datasets into the
// document store and maintains its indexes. The service itself never writes.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotes-service/internal/adapters/mongo"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

var (
	version       = "dev"
	globalProfile string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:           "seed",
		Short:         "Load quotes into MongoDB and manage its indexes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalProfile, "profile", "p", profileFromEnv(),
		"Configuration profile (configs/<profile>.yaml)")

	rootCmd.AddCommand(
		newImportCmd(),
		newIndexesCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}

func profileFromEnv() string {
	if p := os.Getenv("APP_ENVIRONMENT"); p != "" {
		return p
	}

	return "local"
}

// loadConfig loads the service configuration for the selected profile. The
// mongo section is used whatever store.driver says.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(globalProfile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	cfg.Mongo.Enabled = true

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: "quotes-seed",
		Version: version,
	})

	return cfg, logger, nil
}

// openStore connects without the breaker or metrics the service wires.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*mongo.Store, error) {
	client, err := mongo.Connect(ctx, &cfg.Mongo, mongo.Options{AppName: "quotes-seed"})
	if err != nil {
		return nil, err
	}

	logger.Info("connected to mongo",
		slog.String("database", cfg.Mongo.Database),
		slog.String("collection", cfg.Mongo.Collection),
	)

	return mongo.NewStore(client, cfg.Mongo.Database, cfg.Mongo.Collection, logger), nil
}

func closeStore(ctx context.Context, store *mongo.Store, logger *slog.Logger) {
	if err := store.Close(context.WithoutCancel(ctx)); err != nil {
		logger.Warn("closing store", slog.Any("error", err))
	}
}
