package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotes-service/internal/adapters/mongo"
	"github.com/jsamuelsen/quotes-service/internal/app"
)

func newIndexesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the collection's indexes",
		Long:  "Creates the case-insensitive author index used by author lookups. Safe to run repeatedly.",
		Args:  cobra.NoArgs,
		RunE:  runIndexes,
	}
}

func runIndexes(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore(ctx, store, logger)

	if err := app.NewImportService(store.Seeder(), logger).EnsureIndexes(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "index %s ready on %s.%s\n",
		mongo.AuthorIndexName, cfg.Mongo.Database, cfg.Mongo.Collection)

	return nil
}
