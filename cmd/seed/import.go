package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotes-service/internal/adapters/memory"
	"github.com/jsamuelsen/quotes-service/internal/app"
	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

type importOptions struct {
	file      string
	drop      bool
	dryRun    bool
	batchSize int
	workers   int
}

func newImportCmd() *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load a JSON dataset of quotes",
		Long: "Reads a JSON array of {quoteText, quoteAuthor, quoteGenre} records and inserts it " +
			"in batches with a bounded number of concurrent writers, then ensures the author index. " +
			"Every record gets a fresh id.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Path to the JSON dataset (required)")
	cmd.Flags().BoolVar(&opts.drop, "drop", false, "Remove every existing quote first")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Validate and import into memory only")
	cmd.Flags().IntVar(&opts.batchSize, "batch-size", app.DefaultImportBatchSize, "Quotes per insert")
	cmd.Flags().IntVar(&opts.workers, "workers", app.DefaultImportWorkers, "Concurrent insert batches")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(cmd *cobra.Command, opts *importOptions) error {
	ctx := cmd.Context()

	quotes, err := readDataset(opts.file)
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	var seeder ports.QuoteSeeder

	if opts.dryRun {
		seeder = memory.New(nil)
	} else {
		store, err := openStore(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore(ctx, store, logger)

		seeder = store.Seeder()
	}

	logger.Info("importing quotes",
		slog.String("file", opts.file),
		slog.Int("records", len(quotes)),
		slog.Bool("drop", opts.drop),
		slog.Bool("dry_run", opts.dryRun),
	)

	result, err := app.NewImportService(seeder, logger).Import(ctx, app.ImportRequest{
		Quotes:    quotes,
		Drop:      opts.drop,
		BatchSize: opts.batchSize,
		Workers:   opts.workers,
	})
	if err != nil {
		if step, ok := app.GetExecutionStep(err); ok {
			return fmt.Errorf("importing %s: %s step: %w", opts.file, step, err)
		}

		return fmt.Errorf("importing %s: %w", opts.file, err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(result)
}

func readDataset(path string) ([]domain.Quote, error) {
	f, err := os.Open(path) //nolint:gosec // path is an operator-supplied flag
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	quotes, err := memory.DecodeQuotes(f)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	return quotes, nil
}
