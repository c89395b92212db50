package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

const (
	// DefaultImportBatchSize is the number of quotes written per InsertMany call.
	DefaultImportBatchSize = 500

	// DefaultImportWorkers is the number of concurrent batch writers.
	DefaultImportWorkers = 4
)

// ImportRequest describes a dataset load.
type ImportRequest struct {
	Quotes    []domain.Quote
	Drop      bool
	BatchSize int
	Workers   int
}

// ImportResult summarizes a completed load.
type ImportResult struct {
	Removed  int64 `json:"removed"`
	Inserted int   `json:"inserted"`
	Total    int64 `json:"total"`
}

type importWrite struct {
	before   int64
	removed  int64
	inserted int
}

// ImportService loads quote datasets into the store. Only admin tooling
// constructs one.
type ImportService struct {
	seeder ports.QuoteSeeder
	logger *slog.Logger
}

// NewImportService creates an import service. Panics if seeder is nil.
func NewImportService(seeder ports.QuoteSeeder, logger *slog.Logger) *ImportService {
	if seeder == nil {
		panic("app: ImportService requires a QuoteSeeder")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ImportService{seeder: seeder, logger: logger}
}

// Import validates every quote, writes them in concurrent batches, checks the
// stored count and ensures lookup indexes.
func (s *ImportService) Import(ctx context.Context, req ImportRequest) (ImportResult, error) {
	op := Operation[ImportRequest, importWrite, ImportResult, ImportResult]{
		Name:     "import quotes",
		Validate: s.validate,
		Perform:  s.write,
		Verify:   s.verify,
		Archive: func(ctx context.Context, _ ImportRequest, _ ImportResult) error {
			return s.seeder.EnsureIndexes(ctx)
		},
		Respond: func(ctx context.Context, _ ImportRequest, result ImportResult) (ImportResult, error) {
			s.logger.InfoContext(ctx, "quotes imported",
				slog.Int("inserted", result.Inserted),
				slog.Int64("removed", result.Removed),
				slog.Int64("total", result.Total),
			)

			return result, nil
		},
	}

	return Execute(ctx, op, req)
}

// EnsureIndexes creates lookup indexes without loading data.
func (s *ImportService) EnsureIndexes(ctx context.Context) error {
	if err := s.seeder.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensuring indexes: %w", err)
	}

	s.logger.InfoContext(ctx, "indexes ensured")

	return nil
}

func (s *ImportService) validate(_ context.Context, req ImportRequest) error {
	if len(req.Quotes) == 0 {
		return domain.NewValidationError("quotes", "dataset is empty")
	}

	for i, q := range req.Quotes {
		switch {
		case strings.TrimSpace(q.Text) == "":
			return domain.NewValidationErrorWithValue(fmt.Sprintf("quotes[%d].quoteText", i), "is required", q)
		case strings.TrimSpace(q.Author) == "":
			return domain.NewValidationErrorWithValue(fmt.Sprintf("quotes[%d].quoteAuthor", i), "is required", q)
		case strings.TrimSpace(q.Genre) == "":
			return domain.NewValidationErrorWithValue(fmt.Sprintf("quotes[%d].quoteGenre", i), "is required", q)
		}
	}

	if req.BatchSize < 0 || req.Workers < 0 {
		return domain.NewValidationError("batch", "batch size and workers must not be negative")
	}

	return nil
}

func (s *ImportService) write(ctx context.Context, req ImportRequest) (importWrite, error) {
	var w importWrite

	if req.Drop {
		removed, err := s.seeder.DeleteAll(ctx)
		if err != nil {
			return w, fmt.Errorf("dropping existing quotes: %w", err)
		}

		w.removed = removed
	} else {
		before, err := s.seeder.Count(ctx)
		if err != nil {
			return w, fmt.Errorf("counting existing quotes: %w", err)
		}

		w.before = before
	}

	batchSize := req.BatchSize
	if batchSize == 0 {
		batchSize = DefaultImportBatchSize
	}

	workers := req.Workers
	if workers == 0 {
		workers = DefaultImportWorkers
	}

	var inserted atomic.Int64

	err := forEachBatch(ctx, req.Quotes, batchSize, workers, func(ctx context.Context, batch []domain.Quote) error {
		n, err := s.seeder.InsertMany(ctx, batch)
		if err != nil {
			return err
		}

		inserted.Add(int64(n))

		return nil
	})

	w.inserted = int(inserted.Load())
	if err != nil {
		return w, fmt.Errorf("inserting quotes after %d written: %w", w.inserted, err)
	}

	s.logger.DebugContext(ctx, "quotes written",
		slog.Int("inserted", w.inserted),
		slog.Int64("removed", w.removed),
	)

	return w, nil
}

func (s *ImportService) verify(ctx context.Context, req ImportRequest, w importWrite) (ImportResult, error) {
	if w.inserted != len(req.Quotes) {
		return ImportResult{}, fmt.Errorf("store acknowledged %d of %d quotes", w.inserted, len(req.Quotes))
	}

	total, err := s.seeder.Count(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("counting stored quotes: %w", err)
	}

	if expected := w.before + int64(w.inserted); total < expected {
		return ImportResult{}, fmt.Errorf("expected at least %d stored quotes, found %d", expected, total)
	}

	return ImportResult{Removed: w.removed, Inserted: w.inserted, Total: total}, nil
}
