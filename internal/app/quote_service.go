// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"iter"
	"log/slog"

	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

// QuoteService orchestrates quote lookups.
//
// Lookups are pass-through: no retries, caching or validation beyond what
// the repository performs. Multi-record lookups stay lazy end to end.
type QuoteService struct {
	repository ports.QuoteRepository
	logger     *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Repository ports.QuoteRepository
	Logger     *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
// Panics if Repository is nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Repository == nil {
		panic("app: QuoteService requires a Repository")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		repository: cfg.Repository,
		logger:     logger,
	}
}

// FindByID retrieves a quote by its identifier.
// found is false with a nil error when no quote has that id.
func (s *QuoteService) FindByID(ctx context.Context, id string) (domain.Quote, bool, error) {
	s.logger.DebugContext(ctx, "finding quote by id",
		slog.String("quote_id", id),
	)

	quote, found, err := s.repository.FindByID(ctx, id)
	if err != nil {
		s.logFailure(ctx, "find by id", err, slog.String("quote_id", id))
		return domain.Quote{}, false, err
	}

	if !found {
		s.logger.DebugContext(ctx, "quote not found",
			slog.String("quote_id", id),
		)
		return domain.Quote{}, false, nil
	}

	return quote, true, nil
}

// FindByAuthor streams the quotes whose author matches author under
// case-insensitive, accent-sensitive comparison.
func (s *QuoteService) FindByAuthor(ctx context.Context, author string) iter.Seq2[domain.Quote, error] {
	return s.observe(ctx, "find by author",
		s.repository.FindByAuthor(ctx, author),
		slog.String("author", author),
	)
}

// FindAll streams every quote.
func (s *QuoteService) FindAll(ctx context.Context) iter.Seq2[domain.Quote, error] {
	return s.observe(ctx, "find all", s.repository.FindAll(ctx))
}

// observe passes seq through unchanged and logs how it ended.
func (s *QuoteService) observe(
	ctx context.Context,
	op string,
	seq iter.Seq2[domain.Quote, error],
	attrs ...slog.Attr,
) iter.Seq2[domain.Quote, error] {
	return func(yield func(domain.Quote, error) bool) {
		var count int

		for quote, err := range seq {
			if err != nil {
				s.logFailure(ctx, op, err, append(attrs, slog.Int("streamed", count))...)
				yield(domain.Quote{}, err)
				return
			}

			count++

			if !yield(quote, nil) {
				s.logger.LogAttrs(ctx, slog.LevelDebug, "quote stream stopped by consumer",
					append(attrs, slog.String("operation", op), slog.Int("streamed", count))...)
				return
			}
		}

		s.logger.LogAttrs(ctx, slog.LevelDebug, "quote stream completed",
			append(attrs, slog.String("operation", op), slog.Int("streamed", count))...)
	}
}

// logFailure logs a repository error. Malformed input and store
// unavailability are warnings; anything else is an error.
func (s *QuoteService) logFailure(ctx context.Context, op string, err error, attrs ...slog.Attr) {
	level := slog.LevelError
	if domain.IsUnavailable(err) || domain.IsValidation(err) {
		level = slog.LevelWarn
	}

	s.logger.LogAttrs(ctx, level, "quote lookup failed",
		append(attrs, slog.String("operation", op), slog.Any("error", err))...)
}
