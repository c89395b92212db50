// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrValidation, ErrUnavailable, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"
	"iter"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// QuoteRepository is the read-only persistence port for quotes.
//
// Multi-record lookups return lazy sequences: nothing is read from the store
// until the caller ranges over the sequence, and records are pulled one at a
// time. A sequence yields a non-nil error at most once, as its final element.
// Breaking out of the range releases the underlying cursor.
//
// Example usage:
//
//	for quote, err := range repo.FindAll(ctx) {
//	    if err != nil {
//	        return err
//	    }
//	    emit(quote)
//	}
type QuoteRepository interface {
	// FindByID looks up a quote by its store identifier.
	// Returns found=false with a nil error when no record matches.
	// Returns a domain.ErrValidation error if id is not in the store's format.
	FindByID(ctx context.Context, id string) (quote domain.Quote, found bool, err error)

	// FindByAuthor streams every quote whose author equals author under
	// case-insensitive, accent-sensitive comparison.
	FindByAuthor(ctx context.Context, author string) iter.Seq2[domain.Quote, error]

	// FindAll streams every quote in the collection.
	FindAll(ctx context.Context) iter.Seq2[domain.Quote, error]
}

// QuoteSeeder is the write port used by admin tooling to load a dataset.
// The HTTP surface never receives one.
type QuoteSeeder interface {
	// InsertMany stores quotes, ignoring their IDs, and returns how many were written.
	InsertMany(ctx context.Context, quotes []domain.Quote) (int, error)

	// DeleteAll removes every quote and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)

	// Count returns the number of stored quotes.
	Count(ctx context.Context) (int64, error)

	// EnsureIndexes creates the lookup indexes if they do not exist.
	EnsureIndexes(ctx context.Context) error
}
