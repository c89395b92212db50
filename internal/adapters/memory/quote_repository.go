// Package memory provides an in-process quote store for local development
// and tests. It honours the same lookup rules as the MongoDB adapter.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// ServiceName identifies the store in health checks.
const ServiceName = "memory"

// seedRecord is one entry of a JSON seed file.
type seedRecord struct {
	ID     string `json:"id,omitempty"`
	Text   string `json:"quoteText"`
	Author string `json:"quoteAuthor"`
	Genre  string `json:"quoteGenre"`
}

// QuoteRepository implements ports.QuoteRepository and ports.QuoteSeeder
// over a slice. Records keep insertion order.
type QuoteRepository struct {
	mu     sync.RWMutex
	quotes []domain.Quote
	byID   map[string]int
}

// New creates a repository holding quotes. Quotes without a valid ObjectId
// hex id get a fresh one.
func New(quotes []domain.Quote) *QuoteRepository {
	r := &QuoteRepository{byID: make(map[string]int, len(quotes))}
	r.insert(quotes)

	return r
}

// LoadFile reads a JSON array of quotes from path.
func LoadFile(path string) (*QuoteRepository, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	quotes, err := DecodeQuotes(f)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}

	return New(quotes), nil
}

// DecodeQuotes parses a JSON array of {quoteText, quoteAuthor, quoteGenre}
// records. An optional "id" is kept when it is a valid ObjectId.
func DecodeQuotes(r io.Reader) ([]domain.Quote, error) {
	var records []seedRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding quotes: %w", err)
	}

	quotes := make([]domain.Quote, len(records))
	for i, rec := range records {
		quotes[i] = domain.Quote{ID: rec.ID, Text: rec.Text, Author: rec.Author, Genre: rec.Genre}
	}

	return quotes, nil
}

// FindByID returns the quote with id. Ids not in ObjectId hex form are
// validation errors, matching the MongoDB adapter.
func (r *QuoteRepository) FindByID(ctx context.Context, id string) (domain.Quote, bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return domain.Quote{}, false, domain.NewMalformedIDError(id)
	}

	if err := ctx.Err(); err != nil {
		return domain.Quote{}, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[oid.Hex()]
	if !ok {
		return domain.Quote{}, false, nil
	}

	return r.quotes[i], true, nil
}

// FindByAuthor streams quotes whose author matches under domain.SameAuthor.
func (r *QuoteRepository) FindByAuthor(ctx context.Context, author string) iter.Seq2[domain.Quote, error] {
	return r.stream(ctx, func(q domain.Quote) bool {
		return domain.SameAuthor(q.Author, author)
	})
}

// FindAll streams every quote.
func (r *QuoteRepository) FindAll(ctx context.Context) iter.Seq2[domain.Quote, error] {
	return r.stream(ctx, func(domain.Quote) bool { return true })
}

// stream iterates a snapshot taken when ranging starts.
func (r *QuoteRepository) stream(ctx context.Context, match func(domain.Quote) bool) iter.Seq2[domain.Quote, error] {
	return func(yield func(domain.Quote, error) bool) {
		r.mu.RLock()
		snapshot := r.quotes[:len(r.quotes):len(r.quotes)]
		r.mu.RUnlock()

		for _, q := range snapshot {
			if err := ctx.Err(); err != nil {
				yield(domain.Quote{}, err)
				return
			}

			if match(q) && !yield(q, nil) {
				return
			}
		}
	}
}

// InsertMany appends quotes with fresh ids.
func (r *QuoteRepository) InsertMany(ctx context.Context, quotes []domain.Quote) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	fresh := make([]domain.Quote, len(quotes))
	for i, q := range quotes {
		q.ID = ""
		fresh[i] = q
	}

	r.insert(fresh)

	return len(fresh), nil
}

// DeleteAll removes every quote.
func (r *QuoteRepository) DeleteAll(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.quotes))
	r.quotes = nil
	r.byID = make(map[string]int)

	return n, nil
}

// Count returns the number of quotes.
func (r *QuoteRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.quotes)), nil
}

// EnsureIndexes is a no-op; lookups scan the slice.
func (r *QuoteRepository) EnsureIndexes(context.Context) error {
	return nil
}

// Name implements ports.HealthChecker.
func (r *QuoteRepository) Name() string {
	return ServiceName
}

// Check implements ports.HealthChecker. The in-process store is always ready.
func (r *QuoteRepository) Check(context.Context) error {
	return nil
}

func (r *QuoteRepository) insert(quotes []domain.Quote) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, q := range quotes {
		// Ids are kept in the lowercase form ObjectID.Hex produces.
		if oid, err := bson.ObjectIDFromHex(q.ID); err == nil {
			q.ID = oid.Hex()
		} else {
			q.ID = bson.NewObjectID().Hex()
		}

		if _, dup := r.byID[q.ID]; dup {
			q.ID = bson.NewObjectID().Hex()
		}

		r.byID[q.ID] = len(r.quotes)
		r.quotes = append(r.quotes, q)
	}
}
