package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// Seeder implements ports.QuoteSeeder for admin tooling. Every quote gets a
// fresh ObjectId; incoming IDs are ignored.
type Seeder struct {
	coll *mongo.Collection
}

// NewSeeder creates a seeder over coll.
func NewSeeder(coll *mongo.Collection) *Seeder {
	return &Seeder{coll: coll}
}

// InsertMany writes quotes unordered, so one bad document does not stop the batch.
func (s *Seeder) InsertMany(ctx context.Context, quotes []domain.Quote) (int, error) {
	if len(quotes) == 0 {
		return 0, nil
	}

	docs := make([]quoteDocument, len(quotes))
	for i, q := range quotes {
		docs[i] = newQuoteDocument(q)
	}

	res, err := s.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		translated, _ := translateError(ctx, "insert", err)

		inserted := 0
		if res != nil {
			inserted = len(res.InsertedIDs)
		}

		return inserted, translated
	}

	return len(res.InsertedIDs), nil
}

// DeleteAll removes every quote.
func (s *Seeder) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		translated, _ := translateError(ctx, "delete", err)
		return 0, fmt.Errorf("deleting quotes: %w", translated)
	}

	return res.DeletedCount, nil
}

// Count returns the number of stored quotes.
func (s *Seeder) Count(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		translated, _ := translateError(ctx, "count", err)
		return 0, fmt.Errorf("counting quotes: %w", translated)
	}

	return n, nil
}

// EnsureIndexes creates the lookup indexes.
func (s *Seeder) EnsureIndexes(ctx context.Context) error {
	return EnsureIndexes(ctx, s.coll)
}
