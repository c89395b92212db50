package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// AuthorIndexName is the index that answers author lookups.
const AuthorIndexName = "author_idx_ci"

// AuthorCollation compares authors ignoring case but not diacritics.
// Queries must pass the same collation to use AuthorIndexName.
func AuthorCollation() *options.Collation {
	return &options.Collation{Locale: "en", Strength: 2}
}

// EnsureIndexes creates the lookup indexes on coll. Creating an index that
// already exists with the same definition is a no-op on the server.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	model := mongo.IndexModel{
		Keys: bson.D{{Key: "quoteAuthor", Value: 1}},
		Options: options.Index().
			SetName(AuthorIndexName).
			SetCollation(AuthorCollation()),
	}

	if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
		translated, _ := translateError(ctx, "create index", err)
		return fmt.Errorf("creating index %s: %w", AuthorIndexName, translated)
	}

	return nil
}
