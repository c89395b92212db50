package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/v2/mongo/otelmongo"

	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/platform/telemetry"
)

// Options holds process-level settings that are not part of MongoConfig.
type Options struct {
	// AppName is reported to the server in the connection handshake.
	AppName string

	// Tracing enables otelmongo command spans.
	Tracing bool

	// Metrics enables store query metrics.
	Metrics bool

	Logger *slog.Logger
}

// Store is an open connection to the quotes collection and the adapters
// built on it.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *slog.Logger

	Quotes *QuoteRepository
	Health *HealthChecker
}

// Connect creates a client for cfg and verifies the primary is reachable.
func Connect(ctx context.Context, cfg *config.MongoConfig, opts Options) (*mongo.Client, error) {
	if cfg == nil {
		return nil, errors.New("mongo config is required")
	}

	clientOpts := options.Client().ApplyURI(cfg.URI)

	if opts.AppName != "" {
		clientOpts.SetAppName(opts.AppName)
	}

	if cfg.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	if cfg.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	if cfg.ServerSelectionTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(cfg.ServerSelectionTimeout)
	}

	if opts.Tracing {
		clientOpts.SetMonitor(otelmongo.NewMonitor())
	}

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("creating mongo client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return client, nil
}

// Open connects to cfg's collection and wires the repository, its breaker
// and metrics, and the health checker. Indexes are created when
// cfg.EnsureIndexes is set.
func Open(ctx context.Context, cfg *config.MongoConfig, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "mongo.Store"))

	client, err := Connect(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}

	store := NewStore(client, cfg.Database, cfg.Collection, logger)

	var metrics *telemetry.StoreMetrics
	if opts.Metrics {
		metrics, err = telemetry.NewStoreMetrics(ServiceName)
		if err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return nil, err
		}
	}

	breaker := NewBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed",
			slog.String("from", from.String()),
			slog.String("to", to.String()),
		)
	})

	if err := metrics.ObserveCircuit(func() int64 { return int64(breaker.State()) }); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, err
	}

	store.Quotes = NewQuoteRepository(store.coll, RepositoryConfig{
		QueryTimeout: cfg.QueryTimeout,
		BatchSize:    cfg.BatchSize,
		Breaker:      breaker,
		Metrics:      metrics,
		Logger:       logger,
	})
	store.Health = NewHealthChecker(client, breaker)

	if cfg.EnsureIndexes {
		if err := EnsureIndexes(ctx, store.coll); err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return nil, err
		}

		logger.Info("indexes ensured", slog.String("index", AuthorIndexName))
	}

	logger.Info("connected to mongo",
		slog.String("database", cfg.Database),
		slog.String("collection", cfg.Collection),
	)

	return store, nil
}

// NewStore wraps an existing client. The repository has no breaker or
// metrics; Open wires those.
func NewStore(client *mongo.Client, database, collection string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	coll := client.Database(database).Collection(collection)

	return &Store{
		client: client,
		coll:   coll,
		logger: logger,
		Quotes: NewQuoteRepository(coll, RepositoryConfig{Logger: logger}),
		Health: NewHealthChecker(client, nil),
	}
}

// Seeder returns a write adapter over the same collection.
func (s *Store) Seeder() *Seeder {
	return NewSeeder(s.coll)
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnecting mongo: %w", err)
	}

	return nil
}
