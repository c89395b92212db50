package mongo

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
	"github.com/jsamuelsen/quotes-service/internal/platform/telemetry"
)

const (
	instrumentationName = "github.com/jsamuelsen/quotes-service/internal/adapters/mongo"

	// cursorCloseTimeout bounds killCursors after the caller's context is gone.
	cursorCloseTimeout = 5 * time.Second

	opFindByID     = "find_by_id"
	opFindByAuthor = "find_by_author"
	opFindAll      = "find_all"
)

// quoteDocument is the stored shape of a quote.
type quoteDocument struct {
	ID     bson.ObjectID `bson:"_id,omitempty"`
	Text   string        `bson:"quoteText"`
	Author string        `bson:"quoteAuthor"`
	Genre  string        `bson:"quoteGenre"`
}

func (d quoteDocument) toDomain() domain.Quote {
	return domain.Quote{
		ID:     d.ID.Hex(),
		Text:   d.Text,
		Author: d.Author,
		Genre:  d.Genre,
	}
}

func newQuoteDocument(q domain.Quote) quoteDocument {
	return quoteDocument{
		ID:     bson.NewObjectID(),
		Text:   q.Text,
		Author: q.Author,
		Genre:  q.Genre,
	}
}

// RepositoryConfig configures a QuoteRepository.
type RepositoryConfig struct {
	// QueryTimeout bounds each query, including cursor iteration. Zero means
	// only the caller's deadline applies.
	QueryTimeout time.Duration

	// BatchSize is the cursor batch size for streamed queries. Zero uses the
	// server default.
	BatchSize int32

	// Breaker guards every query. Nil disables it.
	Breaker *Breaker

	// Metrics records query metrics. Nil disables them.
	Metrics *telemetry.StoreMetrics

	Logger *slog.Logger
}

// QuoteRepository implements ports.QuoteRepository on a MongoDB collection.
//
// Author lookups use the author collation so they are case-insensitive and
// accent-sensitive, and are answered from the author_idx_ci index.
type QuoteRepository struct {
	coll   *mongo.Collection
	cfg    RepositoryConfig
	logger *slog.Logger
	tracer trace.Tracer
}

// NewQuoteRepository creates a repository over coll.
func NewQuoteRepository(coll *mongo.Collection, cfg RepositoryConfig) *QuoteRepository {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteRepository{
		coll:   coll,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "mongo.QuoteRepository")),
		tracer: otel.Tracer(instrumentationName),
	}
}

// CircuitState returns the breaker state.
func (r *QuoteRepository) CircuitState() State {
	return r.cfg.Breaker.State()
}

// FindByID looks up one quote by its hex ObjectId.
func (r *QuoteRepository) FindByID(ctx context.Context, id string) (domain.Quote, bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		r.cfg.Metrics.RecordQuery(ctx, opFindByID, telemetry.OutcomeInvalid, 0, 0)
		return domain.Quote{}, false, domain.NewMalformedIDError(id)
	}

	q, err := r.begin(ctx, opFindByID, attribute.String("quote.id", id))
	if err != nil {
		return domain.Quote{}, false, err
	}

	opts := options.FindOne()
	if comment := queryComment(ctx); comment != "" {
		opts.SetComment(comment)
	}

	var doc quoteDocument

	err = r.coll.FindOne(q.ctx, bson.D{{Key: "_id", Value: oid}}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		q.finish(nil, telemetry.OutcomeNotFound, 0)
		return domain.Quote{}, false, nil
	}

	if err != nil {
		return domain.Quote{}, false, q.finish(err, "", 0)
	}

	q.finish(nil, telemetry.OutcomeSuccess, 1)

	return doc.toDomain(), true, nil
}

// FindByAuthor streams the quotes by author under the author collation.
func (r *QuoteRepository) FindByAuthor(ctx context.Context, author string) iter.Seq2[domain.Quote, error] {
	opts := r.findOptions(ctx).SetCollation(AuthorCollation())

	return r.stream(ctx, opFindByAuthor, bson.D{{Key: "quoteAuthor", Value: author}}, opts,
		attribute.String("quote.author", author),
	)
}

// FindAll streams every quote in natural order.
func (r *QuoteRepository) FindAll(ctx context.Context) iter.Seq2[domain.Quote, error] {
	return r.stream(ctx, opFindAll, bson.D{}, r.findOptions(ctx))
}

func (r *QuoteRepository) findOptions(ctx context.Context) *options.FindOptionsBuilder {
	opts := options.Find()

	if r.cfg.BatchSize > 0 {
		opts.SetBatchSize(r.cfg.BatchSize)
	}

	if comment := queryComment(ctx); comment != "" {
		opts.SetComment(comment)
	}

	return opts
}

// stream runs a find lazily: the query is not sent until the sequence is
// ranged over, and documents are decoded one at a time as the consumer pulls.
func (r *QuoteRepository) stream(
	ctx context.Context,
	op string,
	filter bson.D,
	opts *options.FindOptionsBuilder,
	attrs ...attribute.KeyValue,
) iter.Seq2[domain.Quote, error] {
	return func(yield func(domain.Quote, error) bool) {
		q, err := r.begin(ctx, op, attrs...)
		if err != nil {
			yield(domain.Quote{}, err)
			return
		}

		cursor, err := r.coll.Find(q.ctx, filter, opts)
		if err != nil {
			yield(domain.Quote{}, q.finish(err, "", 0))
			return
		}

		var n int

		// A consumer that panics inside yield skips every finish below.
		defer func() { q.abandon(n) }()
		defer r.closeCursor(ctx, op, cursor)

		for cursor.Next(q.ctx) {
			var doc quoteDocument
			if err := cursor.Decode(&doc); err != nil {
				yield(domain.Quote{}, q.finish(fmt.Errorf("%w: %w", errDecode, err), "", n))
				return
			}

			n++

			if !yield(doc.toDomain(), nil) {
				q.finish(nil, telemetry.OutcomeSuccess, n)
				return
			}
		}

		if err := cursor.Err(); err != nil {
			yield(domain.Quote{}, q.finish(err, "", n))
			return
		}

		q.finish(nil, telemetry.OutcomeSuccess, n)
	}
}

func (r *QuoteRepository) closeCursor(ctx context.Context, op string, cursor *mongo.Cursor) {
	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cursorCloseTimeout)
	defer cancel()

	if err := cursor.Close(closeCtx); err != nil {
		logging.FromContext(ctx).DebugContext(ctx, "closing cursor failed",
			slog.String("operation", op),
			slog.Any("error", err),
		)
	}
}

// query tracks one admitted store call from breaker admission to completion.
type query struct {
	r      *QuoteRepository
	op     string
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	span   trace.Span
	done   func(failed bool)
	start  time.Time

	finished bool
}

func (r *QuoteRepository) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (*query, error) {
	done, ok := r.cfg.Breaker.Acquire()
	if !ok {
		r.cfg.Metrics.RecordQuery(ctx, op, telemetry.OutcomeCircuitOpen, 0, 0)
		logging.FromContext(ctx).WarnContext(ctx, "query blocked by circuit breaker",
			slog.String("operation", op),
		)

		return nil, circuitOpenError()
	}

	qctx, span := r.tracer.Start(ctx, "mongo."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(append(attrs,
			attribute.String("db.system", ServiceName),
			attribute.String("db.collection.name", r.coll.Name()),
		)...),
	)

	cancel := context.CancelFunc(func() {})
	if r.cfg.QueryTimeout > 0 {
		qctx, cancel = context.WithTimeout(qctx, r.cfg.QueryTimeout)
	}

	return &query{
		r:      r,
		op:     op,
		parent: ctx,
		ctx:    qctx,
		cancel: cancel,
		span:   span,
		done:   done,
		start:  time.Now(),
	}, nil
}

// finish releases the query and returns err translated to the domain
// taxonomy. outcome is used only when err is nil.
func (q *query) finish(err error, outcome string, documents int) error {
	q.finished = true

	defer q.span.End()
	defer q.cancel()

	translated, storeFault := translateError(q.parent, q.op, err)
	q.done(storeFault)

	duration := time.Since(q.start)
	logger := logging.FromContext(q.parent)

	switch {
	case translated == nil:
		q.span.SetAttributes(attribute.Int("db.documents", documents))
	case storeFault:
		outcome = telemetry.OutcomeError
		logger.WarnContext(q.parent, "store query failed",
			slog.String("operation", q.op),
			slog.Duration("duration", duration),
			slog.Any("error", err),
		)
	case q.parent.Err() != nil:
		outcome = telemetry.OutcomeCanceled
	default:
		outcome = telemetry.OutcomeError
		logger.ErrorContext(q.parent, "store query returned unreadable data",
			slog.String("operation", q.op),
			slog.Any("error", err),
		)
	}

	if translated != nil {
		q.span.RecordError(err)
		q.span.SetStatus(codes.Error, translated.Error())
	}

	q.r.cfg.Metrics.RecordQuery(q.parent, q.op, outcome, duration, documents)

	return translated
}

// abandon ends a query whose consumer stopped without finish running. The
// breaker slot is released without counting a store failure. It is a no-op
// after finish.
func (q *query) abandon(documents int) {
	if q.finished {
		return
	}

	q.finished = true

	defer q.span.End()
	defer q.cancel()

	q.done(false)

	q.span.SetAttributes(attribute.Int("db.documents", documents))
	q.span.SetStatus(codes.Error, "stream abandoned by consumer")

	q.r.cfg.Metrics.RecordQuery(q.parent, q.op, telemetry.OutcomeCanceled, time.Since(q.start), documents)
}

// queryComment tags server-side operations with the request id so they can
// be found in the profiler and currentOp.
func queryComment(ctx context.Context) string {
	return logging.ScopeFrom(ctx).RequestID
}
