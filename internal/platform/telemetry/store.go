package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Query outcomes recorded by StoreMetrics.
const (
	OutcomeSuccess     = "success"
	OutcomeNotFound    = "not_found"
	OutcomeInvalid     = "invalid"
	OutcomeError       = "error"
	OutcomeCanceled    = "canceled"
	OutcomeCircuitOpen = "circuit_open"
)

// StoreMetrics records document store query metrics.
type StoreMetrics struct {
	store         string
	queryDuration metric.Float64Histogram
	queryTotal    metric.Int64Counter
	streamed      metric.Int64Counter
	meter         metric.Meter
}

// NewStoreMetrics creates query metrics labelled with the store name.
func NewStoreMetrics(store string) (*StoreMetrics, error) {
	meter := otel.Meter(instrumentationName)

	queryDuration, err := meter.Float64Histogram(
		"store.query.duration",
		metric.WithDescription("Duration of document store queries, including cursor iteration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query duration metric: %w", err)
	}

	queryTotal, err := meter.Int64Counter(
		"store.query.total",
		metric.WithDescription("Total number of document store queries"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating query counter: %w", err)
	}

	streamed, err := meter.Int64Counter(
		"store.documents.streamed",
		metric.WithDescription("Documents read from the store by streamed queries"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating streamed counter: %w", err)
	}

	return &StoreMetrics{
		store:         store,
		queryDuration: queryDuration,
		queryTotal:    queryTotal,
		streamed:      streamed,
		meter:         meter,
	}, nil
}

// RecordQuery records one finished query. A nil receiver is a no-op.
func (m *StoreMetrics) RecordQuery(ctx context.Context, operation, outcome string, duration time.Duration, documents int) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("db.system", m.store),
		attribute.String("db.operation", operation),
		attribute.String("outcome", outcome),
	)

	m.queryDuration.Record(ctx, duration.Seconds(), attrs)
	m.queryTotal.Add(ctx, 1, attrs)

	if documents > 0 {
		m.streamed.Add(ctx, int64(documents), metric.WithAttributes(
			attribute.String("db.system", m.store),
			attribute.String("db.operation", operation),
		))
	}
}

// ObserveCircuit registers a gauge reporting the breaker state returned by
// state (0 closed, 1 open, 2 half-open).
func (m *StoreMetrics) ObserveCircuit(state func() int64) error {
	if m == nil {
		return nil
	}

	_, err := m.meter.Int64ObservableGauge(
		"store.circuit.state",
		metric.WithDescription("Circuit breaker state: 0 closed, 1 open, 2 half-open"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(state(), metric.WithAttributes(attribute.String("db.system", m.store)))
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("creating circuit state gauge: %w", err)
	}

	return nil
}
