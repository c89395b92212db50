// Package mongo provides the MongoDB adapter for the quote repository port.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// ServiceName identifies the store in errors, health checks and telemetry.
const ServiceName = "mongodb"

var (
	// ErrCircuitOpen is the reason given when a query is refused by the breaker.
	ErrCircuitOpen = errors.New("circuit breaker open")

	errDecode = errors.New("decoding document")
)

// translateError maps a driver error to the domain taxonomy.
//
// Cancellation or expiry of the caller's context is returned as-is (wrapped)
// so the HTTP layer can tell a slow client from a slow store. Decode failures
// are internal errors. Everything else the driver returns means the store
// could not answer and becomes domain.ErrUnavailable.
//
// storeFault reports whether the error should count against the breaker.
func translateError(ctx context.Context, op string, err error) (translated error, storeFault bool) {
	if err == nil {
		return nil, false
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("mongo %s: %w", op, ctxErr), false
	}

	if errors.Is(err, errDecode) {
		return fmt.Errorf("mongo %s: %w", op, err), false
	}

	if isDecodeError(err) {
		return fmt.Errorf("mongo %s: %w: %w", op, errDecode, err), false
	}

	return newStoreError(op+" failed", err), true
}

func newStoreError(reason string, cause error) error {
	return domain.NewStoreUnavailableError(ServiceName, reason, cause)
}

func circuitOpenError() error {
	return newStoreError("circuit open", ErrCircuitOpen)
}

func isDecodeError(err error) bool {
	var decodeErr *bson.DecodeError
	return errors.As(err, &decodeErr)
}
