package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// HealthChecker reports whether the primary answers a ping. While the
// repository breaker is not closed, a passing ping is reported as degraded.
type HealthChecker struct {
	client  *mongo.Client
	breaker *Breaker
}

// NewHealthChecker creates a health checker for client. breaker may be nil.
func NewHealthChecker(client *mongo.Client, breaker *Breaker) *HealthChecker {
	return &HealthChecker{client: client, breaker: breaker}
}

// Name implements ports.HealthChecker.
func (h *HealthChecker) Name() string {
	return ServiceName
}

// Check implements ports.HealthChecker.
func (h *HealthChecker) Check(ctx context.Context) error {
	return h.client.Ping(ctx, readpref.Primary())
}

// Degraded implements ports.DegradationReporter.
func (h *HealthChecker) Degraded() (string, bool) {
	if state := h.breaker.State(); state != StateClosed {
		return "circuit breaker " + state.String(), true
	}

	return "", false
}
