package ports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name   string
	err    error
	reason string
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(context.Context) error { return s.err }

// degradingChecker also reports degradation.
type degradingChecker struct {
	stubChecker
}

func (d *degradingChecker) Degraded() (string, bool) {
	return d.reason, d.reason != ""
}

// blockingChecker waits for its context.
type blockingChecker struct {
	name string
}

func (b *blockingChecker) Name() string { return b.name }

func (b *blockingChecker) Check(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestNewHealthRegistry(t *testing.T) {
	r := NewHealthRegistry()

	require.NotNil(t, r)
	assert.Empty(t, r.checkers)
	assert.Equal(t, DefaultCheckTimeout, r.checkTimeout)

	r = NewHealthRegistry(WithCheckTimeout(time.Second))
	assert.Equal(t, time.Second, r.checkTimeout)
}

func TestRegister(t *testing.T) {
	r := NewHealthRegistry()

	require.NoError(t, r.Register(&stubChecker{name: "mongodb"}))

	err := r.Register(&stubChecker{name: "mongodb"})
	require.ErrorIs(t, err, ErrDuplicateChecker)
	assert.Contains(t, err.Error(), "mongodb")
	assert.Len(t, r.checkers, 1)
}

func TestCheckAll(t *testing.T) {
	tests := []struct {
		name     string
		checkers []HealthChecker
		want     HealthStatus
		perCheck map[string]HealthStatus
		messages map[string]string
	}{
		{
			name: "no checkers",
			want: HealthStatusHealthy,
		},
		{
			name: "all healthy",
			checkers: []HealthChecker{
				&stubChecker{name: "mongodb"},
				&stubChecker{name: "memory"},
			},
			want: HealthStatusHealthy,
			perCheck: map[string]HealthStatus{
				"mongodb": HealthStatusHealthy,
				"memory":  HealthStatusHealthy,
			},
		},
		{
			name: "failing store",
			checkers: []HealthChecker{
				&stubChecker{name: "mongodb", err: errors.New("server selection timeout")},
				&stubChecker{name: "memory"},
			},
			want: HealthStatusUnhealthy,
			perCheck: map[string]HealthStatus{
				"mongodb": HealthStatusUnhealthy,
				"memory":  HealthStatusHealthy,
			},
			messages: map[string]string{"mongodb": "server selection timeout"},
		},
		{
			name: "degraded store",
			checkers: []HealthChecker{
				&degradingChecker{stubChecker{name: "mongodb", reason: "circuit breaker half-open"}},
			},
			want:     HealthStatusDegraded,
			perCheck: map[string]HealthStatus{"mongodb": HealthStatusDegraded},
			messages: map[string]string{"mongodb": "circuit breaker half-open"},
		},
		{
			name: "degraded reporter that is fine",
			checkers: []HealthChecker{
				&degradingChecker{stubChecker{name: "mongodb"}},
			},
			want: HealthStatusHealthy,
		},
		{
			name: "failure outranks degradation",
			checkers: []HealthChecker{
				&degradingChecker{stubChecker{name: "mongodb", reason: "circuit breaker open"}},
				&stubChecker{name: "replica", err: errors.New("no primary")},
			},
			want: HealthStatusUnhealthy,
			perCheck: map[string]HealthStatus{
				"mongodb": HealthStatusDegraded,
				"replica": HealthStatusUnhealthy,
			},
		},
		{
			name: "failing check ignores degradation",
			checkers: []HealthChecker{
				&degradingChecker{stubChecker{name: "mongodb", err: errors.New("down"), reason: "circuit breaker open"}},
			},
			want:     HealthStatusUnhealthy,
			messages: map[string]string{"mongodb": "down"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewHealthRegistry()
			for _, c := range tt.checkers {
				require.NoError(t, r.Register(c))
			}

			result := r.CheckAll(context.Background())

			require.NotNil(t, result)
			assert.Equal(t, tt.want, result.Status)
			assert.Len(t, result.Checks, len(tt.checkers))
			assert.False(t, result.Timestamp.IsZero())

			for name, status := range tt.perCheck {
				assert.Equal(t, status, result.Checks[name].Status, name)
			}
			for name, msg := range tt.messages {
				assert.Equal(t, msg, result.Checks[name].Message, name)
			}
		})
	}
}

func TestCheckAll_CheckTimeout(t *testing.T) {
	r := NewHealthRegistry(WithCheckTimeout(10 * time.Millisecond))
	require.NoError(t, r.Register(&blockingChecker{name: "mongodb"}))

	result := r.CheckAll(context.Background())

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["mongodb"].Message, "deadline exceeded")
}

func TestCheckAll_ContextCancelled(t *testing.T) {
	r := NewHealthRegistry(WithCheckTimeout(0))
	require.NoError(t, r.Register(&blockingChecker{name: "mongodb"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := r.CheckAll(ctx)

	assert.Equal(t, HealthStatusUnhealthy, result.Status)
	assert.Contains(t, result.Checks["mongodb"].Message, "context canceled")
}

func TestCheckAll_Duration(t *testing.T) {
	r := NewHealthRegistry()
	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		tick = tick.Add(15 * time.Millisecond)
		return tick
	}
	require.NoError(t, r.Register(&stubChecker{name: "mongodb"}))

	result := r.CheckAll(context.Background())

	assert.Equal(t, 15*time.Millisecond, result.Checks["mongodb"].Duration)
	assert.Equal(t, int64(15), result.Checks["mongodb"].DurationMS)
}
