package ports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultCheckTimeout bounds a single readiness check.
const DefaultCheckTimeout = 2 * time.Second

// ErrDuplicateChecker is returned when a checker name is registered twice.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// HealthChecker is implemented by the quote stores so readiness can report
// whether lookups would currently succeed.
type HealthChecker interface {
	// Name identifies the component in readiness responses.
	Name() string

	// Check returns nil when the component can serve queries.
	Check(ctx context.Context) error
}

// DegradationReporter is optionally implemented by a HealthChecker whose
// component can answer a check while still serving queries poorly, such as
// a store behind a breaker that is not closed.
type DegradationReporter interface {
	Degraded() (reason string, degraded bool)
}

// HealthRegistry aggregates the registered checks for the readiness probe.
type HealthRegistry interface {
	Register(checker HealthChecker) error
	CheckAll(ctx context.Context) *HealthResult
}

// HealthStatus is the state of one component or of the whole service.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// worse reports whether s outranks other. Unhealthy beats degraded beats healthy.
func (s HealthStatus) worse(other HealthStatus) bool {
	return severity(s) > severity(other)
}

func severity(s HealthStatus) int {
	switch s {
	case HealthStatusDegraded:
		return 1
	case HealthStatusUnhealthy:
		return 2
	default:
		return 0
	}
}

// HealthResult is the aggregated readiness outcome.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

// CheckResult is the outcome of one checker.
type CheckResult struct {
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`

	// Duration is reported in milliseconds as durationMs.
	Duration   time.Duration `json:"-"`
	DurationMS int64         `json:"durationMs"`
}

// RegistryOption configures a DefaultHealthRegistry.
type RegistryOption func(*DefaultHealthRegistry)

// WithCheckTimeout bounds each check. Non-positive values disable the bound
// and leave only the caller's deadline.
func WithCheckTimeout(d time.Duration) RegistryOption {
	return func(r *DefaultHealthRegistry) {
		r.checkTimeout = d
	}
}

// DefaultHealthRegistry runs its checkers concurrently. It is safe for
// concurrent use.
type DefaultHealthRegistry struct {
	mu           sync.RWMutex
	checkers     []HealthChecker
	checkTimeout time.Duration
	now          func() time.Time
}

// NewHealthRegistry creates an empty registry with DefaultCheckTimeout.
func NewHealthRegistry(opts ...RegistryOption) *DefaultHealthRegistry {
	r := &DefaultHealthRegistry{
		checkers:     make([]HealthChecker, 0, 1),
		checkTimeout: DefaultCheckTimeout,
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds checker, rejecting a name that is already taken.
func (r *DefaultHealthRegistry) Register(checker HealthChecker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := checker.Name()
	for _, c := range r.checkers {
		if c.Name() == name {
			return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
		}
	}

	r.checkers = append(r.checkers, checker)

	return nil
}

// CheckAll runs every checker and folds their results into the worst status.
// A registry with no checkers is healthy.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	checkers := append([]HealthChecker(nil), r.checkers...)
	r.mu.RUnlock()

	results := make([]*CheckResult, len(checkers))

	// Checks never fail the group; each failure is recorded in its own slot.
	var g errgroup.Group
	for i, checker := range checkers {
		g.Go(func() error {
			results[i] = r.run(ctx, checker)
			return nil
		})
	}
	_ = g.Wait()

	out := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(checkers)),
		Timestamp: r.now(),
	}

	for i, checker := range checkers {
		out.Checks[checker.Name()] = results[i]
		if results[i].Status.worse(out.Status) {
			out.Status = results[i].Status
		}
	}

	return out
}

func (r *DefaultHealthRegistry) run(ctx context.Context, checker HealthChecker) *CheckResult {
	if r.checkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.checkTimeout)
		defer cancel()
	}

	start := r.now()
	err := checker.Check(ctx)
	elapsed := r.now().Sub(start)

	res := &CheckResult{
		Status:     HealthStatusHealthy,
		Duration:   elapsed,
		DurationMS: elapsed.Milliseconds(),
	}

	if err != nil {
		res.Status = HealthStatusUnhealthy
		res.Message = err.Error()

		return res
	}

	if dr, ok := checker.(DegradationReporter); ok {
		if reason, degraded := dr.Degraded(); degraded {
			res.Status = HealthStatusDegraded
			res.Message = reason
		}
	}

	return res
}
