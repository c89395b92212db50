package mongo

import (
	"sync"
	"time"

	"github.com/jsamuelsen/quotes-service/internal/platform/config"
)

// State represents the current state of the circuit breaker.
type State int

const (
	// StateClosed lets every query through.
	StateClosed State = iota

	// StateOpen fails every query fast without touching the store.
	StateOpen

	// StateHalfOpen lets a limited number of probe queries through.
	StateHalfOpen
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Breaker guards store queries. A nil *Breaker allows everything.
//
// State transitions:
//   - Closed → Open: after MaxFailures consecutive store failures
//   - Open → HalfOpen: once Timeout has elapsed since the last failure
//   - HalfOpen → Closed: after HalfOpenLimit consecutive successful probes
//   - HalfOpen → Open: on any failed probe
//
// Queries are never retried; a blocked query fails with ErrCircuitOpen.
type Breaker struct {
	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	inFlight    int
	lastFailure time.Time
	cfg         config.CircuitBreakerConfig

	onStateChange func(from, to State)
	now           func() time.Time
}

// NewBreaker returns a breaker for cfg, or nil when cfg is disabled.
func NewBreaker(cfg config.CircuitBreakerConfig) *Breaker {
	if !cfg.Enabled {
		return nil
	}

	return &Breaker{
		state: StateClosed,
		cfg:   cfg,
		now:   time.Now,
	}
}

// OnStateChange registers fn to be called after every transition.
// fn runs on the goroutine that caused the transition, outside the lock.
func (b *Breaker) OnStateChange(fn func(from, to State)) {
	if b == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.onStateChange = fn
}

// Acquire admits one query. The returned done func must be called exactly
// once with whether the query failed against the store. ok is false when
// the circuit is open or the half-open probe budget is used up.
func (b *Breaker) Acquire() (done func(failed bool), ok bool) {
	if b == nil {
		return func(bool) {}, true
	}

	b.mu.Lock()

	var from, to State

	switch b.state {
	case StateOpen:
		if b.now().Sub(b.lastFailure) < b.cfg.Timeout {
			b.mu.Unlock()
			return nil, false
		}

		from, to = b.transition(StateHalfOpen)
	case StateHalfOpen:
		if b.inFlight >= b.cfg.HalfOpenLimit {
			b.mu.Unlock()
			return nil, false
		}
	}

	probe := b.state == StateHalfOpen
	if probe {
		b.inFlight++
	}

	fn := b.onStateChange
	b.mu.Unlock()

	notify(fn, from, to)

	var once sync.Once

	return func(failed bool) {
		once.Do(func() { b.record(probe, failed) })
	}, true
}

// State returns the current state.
func (b *Breaker) State() State {
	if b == nil {
		return StateClosed
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.state
}

func (b *Breaker) record(probe, failed bool) {
	b.mu.Lock()

	if probe && b.inFlight > 0 {
		b.inFlight--
	}

	var from, to State

	switch {
	case failed:
		b.lastFailure = b.now()

		switch b.state {
		case StateClosed:
			b.failures++
			if b.failures >= b.cfg.MaxFailures {
				from, to = b.transition(StateOpen)
			}
		case StateHalfOpen:
			from, to = b.transition(StateOpen)
		}
	case b.state == StateClosed:
		b.failures = 0
	case b.state == StateHalfOpen && probe:
		b.successes++
		if b.successes >= b.cfg.HalfOpenLimit {
			from, to = b.transition(StateClosed)
		}
	}

	fn := b.onStateChange
	b.mu.Unlock()

	notify(fn, from, to)
}

// transition must be called with the lock held. It returns from == to when
// nothing changed.
func (b *Breaker) transition(next State) (State, State) {
	prev := b.state
	if prev == next {
		return prev, next
	}

	b.state = next
	b.failures = 0
	b.successes = 0

	if next != StateHalfOpen {
		b.inFlight = 0
	}

	return prev, next
}

func notify(fn func(from, to State), from, to State) {
	if fn != nil && from != to {
		fn(from, to)
	}
}
