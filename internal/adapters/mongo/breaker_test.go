package mongo

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/platform/config"
)

func newTestBreaker(maxFailures, halfOpenLimit int, timeout time.Duration) (*Breaker, *time.Time) {
	now := time.Now()

	b := NewBreaker(config.CircuitBreakerConfig{
		Enabled:       true,
		MaxFailures:   maxFailures,
		Timeout:       timeout,
		HalfOpenLimit: halfOpenLimit,
	})
	b.now = func() time.Time { return now }

	return b, &now
}

// fail runs one admitted query that fails against the store.
func fail(t *testing.T, b *Breaker) {
	t.Helper()

	done, ok := b.Acquire()
	require.True(t, ok)
	done(true)
}

func succeed(t *testing.T, b *Breaker) {
	t.Helper()

	done, ok := b.Acquire()
	require.True(t, ok)
	done(false)
}

func TestNewBreaker_Disabled(t *testing.T) {
	b := NewBreaker(config.CircuitBreakerConfig{Enabled: false})

	assert.Nil(t, b)
	assert.Equal(t, StateClosed, b.State())

	done, ok := b.Acquire()
	require.True(t, ok)
	assert.NotPanics(t, func() { done(true) })
	assert.NotPanics(t, func() { b.OnStateChange(func(State, State) {}) })
}

func TestBreaker_ClosedToOpen(t *testing.T) {
	b, _ := newTestBreaker(3, 2, 30*time.Second)

	fail(t, b)
	fail(t, b)
	assert.Equal(t, StateClosed, b.State())

	fail(t, b)
	assert.Equal(t, StateOpen, b.State())

	_, ok := b.Acquire()
	assert.False(t, ok)
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	b, _ := newTestBreaker(3, 2, 30*time.Second)

	fail(t, b)
	fail(t, b)
	succeed(t, b)

	fail(t, b)
	fail(t, b)
	assert.Equal(t, StateClosed, b.State())

	fail(t, b)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_OpenToHalfOpen(t *testing.T) {
	b, now := newTestBreaker(1, 2, 100*time.Millisecond)

	fail(t, b)
	_, ok := b.Acquire()
	require.False(t, ok)

	*now = now.Add(150 * time.Millisecond)

	_, ok = b.Acquire()
	assert.True(t, ok)
	assert.Equal(t, StateHalfOpen, b.State())
}

func TestBreaker_HalfOpenProbeBudget(t *testing.T) {
	b, now := newTestBreaker(1, 2, 100*time.Millisecond)

	fail(t, b)
	*now = now.Add(150 * time.Millisecond)

	first, ok := b.Acquire()
	require.True(t, ok)
	second, ok := b.Acquire()
	require.True(t, ok)

	_, ok = b.Acquire()
	assert.False(t, ok, "probe budget exhausted")

	first(false)
	second(false)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenToOpen(t *testing.T) {
	b, now := newTestBreaker(1, 2, 100*time.Millisecond)

	fail(t, b)
	*now = now.Add(150 * time.Millisecond)

	fail(t, b)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_DoneIsIdempotent(t *testing.T) {
	b, _ := newTestBreaker(2, 1, time.Second)

	done, ok := b.Acquire()
	require.True(t, ok)

	done(true)
	done(true)

	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_OnStateChange(t *testing.T) {
	var transitions [][2]State

	b, now := newTestBreaker(1, 1, 10*time.Millisecond)
	b.OnStateChange(func(from, to State) {
		transitions = append(transitions, [2]State{from, to})
	})

	fail(t, b)
	*now = now.Add(20 * time.Millisecond)
	succeed(t, b)

	assert.Equal(t, [][2]State{
		{StateClosed, StateOpen},
		{StateOpen, StateHalfOpen},
		{StateHalfOpen, StateClosed},
	}, transitions)
}

func TestBreaker_Concurrent(t *testing.T) {
	b, _ := newTestBreaker(100, 10, time.Second)

	var (
		wg     sync.WaitGroup
		admits atomic.Int64
	)

	for range 1000 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			done, ok := b.Acquire()
			if !ok {
				return
			}

			done(admits.Add(1)%2 == 1)
		}()
	}

	wg.Wait()

	assert.Contains(t, []State{StateClosed, StateOpen, StateHalfOpen}, b.State())
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateClosed, "closed"},
		{StateOpen, "open"},
		{StateHalfOpen, "half-open"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.String())
		})
	}
}
