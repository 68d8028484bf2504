package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(3, time.Minute, 1)

	for i := 0; i < 2; i++ {
		require.NoError(t, cb.Allow())
		cb.RecordFailure()
	}
	assert.Equal(t, CircuitStateClosed, cb.State())

	require.NoError(t, cb.Allow())
	cb.RecordFailure()
	assert.Equal(t, CircuitStateOpen, cb.State())
	assert.ErrorIs(t, cb.Allow(), ErrCircuitOpen)
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Minute, 1)
	current := time.Now()
	cb.now = func() time.Time { return current }

	require.NoError(t, cb.Allow())
	cb.RecordFailure()
	assert.Equal(t, CircuitStateOpen, cb.State())

	current = current.Add(2 * time.Minute)
	require.NoError(t, cb.Allow())
	assert.Equal(t, CircuitStateHalfOpen, cb.State())

	// Probe budget is spent until the first probe reports back.
	assert.ErrorIs(t, cb.Allow(), ErrCircuitOpen)

	cb.RecordSuccess()
	assert.Equal(t, CircuitStateClosed, cb.State())
	assert.NoError(t, cb.Allow())
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Minute, 1)
	current := time.Now()
	cb.now = func() time.Time { return current }

	require.NoError(t, cb.Allow())
	cb.RecordFailure()

	current = current.Add(2 * time.Minute)
	require.NoError(t, cb.Allow())
	cb.RecordFailure()

	assert.Equal(t, CircuitStateOpen, cb.State())
	assert.ErrorIs(t, cb.Allow(), ErrCircuitOpen)
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return fmt.Errorf("fetch page: %w", ErrTransient)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("bad request")
	attempts := 0
	err := Retry(context.Background(), 5, time.Millisecond, func() error {
		attempts++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts)
}

func TestRetryExhaustsBudget(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), 2, time.Millisecond, func() error {
		attempts++
		return fmt.Errorf("still down: %w", ErrTransient)
	})

	assert.ErrorIs(t, err, ErrTransient)
	assert.Equal(t, 3, attempts)
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Hour, func() error {
		return fmt.Errorf("down: %w", ErrTransient)
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSingleFlightCollapsesConcurrentCalls(t *testing.T) {
	var flight SingleFlight
	release := make(chan struct{})
	var calls int

	var wg sync.WaitGroup
	results := make([]any, 4)
	for i := range results {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			value, err, _ := flight.Do("fixture:42", func() (any, error) {
				calls++
				<-release
				return "payload", nil
			})
			require.NoError(t, err)
			results[slot] = value
		}(i)
	}

	// Give the goroutines a moment to pile onto the same key.
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, 1, calls)
	for _, value := range results {
		assert.Equal(t, "payload", value)
	}
}

func TestSingleFlightDistinctKeysRunIndependently(t *testing.T) {
	var flight SingleFlight

	a, err, shared := flight.Do("a", func() (any, error) { return 1, nil })
	require.NoError(t, err)
	assert.False(t, shared)
	assert.Equal(t, 1, a)

	b, err, shared := flight.Do("b", func() (any, error) { return 2, nil })
	require.NoError(t, err)
	assert.False(t, shared)
	assert.Equal(t, 2, b)
}
