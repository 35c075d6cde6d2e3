//go:build unit

package retry

import (
	"context"
	"testing"
	"time"

	"parkflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errs.New("temporary")

func noSleep(_ context.Context, _ time.Duration) error { return nil }

func alwaysRetry(error) bool { return true }

func TestRetrier_Do(t *testing.T) {
	policy := Policy{Attempts: 3, BaseDelay: 10 * time.Millisecond, MaxDelay: 40 * time.Millisecond, Jitter: 0.2}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		r := New(policy, nil).WithSleeper(noSleep)

		err := r.Do(context.Background(), "test", alwaysRetry, func(_ context.Context, _ int) error {
			calls++
			if calls < 3 {
				return errTemporary
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		r := New(policy, nil).WithSleeper(noSleep)

		err := r.Do(context.Background(), "test", alwaysRetry, func(_ context.Context, _ int) error {
			calls++
			return errTemporary
		})

		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.True(t, errs.Is(err, ErrAttemptsExhausted))
		assert.ErrorIs(t, err, errTemporary)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		r := New(policy, nil).WithSleeper(noSleep)

		err := r.Do(context.Background(), "test", func(error) bool { return false }, func(_ context.Context, _ int) error {
			calls++
			return errTemporary
		})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.False(t, errs.Is(err, ErrAttemptsExhausted))
	})

	t.Run("records waits between attempts", func(t *testing.T) {
		var waits []time.Duration
		r := New(policy, nil).WithSleeper(func(_ context.Context, d time.Duration) error {
			waits = append(waits, d)
			return nil
		})

		_ = r.Do(context.Background(), "test", alwaysRetry, func(_ context.Context, _ int) error {
			return errTemporary
		})

		require.Len(t, waits, 2)
		assert.GreaterOrEqual(t, waits[0], 10*time.Millisecond)
		assert.LessOrEqual(t, waits[0], 12*time.Millisecond)
		assert.GreaterOrEqual(t, waits[1], 20*time.Millisecond)
		assert.LessOrEqual(t, waits[1], 24*time.Millisecond)
	})

	t.Run("context cancellation interrupts waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		r := New(policy, nil)

		err := r.Do(ctx, "test", alwaysRetry, func(_ context.Context, _ int) error {
			calls++
			return errTemporary
		})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestRetrier_BackoffIsCapped(t *testing.T) {
	r := New(Policy{Attempts: 10, BaseDelay: 500 * time.Millisecond, MaxDelay: 4 * time.Second, Jitter: 0.2}, nil)

	for attempt := 0; attempt < 8; attempt++ {
		d := r.Backoff(attempt)
		assert.LessOrEqual(t, d, 4*time.Second+800*time.Millisecond, "attempt %d", attempt)
	}
}

func TestRetrier_BackoffLargeAttempt(t *testing.T) {
	capped := New(Policy{Attempts: 100, BaseDelay: 500 * time.Millisecond, MaxDelay: 4 * time.Second}, nil)
	unbounded := New(Policy{Attempts: 100, BaseDelay: 500 * time.Millisecond, Jitter: 0.2}, nil)

	for _, attempt := range []int{62, 63, 64, 99} {
		assert.Equal(t, 4*time.Second, capped.Backoff(attempt), "attempt %d", attempt)

		d := unbounded.Backoff(attempt)
		assert.Positive(t, d, "attempt %d", attempt)
		assert.GreaterOrEqual(t, d, maxBackoff, "attempt %d", attempt)
	}
}
