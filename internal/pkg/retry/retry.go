package retry

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"math"
	"time"

	"parkflow/internal/pkg/errs"
)

var ErrAttemptsExhausted = errs.New("retry attempts exhausted")

type Policy struct {
	Attempts  int
	BaseDelay time.Duration
	MaxDelay  time.Duration
	// fraction of the computed delay added as random jitter, 0.2 = up to 20%
	Jitter float64
}

func DefaultPolicy() Policy {
	return Policy{
		Attempts:  3,
		BaseDelay: 500 * time.Millisecond,
		MaxDelay:  4 * time.Second,
		Jitter:    0.2,
	}
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func ContextSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

type Retrier struct {
	policy Policy
	sleep  Sleeper
	logger *slog.Logger
}

func New(policy Policy, logger *slog.Logger) *Retrier {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	return &Retrier{policy: policy, sleep: ContextSleep, logger: logger}
}

// WithSleeper replaces the wait between attempts. Tests use it to avoid real delays.
func (r *Retrier) WithSleeper(s Sleeper) *Retrier {
	r.sleep = s
	return r
}

func (r *Retrier) Policy() Policy {
	return r.policy
}

// Do runs fn until it succeeds, returns a non-retryable error, or the attempts
// run out. The last error is returned marked with ErrAttemptsExhausted in the
// latter case.
func (r *Retrier) Do(ctx context.Context, op string, retryable func(error) bool, fn func(ctx context.Context, attempt int) error) error {
	var err error
	for attempt := 0; attempt < r.policy.Attempts; attempt++ {
		err = fn(ctx, attempt)
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if attempt == r.policy.Attempts-1 {
			break
		}

		wait := r.Backoff(attempt)
		if r.logger != nil {
			r.logger.Warn("retrying after retryable error",
				"op", op,
				"attempt", attempt+1,
				"wait_ms", wait.Milliseconds(),
				"error", err.Error())
		}
		if sleepErr := r.sleep(ctx, wait); sleepErr != nil {
			return errs.Wrap(err, "retry interrupted")
		}
	}

	if r.logger != nil {
		r.logger.Error("retry attempts exhausted", "op", op, "attempts", r.policy.Attempts, "error", err.Error())
	}
	return errs.Mark(err, ErrAttemptsExhausted)
}

// maxBackoff bounds the doubling when the policy sets no MaxDelay.
const maxBackoff = time.Duration(math.MaxInt64 / 4)

func (r *Retrier) Backoff(attempt int) time.Duration {
	limit := maxBackoff
	if r.policy.MaxDelay > 0 && r.policy.MaxDelay < limit {
		limit = r.policy.MaxDelay
	}
	waitTime := r.policy.BaseDelay
	for i := 0; i < attempt && waitTime < limit; i++ {
		waitTime *= 2
	}
	if waitTime > limit {
		waitTime = limit
	}
	jitter := cryptoRandInt63n(int64(float64(waitTime) * r.policy.Jitter))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- masked to a positive value
	return int64(uval) % n
}
