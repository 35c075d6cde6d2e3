package gateway

import (
	"sync"
	"time"

	"parkflow/internal/pkg/clock"
	"parkflow/internal/pkg/errs"
)

var ErrBreakerOpen = errs.New("circuit breaker is open")

type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerHalfOpen
	BreakerOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerHalfOpen:
		return "half_open"
	case BreakerOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Breaker opens after maxFailures consecutive failures and lets a single
// probe through once the cooldown has passed.
type Breaker struct {
	maxFailures int
	cooldown    time.Duration
	clock       clock.Clock

	mu          sync.Mutex
	state       BreakerState
	failures    int
	openedAt    time.Time
	probeActive bool
}

func NewBreaker(maxFailures int, cooldown time.Duration, clk clock.Clock) *Breaker {
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &Breaker{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		clock:       clk,
		state:       BreakerClosed,
	}
}

// Execute runs fn unless the breaker is open. counts decides which errors
// count as failures of the remote side.
func (b *Breaker) Execute(fn func() error, counts func(error) bool) error {
	if err := b.before(); err != nil {
		return err
	}
	err := fn()
	b.after(err == nil || !counts(err))
	return err
}

func (b *Breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerOpen:
		if b.clock.Now().Sub(b.openedAt) < b.cooldown {
			return ErrBreakerOpen
		}
		b.state = BreakerHalfOpen
		b.probeActive = true
		return nil
	case BreakerHalfOpen:
		if b.probeActive {
			return ErrBreakerOpen
		}
		b.probeActive = true
		return nil
	default:
		return nil
	}
}

func (b *Breaker) after(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerHalfOpen {
		b.probeActive = false
		if success {
			b.state = BreakerClosed
			b.failures = 0
			return
		}
		b.trip()
		return
	}

	if success {
		b.failures = 0
		return
	}
	b.failures++
	if b.failures >= b.maxFailures {
		b.trip()
	}
}

func (b *Breaker) trip() {
	b.state = BreakerOpen
	b.openedAt = b.clock.Now()
	b.failures = 0
}

func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
