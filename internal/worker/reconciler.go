package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"parkflow/internal/usecase/commands"
)

// Ticker is the time source for periodic passes; tests drive it by hand.
type Ticker interface {
	Channel() <-chan time.Time
	Stop()
}

type TimeTicker struct {
	*time.Ticker
}

func NewTimeTicker(d time.Duration) Ticker {
	return &TimeTicker{Ticker: time.NewTicker(d)}
}

func (t *TimeTicker) Channel() <-chan time.Time {
	return t.C
}

// Reconciler runs ReconcilePending on every tick until stopped.
type Reconciler struct {
	reconcile   commands.ReconcileCommands
	logger      *slog.Logger
	passTimeout time.Duration

	cancel context.CancelFunc
	done   chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
}

func NewReconciler(reconcile commands.ReconcileCommands, logger *slog.Logger, passTimeout time.Duration) *Reconciler {
	return &Reconciler{
		reconcile:   reconcile,
		logger:      logger,
		passTimeout: passTimeout,
		done:        make(chan struct{}),
	}
}

// Start launches the loop. Calling it again is a no-op.
func (r *Reconciler) Start(ctx context.Context, ticker Ticker) {
	r.startOnce.Do(func() {
		ctx, r.cancel = context.WithCancel(ctx)
		go r.run(ctx, ticker)
	})
}

// Stop cancels the loop and waits for an in-flight pass, or until ctx ends.
func (r *Reconciler) Stop(ctx context.Context) error {
	var err error
	r.stopOnce.Do(func() {
		if r.cancel == nil {
			return
		}
		r.cancel()
		select {
		case <-r.done:
		case <-ctx.Done():
			err = ctx.Err()
		}
	})
	return err
}

func (r *Reconciler) run(ctx context.Context, ticker Ticker) {
	defer close(r.done)
	defer ticker.Stop()

	r.logger.Info("reconciliation worker started")
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciliation worker stopped")
			return
		case <-ticker.Channel():
			r.pass(ctx)
		}
	}
}

func (r *Reconciler) pass(ctx context.Context) {
	if r.passTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.passTimeout)
		defer cancel()
	}

	// the use case logs the pass summary
	if report, err := r.reconcile.ReconcilePending(ctx); err != nil {
		r.logger.Warn("reconciliation pass aborted", "error", err, "retried", report.ChargesRetried, "polled", report.ChargesPolled)
	}
}
