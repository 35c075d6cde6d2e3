package commands

//go:generate mockgen -source=reconcile.go -destination=../../testutil/mock/commands/reconcile.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"parkflow/internal/domain/session"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/usecase/shared"
)

type ReconcileOptions struct {
	// PollAfter is the age after which a pending charge is polled instead of
	// waiting for its callback.
	PollAfter time.Duration
	BatchSize int
}

type ReconcileReport struct {
	ChargesRetried int `json:"charges_retried"`
	ChargesPolled  int `json:"charges_polled"`
	Resolved       int `json:"resolved"`
	Failures       int `json:"failures"`
}

type ReconcileCommands interface {
	ReconcilePending(ctx context.Context) (ReconcileReport, error)
}

type reconcileUseCaseImpl struct {
	parking  ParkingCommands
	sessions shared.SessionLedger
	gateway  shared.PaymentGateway
	logger   *slog.Logger
	opts     ReconcileOptions
}

func NewReconcileUseCase(
	parking ParkingCommands,
	sessions shared.SessionLedger,
	gateway shared.PaymentGateway,
	logger *slog.Logger,
	opts ReconcileOptions,
) ReconcileCommands {
	return &reconcileUseCaseImpl{
		parking:  parking,
		sessions: sessions,
		gateway:  gateway,
		logger:   logger,
		opts:     opts,
	}
}

// ReconcilePending issues charges that exit could not and polls charges whose
// callback has not arrived. Per-item failures are logged and counted; only a
// failure to list work is returned.
func (r *reconcileUseCaseImpl) ReconcilePending(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport

	// payment failures need an operator; only unissued charges are retried
	candidates, err := r.sessions.List(ctx, session.ListFilter{NeedsCharge: true, Limit: r.opts.BatchSize})
	if err != nil {
		return report, errs.Wrap(err, "list sessions awaiting a charge")
	}
	for _, s := range candidates {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		report.ChargesRetried++
		if _, err := r.parking.RetryCharge(ctx, s.ID()); err != nil {
			report.Failures++
			r.logger.Warn("reconcile: charge retry failed", "session_id", s.ID().String(), "error", err.Error())
		}
	}

	charges, err := r.gateway.PendingCharges(ctx, r.opts.PollAfter)
	if err != nil {
		return report, errs.Wrap(err, "list pending charges")
	}
	for i, c := range charges {
		if r.opts.BatchSize > 0 && i >= r.opts.BatchSize {
			break
		}
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		report.ChargesPolled++
		status, err := r.parking.PollAndSettle(ctx, c.Reference())
		if err != nil {
			report.Failures++
			r.logger.Warn("reconcile: poll failed", "reference", c.Reference(), "error", err.Error())
			continue
		}
		if status.IsTerminal() {
			report.Resolved++
		}
	}

	if report.ChargesRetried+report.ChargesPolled > 0 {
		r.logger.Info("reconcile pass finished",
			"charges_retried", report.ChargesRetried,
			"charges_polled", report.ChargesPolled,
			"resolved", report.Resolved,
			"failures", report.Failures)
	}
	return report, nil
}
