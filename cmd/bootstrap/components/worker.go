package components

import (
	"context"
	"log/slog"

	"parkflow/internal/pkg/config"
	"parkflow/internal/usecase/commands"
	"parkflow/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(
		seedSlots,
		startReconciler,
	),
)

func seedSlots(lc fx.Lifecycle, cfg config.Config, slots commands.SlotCommands, logger *slog.Logger) {
	if len(cfg.Parking.SlotSeed) == 0 {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			added, err := slots.Seed(ctx, cfg.Parking.SlotSeed)
			if err != nil {
				return err
			}
			logger.Info("slots seeded", "added", added, "configured", len(cfg.Parking.SlotSeed))
			return nil
		},
	})
}

func startReconciler(lc fx.Lifecycle, cfg config.Config, reconcile commands.ReconcileCommands, logger *slog.Logger) {
	if !cfg.Reconcile.Enabled {
		logger.Info("reconciler disabled")
		return
	}
	// a pass may not outlive the interval that scheduled it
	r := worker.NewReconciler(reconcile, logger, cfg.Reconcile.Interval)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// the start context ends once start-up completes
			r.Start(context.Background(), worker.NewTimeTicker(cfg.Reconcile.Interval))
			logger.Info("reconciler started", "interval", cfg.Reconcile.Interval)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return r.Stop(ctx)
		},
	})
}
