package components

import (
	"parkflow/internal/domain/fee"
	"parkflow/internal/domain/slot"
	"parkflow/internal/pkg/clock"
	"parkflow/internal/pkg/config"
	"parkflow/internal/usecase"
	"parkflow/internal/usecase/commands"
	"parkflow/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) (slot.ZoneMap, error) {
		return slot.NewZoneMap(cfg.Parking.ZoneMap)
	},
	func(cfg config.Config) (fee.Calculator, error) {
		p := cfg.Parking
		return fee.NewRateTable(p.RateTable, p.RateDefault, p.RateDailyCap)
	},
	func(cfg config.Config) commands.ReconcileOptions {
		return commands.ReconcileOptions{
			PollAfter: cfg.Reconcile.PollAfter,
			BatchSize: cfg.Reconcile.BatchSize,
		}
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewParkingUseCase,
		commands.NewReconcileUseCase,
		commands.NewSlotUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSessionQueries,
		queries.NewSlotQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
