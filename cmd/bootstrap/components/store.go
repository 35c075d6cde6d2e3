package components

import (
	"log/slog"

	"parkflow/internal/domain/slot"
	"parkflow/internal/infra/memstore"
	"parkflow/internal/infra/pgstore"
	"parkflow/internal/infra/redislock"
	"parkflow/internal/pkg/clock"
	"parkflow/internal/pkg/config"
	"parkflow/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var MemoryStoreModule = fx.Module("store/memory",
	fx.Provide(
		func(cfg config.Config, zones slot.ZoneMap, clk clock.Clock, logger *slog.Logger) shared.SlotRegistry {
			return memstore.NewSlotRegistry(zones, cfg.Parking.StrictZoning, clk, logger)
		},
		fx.Annotate(
			memstore.NewSessionLedger,
			fx.As(new(shared.SessionLedger)),
		),
		fx.Annotate(
			memstore.NewChargeStore,
			fx.As(new(shared.ChargeStore)),
		),
	),
)

var PostgresStoreModule = fx.Module("store/postgres",
	fx.Provide(
		func(pool *pgxpool.Pool, cfg config.Config, zones slot.ZoneMap, clk clock.Clock, logger *slog.Logger) shared.SlotRegistry {
			return pgstore.NewSlotRegistry(pool, zones, cfg.Parking.StrictZoning, clk, logger)
		},
		fx.Annotate(
			pgstore.NewSessionLedger,
			fx.As(new(shared.SessionLedger)),
		),
		fx.Annotate(
			pgstore.NewChargeStore,
			fx.As(new(shared.ChargeStore)),
		),
	),
)

var MemoryLockModule = fx.Module("lock/memory",
	fx.Provide(
		fx.Annotate(
			memstore.NewKeyedLocker,
			fx.As(new(shared.Locker)),
		),
	),
)

var RedisLockModule = fx.Module("lock/redis",
	fx.Provide(
		func(client *redis.Client, cfg config.Config, logger *slog.Logger) shared.Locker {
			return redislock.New(client, cfg.Redis.LockTTL, logger)
		},
	),
)
