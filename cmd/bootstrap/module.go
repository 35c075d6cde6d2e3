package bootstrap

import (
	"parkflow/cmd/bootstrap/components"
	"parkflow/internal/pkg/config"
	"parkflow/internal/pkg/errs"

	"go.uber.org/fx"
)

// NewModule assembles the application. Store and lock backends are chosen
// from cfg before the graph is built so unused backends never connect.
func NewModule(cfg config.Config) fx.Option {
	return fx.Options(
		ConfigModule(cfg),
		LoggerModule,
		JWTModule,
		storeModule(cfg.Store.Driver),
		lockModule(cfg.Store.LockDriver),
		components.GatewayModule,
		components.UseCaseModule,
		components.HandlerModule,
		components.WorkerModule,
	)
}

func storeModule(driver string) fx.Option {
	switch driver {
	case config.DriverMemory:
		return components.MemoryStoreModule
	case config.DriverPostgres:
		return fx.Options(DBModule, components.PostgresStoreModule)
	default:
		return fx.Error(errs.Newf("unknown STORE_DRIVER %q", driver))
	}
}

func lockModule(driver string) fx.Option {
	switch driver {
	case config.DriverMemory:
		return components.MemoryLockModule
	case config.DriverRedis:
		return fx.Options(RedisModule, components.RedisLockModule)
	default:
		return fx.Error(errs.Newf("unknown LOCK_DRIVER %q", driver))
	}
}
