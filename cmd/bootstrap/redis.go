package bootstrap

import (
	"context"
	"log/slog"

	"parkflow/internal/infra/redislock"
	"parkflow/internal/pkg/config"
	"parkflow/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
	),
)

func NewRedisClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := redislock.HealthCheck(ctx, client); err != nil {
				return errs.Wrapf(err, "redis %s", cfg.Redis.Addr)
			}
			logger.Info("redis ready", "addr", cfg.Redis.Addr)
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}
