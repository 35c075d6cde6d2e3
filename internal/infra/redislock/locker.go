package redislock

import (
	"context"
	"log/slog"
	"time"

	"parkflow/internal/pkg/errs"
	"parkflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-acquired by another instance is never released by us.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

const defaultRetryInterval = 25 * time.Millisecond

type Locker struct {
	client        redis.Cmdable
	ttl           time.Duration
	retryInterval time.Duration
	newToken      func() string
	logger        *slog.Logger
}

func New(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *Locker {
	return &Locker{
		client:        client,
		ttl:           ttl,
		retryInterval: defaultRetryInterval,
		newToken:      uuid.NewString,
		logger:        logger,
	}
}

var _ shared.Locker = (*Locker)(nil)

// Lock spins on SET NX PX until it wins or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	token := l.newToken()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, errs.Wrapf(err, "acquire lock %s", key)
		}
		if ok {
			break
		}

		timer := time.NewTimer(l.retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errs.Mark(errs.Wrapf(ctx.Err(), "acquire lock %s", key), shared.ErrLockNotAcquired)
		case <-timer.C:
		}
	}

	return func() {
		// the caller's context may already be cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		n, err := l.client.Eval(releaseCtx, releaseScript, []string{key}, token).Int64()
		if err != nil {
			l.logger.Error("failed to release lock", "key", key, "error", err.Error())
			return
		}
		if n == 0 {
			l.logger.Warn("lock expired before release", "key", key, "ttl_ms", l.ttl.Milliseconds())
		}
	}, nil
}

func HealthCheck(ctx context.Context, client redis.Cmdable) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return errs.Wrap(err, "redis health check failed")
	}
	return nil
}
