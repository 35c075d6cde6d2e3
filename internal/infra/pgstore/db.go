package pgstore

import (
	"context"
	_ "embed"
	"errors"
	"log/slog"
	"time"

	"parkflow/internal/infra"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/pkg/pgconv"
	"parkflow/internal/pkg/retry"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return errs.Wrap(err, "apply schema")
	}
	return nil
}

// txRunner runs read-committed transactions, retrying serialization failures
// and deadlocks.
type txRunner struct {
	pool    *pgxpool.Pool
	retrier *retry.Retrier
	logger  *slog.Logger
}

func newTxRunner(pool *pgxpool.Pool, logger *slog.Logger) *txRunner {
	policy := retry.Policy{Attempts: 4, BaseDelay: 100 * time.Millisecond, MaxDelay: 800 * time.Millisecond, Jitter: 0.2}
	return &txRunner{pool: pool, retrier: retry.New(policy, logger), logger: logger}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (r *txRunner) within(ctx context.Context, op string, fn func(ctx context.Context, tx pgx.Tx) error) error {
	return r.retrier.Do(ctx, op, pgconv.IsRetryable, func(ctx context.Context, attempt int) error {
		tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, tx)
		if err == nil {
			if err = tx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			r.logger.Warn("rollback failed", "op", op, "attempt", attempt+1, "error", rollbackErr.Error())
		}
		return err
	})
}

// dbErr passes domain errors through and wraps driver failures.
func dbErr(logger *slog.Logger, msg string, err error) error {
	if errs.CategoryOf(err) != errs.CategoryInternal {
		return err
	}
	return infra.WrapRepoErr(logger, infra.KindOf(err), msg, err)
}
