package pgstore

import (
	"context"
	"log/slog"
	"time"

	"parkflow/internal/domain/charge"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/pkg/pgconv"
	"parkflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const chargeColumns = `reference, session_id, amount, currency, status, payload, attempts, last_error, created_at, updated_at`

const insertCharge = `
INSERT INTO charges (` + chargeColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const selectCharge = `SELECT ` + chargeColumns + ` FROM charges WHERE reference = $1`

const selectChargeForUpdate = selectCharge + ` FOR UPDATE`

const selectPendingForSession = `SELECT ` + chargeColumns + ` FROM charges
WHERE session_id = $1 AND status = 'pending'
ORDER BY created_at DESC
LIMIT 1`

const selectChargesForSession = `SELECT ` + chargeColumns + ` FROM charges
WHERE session_id = $1
ORDER BY created_at, reference`

const selectPendingBefore = `SELECT ` + chargeColumns + ` FROM charges
WHERE status = 'pending' AND created_at < $1
ORDER BY created_at
LIMIT $2`

const updateCharge = `
UPDATE charges
SET status = $2, payload = $3, attempts = $4, last_error = $5, updated_at = $6
WHERE reference = $1`

const pendingSessionIndex = "charges_pending_session_key"

// unbounded ListPending calls still cap the scan
const maxPendingScan = 1000

type ChargeStore struct {
	db     *pgxpool.Pool
	tx     *txRunner
	logger *slog.Logger
}

func NewChargeStore(pool *pgxpool.Pool, logger *slog.Logger) *ChargeStore {
	return &ChargeStore{db: pool, tx: newTxRunner(pool, logger), logger: logger}
}

var _ shared.ChargeStore = (*ChargeStore)(nil)

func (s *ChargeStore) Create(ctx context.Context, c *charge.Charge) error {
	_, err := s.db.Exec(ctx, insertCharge,
		c.Reference(),
		pgconv.UUIDToPgtype(c.SessionID()),
		pgconv.DecimalToNumeric(c.Amount()),
		c.Currency(),
		c.Status().String(),
		c.Payload(),
		c.Attempts(),
		c.LastError(),
		c.CreatedAt(),
		c.UpdatedAt(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			if pgconv.ConstraintName(err) == pendingSessionIndex {
				return errs.Wrapf(charge.ErrPendingExists, "session %s", c.SessionID())
			}
			return errs.Wrapf(charge.ErrDuplicateReference, "reference %s", c.Reference())
		}
		return dbErr(s.logger, "insert charge", err)
	}
	return nil
}

func (s *ChargeStore) Get(ctx context.Context, ref string) (*charge.Charge, error) {
	c, err := scanCharge(s.db.QueryRow(ctx, selectCharge, ref))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Wrapf(charge.ErrChargeNotFound, "reference %s", ref)
		}
		return nil, dbErr(s.logger, "select charge", err)
	}
	return c, nil
}

func (s *ChargeStore) PendingForSession(ctx context.Context, sessionID uuid.UUID) (*charge.Charge, error) {
	c, err := scanCharge(s.db.QueryRow(ctx, selectPendingForSession, pgconv.UUIDToPgtype(sessionID)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Wrapf(charge.ErrChargeNotFound, "no pending charge for session %s", sessionID)
		}
		return nil, dbErr(s.logger, "select pending charge", err)
	}
	return c, nil
}

func (s *ChargeStore) ListForSession(ctx context.Context, sessionID uuid.UUID) ([]*charge.Charge, error) {
	return s.list(ctx, "list session charges", selectChargesForSession, pgconv.UUIDToPgtype(sessionID))
}

func (s *ChargeStore) Mutate(ctx context.Context, ref string, fn func(c *charge.Charge) error) (*charge.Charge, error) {
	var out *charge.Charge
	err := s.tx.within(ctx, "mutate charge", func(ctx context.Context, tx pgx.Tx) error {
		c, err := scanCharge(tx.QueryRow(ctx, selectChargeForUpdate, ref))
		if err != nil {
			if pgconv.IsNoRows(err) {
				return errs.Wrapf(charge.ErrChargeNotFound, "reference %s", ref)
			}
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, updateCharge,
			c.Reference(), c.Status().String(), c.Payload(), c.Attempts(), c.LastError(), c.UpdatedAt()); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, dbErr(s.logger, "mutate charge", err)
	}
	return out, nil
}

func (s *ChargeStore) ListPending(ctx context.Context, createdBefore time.Time, limit int) ([]*charge.Charge, error) {
	if limit <= 0 || limit > maxPendingScan {
		limit = maxPendingScan
	}
	return s.list(ctx, "list pending charges", selectPendingBefore, createdBefore, limit)
}

func (s *ChargeStore) list(ctx context.Context, op, sql string, args ...any) ([]*charge.Charge, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbErr(s.logger, op, err)
	}
	defer rows.Close()

	out := make([]*charge.Charge, 0)
	for rows.Next() {
		c, err := scanCharge(rows)
		if err != nil {
			return nil, dbErr(s.logger, op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr(s.logger, op, err)
	}
	return out, nil
}

func scanCharge(row pgx.Row) (*charge.Charge, error) {
	var (
		ref, currency, status, payload, lastError string
		sessionID                                 pgtype.UUID
		amount                                    pgtype.Numeric
		attempts                                  int
		createdAt, updatedAt                      time.Time
	)
	if err := row.Scan(&ref, &sessionID, &amount, &currency, &status, &payload, &attempts, &lastError, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	value, err := pgconv.DecimalFromNumeric(amount)
	if err != nil {
		return nil, err
	}
	return charge.ReconstructCharge(ref, pgconv.UUIDFromPgtype(sessionID), value, currency,
		charge.Status(status), payload, attempts, lastError, createdAt, updatedAt), nil
}
