package pgstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"parkflow/internal/domain/session"
	"parkflow/internal/domain/vehicle"
	"parkflow/internal/pkg/clock"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/pkg/pgconv"
	"parkflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const sessionColumns = `id, plate, class, slot_code, state, entry_at, exit_at, fee, charge_ref, follow_up, cancel_reason, created_at, updated_at`

const insertSession = `
INSERT INTO sessions (` + sessionColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

const selectSessionForUpdate = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1 FOR UPDATE`

const updateSession = `
UPDATE sessions
SET state = $2, exit_at = $3, fee = $4, charge_ref = $5, follow_up = $6, cancel_reason = $7, updated_at = $8
WHERE id = $1`

const selectSession = `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

const selectOpenByPlate = `SELECT ` + sessionColumns + ` FROM sessions
WHERE plate = $1 AND state IN ('active', 'pending_payment')`

const selectActiveBySlot = `SELECT ` + sessionColumns + ` FROM sessions
WHERE slot_code = $1 AND state = 'active'`

const selectByChargeRef = `SELECT ` + sessionColumns + ` FROM sessions WHERE charge_ref = $1`

// mirrors session.Session.NeedsCharge
const needsChargePredicate = `state = 'pending_payment' AND charge_ref IS NULL AND follow_up IN ('', 'charge_not_issued')`

const (
	openPlateIndex  = "sessions_open_plate_key"
	activeSlotIndex = "sessions_active_slot_key"
	chargeRefIndex  = "sessions_charge_ref_key"
)

type SessionLedger struct {
	db     *pgxpool.Pool
	tx     *txRunner
	clock  clock.Clock
	logger *slog.Logger
}

func NewSessionLedger(pool *pgxpool.Pool, clk clock.Clock, logger *slog.Logger) *SessionLedger {
	return &SessionLedger{
		db:     pool,
		tx:     newTxRunner(pool, logger),
		clock:  clk,
		logger: logger,
	}
}

var _ shared.SessionLedger = (*SessionLedger)(nil)

func (l *SessionLedger) Open(ctx context.Context, p session.OpenParams) (uuid.UUID, error) {
	s, err := session.NewSession(p, l.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := l.db.Exec(ctx, insertSession, sessionArgs(s)...); err != nil {
		if pgconv.IsUniqueViolation(err) {
			switch pgconv.ConstraintName(err) {
			case openPlateIndex:
				return uuid.Nil, errs.Wrapf(session.ErrDuplicateActiveSession, "plate %s", s.Plate())
			case activeSlotIndex:
				return uuid.Nil, errs.Wrapf(session.ErrDuplicateActiveSession, "slot %s", s.SlotCode())
			default:
				return uuid.Nil, errs.Wrapf(session.ErrDuplicateActiveSession, "session %s", s.ID())
			}
		}
		return uuid.Nil, dbErr(l.logger, "insert session", err)
	}
	return s.ID(), nil
}

// mutate locks the row, applies fn and writes the mutable columns back. A
// failing fn rolls the transaction back.
func (l *SessionLedger) mutate(ctx context.Context, op string, id uuid.UUID, fn func(s *session.Session, now time.Time) error) (*session.Session, error) {
	var out *session.Session
	err := l.tx.within(ctx, op, func(ctx context.Context, tx pgx.Tx) error {
		s, err := scanSession(tx.QueryRow(ctx, selectSessionForUpdate, pgconv.UUIDToPgtype(id)))
		if err != nil {
			if pgconv.IsNoRows(err) {
				return errs.Wrapf(session.ErrSessionNotFound, "session %s", id)
			}
			return err
		}
		if err := fn(s, l.clock.Now()); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, updateSession,
			pgconv.UUIDToPgtype(s.ID()),
			s.State().String(),
			pgconv.TimePtrToPgtype(s.ExitAt()),
			pgconv.DecimalPtrToNumeric(s.Fee()),
			pgconv.NullableStringToPgtype(s.ChargeRef()),
			s.FollowUp().String(),
			s.CancelReason(),
			s.UpdatedAt(),
		)
		if err != nil {
			if pgconv.IsUniqueViolation(err) && pgconv.ConstraintName(err) == chargeRefIndex {
				return errs.Wrapf(session.ErrChargeConflict, "charge %s is attached to another session", s.ChargeRef())
			}
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, dbErr(l.logger, op, err)
	}
	return out, nil
}

func (l *SessionLedger) Close(ctx context.Context, id uuid.UUID, exitAt time.Time) (*session.Session, error) {
	return l.mutate(ctx, "close session", id, func(s *session.Session, now time.Time) error {
		return s.Close(exitAt, now)
	})
}

func (l *SessionLedger) AttachFee(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	_, err := l.mutate(ctx, "attach fee", id, func(s *session.Session, now time.Time) error {
		return s.AttachFee(amount, now)
	})
	return err
}

func (l *SessionLedger) AttachCharge(ctx context.Context, id uuid.UUID, ref string) error {
	_, err := l.mutate(ctx, "attach charge", id, func(s *session.Session, now time.Time) error {
		_, err := s.AttachCharge(ref, now)
		return err
	})
	return err
}

func (l *SessionLedger) Settle(ctx context.Context, id uuid.UUID) (bool, error) {
	var changed bool
	_, err := l.mutate(ctx, "settle session", id, func(s *session.Session, now time.Time) error {
		var err error
		changed, err = s.Settle(now)
		return err
	})
	return changed, err
}

func (l *SessionLedger) Cancel(ctx context.Context, id uuid.UUID, reason string) (*session.Session, error) {
	return l.mutate(ctx, "cancel session", id, func(s *session.Session, now time.Time) error {
		return s.Cancel(reason, now)
	})
}

func (l *SessionLedger) Flag(ctx context.Context, id uuid.UUID, reason session.FollowUp) error {
	_, err := l.mutate(ctx, "flag session", id, func(s *session.Session, now time.Time) error {
		s.Flag(reason, now)
		return nil
	})
	return err
}

func (l *SessionLedger) Unflag(ctx context.Context, id uuid.UUID) error {
	_, err := l.mutate(ctx, "unflag session", id, func(s *session.Session, now time.Time) error {
		s.Unflag(now)
		return nil
	})
	return err
}

func (l *SessionLedger) Get(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	return l.getOne(ctx, selectSession, fmt.Sprintf("session %s", id), pgconv.UUIDToPgtype(id))
}

func (l *SessionLedger) Lookup(ctx context.Context, plate vehicle.Plate) (*session.Session, error) {
	return l.getOne(ctx, selectOpenByPlate, fmt.Sprintf("plate %s", plate), plate.String())
}

func (l *SessionLedger) LookupBySlot(ctx context.Context, code string) (*session.Session, error) {
	return l.getOne(ctx, selectActiveBySlot, fmt.Sprintf("slot %s", code), code)
}

func (l *SessionLedger) FindByChargeRef(ctx context.Context, ref string) (*session.Session, error) {
	return l.getOne(ctx, selectByChargeRef, fmt.Sprintf("charge %s", ref), ref)
}

func (l *SessionLedger) getOne(ctx context.Context, sql, label string, arg any) (*session.Session, error) {
	s, err := scanSession(l.db.QueryRow(ctx, sql, arg))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Wrapf(session.ErrSessionNotFound, "%s", label)
		}
		return nil, dbErr(l.logger, "select session", err)
	}
	return s, nil
}

func (l *SessionLedger) List(ctx context.Context, f session.ListFilter) ([]*session.Session, error) {
	var (
		where []string
		args  []any
	)
	if f.State != nil {
		args = append(args, f.State.String())
		where = append(where, fmt.Sprintf("state = $%d", len(args)))
	}
	if f.FlaggedOnly {
		where = append(where, "follow_up <> ''")
	}
	if f.NeedsCharge {
		where = append(where, needsChargePredicate)
	}
	if !f.AfterEntryAt.IsZero() {
		args = append(args, f.AfterEntryAt, pgconv.UUIDToPgtype(f.AfterID))
		where = append(where, fmt.Sprintf("(entry_at, id) > ($%d, $%d)", len(args)-1, len(args)))
	}

	sql := `SELECT ` + sessionColumns + ` FROM sessions`
	if len(where) > 0 {
		sql += ` WHERE ` + strings.Join(where, " AND ")
	}
	sql += ` ORDER BY entry_at, id`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := l.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbErr(l.logger, "list sessions", err)
	}
	defer rows.Close()

	out := make([]*session.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, dbErr(l.logger, "scan session", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr(l.logger, "list sessions", err)
	}
	return out, nil
}

func sessionArgs(s *session.Session) []any {
	return []any{
		pgconv.UUIDToPgtype(s.ID()),
		s.Plate().String(),
		s.Class().String(),
		s.SlotCode(),
		s.State().String(),
		s.EntryAt(),
		pgconv.TimePtrToPgtype(s.ExitAt()),
		pgconv.DecimalPtrToNumeric(s.Fee()),
		pgconv.NullableStringToPgtype(s.ChargeRef()),
		s.FollowUp().String(),
		s.CancelReason(),
		s.CreatedAt(),
		s.UpdatedAt(),
	}
}

func scanSession(row pgx.Row) (*session.Session, error) {
	var (
		id                            pgtype.UUID
		plate, class, slotCode, state string
		entryAt, createdAt, updatedAt time.Time
		exitAt                        pgtype.Timestamptz
		fee                           pgtype.Numeric
		chargeRef                     pgtype.Text
		followUp, cancelReason        string
	)
	if err := row.Scan(&id, &plate, &class, &slotCode, &state, &entryAt, &exitAt, &fee,
		&chargeRef, &followUp, &cancelReason, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	amount, err := pgconv.DecimalPtrFromNumeric(fee)
	if err != nil {
		return nil, err
	}
	return session.ReconstructSession(
		pgconv.UUIDFromPgtype(id),
		vehicle.Plate(plate),
		vehicle.Class(class),
		slotCode,
		entryAt,
		pgconv.TimePtrFromPgtype(exitAt),
		amount,
		session.State(state),
		pgconv.StringFromPgtype(chargeRef),
		session.FollowUp(followUp),
		cancelReason,
		createdAt,
		updatedAt,
	), nil
}
