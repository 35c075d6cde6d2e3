package pgstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"parkflow/internal/domain/slot"
	"parkflow/internal/domain/vehicle"
	"parkflow/internal/pkg/clock"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/pkg/pgconv"
	"parkflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const slotColumns = `code, zone, level, state, session_id, created_at, updated_at`

const insertSlot = `
INSERT INTO slots (code, zone, level, state, session_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const deleteFreeSlot = `DELETE FROM slots WHERE code = $1 AND state = 'free'`

// SKIP LOCKED lets concurrent allocators pass over a slot another
// transaction is claiming instead of queueing behind it.
const claimFreeSlot = `
UPDATE slots SET state = 'occupied', session_id = $2, updated_at = $3
WHERE code = (
    SELECT code FROM slots
    WHERE zone = $1 AND state = 'free'
    ORDER BY level, code
    LIMIT 1
    FOR UPDATE SKIP LOCKED
)
RETURNING ` + slotColumns

const selectSlotForUpdate = `SELECT ` + slotColumns + ` FROM slots WHERE code = $1 FOR UPDATE`

const occupySlot = `
UPDATE slots SET state = 'occupied', session_id = $2, updated_at = $3
WHERE code = $1 AND state = 'free'
RETURNING ` + slotColumns

const freeSlot = `
UPDATE slots SET state = 'free', session_id = NULL, updated_at = $2
WHERE code = $1 AND state = 'occupied'`

const freeSlotHeldBy = `
UPDATE slots SET state = 'free', session_id = NULL, updated_at = $3
WHERE code = $1 AND state = 'occupied' AND session_id = $2`

const slotExists = `SELECT EXISTS (SELECT 1 FROM slots WHERE code = $1)`

const selectSlot = `SELECT ` + slotColumns + ` FROM slots WHERE code = $1`

type SlotRegistry struct {
	db           *pgxpool.Pool
	tx           *txRunner
	zones        slot.ZoneMap
	strictZoning bool
	clock        clock.Clock
	logger       *slog.Logger
}

func NewSlotRegistry(pool *pgxpool.Pool, zones slot.ZoneMap, strictZoning bool, clk clock.Clock, logger *slog.Logger) *SlotRegistry {
	return &SlotRegistry{
		db:           pool,
		tx:           newTxRunner(pool, logger),
		zones:        zones,
		strictZoning: strictZoning,
		clock:        clk,
		logger:       logger,
	}
}

var _ shared.SlotRegistry = (*SlotRegistry)(nil)

func (r *SlotRegistry) Register(ctx context.Context, s *slot.Slot) error {
	sessionID, _ := s.SessionID()
	_, err := r.db.Exec(ctx, insertSlot,
		s.Code(), s.Zone().String(), s.Level(), s.State().String(),
		pgconv.NullableUUIDToPgtype(sessionID), s.CreatedAt(), s.UpdatedAt())
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return errs.Wrapf(slot.ErrSlotAlreadyExists, "slot %s", s.Code())
		}
		return dbErr(r.logger, "insert slot", err)
	}
	return nil
}

func (r *SlotRegistry) Remove(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx, deleteFreeSlot, code)
	if err != nil {
		return dbErr(r.logger, "delete slot", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if err := r.mustExist(ctx, r.db, code); err != nil {
		return err
	}
	return errs.Wrapf(slot.ErrSlotInUse, "slot %s", code)
}

func (r *SlotRegistry) Allocate(ctx context.Context, class vehicle.Class, sessionID uuid.UUID) (*slot.Slot, error) {
	zone, err := r.zones.ZoneFor(class)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, claimFreeSlot, zone.String(), pgconv.UUIDToPgtype(sessionID), r.clock.Now())
	s, err := scanSlot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Wrapf(slot.ErrNoCapacity, "zone %s class %s", zone, class)
		}
		return nil, dbErr(r.logger, "claim free slot", err)
	}
	return s, nil
}

func (r *SlotRegistry) AllocateSpecific(ctx context.Context, code string, class vehicle.Class, sessionID uuid.UUID) (*slot.Slot, error) {
	zone, err := r.zones.ZoneFor(class)
	if err != nil {
		return nil, err
	}

	var claimed *slot.Slot
	err = r.tx.within(ctx, "allocate specific slot", func(ctx context.Context, tx pgx.Tx) error {
		current, err := scanSlot(tx.QueryRow(ctx, selectSlotForUpdate, code))
		if err != nil {
			if pgconv.IsNoRows(err) {
				return errs.Wrapf(slot.ErrSlotNotFound, "slot %s", code)
			}
			return err
		}

		if current.Zone() != zone {
			if r.strictZoning {
				return errs.Wrapf(slot.ErrZoneMismatch, "slot %s is in zone %s, class %s maps to %s", code, current.Zone(), class, zone)
			}
			r.logger.Warn("allocating slot outside the class zone",
				"slot", code,
				"slot_zone", current.Zone().String(),
				"class", class.String(),
				"class_zone", zone.String())
		}
		if !current.IsFree() {
			return errs.Wrapf(slot.ErrSlotUnavailable, "slot %s", code)
		}

		claimed, err = scanSlot(tx.QueryRow(ctx, occupySlot, code, pgconv.UUIDToPgtype(sessionID), r.clock.Now()))
		return err
	})
	if err != nil {
		return nil, dbErr(r.logger, "allocate specific slot", err)
	}
	return claimed, nil
}

func (r *SlotRegistry) Release(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx, freeSlot, code, r.clock.Now())
	if err != nil {
		return dbErr(r.logger, "release slot", err)
	}
	if tag.RowsAffected() == 0 {
		return r.mustExist(ctx, r.db, code)
	}
	return nil
}

func (r *SlotRegistry) ReleaseHeldBy(ctx context.Context, code string, sessionID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, freeSlotHeldBy, code, pgconv.UUIDToPgtype(sessionID), r.clock.Now())
	if err != nil {
		return false, dbErr(r.logger, "release slot", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	return false, r.mustExist(ctx, r.db, code)
}

func (r *SlotRegistry) Get(ctx context.Context, code string) (*slot.Slot, error) {
	s, err := scanSlot(r.db.QueryRow(ctx, selectSlot, code))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Wrapf(slot.ErrSlotNotFound, "slot %s", code)
		}
		return nil, dbErr(r.logger, "select slot", err)
	}
	return s, nil
}

func (r *SlotRegistry) Query(ctx context.Context, f slot.Filter) ([]slot.Slot, error) {
	var (
		where []string
		args  []any
	)
	if f.Zone != nil {
		args = append(args, f.Zone.String())
		where = append(where, fmt.Sprintf("zone = $%d", len(args)))
	}
	if f.Level != nil {
		args = append(args, *f.Level)
		where = append(where, fmt.Sprintf("level = $%d", len(args)))
	}
	if f.State != nil {
		args = append(args, f.State.String())
		where = append(where, fmt.Sprintf("state = $%d", len(args)))
	}

	sql := `SELECT ` + slotColumns + ` FROM slots`
	if len(where) > 0 {
		sql += ` WHERE ` + strings.Join(where, " AND ")
	}
	sql += ` ORDER BY level, code`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbErr(r.logger, "query slots", err)
	}
	defer rows.Close()

	out := make([]slot.Slot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, dbErr(r.logger, "scan slot", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, dbErr(r.logger, "query slots", err)
	}
	return out, nil
}

func (r *SlotRegistry) Summary(ctx context.Context) (slot.Occupancy, error) {
	slots, err := r.Query(ctx, slot.Filter{})
	if err != nil {
		return slot.Occupancy{}, err
	}
	return slot.NewOccupancy(slots), nil
}

func (r *SlotRegistry) mustExist(ctx context.Context, db DBTX, code string) error {
	var exists bool
	if err := db.QueryRow(ctx, slotExists, code).Scan(&exists); err != nil {
		return dbErr(r.logger, "check slot", err)
	}
	if !exists {
		return errs.Wrapf(slot.ErrSlotNotFound, "slot %s", code)
	}
	return nil
}

func scanSlot(row pgx.Row) (*slot.Slot, error) {
	var (
		code, zone, state    string
		level                int
		sessionID            pgtype.UUID
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&code, &zone, &level, &state, &sessionID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return slot.ReconstructSlot(code, slot.Zone(zone), level, slot.State(state),
		pgconv.UUIDFromPgtype(sessionID), createdAt, updatedAt), nil
}
