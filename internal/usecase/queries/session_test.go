//go:build unit

package queries_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"parkflow/internal/domain/charge"
	"parkflow/internal/domain/session"
	"parkflow/internal/domain/slot"
	"parkflow/internal/domain/vehicle"
	"parkflow/internal/infra/memstore"
	"parkflow/internal/pkg/clock"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)

func openSession(t *testing.T, l *memstore.SessionLedger, clk *clock.MockClock, plate, slotCode string) uuid.UUID {
	t.Helper()
	id, err := l.Open(context.Background(), session.OpenParams{
		Plate:    vehicle.Plate(plate),
		Class:    vehicle.ClassCar,
		SlotCode: slotCode,
		EntryAt:  clk.Now(),
	})
	require.NoError(t, err)
	clk.Add(time.Minute)
	return id
}

func TestSessionQueries_ListPaginates(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(baseTime)
	ledger := memstore.NewSessionLedger(clk)
	q := queries.NewSessionQueries(ledger, memstore.NewChargeStore())

	var ids []uuid.UUID
	for i, plate := range []string{"B1", "B2", "B3", "B4", "B5"} {
		ids = append(ids, openSession(t, ledger, clk, plate, "B-01-00"+string(rune('1'+i))))
	}

	page1, next, err := q.List(ctx, queries.SessionFilters{}, nil, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	require.NotNil(t, next)
	assert.Equal(t, ids[0], page1[0].ID)
	assert.Equal(t, ids[1], page1[1].ID)

	page2, next, err := q.List(ctx, queries.SessionFilters{}, next, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, ids[2], page2[0].ID)

	page3, next, err := q.List(ctx, queries.SessionFilters{}, next, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, ids[4], page3[0].ID)
	assert.Nil(t, next)
}

func TestSessionQueries_ListFilters(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(baseTime)
	ledger := memstore.NewSessionLedger(clk)
	q := queries.NewSessionQueries(ledger, memstore.NewChargeStore())

	first := openSession(t, ledger, clk, "B1", "B-01-001")
	openSession(t, ledger, clk, "B2", "B-01-002")
	_, err := ledger.Close(ctx, first, clk.Now())
	require.NoError(t, err)
	require.NoError(t, ledger.Flag(ctx, first, session.FollowUpChargeNotIssued))

	state := "pending_payment"
	items, _, err := q.List(ctx, queries.SessionFilters{State: &state}, nil, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, first, items[0].ID)
	require.NotNil(t, items[0].FollowUp)
	assert.Equal(t, "charge_not_issued", *items[0].FollowUp)

	flagged, _, err := q.List(ctx, queries.SessionFilters{FlaggedOnly: true}, nil, 0)
	require.NoError(t, err)
	assert.Len(t, flagged, 1)

	bad := "parked"
	_, _, err = q.List(ctx, queries.SessionFilters{State: &bad}, nil, 0)
	assert.True(t, errs.Is(err, errs.ErrValidation))

	_, _, err = q.List(ctx, queries.SessionFilters{}, &queries.Cursor{After: "not-a-cursor"}, 0)
	assert.ErrorIs(t, err, queries.ErrInvalidCursor)
}

func TestSessionQueries_GetWithCharges(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(baseTime)
	ledger := memstore.NewSessionLedger(clk)
	charges := memstore.NewChargeStore()
	q := queries.NewSessionQueries(ledger, charges)

	id := openSession(t, ledger, clk, "B1234XY", "B-01-001")
	_, err := ledger.Close(ctx, id, clk.Now())
	require.NoError(t, err)
	require.NoError(t, ledger.AttachFee(ctx, id, decimal.NewFromInt(10000)))

	c, err := charge.NewCharge("PKF-1", id, decimal.NewFromInt(10000), "IDR", clk.Now())
	require.NoError(t, err)
	require.NoError(t, charges.Create(ctx, c))
	require.NoError(t, ledger.AttachCharge(ctx, id, "PKF-1"))

	view, err := q.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "B1234XY", view.Plate)
	assert.Equal(t, "pending_payment", view.State)
	require.NotNil(t, view.Fee)
	assert.Equal(t, "10000", *view.Fee)
	require.NotNil(t, view.ChargeRef)
	assert.Equal(t, "PKF-1", *view.ChargeRef)
	require.Len(t, view.Charges, 1)
	assert.Equal(t, "pending", view.Charges[0].Status)
	assert.Nil(t, view.FollowUp)

	// pending_payment still counts as the plate's open session
	byPlate, err := q.ActiveByPlate(ctx, "b1234-xy")
	require.NoError(t, err)
	assert.Equal(t, id, byPlate.ID)

	_, err = q.ActiveByPlate(ctx, "Z9")
	assert.ErrorIs(t, err, session.ErrNoActiveSession)

	cv, err := q.Charge(ctx, "PKF-1")
	require.NoError(t, err)
	assert.Equal(t, "IDR", cv.Currency)
}

func TestSlotQueries_ListAndSummary(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(baseTime)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := memstore.NewSlotRegistry(slot.DefaultZoneMap(), false, clk, logger)
	q := queries.NewSlotQueries(registry)

	for _, spec := range []struct {
		code  string
		zone  slot.Zone
		level int
	}{{"A-00-001", "A", 0}, {"B-01-001", "B", 1}, {"B-02-001", "B", 2}} {
		s, err := slot.NewSlot(spec.code, spec.zone, spec.level, clk.Now())
		require.NoError(t, err)
		require.NoError(t, registry.Register(ctx, s))
	}
	held := uuid.New()
	_, err := registry.Allocate(ctx, vehicle.ClassCar, held)
	require.NoError(t, err)

	zone := "b"
	inB, err := q.List(ctx, queries.SlotFilters{Zone: &zone})
	require.NoError(t, err)
	require.Len(t, inB, 2)
	assert.Equal(t, "B-01-001", inB[0].Code)
	require.NotNil(t, inB[0].SessionID)
	assert.Equal(t, held, *inB[0].SessionID)
	assert.Nil(t, inB[1].SessionID)

	free := "free"
	level := 2
	freeUpstairs, err := q.List(ctx, queries.SlotFilters{State: &free, Level: &level})
	require.NoError(t, err)
	require.Len(t, freeUpstairs, 1)
	assert.Equal(t, "B-02-001", freeUpstairs[0].Code)

	summary, err := q.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Occupied)
	require.Len(t, summary.Zones, 2)
	assert.Equal(t, queries.ZoneOccupancyView{Zone: "A", Total: 1, Free: 1}, summary.Zones[0])
	assert.Equal(t, queries.ZoneOccupancyView{Zone: "B", Total: 2, Free: 1, Occupied: 1}, summary.Zones[1])

	_, err = q.Get(ctx, "Z-99")
	assert.ErrorIs(t, err, slot.ErrSlotNotFound)
}

func TestCursor_RoundTripAndLimit(t *testing.T) {
	id := uuid.New()
	at := baseTime.Add(1500 * time.Microsecond)

	gotAt, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))
	require.NoError(t, err)
	assert.True(t, at.Equal(gotAt))
	assert.Equal(t, id, gotID)

	assert.Equal(t, 20, queries.ValidateLimit(0))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(1000))
	assert.Equal(t, 7, queries.ValidateLimit(7))
}
