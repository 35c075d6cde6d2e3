//go:build unit

package memstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"parkflow/internal/domain/session"
	"parkflow/internal/domain/vehicle"
	"parkflow/internal/infra/memstore"
	"parkflow/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openParams(plate vehicle.Plate, slotCode string) session.OpenParams {
	return session.OpenParams{
		ID:       uuid.New(),
		Plate:    plate,
		Class:    vehicle.ClassCar,
		SlotCode: slotCode,
		EntryAt:  baseTime,
	}
}

func TestSessionLedger_OpenUniqueness(t *testing.T) {
	ctx := context.Background()
	l := memstore.NewSessionLedger(clock.NewMockClock(baseTime))

	id, err := l.Open(ctx, openParams("B1234XY", "B-01-001"))
	require.NoError(t, err)

	_, err = l.Open(ctx, openParams("B1234XY", "B-01-002"))
	assert.ErrorIs(t, err, session.ErrDuplicateActiveSession, "same plate")

	_, err = l.Open(ctx, openParams("D5555AB", "B-01-001"))
	assert.ErrorIs(t, err, session.ErrDuplicateActiveSession, "same slot")

	first, err := l.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, session.StateActive, first.State())
	assert.Equal(t, "B-01-001", first.SlotCode())
}

func TestSessionLedger_ConcurrentOpenSamePlate(t *testing.T) {
	ctx := context.Background()
	l := memstore.NewSessionLedger(clock.NewMockClock(baseTime))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := l.Open(ctx, openParams("B1234XY", uuid.NewString()))
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestSessionLedger_FullLifecycle(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(baseTime)
	l := memstore.NewSessionLedger(clk)

	id, err := l.Open(ctx, openParams("B1234XY", "B-01-001"))
	require.NoError(t, err)

	clk.Add(65 * time.Minute)
	closed, err := l.Close(ctx, id, clk.Now())
	require.NoError(t, err)
	assert.Equal(t, session.StatePendingPayment, closed.State())

	// still counts as open for the plate until paid
	_, err = l.Open(ctx, openParams("B1234XY", "B-01-009"))
	assert.ErrorIs(t, err, session.ErrDuplicateActiveSession)

	// the slot was vacated at close
	_, err = l.LookupBySlot(ctx, "B-01-001")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	next, err := l.Open(ctx, openParams("D4321ZZ", "B-01-001"))
	require.NoError(t, err)
	_, err = l.Cancel(ctx, next, "test")
	require.NoError(t, err)

	require.NoError(t, l.AttachFee(ctx, id, decimal.NewFromInt(20000)))
	require.NoError(t, l.AttachCharge(ctx, id, "PKF-1"))
	require.NoError(t, l.AttachCharge(ctx, id, "PKF-1"))
	assert.ErrorIs(t, l.AttachCharge(ctx, id, "PKF-2"), session.ErrChargeConflict)

	byRef, err := l.FindByChargeRef(ctx, "PKF-1")
	require.NoError(t, err)
	assert.Equal(t, id, byRef.ID())

	changed, err := l.Settle(ctx, id)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = l.Settle(ctx, id)
	require.NoError(t, err)
	assert.False(t, changed)

	paid, err := l.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, session.StatePaid, paid.State())

	_, err = l.Lookup(ctx, "B1234XY")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	_, err = l.Open(ctx, openParams("B1234XY", "B-01-001"))
	assert.NoError(t, err, "plate and slot are free again")
}

func TestSessionLedger_FailedMutationLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	l := memstore.NewSessionLedger(clock.NewMockClock(baseTime))

	id, err := l.Open(ctx, openParams("B1234XY", "B-01-001"))
	require.NoError(t, err)

	_, err = l.Close(ctx, id, baseTime.Add(-time.Minute))
	assert.ErrorIs(t, err, session.ErrInvalidInterval)

	s, err := l.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, session.StateActive, s.State())
	assert.Nil(t, s.ExitAt())
}

func TestSessionLedger_CancelAndFlags(t *testing.T) {
	ctx := context.Background()
	l := memstore.NewSessionLedger(clock.NewMockClock(baseTime))

	id, err := l.Open(ctx, openParams("B1234XY", "B-01-001"))
	require.NoError(t, err)

	cancelled, err := l.Cancel(ctx, id, "ghost entry")
	require.NoError(t, err)
	assert.Equal(t, session.StateCancelled, cancelled.State())

	_, err = l.Lookup(ctx, "B1234XY")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	other, err := l.Open(ctx, openParams("D5555AB", "B-01-002"))
	require.NoError(t, err)
	_, err = l.Close(ctx, other, baseTime.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, l.Flag(ctx, other, session.FollowUpChargeNotIssued))

	flagged, err := l.List(ctx, session.ListFilter{FlaggedOnly: true})
	require.NoError(t, err)
	require.Len(t, flagged, 1)
	assert.Equal(t, session.FollowUpChargeNotIssued, flagged[0].FollowUp())

	require.NoError(t, l.Unflag(ctx, other))
	flagged, err = l.List(ctx, session.ListFilter{FlaggedOnly: true})
	require.NoError(t, err)
	assert.Empty(t, flagged)

	pending := session.StatePendingPayment
	list, err := l.List(ctx, session.ListFilter{State: &pending, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, other, list[0].ID())

	assert.ErrorIs(t, l.Flag(ctx, uuid.New(), session.FollowUpPaymentFailed), session.ErrSessionNotFound)
}

func TestSessionLedger_SupersededChargeAndNeedsCharge(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(baseTime)
	l := memstore.NewSessionLedger(clk)

	charged, err := l.Open(ctx, openParams("B1111AA", "B-01-001"))
	require.NoError(t, err)
	clk.Add(time.Minute)
	unissued, err := l.Open(ctx, openParams("B2222BB", "B-01-002"))
	require.NoError(t, err)
	clk.Add(time.Minute)
	refused, err := l.Open(ctx, openParams("B3333CC", "B-01-003"))
	require.NoError(t, err)

	for _, id := range []uuid.UUID{charged, unissued, refused} {
		_, err := l.Close(ctx, id, clk.Now())
		require.NoError(t, err)
	}
	require.NoError(t, l.AttachCharge(ctx, charged, "PKF-1"))
	require.NoError(t, l.Flag(ctx, unissued, session.FollowUpChargeNotIssued))
	require.NoError(t, l.Flag(ctx, refused, session.FollowUpPaymentFailed))

	due, err := l.List(ctx, session.ListFilter{NeedsCharge: true})
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, unissued, due[0].ID())

	// the failed reference is replaced and stops resolving
	require.NoError(t, l.Flag(ctx, charged, session.FollowUpPaymentFailed))
	require.NoError(t, l.AttachCharge(ctx, charged, "PKF-2"))
	_, err = l.FindByChargeRef(ctx, "PKF-1")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	byRef, err := l.FindByChargeRef(ctx, "PKF-2")
	require.NoError(t, err)
	assert.Equal(t, charged, byRef.ID())

	// a reference owned by another session is refused
	require.NoError(t, l.Flag(ctx, unissued, session.FollowUpNone))
	assert.ErrorIs(t, l.AttachCharge(ctx, unissued, "PKF-2"), session.ErrChargeConflict)
}
