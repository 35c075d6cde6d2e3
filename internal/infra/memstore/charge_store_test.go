//go:build unit

package memstore_test

import (
	"context"
	"testing"
	"time"

	"parkflow/internal/domain/charge"
	"parkflow/internal/infra/memstore"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCharge(t *testing.T, sessionID uuid.UUID, createdAt time.Time) *charge.Charge {
	t.Helper()
	c, err := charge.NewCharge("", sessionID, decimal.NewFromInt(10000), "IDR", createdAt)
	require.NoError(t, err)
	return c
}

func TestChargeStore(t *testing.T) {
	ctx := context.Background()
	s := memstore.NewChargeStore()
	sessionID := uuid.New()

	old := newCharge(t, sessionID, baseTime)
	require.NoError(t, s.Create(ctx, old))
	assert.ErrorIs(t, s.Create(ctx, old), charge.ErrDuplicateReference)

	pending, err := s.PendingForSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, old.Reference(), pending.Reference())

	updated, err := s.Mutate(ctx, old.Reference(), func(c *charge.Charge) error {
		_, err := c.Transition(charge.StatusFailed, baseTime)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, charge.StatusFailed, updated.Status())

	_, err = s.Mutate(ctx, old.Reference(), func(c *charge.Charge) error {
		_, err := c.Transition(charge.StatusConfirmed, baseTime)
		return err
	})
	assert.ErrorIs(t, err, charge.ErrInvalidTransition)

	_, err = s.PendingForSession(ctx, sessionID)
	assert.ErrorIs(t, err, charge.ErrChargeNotFound)

	fresh := newCharge(t, sessionID, baseTime.Add(10*time.Minute))
	require.NoError(t, s.Create(ctx, fresh))

	all, err := s.ListForSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	due, err := s.ListPending(ctx, baseTime.Add(5*time.Minute), 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	due, err = s.ListPending(ctx, baseTime.Add(time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, fresh.Reference(), due[0].Reference())

	_, err = s.Get(ctx, "PKF-missing")
	assert.ErrorIs(t, err, charge.ErrChargeNotFound)
}
