//go:build unit

package charge_test

import (
	"strings"
	"testing"
	"time"

	"parkflow/internal/domain/charge"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 10, 11, 0, 0, 0, time.UTC)

func TestNewCharge(t *testing.T) {
	c, err := charge.NewCharge("", uuid.New(), decimal.NewFromInt(10000), "IDR", now)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.Reference(), charge.ReferencePrefix))
	assert.Equal(t, charge.StatusPending, c.Status())

	_, err = charge.NewCharge("", uuid.New(), decimal.Zero, "IDR", now)
	assert.ErrorIs(t, err, charge.ErrInvalidAmount)
}

func TestCharge_Transition(t *testing.T) {
	tests := []struct {
		name    string
		steps   []charge.Status
		final   charge.Status
		wantErr error
	}{
		{name: "pending to confirmed", steps: []charge.Status{charge.StatusConfirmed}, final: charge.StatusConfirmed},
		{name: "repeat confirmation", steps: []charge.Status{charge.StatusConfirmed, charge.StatusConfirmed}, final: charge.StatusConfirmed},
		{name: "pending to expired", steps: []charge.Status{charge.StatusExpired}, final: charge.StatusExpired},
		{name: "failed is terminal", steps: []charge.Status{charge.StatusFailed, charge.StatusConfirmed}, final: charge.StatusFailed, wantErr: charge.ErrInvalidTransition},
		{name: "confirmed cannot go back to pending", steps: []charge.Status{charge.StatusConfirmed, charge.StatusPending}, final: charge.StatusConfirmed, wantErr: charge.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := charge.NewCharge("PKF-test", uuid.New(), decimal.NewFromInt(2000), "IDR", now)
			require.NoError(t, err)

			var lastErr error
			for _, st := range tt.steps {
				_, lastErr = c.Transition(st, now)
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, lastErr, tt.wantErr)
			} else {
				assert.NoError(t, lastErr)
			}
			assert.Equal(t, tt.final, c.Status())
		})
	}
}

func TestCharge_RecordAttempt(t *testing.T) {
	c, err := charge.NewCharge("PKF-test", uuid.New(), decimal.NewFromInt(2000), "IDR", now)
	require.NoError(t, err)

	c.RecordAttempt(assert.AnError, now)
	c.RecordAttempt(nil, now)

	assert.Equal(t, 2, c.Attempts())
	assert.Empty(t, c.LastError())
}
