//go:build unit

package fee_test

import (
	"testing"
	"time"

	"parkflow/internal/domain/fee"
	"parkflow/internal/domain/session"
	"parkflow/internal/domain/vehicle"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultRates = map[string]string{"bike": "2000", "car": "10000", "heavy": "20000"}

func at(hour, minute int) time.Time {
	return time.Date(2025, 1, 10, hour, minute, 0, 0, time.UTC)
}

func TestRateTable_Compute(t *testing.T) {
	rt, err := fee.NewRateTable(defaultRates, "5000", "")
	require.NoError(t, err)

	tests := []struct {
		name  string
		class vehicle.Class
		entry time.Time
		exit  time.Time
		want  int64
	}{
		{name: "five minutes bills one hour", class: vehicle.ClassCar, entry: at(10, 0), exit: at(10, 5), want: 10000},
		{name: "one hour one minute bills two hours", class: vehicle.ClassCar, entry: at(10, 0), exit: at(11, 1), want: 20000},
		{name: "exactly one hour", class: vehicle.ClassCar, entry: at(10, 0), exit: at(11, 0), want: 10000},
		{name: "zero duration bills minimum", class: vehicle.ClassCar, entry: at(10, 0), exit: at(10, 0), want: 10000},
		{name: "bike rate", class: vehicle.ClassBike, entry: at(8, 0), exit: at(10, 30), want: 6000},
		{name: "heavy rate", class: vehicle.ClassHeavy, entry: at(8, 0), exit: at(9, 0), want: 20000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rt.Compute(tt.class, tt.entry, tt.exit)
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), "got %s want %d", got, tt.want)
		})
	}
}

func TestRateTable_FallbackRate(t *testing.T) {
	rt, err := fee.NewRateTable(map[string]string{"car": "10000"}, "5000", "")
	require.NoError(t, err)

	got, err := rt.Compute(vehicle.ClassBike, at(10, 0), at(11, 30))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10000).Equal(got))
}

func TestRateTable_InvalidInterval(t *testing.T) {
	rt, err := fee.NewRateTable(defaultRates, "5000", "")
	require.NoError(t, err)

	_, err = rt.Compute(vehicle.ClassCar, at(11, 0), at(10, 59))
	assert.ErrorIs(t, err, session.ErrInvalidInterval)
}

func TestRateTable_DailyCap(t *testing.T) {
	rt, err := fee.NewRateTable(defaultRates, "5000", "100000")
	require.NoError(t, err)

	entry := at(8, 0)

	// 30h: one capped day plus 6 hours
	got, err := rt.Compute(vehicle.ClassCar, entry, entry.Add(30*time.Hour))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(160000).Equal(got), "got %s", got)

	// 23h alone is capped
	got, err = rt.Compute(vehicle.ClassCar, entry, entry.Add(23*time.Hour))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100000).Equal(got), "got %s", got)

	// bikes never reach the cap
	got, err = rt.Compute(vehicle.ClassBike, entry, entry.Add(48*time.Hour))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(96000).Equal(got), "got %s", got)
}

func TestNewRateTable_Invalid(t *testing.T) {
	_, err := fee.NewRateTable(map[string]string{"car": "abc"}, "5000", "")
	assert.ErrorIs(t, err, fee.ErrInvalidRate)

	_, err = fee.NewRateTable(defaultRates, "-1", "")
	assert.ErrorIs(t, err, fee.ErrInvalidRate)

	_, err = fee.NewRateTable(map[string]string{"truck": "1"}, "5000", "")
	assert.ErrorIs(t, err, vehicle.ErrInvalidClass)
}
