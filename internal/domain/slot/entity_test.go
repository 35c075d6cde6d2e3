//go:build unit

package slot_test

import (
	"testing"
	"time"

	"parkflow/internal/domain/slot"
	"parkflow/internal/domain/vehicle"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)

func TestSlot_OccupyAndFree(t *testing.T) {
	s, err := slot.NewSlot("B-01-001", "B", 1, now)
	require.NoError(t, err)
	assert.True(t, s.IsFree())

	sessionID := uuid.New()
	require.NoError(t, s.Occupy(sessionID, now))
	assert.Equal(t, slot.StateOccupied, s.State())
	assert.True(t, s.HeldBy(sessionID))
	assert.False(t, s.HeldBy(uuid.New()))

	err = s.Occupy(uuid.New(), now)
	assert.ErrorIs(t, err, slot.ErrSlotUnavailable)

	assert.True(t, s.Free(now))
	assert.False(t, s.Free(now), "second free is a no-op")
	_, held := s.SessionID()
	assert.False(t, held)
}

func TestNewSlot_Validation(t *testing.T) {
	_, err := slot.NewSlot("  ", "B", 1, now)
	assert.ErrorIs(t, err, slot.ErrInvalidSlot)

	_, err = slot.NewSlot("B-01-001", "", 1, now)
	assert.ErrorIs(t, err, slot.ErrInvalidSlot)
}

func TestSort(t *testing.T) {
	mk := func(code string, level int) slot.Slot {
		s, err := slot.NewSlot(code, "B", level, now)
		require.NoError(t, err)
		return *s
	}
	slots := []slot.Slot{mk("B-02-001", 2), mk("B-01-002", 1), mk("B-00-009", 0), mk("B-01-001", 1)}

	slot.Sort(slots)

	var codes []string
	for i := range slots {
		codes = append(codes, slots[i].Code())
	}
	assert.Equal(t, []string{"B-00-009", "B-01-001", "B-01-002", "B-02-001"}, codes)
}

func TestZoneMap(t *testing.T) {
	zm, err := slot.NewZoneMap(map[string]string{"bike": "a", "car": "B"})
	require.NoError(t, err)

	zone, err := zm.ZoneFor(vehicle.ClassBike)
	require.NoError(t, err)
	assert.Equal(t, slot.Zone("A"), zone)

	_, err = zm.ZoneFor(vehicle.ClassHeavy)
	assert.ErrorIs(t, err, slot.ErrUnmappedClass)

	_, err = slot.NewZoneMap(map[string]string{"truck": "T"})
	assert.ErrorIs(t, err, vehicle.ErrInvalidClass)
}

func TestNewOccupancy(t *testing.T) {
	a, _ := slot.NewSlot("A-01", "A", 1, now)
	b1, _ := slot.NewSlot("B-01", "B", 1, now)
	b2, _ := slot.NewSlot("B-02", "B", 1, now)
	require.NoError(t, b1.Occupy(uuid.New(), now))

	occ := slot.NewOccupancy([]slot.Slot{*a, *b1, *b2})

	assert.Equal(t, 3, occ.Total)
	assert.Equal(t, 1, occ.Occupied)
	assert.Equal(t, 2, occ.Free)
	assert.Equal(t, slot.ZoneOccupancy{Total: 2, Free: 1, Occupied: 1}, occ.ByZone["B"])
	assert.Equal(t, slot.ZoneOccupancy{Total: 1, Free: 1}, occ.ByZone["A"])
}
