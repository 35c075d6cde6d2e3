package memstore

import (
	"context"
	"log/slog"
	"sync"

	"parkflow/internal/domain/slot"
	"parkflow/internal/domain/vehicle"
	"parkflow/internal/pkg/clock"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/usecase/shared"

	"github.com/google/uuid"
)

type slotEntry struct {
	mu   sync.Mutex
	slot slot.Slot
}

// SlotRegistry keeps slots in memory. Mutations hold the registry read lock
// plus the slot's own mutex, so different slots change in parallel. Register,
// Remove and the snapshot reads take the write lock.
type SlotRegistry struct {
	mu     sync.RWMutex
	slots  map[string]*slotEntry
	byZone map[slot.Zone][]*slotEntry

	zones        slot.ZoneMap
	strictZoning bool
	clock        clock.Clock
	logger       *slog.Logger
}

func NewSlotRegistry(zones slot.ZoneMap, strictZoning bool, clk clock.Clock, logger *slog.Logger) *SlotRegistry {
	return &SlotRegistry{
		slots:        make(map[string]*slotEntry),
		byZone:       make(map[slot.Zone][]*slotEntry),
		zones:        zones,
		strictZoning: strictZoning,
		clock:        clk,
		logger:       logger,
	}
}

var _ shared.SlotRegistry = (*SlotRegistry)(nil)

func (r *SlotRegistry) Register(_ context.Context, s *slot.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slots[s.Code()]; ok {
		return errs.Wrapf(slot.ErrSlotAlreadyExists, "slot %s", s.Code())
	}
	e := &slotEntry{slot: *s}
	r.slots[s.Code()] = e

	list := append(r.byZone[s.Zone()], e)
	// insertion sort keeps the zone list in allocation order
	for i := len(list) - 1; i > 0 && slot.Less(&list[i].slot, &list[i-1].slot); i-- {
		list[i], list[i-1] = list[i-1], list[i]
	}
	r.byZone[s.Zone()] = list
	return nil
}

func (r *SlotRegistry) Remove(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.slots[code]
	if !ok {
		return errs.Wrapf(slot.ErrSlotNotFound, "slot %s", code)
	}
	if !e.slot.IsFree() {
		return errs.Wrapf(slot.ErrSlotInUse, "slot %s", code)
	}
	delete(r.slots, code)

	zone := e.slot.Zone()
	list := r.byZone[zone]
	for i := range list {
		if list[i] == e {
			r.byZone[zone] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	return nil
}

func (r *SlotRegistry) Allocate(ctx context.Context, class vehicle.Class, sessionID uuid.UUID) (*slot.Slot, error) {
	zone, err := r.zones.ZoneFor(class)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.byZone[zone] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if claimed, ok := r.tryClaim(e, sessionID); ok {
			return claimed, nil
		}
	}
	return nil, errs.Wrapf(slot.ErrNoCapacity, "zone %s class %s", zone, class)
}

// tryClaim re-checks the state under the slot lock; a slot taken by a
// concurrent allocator since the scan is skipped.
func (r *SlotRegistry) tryClaim(e *slotEntry, sessionID uuid.UUID) (*slot.Slot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.slot.IsFree() {
		return nil, false
	}
	if err := e.slot.Occupy(sessionID, r.clock.Now()); err != nil {
		return nil, false
	}
	out := e.slot
	return &out, true
}

func (r *SlotRegistry) AllocateSpecific(_ context.Context, code string, class vehicle.Class, sessionID uuid.UUID) (*slot.Slot, error) {
	zone, err := r.zones.ZoneFor(class)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.slots[code]
	if !ok {
		return nil, errs.Wrapf(slot.ErrSlotNotFound, "slot %s", code)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.slot.Zone() != zone {
		if r.strictZoning {
			return nil, errs.Wrapf(slot.ErrZoneMismatch, "slot %s is in zone %s, class %s maps to %s", code, e.slot.Zone(), class, zone)
		}
		r.logger.Warn("allocating slot outside the class zone",
			"slot", code,
			"slot_zone", e.slot.Zone().String(),
			"class", class.String(),
			"class_zone", zone.String())
	}
	if err := e.slot.Occupy(sessionID, r.clock.Now()); err != nil {
		return nil, err
	}
	out := e.slot
	return &out, nil
}

func (r *SlotRegistry) Release(_ context.Context, code string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.slots[code]
	if !ok {
		return errs.Wrapf(slot.ErrSlotNotFound, "slot %s", code)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.slot.Free(r.clock.Now())
	return nil
}

func (r *SlotRegistry) ReleaseHeldBy(_ context.Context, code string, sessionID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.slots[code]
	if !ok {
		return false, errs.Wrapf(slot.ErrSlotNotFound, "slot %s", code)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.slot.HeldBy(sessionID) {
		return false, nil
	}
	return e.slot.Free(r.clock.Now()), nil
}

func (r *SlotRegistry) Get(_ context.Context, code string) (*slot.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.slots[code]
	if !ok {
		return nil, errs.Wrapf(slot.ErrSlotNotFound, "slot %s", code)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.slot
	return &out, nil
}

func (r *SlotRegistry) Query(_ context.Context, f slot.Filter) ([]slot.Slot, error) {
	snapshot := r.snapshot()
	out := make([]slot.Slot, 0, len(snapshot))
	for i := range snapshot {
		if f.Matches(&snapshot[i]) {
			out = append(out, snapshot[i])
		}
	}
	slot.Sort(out)
	return out, nil
}

func (r *SlotRegistry) Summary(_ context.Context) (slot.Occupancy, error) {
	return slot.NewOccupancy(r.snapshot()), nil
}

// snapshot copies every slot under the write lock, which waits out all
// in-flight mutations.
func (r *SlotRegistry) snapshot() []slot.Slot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]slot.Slot, 0, len(r.slots))
	for _, e := range r.slots {
		out = append(out, e.slot)
	}
	return out
}
