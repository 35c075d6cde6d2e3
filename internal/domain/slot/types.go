package slot

import (
	"strings"

	"parkflow/internal/domain/vehicle"
	"parkflow/internal/pkg/errs"
)

var (
	ErrInvalidSlot       = errs.Sentinel("invalid slot", errs.ErrValidation)
	ErrInvalidState      = errs.Sentinel("invalid slot state", errs.ErrValidation)
	ErrSlotNotFound      = errs.Sentinel("slot not found", errs.ErrNotFound)
	ErrSlotAlreadyExists = errs.Sentinel("slot already exists", errs.ErrConflict)
	ErrSlotInUse         = errs.Sentinel("slot is in use", errs.ErrConflict)
	ErrSlotUnavailable   = errs.Sentinel("slot is not free", errs.ErrConflict)
	ErrNoCapacity        = errs.Sentinel("no free slot for vehicle class", errs.ErrConflict)
	ErrZoneMismatch      = errs.Sentinel("slot zone does not match vehicle class", errs.ErrConflict)
	ErrUnmappedClass     = errs.Sentinel("vehicle class has no zone", errs.ErrValidation)
)

type State string

const (
	StateFree     State = "free"
	StateOccupied State = "occupied"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateFree, StateOccupied:
		return true
	default:
		return false
	}
}

func NewState(s string) (State, error) {
	state := State(s)
	if !state.IsValid() {
		return "", errs.Wrapf(ErrInvalidState, "state %q", s)
	}
	return state, nil
}

type Zone string

func (z Zone) String() string {
	return string(z)
}

func NewZone(s string) (Zone, error) {
	z := strings.ToUpper(strings.TrimSpace(s))
	if z == "" {
		return "", errs.Wrap(ErrInvalidSlot, "zone is empty")
	}
	return Zone(z), nil
}

// ZoneMap is the static class to zone assignment loaded at start-up.
type ZoneMap map[vehicle.Class]Zone

func NewZoneMap(raw map[string]string) (ZoneMap, error) {
	zm := make(ZoneMap, len(raw))
	for k, v := range raw {
		class, err := vehicle.NewClass(k)
		if err != nil {
			return nil, err
		}
		zone, err := NewZone(v)
		if err != nil {
			return nil, err
		}
		zm[class] = zone
	}
	return zm, nil
}

func DefaultZoneMap() ZoneMap {
	return ZoneMap{
		vehicle.ClassBike:  "A",
		vehicle.ClassCar:   "B",
		vehicle.ClassHeavy: "C",
	}
}

func (zm ZoneMap) ZoneFor(class vehicle.Class) (Zone, error) {
	zone, ok := zm[class]
	if !ok {
		return "", errs.Wrapf(ErrUnmappedClass, "class %q", class)
	}
	return zone, nil
}

// Filter narrows Query results. Nil fields match everything.
type Filter struct {
	Zone  *Zone
	Level *int
	State *State
}

func (f Filter) Matches(s *Slot) bool {
	if f.Zone != nil && s.zone != *f.Zone {
		return false
	}
	if f.Level != nil && s.level != *f.Level {
		return false
	}
	if f.State != nil && s.state != *f.State {
		return false
	}
	return true
}

type ZoneOccupancy struct {
	Total    int
	Free     int
	Occupied int
}

type Occupancy struct {
	Total    int
	Free     int
	Occupied int
	ByZone   map[Zone]ZoneOccupancy
}

func NewOccupancy(slots []Slot) Occupancy {
	occ := Occupancy{ByZone: make(map[Zone]ZoneOccupancy)}
	for i := range slots {
		s := &slots[i]
		zo := occ.ByZone[s.zone]
		zo.Total++
		occ.Total++
		if s.IsFree() {
			zo.Free++
			occ.Free++
		} else {
			zo.Occupied++
			occ.Occupied++
		}
		occ.ByZone[s.zone] = zo
	}
	return occ
}
