package slot

import (
	"sort"
	"strings"
	"time"

	"parkflow/internal/pkg/errs"

	"github.com/google/uuid"
)

type Slot struct {
	code      string
	zone      Zone
	level     int
	state     State
	sessionID uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

func NewSlot(code string, zone Zone, level int, now time.Time) (*Slot, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errs.Wrap(ErrInvalidSlot, "code is empty")
	}
	if zone == "" {
		return nil, errs.Wrap(ErrInvalidSlot, "zone is empty")
	}
	return &Slot{
		code:      code,
		zone:      zone,
		level:     level,
		state:     StateFree,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructSlot(
	code string,
	zone Zone,
	level int,
	state State,
	sessionID uuid.UUID,
	createdAt, updatedAt time.Time,
) *Slot {
	return &Slot{
		code:      code,
		zone:      zone,
		level:     level,
		state:     state,
		sessionID: sessionID,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Occupy claims a free slot for a session.
func (s *Slot) Occupy(sessionID uuid.UUID, now time.Time) error {
	if s.state != StateFree {
		return errs.Wrapf(ErrSlotUnavailable, "slot %s", s.code)
	}
	s.state = StateOccupied
	s.sessionID = sessionID
	s.updatedAt = now
	return nil
}

// Free releases the slot. Freeing a free slot changes nothing and reports false.
func (s *Slot) Free(now time.Time) bool {
	if s.state == StateFree {
		return false
	}
	s.state = StateFree
	s.sessionID = uuid.Nil
	s.updatedAt = now
	return true
}

func (s *Slot) HeldBy(sessionID uuid.UUID) bool {
	return s.state == StateOccupied && s.sessionID == sessionID
}

func (s *Slot) IsFree() bool {
	return s.state == StateFree
}

func (s *Slot) Code() string         { return s.code }
func (s *Slot) Zone() Zone           { return s.zone }
func (s *Slot) Level() int           { return s.level }
func (s *Slot) State() State         { return s.state }
func (s *Slot) CreatedAt() time.Time { return s.createdAt }
func (s *Slot) UpdatedAt() time.Time { return s.updatedAt }

// SessionID returns the back-reference to the holding session, if any.
func (s *Slot) SessionID() (uuid.UUID, bool) {
	return s.sessionID, s.sessionID != uuid.Nil
}

// Less orders slots by level, then code.
func Less(a, b *Slot) bool {
	if a.level != b.level {
		return a.level < b.level
	}
	return a.code < b.code
}

func Sort(slots []Slot) {
	sort.Slice(slots, func(i, j int) bool { return Less(&slots[i], &slots[j]) })
}
