package session

import (
	"time"

	"parkflow/internal/domain/vehicle"
	"parkflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OpenParams struct {
	ID       uuid.UUID
	Plate    vehicle.Plate
	Class    vehicle.Class
	SlotCode string
	EntryAt  time.Time
}

type Session struct {
	id           uuid.UUID
	plate        vehicle.Plate
	class        vehicle.Class
	slotCode     string
	entryAt      time.Time
	exitAt       *time.Time
	fee          *decimal.Decimal
	state        State
	chargeRef    string
	followUp     FollowUp
	cancelReason string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewSession(p OpenParams, now time.Time) (*Session, error) {
	if p.Plate == "" {
		return nil, errs.Wrap(vehicle.ErrInvalidPlate, "plate is empty")
	}
	if !p.Class.IsValid() {
		return nil, errs.Wrapf(vehicle.ErrInvalidClass, "class %q", p.Class)
	}
	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	entryAt := p.EntryAt
	if entryAt.IsZero() {
		entryAt = now
	}
	// stores and list cursors keep microseconds
	entryAt = entryAt.Truncate(time.Microsecond)
	return &Session{
		id:        id,
		plate:     p.Plate,
		class:     p.Class,
		slotCode:  p.SlotCode,
		entryAt:   entryAt,
		state:     StateActive,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructSession(
	id uuid.UUID,
	plate vehicle.Plate,
	class vehicle.Class,
	slotCode string,
	entryAt time.Time,
	exitAt *time.Time,
	fee *decimal.Decimal,
	state State,
	chargeRef string,
	followUp FollowUp,
	cancelReason string,
	createdAt, updatedAt time.Time,
) *Session {
	return &Session{
		id:           id,
		plate:        plate,
		class:        class,
		slotCode:     slotCode,
		entryAt:      entryAt,
		exitAt:       exitAt,
		fee:          fee,
		state:        state,
		chargeRef:    chargeRef,
		followUp:     followUp,
		cancelReason: cancelReason,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (s *Session) transition(next State, now time.Time) error {
	if !s.state.CanTransitionTo(next) {
		return errs.Wrapf(ErrInvalidTransition, "%s -> %s", s.state, next)
	}
	s.state = next
	s.updatedAt = now
	return nil
}

func (s *Session) Close(exitAt, now time.Time) error {
	if s.state != StateActive {
		return errs.Wrapf(ErrSessionNotActive, "session %s is %s", s.id, s.state)
	}
	if exitAt.Before(s.entryAt) {
		return errs.Wrapf(ErrInvalidInterval, "entry %s exit %s", s.entryAt.Format(time.RFC3339), exitAt.Format(time.RFC3339))
	}
	if err := s.transition(StatePendingPayment, now); err != nil {
		return err
	}
	s.exitAt = &exitAt
	return nil
}

func (s *Session) AttachFee(amount decimal.Decimal, now time.Time) error {
	if s.state != StatePendingPayment {
		return errs.Wrapf(ErrSessionNotPending, "session %s is %s", s.id, s.state)
	}
	if amount.IsNegative() {
		return ErrInvalidFee
	}
	s.fee = &amount
	s.updatedAt = now
	return nil
}

// AttachCharge records the gateway reference. Attaching the same reference
// again reports false without error. A reference whose payment failed or
// expired is replaced; any other attached reference is a conflict.
func (s *Session) AttachCharge(ref string, now time.Time) (bool, error) {
	if s.chargeRef == ref && ref != "" {
		return false, nil
	}
	if s.state != StatePendingPayment {
		return false, errs.Wrapf(ErrSessionNotPending, "session %s is %s", s.id, s.state)
	}
	if s.chargeRef != "" && !s.ChargeDead() {
		return false, errs.Wrapf(ErrChargeConflict, "session %s has %s, got %s", s.id, s.chargeRef, ref)
	}
	if err := s.transition(StatePendingPayment, now); err != nil {
		return false, err
	}
	s.chargeRef = ref
	return true, nil
}

// Settle moves pending_payment to paid. Settling a paid session reports false
// without error.
func (s *Session) Settle(now time.Time) (bool, error) {
	if s.state == StatePaid {
		return false, nil
	}
	if s.state != StatePendingPayment {
		return false, errs.Wrapf(ErrSessionNotPending, "session %s is %s", s.id, s.state)
	}
	if err := s.transition(StatePaid, now); err != nil {
		return false, err
	}
	s.followUp = FollowUpNone
	return true, nil
}

func (s *Session) Cancel(reason string, now time.Time) error {
	if s.state != StateActive {
		return errs.Wrapf(ErrSessionNotActive, "session %s is %s", s.id, s.state)
	}
	if err := s.transition(StateCancelled, now); err != nil {
		return err
	}
	s.cancelReason = reason
	return nil
}

func (s *Session) Flag(reason FollowUp, now time.Time) {
	s.followUp = reason
	s.updatedAt = now
}

func (s *Session) Unflag(now time.Time) {
	if s.followUp == FollowUpNone {
		return
	}
	s.followUp = FollowUpNone
	s.updatedAt = now
}

// ChargeDead reports whether the attached charge can no longer be paid.
func (s *Session) ChargeDead() bool {
	return s.followUp == FollowUpPaymentFailed || s.followUp == FollowUpPaymentExpired
}

// NeedsCharge reports whether a charge should be (re)issued without operator
// input: awaiting payment with no reference and no payment failure recorded.
func (s *Session) NeedsCharge() bool {
	return s.state == StatePendingPayment && s.chargeRef == "" &&
		(s.followUp == FollowUpNone || s.followUp == FollowUpChargeNotIssued)
}

func (s *Session) IsOpen() bool {
	return s.state.IsOpen()
}

func (s *Session) ID() uuid.UUID         { return s.id }
func (s *Session) Plate() vehicle.Plate  { return s.plate }
func (s *Session) Class() vehicle.Class  { return s.class }
func (s *Session) SlotCode() string      { return s.slotCode }
func (s *Session) EntryAt() time.Time    { return s.entryAt }
func (s *Session) ExitAt() *time.Time    { return s.exitAt }
func (s *Session) Fee() *decimal.Decimal { return s.fee }
func (s *Session) State() State          { return s.state }
func (s *Session) ChargeRef() string     { return s.chargeRef }
func (s *Session) FollowUp() FollowUp    { return s.followUp }
func (s *Session) CancelReason() string  { return s.cancelReason }
func (s *Session) CreatedAt() time.Time  { return s.createdAt }
func (s *Session) UpdatedAt() time.Time  { return s.updatedAt }
func (s *Session) HasCharge() bool       { return s.chargeRef != "" }
func (s *Session) Flagged() bool         { return s.followUp != FollowUpNone }

// Clone returns a copy that shares no pointers with s.
func (s *Session) Clone() *Session {
	c := *s
	if s.exitAt != nil {
		t := *s.exitAt
		c.exitAt = &t
	}
	if s.fee != nil {
		f := *s.fee
		c.fee = &f
	}
	return &c
}
