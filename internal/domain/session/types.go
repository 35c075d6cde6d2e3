package session

import (
	"time"

	"parkflow/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound        = errs.Sentinel("session not found", errs.ErrNotFound)
	ErrNoActiveSession        = errs.Sentinel("no active session for plate", errs.ErrNotFound)
	ErrDuplicateActiveSession = errs.Sentinel("plate or slot already has an open session", errs.ErrConflict)
	ErrSessionNotActive       = errs.Sentinel("session is not active", errs.ErrConflict)
	ErrSessionNotPending      = errs.Sentinel("session is not awaiting payment", errs.ErrConflict)
	ErrChargeConflict         = errs.Sentinel("session already has a different charge attached", errs.ErrConflict)
	ErrInvalidInterval        = errs.Sentinel("exit time is before entry time", errs.ErrValidation)
	ErrInvalidState           = errs.Sentinel("invalid session state", errs.ErrValidation)
	ErrInvalidFee             = errs.Sentinel("fee cannot be negative", errs.ErrValidation)
	ErrInvalidTransition      = errs.Sentinel("illegal session state transition", errs.ErrConflict)
)

type State string

const (
	StateActive         State = "active"
	StatePendingPayment State = "pending_payment"
	StatePaid           State = "paid"
	StateCancelled      State = "cancelled"
)

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateActive, StatePendingPayment, StatePaid, StateCancelled:
		return true
	default:
		return false
	}
}

// IsOpen reports whether the state counts against the one-session-per-plate
// constraint.
func (s State) IsOpen() bool {
	return s == StateActive || s == StatePendingPayment
}

// HoldsSlot reports whether the state counts against the one-session-per-slot
// constraint. The slot is vacated at exit, before payment settles.
func (s State) HoldsSlot() bool {
	return s == StateActive
}

func (s State) IsTerminal() bool {
	return s == StatePaid || s == StateCancelled
}

func NewState(s string) (State, error) {
	state := State(s)
	if !state.IsValid() {
		return "", errs.Wrapf(ErrInvalidState, "state %q", s)
	}
	return state, nil
}

var transitions = map[State][]State{
	StateActive:         {StatePendingPayment, StateCancelled},
	StatePendingPayment: {StatePendingPayment, StatePaid},
	StatePaid:           {},
	StateCancelled:      {},
}

func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// FollowUp marks a session that needs manual attention.
type FollowUp string

const (
	FollowUpNone            FollowUp = ""
	FollowUpChargeNotIssued FollowUp = "charge_not_issued"
	FollowUpPaymentFailed   FollowUp = "payment_failed"
	FollowUpPaymentExpired  FollowUp = "payment_expired"
)

func (f FollowUp) String() string {
	return string(f)
}

// ListFilter selects sessions ordered by (entry time, id). A non-zero
// AfterEntryAt skips everything up to and including (AfterEntryAt, AfterID).
type ListFilter struct {
	State        *State
	FlaggedOnly  bool
	NeedsCharge  bool
	AfterEntryAt time.Time
	AfterID      uuid.UUID
	Limit        int
}

func (f ListFilter) Matches(s *Session) bool {
	if f.State != nil && s.state != *f.State {
		return false
	}
	if f.FlaggedOnly && s.followUp == FollowUpNone {
		return false
	}
	if f.NeedsCharge && !s.NeedsCharge() {
		return false
	}
	if !f.AfterEntryAt.IsZero() && !After(s, f.AfterEntryAt, f.AfterID) {
		return false
	}
	return true
}

// After reports whether s sorts after the (entryAt, id) position.
func After(s *Session, entryAt time.Time, id uuid.UUID) bool {
	if !s.entryAt.Equal(entryAt) {
		return s.entryAt.After(entryAt)
	}
	return s.id.String() > id.String()
}
