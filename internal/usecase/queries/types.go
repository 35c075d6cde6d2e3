package queries

import (
	"time"

	"github.com/google/uuid"
)

// SlotView represents read-optimized slot data
type SlotView struct {
	Code      string     `json:"code"`
	Zone      string     `json:"zone"`
	Level     int        `json:"level"`
	State     string     `json:"state"`
	SessionID *uuid.UUID `json:"session_id,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type ZoneOccupancyView struct {
	Zone     string `json:"zone"`
	Total    int    `json:"total"`
	Free     int    `json:"free"`
	Occupied int    `json:"occupied"`
}

// OccupancyView is a point-in-time count across all slots
type OccupancyView struct {
	Total    int                 `json:"total"`
	Free     int                 `json:"free"`
	Occupied int                 `json:"occupied"`
	Zones    []ZoneOccupancyView `json:"zones"`
}

// SessionView represents read-optimized session data with its charges
type SessionView struct {
	ID           uuid.UUID    `json:"id"`
	Plate        string       `json:"plate"`
	Class        string       `json:"class"`
	SlotCode     string       `json:"slot_code"`
	State        string       `json:"state"`
	EntryAt      time.Time    `json:"entry_at"`
	ExitAt       *time.Time   `json:"exit_at,omitempty"`
	Fee          *string      `json:"fee,omitempty"`
	ChargeRef    *string      `json:"charge_ref,omitempty"`
	FollowUp     *string      `json:"follow_up,omitempty"`
	CancelReason *string      `json:"cancel_reason,omitempty"`
	Charges      []ChargeView `json:"charges,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

type SessionListItem struct {
	ID       uuid.UUID  `json:"id"`
	Plate    string     `json:"plate"`
	Class    string     `json:"class"`
	SlotCode string     `json:"slot_code"`
	State    string     `json:"state"`
	EntryAt  time.Time  `json:"entry_at"`
	ExitAt   *time.Time `json:"exit_at,omitempty"`
	Fee      *string    `json:"fee,omitempty"`
	FollowUp *string    `json:"follow_up,omitempty"`
}

// ChargeView represents a payment attempt as recorded locally
type ChargeView struct {
	Reference string    `json:"reference"`
	Amount    string    `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	Payload   string    `json:"payload,omitempty"`
	Attempts  int       `json:"attempts"`
	LastError *string   `json:"last_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
