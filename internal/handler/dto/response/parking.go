package response

import (
	"time"

	"parkflow/internal/domain/charge"
	"parkflow/internal/usecase/commands"
	"parkflow/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ChargeResponse struct {
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

type SessionResponse struct {
	ID           uuid.UUID        `json:"id"`
	Plate        string           `json:"plate"`
	Class        string           `json:"vehicle_class"`
	SlotCode     string           `json:"slot_code"`
	State        string           `json:"state"`
	EntryAt      time.Time        `json:"entry_at"`
	ExitAt       *time.Time       `json:"exit_at,omitempty"`
	Fee          *string          `json:"fee,omitempty"`
	ChargeRef    *string          `json:"charge_ref,omitempty"`
	FollowUp     *string          `json:"follow_up,omitempty"`
	CancelReason *string          `json:"cancel_reason,omitempty"`
	Charges      []ChargeResponse `json:"charges,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type SessionListItemResponse struct {
	ID       uuid.UUID  `json:"id"`
	Plate    string     `json:"plate"`
	Class    string     `json:"vehicle_class"`
	SlotCode string     `json:"slot_code"`
	State    string     `json:"state"`
	EntryAt  time.Time  `json:"entry_at"`
	ExitAt   *time.Time `json:"exit_at,omitempty"`
	Fee      *string    `json:"fee,omitempty"`
	FollowUp *string    `json:"follow_up,omitempty"`
}

type SessionListResponse struct {
	Items      []SessionListItemResponse `json:"items"`
	NextCursor string                    `json:"next_cursor,omitempty"`
}

type ChargeHandleResponse struct {
	Reference string `json:"reference"`
	Payload   string `json:"payload,omitempty"`
}

type ExitResponse struct {
	Session     *SessionResponse      `json:"session"`
	Charge      *ChargeHandleResponse `json:"charge,omitempty"`
	ChargeError string                `json:"charge_error,omitempty"`
}

type SettlementResponse struct {
	Reference string           `json:"reference"`
	Status    string           `json:"status"`
	Session   *SessionResponse `json:"session,omitempty"`
}

type ReconcileResponse struct {
	ChargesRetried int `json:"charges_retried"`
	ChargesPolled  int `json:"charges_polled"`
	Resolved       int `json:"resolved"`
	Failures       int `json:"failures"`
}

func FromSessionView(v *queries.SessionView) (*SessionResponse, error) {
	var res SessionResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromSessionList(items []*queries.SessionListItem, next *queries.Cursor) (*SessionListResponse, error) {
	res := &SessionListResponse{Items: make([]SessionListItemResponse, 0, len(items))}
	if err := copier.Copy(&res.Items, &items); err != nil {
		return nil, err
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res, nil
}

func FromChargeView(v *queries.ChargeView) (*ChargeResponse, error) {
	var res ChargeResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromChargeHandle(h *charge.Handle) *ChargeHandleResponse {
	if h == nil {
		return nil
	}
	return &ChargeHandleResponse{Reference: h.Reference, Payload: h.Payload}
}

func FromReconcileReport(r commands.ReconcileReport) (*ReconcileResponse, error) {
	var res ReconcileResponse
	if err := copier.Copy(&res, &r); err != nil {
		return nil, err
	}
	return &res, nil
}
