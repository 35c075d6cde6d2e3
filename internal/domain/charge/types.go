package charge

import "parkflow/internal/pkg/errs"

var (
	ErrChargeNotFound      = errs.Sentinel("charge not found", errs.ErrNotFound)
	ErrDuplicateReference  = errs.Sentinel("charge reference already exists", errs.ErrConflict)
	ErrInvalidStatus       = errs.Sentinel("invalid charge status", errs.ErrValidation)
	ErrInvalidTransition   = errs.Sentinel("illegal charge status transition", errs.ErrConflict)
	ErrInvalidAmount       = errs.Sentinel("charge amount must be positive", errs.ErrValidation)
	ErrGatewayUnavailable  = errs.Sentinel("payment gateway unavailable", errs.ErrExternalTransient)
	ErrGatewayRejected     = errs.Sentinel("payment gateway rejected the charge", errs.ErrConflict)
	ErrInvalidCallback     = errs.Sentinel("payment callback failed verification", errs.ErrExternalUntrusted)
	ErrAlreadyConfirmed    = errs.Sentinel("session already has a confirmed charge", errs.ErrConflict)
	ErrPendingExists       = errs.Sentinel("session already has a pending charge", errs.ErrConflict)
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
	StatusExpired   Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusFailed, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusFailed || s == StatusExpired
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", errs.Wrapf(ErrInvalidStatus, "status %q", s)
	}
	return status, nil
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusFailed, StatusExpired},
	StatusConfirmed: {},
	StatusFailed:    {},
	StatusExpired:   {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Handle is what the caller shows the driver: the reference and the QR payload.
type Handle struct {
	Reference string
	Payload   string
}
