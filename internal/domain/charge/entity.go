package charge

import (
	"fmt"
	"time"

	"parkflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const ReferencePrefix = "PKF-"

func NewReference() string {
	return fmt.Sprintf("%s%s", ReferencePrefix, uuid.NewString())
}

type Charge struct {
	reference string
	sessionID uuid.UUID
	amount    decimal.Decimal
	currency  string
	status    Status
	payload   string
	attempts  int
	lastError string
	createdAt time.Time
	updatedAt time.Time
}

func NewCharge(reference string, sessionID uuid.UUID, amount decimal.Decimal, currency string, now time.Time) (*Charge, error) {
	if !amount.IsPositive() {
		return nil, errs.Wrapf(ErrInvalidAmount, "amount %s", amount)
	}
	if reference == "" {
		reference = NewReference()
	}
	return &Charge{
		reference: reference,
		sessionID: sessionID,
		amount:    amount,
		currency:  currency,
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructCharge(
	reference string,
	sessionID uuid.UUID,
	amount decimal.Decimal,
	currency string,
	status Status,
	payload string,
	attempts int,
	lastError string,
	createdAt, updatedAt time.Time,
) *Charge {
	return &Charge{
		reference: reference,
		sessionID: sessionID,
		amount:    amount,
		currency:  currency,
		status:    status,
		payload:   payload,
		attempts:  attempts,
		lastError: lastError,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Transition applies a gateway status. Repeating the current status reports
// false without error.
func (c *Charge) Transition(next Status, now time.Time) (bool, error) {
	if c.status == next {
		return false, nil
	}
	if !c.status.CanTransitionTo(next) {
		return false, errs.Wrapf(ErrInvalidTransition, "charge %s %s -> %s", c.reference, c.status, next)
	}
	c.status = next
	c.updatedAt = now
	return true, nil
}

func (c *Charge) RecordAttempt(err error, now time.Time) {
	c.attempts++
	if err != nil {
		c.lastError = err.Error()
	} else {
		c.lastError = ""
	}
	c.updatedAt = now
}

func (c *Charge) SetPayload(payload string, now time.Time) {
	c.payload = payload
	c.updatedAt = now
}

func (c *Charge) Reference() string       { return c.reference }
func (c *Charge) SessionID() uuid.UUID    { return c.sessionID }
func (c *Charge) Amount() decimal.Decimal { return c.amount }
func (c *Charge) Currency() string        { return c.currency }
func (c *Charge) Status() Status          { return c.status }
func (c *Charge) Payload() string         { return c.payload }
func (c *Charge) Attempts() int           { return c.attempts }
func (c *Charge) LastError() string       { return c.lastError }
func (c *Charge) CreatedAt() time.Time    { return c.createdAt }
func (c *Charge) UpdatedAt() time.Time    { return c.updatedAt }

func (c *Charge) Handle() Handle {
	return Handle{Reference: c.reference, Payload: c.payload}
}

func (c *Charge) Clone() *Charge {
	cp := *c
	return &cp
}
