package shared

//go:generate mockgen -source=ports.go -destination=../../testutil/mock/shared/ports.go -package=sharedmock

import (
	"context"
	"time"

	"parkflow/internal/domain/charge"
	"parkflow/internal/domain/session"
	"parkflow/internal/domain/slot"
	"parkflow/internal/domain/vehicle"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SlotRegistry owns slot occupancy. Implementations serialise mutations per
// slot and never hand the same free slot to two allocators.
type SlotRegistry interface {
	Register(ctx context.Context, s *slot.Slot) error
	Remove(ctx context.Context, code string) error
	Allocate(ctx context.Context, class vehicle.Class, sessionID uuid.UUID) (*slot.Slot, error)
	AllocateSpecific(ctx context.Context, code string, class vehicle.Class, sessionID uuid.UUID) (*slot.Slot, error)
	// Release is idempotent: a free slot stays free without error.
	Release(ctx context.Context, code string) error
	// ReleaseHeldBy frees the slot only while it still points at sessionID.
	ReleaseHeldBy(ctx context.Context, code string, sessionID uuid.UUID) (bool, error)
	Get(ctx context.Context, code string) (*slot.Slot, error)
	Query(ctx context.Context, f slot.Filter) ([]slot.Slot, error)
	Summary(ctx context.Context) (slot.Occupancy, error)
}

// SessionLedger owns parking sessions and enforces one open session per plate
// and per slot.
type SessionLedger interface {
	Open(ctx context.Context, p session.OpenParams) (uuid.UUID, error)
	Close(ctx context.Context, id uuid.UUID, exitAt time.Time) (*session.Session, error)
	AttachFee(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	AttachCharge(ctx context.Context, id uuid.UUID, ref string) error
	// Settle reports whether the call moved the session to paid.
	Settle(ctx context.Context, id uuid.UUID) (bool, error)
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*session.Session, error)
	Flag(ctx context.Context, id uuid.UUID, reason session.FollowUp) error
	Unflag(ctx context.Context, id uuid.UUID) error

	Get(ctx context.Context, id uuid.UUID) (*session.Session, error)
	// Lookup and LookupBySlot return the open session or ErrSessionNotFound.
	Lookup(ctx context.Context, plate vehicle.Plate) (*session.Session, error)
	LookupBySlot(ctx context.Context, code string) (*session.Session, error)
	FindByChargeRef(ctx context.Context, ref string) (*session.Session, error)
	List(ctx context.Context, f session.ListFilter) ([]*session.Session, error)
}

// ChargeStore persists charges for the gateway adapter.
type ChargeStore interface {
	Create(ctx context.Context, c *charge.Charge) error
	Get(ctx context.Context, ref string) (*charge.Charge, error)
	// PendingForSession returns the newest pending charge or ErrChargeNotFound.
	PendingForSession(ctx context.Context, sessionID uuid.UUID) (*charge.Charge, error)
	ListForSession(ctx context.Context, sessionID uuid.UUID) ([]*charge.Charge, error)
	// Mutate applies fn to the stored charge atomically and persists the result.
	Mutate(ctx context.Context, ref string, fn func(c *charge.Charge) error) (*charge.Charge, error)
	ListPending(ctx context.Context, createdBefore time.Time, limit int) ([]*charge.Charge, error)
}

type PaymentGateway interface {
	Charge(ctx context.Context, sessionID uuid.UUID, amount decimal.Decimal) (charge.Handle, error)
	PollStatus(ctx context.Context, ref string) (charge.Status, error)
	HandleCallback(ctx context.Context, payload []byte) (string, charge.Status, error)
	PendingCharges(ctx context.Context, olderThan time.Duration) ([]*charge.Charge, error)
	GetCharge(ctx context.Context, ref string) (*charge.Charge, error)
}

// Locker serialises work per key (vehicle plate) across requests and, with a
// shared backend, across instances.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
