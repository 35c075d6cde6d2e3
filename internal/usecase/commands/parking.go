package commands

//go:generate mockgen -source=parking.go -destination=../../testutil/mock/commands/parking.go -package=commandsmock

import (
	"context"
	"log/slog"

	"parkflow/internal/domain/charge"
	"parkflow/internal/domain/fee"
	"parkflow/internal/domain/session"
	"parkflow/internal/domain/slot"
	"parkflow/internal/domain/vehicle"
	"parkflow/internal/pkg/clock"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/pkg/metrics"
	"parkflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExitResult struct {
	Session *session.Session
	// nil when the charge could not be issued
	Charge *charge.Handle
	// why Charge is nil; the exit itself succeeded
	ChargeErr error
}

type ParkingCommands interface {
	HandleEntry(ctx context.Context, plate, class string) (*session.Session, error)
	HandleEntryAt(ctx context.Context, plate, class, slotCode string) (*session.Session, error)
	HandleExit(ctx context.Context, plate string) (*ExitResult, error)
	HandleSettlement(ctx context.Context, ref string, status charge.Status) (*session.Session, error)
	HandleCallback(ctx context.Context, payload []byte) (*Settlement, error)
	PollAndSettle(ctx context.Context, ref string) (charge.Status, error)
	RetryCharge(ctx context.Context, sessionID uuid.UUID) (charge.Handle, error)
	CancelSession(ctx context.Context, sessionID uuid.UUID, reason string) (*session.Session, error)
}

type parkingUseCaseImpl struct {
	slots    shared.SlotRegistry
	sessions shared.SessionLedger
	fees     fee.Calculator
	gateway  shared.PaymentGateway
	locker   shared.Locker
	clock    clock.Clock
	logger   *slog.Logger
}

func NewParkingUseCase(
	slots shared.SlotRegistry,
	sessions shared.SessionLedger,
	fees fee.Calculator,
	gateway shared.PaymentGateway,
	locker shared.Locker,
	clk clock.Clock,
	logger *slog.Logger,
) ParkingCommands {
	return &parkingUseCaseImpl{
		slots:    slots,
		sessions: sessions,
		fees:     fees,
		gateway:  gateway,
		locker:   locker,
		clock:    clk,
		logger:   logger,
	}
}

func (p *parkingUseCaseImpl) HandleEntry(ctx context.Context, plate, class string) (*session.Session, error) {
	return p.enter(ctx, plate, class, "")
}

func (p *parkingUseCaseImpl) HandleEntryAt(ctx context.Context, plate, class, slotCode string) (*session.Session, error) {
	if slotCode == "" {
		return nil, errs.Wrap(errs.ErrValidation, "slot code is required")
	}
	return p.enter(ctx, plate, class, slotCode)
}

func (p *parkingUseCaseImpl) enter(ctx context.Context, rawPlate, rawClass, slotCode string) (*session.Session, error) {
	plate, err := vehicle.NewPlate(rawPlate)
	if err != nil {
		return nil, err
	}
	class, err := vehicle.NewClass(rawClass)
	if err != nil {
		return nil, err
	}
	log := p.logger.With("plate", plate.String(), "class", class.String())

	unlock, err := p.locker.Lock(ctx, shared.PlateLockKey(plate.String()))
	if err != nil {
		return nil, err
	}
	defer unlock()

	// refuse before touching a slot
	if existing, err := p.sessions.Lookup(ctx, plate); err == nil {
		metrics.RecordEntry(class.String(), "duplicate")
		return nil, errs.Wrapf(session.ErrDuplicateActiveSession, "plate %s has session %s", plate, existing.ID())
	} else if !errs.Is(err, session.ErrSessionNotFound) {
		return nil, err
	}

	sessionID := uuid.New()
	allocated, err := p.allocate(ctx, class, slotCode, sessionID)
	if err != nil {
		metrics.RecordEntry(class.String(), "rejected")
		log.Info("entry rejected", "error", err.Error())
		return nil, err
	}

	_, err = p.sessions.Open(ctx, session.OpenParams{
		ID:       sessionID,
		Plate:    plate,
		Class:    class,
		SlotCode: allocated.Code(),
		EntryAt:  p.clock.Now(),
	})
	if err != nil {
		// undo only our own claim
		if _, relErr := p.slots.ReleaseHeldBy(ctx, allocated.Code(), sessionID); relErr != nil {
			log.Error("failed to roll back slot allocation",
				"slot", allocated.Code(),
				"session_id", sessionID.String(),
				"error", relErr.Error())
		}
		metrics.RecordEntry(class.String(), "rejected")
		return nil, err
	}

	metrics.RecordEntry(class.String(), "admitted")
	log.Info("vehicle admitted", "slot", allocated.Code(), "session_id", sessionID.String())
	return p.sessions.Get(ctx, sessionID)
}

func (p *parkingUseCaseImpl) allocate(ctx context.Context, class vehicle.Class, slotCode string, sessionID uuid.UUID) (*slot.Slot, error) {
	if slotCode != "" {
		return p.slots.AllocateSpecific(ctx, slotCode, class, sessionID)
	}
	return p.slots.Allocate(ctx, class, sessionID)
}

func (p *parkingUseCaseImpl) HandleExit(ctx context.Context, rawPlate string) (*ExitResult, error) {
	plate, err := vehicle.NewPlate(rawPlate)
	if err != nil {
		return nil, err
	}
	log := p.logger.With("plate", plate.String())

	closed, amount, err := p.closeAndVacate(ctx, plate)
	if err != nil {
		return nil, err
	}
	log = log.With("session_id", closed.ID().String(), "slot", closed.SlotCode())

	// no lock is held across the gateway call
	result := &ExitResult{Session: closed}
	handle, chargeErr := p.gateway.Charge(ctx, closed.ID(), amount)
	if chargeErr == nil {
		chargeErr = p.sessions.AttachCharge(ctx, closed.ID(), handle.Reference)
	}

	if chargeErr != nil {
		result.ChargeErr = chargeErr
		reason := followUpFor(chargeErr)
		if flagErr := p.sessions.Flag(ctx, closed.ID(), reason); flagErr != nil {
			log.Error("failed to flag session", "error", flagErr.Error())
		}
		log.Warn("exit processed without charge", "follow_up", reason.String(), "error", chargeErr.Error())
		metrics.RecordExit(closed.Class().String(), "deferred")
	} else {
		result.Charge = &handle
		log.Info("exit processed", "reference", handle.Reference, "amount", amount.String())
		metrics.RecordExit(closed.Class().String(), "issued")
	}

	if refreshed, err := p.sessions.Get(ctx, closed.ID()); err == nil {
		result.Session = refreshed
	}
	return result, nil
}

// closeAndVacate runs the exit bookkeeping under the plate lock: close the
// session, free the slot, price the stay.
func (p *parkingUseCaseImpl) closeAndVacate(ctx context.Context, plate vehicle.Plate) (*session.Session, decimal.Decimal, error) {
	unlock, err := p.locker.Lock(ctx, shared.PlateLockKey(plate.String()))
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer unlock()

	active, err := p.sessions.Lookup(ctx, plate)
	if err != nil {
		if errs.Is(err, session.ErrSessionNotFound) {
			return nil, decimal.Zero, errs.Wrapf(session.ErrNoActiveSession, "plate %s", plate)
		}
		return nil, decimal.Zero, err
	}
	if active.State() != session.StateActive {
		return nil, decimal.Zero, errs.Wrapf(session.ErrNoActiveSession, "plate %s session %s is %s", plate, active.ID(), active.State())
	}

	closed, err := p.sessions.Close(ctx, active.ID(), p.clock.Now())
	if err != nil {
		return nil, decimal.Zero, err
	}

	// occupancy is physical: the slot is free as soon as the vehicle leaves
	if _, err := p.slots.ReleaseHeldBy(ctx, closed.SlotCode(), closed.ID()); err != nil {
		return nil, decimal.Zero, errs.Wrapf(err, "release slot %s", closed.SlotCode())
	}

	amount, err := p.fees.Compute(closed.Class(), closed.EntryAt(), *closed.ExitAt())
	if err != nil {
		return nil, decimal.Zero, err
	}
	if err := p.sessions.AttachFee(ctx, closed.ID(), amount); err != nil {
		return nil, decimal.Zero, err
	}
	return closed, amount, nil
}

func followUpFor(chargeErr error) session.FollowUp {
	if errs.Is(chargeErr, charge.ErrGatewayRejected) {
		return session.FollowUpPaymentFailed
	}
	return session.FollowUpChargeNotIssued
}
