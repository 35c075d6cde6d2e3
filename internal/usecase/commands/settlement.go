package commands

import (
	"context"

	"parkflow/internal/domain/charge"
	"parkflow/internal/domain/session"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/pkg/metrics"

	"github.com/google/uuid"
)

func (p *parkingUseCaseImpl) HandleSettlement(ctx context.Context, ref string, status charge.Status) (*session.Session, error) {
	if !status.IsValid() {
		return nil, errs.Wrapf(charge.ErrInvalidStatus, "status %q", status)
	}
	// only a confirmed payment may attach a reference the session lost
	s, err := p.sessionForCharge(ctx, ref, status == charge.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	log := p.logger.With("reference", ref, "session_id", s.ID().String(), "status", status.String())

	switch status {
	case charge.StatusPending:
		return s, nil

	case charge.StatusConfirmed:
		settled, err := p.sessions.Settle(ctx, s.ID())
		if err != nil {
			return nil, err
		}
		// normally a no-op: the slot was freed at exit
		if _, err := p.slots.ReleaseHeldBy(ctx, s.SlotCode(), s.ID()); err != nil {
			return nil, errs.Wrapf(err, "release slot %s", s.SlotCode())
		}
		if settled {
			metrics.RecordSettlement("gateway", "paid")
			log.Info("session settled")
		}

	case charge.StatusFailed, charge.StatusExpired:
		if s.State() == session.StatePaid {
			// a late failure never unsettles a paid session
			log.Warn("ignoring payment failure for paid session")
			return s, nil
		}
		if s.HasCharge() && s.ChargeRef() != ref {
			log.Info("ignoring failure of superseded charge", "current_reference", s.ChargeRef())
			return s, nil
		}
		reason := session.FollowUpPaymentFailed
		if status == charge.StatusExpired {
			reason = session.FollowUpPaymentExpired
		}
		if err := p.sessions.Flag(ctx, s.ID(), reason); err != nil {
			return nil, err
		}
		metrics.RecordSettlement("gateway", status.String())
		log.Warn("payment not completed, session flagged", "follow_up", reason.String())
	}

	return p.sessions.Get(ctx, s.ID())
}

// sessionForCharge resolves the session owning ref. A charge whose reference
// is not on the session (exit interrupted after the gateway call, or the
// reference was superseded) is found through the charge store, and attached
// when attach is set.
func (p *parkingUseCaseImpl) sessionForCharge(ctx context.Context, ref string, attach bool) (*session.Session, error) {
	s, err := p.sessions.FindByChargeRef(ctx, ref)
	if err == nil {
		return s, nil
	}
	if !errs.Is(err, session.ErrSessionNotFound) {
		return nil, err
	}

	c, err := p.gateway.GetCharge(ctx, ref)
	if err != nil {
		return nil, err
	}
	if attach {
		if err := p.sessions.AttachCharge(ctx, c.SessionID(), ref); err != nil {
			if !errs.Is(err, session.ErrChargeConflict) && !errs.Is(err, session.ErrSessionNotPending) {
				return nil, err
			}
			p.logger.Warn("confirmed charge not attached to session",
				"reference", ref,
				"session_id", c.SessionID().String(),
				"error", err.Error())
		} else {
			p.logger.Info("attached orphan charge to session", "reference", ref, "session_id", c.SessionID().String())
		}
	}
	return p.sessions.Get(ctx, c.SessionID())
}

type Settlement struct {
	Reference string
	Status    charge.Status
	Session   *session.Session
}

func (p *parkingUseCaseImpl) HandleCallback(ctx context.Context, payload []byte) (*Settlement, error) {
	ref, status, err := p.gateway.HandleCallback(ctx, payload)
	if err != nil {
		return nil, err
	}
	s, err := p.HandleSettlement(ctx, ref, status)
	if err != nil {
		return nil, err
	}
	return &Settlement{Reference: ref, Status: status, Session: s}, nil
}

func (p *parkingUseCaseImpl) PollAndSettle(ctx context.Context, ref string) (charge.Status, error) {
	status, err := p.gateway.PollStatus(ctx, ref)
	if err != nil {
		return "", err
	}
	if _, err := p.HandleSettlement(ctx, ref, status); err != nil {
		return status, err
	}
	return status, nil
}

func (p *parkingUseCaseImpl) RetryCharge(ctx context.Context, sessionID uuid.UUID) (charge.Handle, error) {
	s, err := p.sessions.Get(ctx, sessionID)
	if err != nil {
		return charge.Handle{}, err
	}
	if s.State() != session.StatePendingPayment {
		return charge.Handle{}, errs.Wrapf(session.ErrSessionNotPending, "session %s is %s", sessionID, s.State())
	}
	log := p.logger.With("session_id", sessionID.String())

	// set when the attached charge failed or expired and is being replaced
	dead := session.FollowUpNone
	if s.HasCharge() {
		c, err := p.gateway.GetCharge(ctx, s.ChargeRef())
		if err != nil {
			return charge.Handle{}, err
		}
		switch c.Status() {
		case charge.StatusConfirmed:
			return charge.Handle{}, errs.Wrapf(session.ErrChargeConflict, "session %s charge %s is %s", sessionID, c.Reference(), c.Status())
		case charge.StatusFailed:
			dead = session.FollowUpPaymentFailed
		case charge.StatusExpired:
			dead = session.FollowUpPaymentExpired
		}
		// a pending charge is submitted again under its own reference: the
		// provider may never have received it
		if dead != session.FollowUpNone {
			log = log.With("superseded", c.Reference())
			if !s.ChargeDead() {
				if err := p.sessions.Flag(ctx, sessionID, dead); err != nil {
					return charge.Handle{}, err
				}
			}
		}
	}

	amount := s.Fee()
	if amount == nil {
		// exit closed the session but never priced it
		computed, err := p.fees.Compute(s.Class(), s.EntryAt(), *s.ExitAt())
		if err != nil {
			return charge.Handle{}, err
		}
		if err := p.sessions.AttachFee(ctx, sessionID, computed); err != nil {
			return charge.Handle{}, err
		}
		amount = &computed
	}

	handle, err := p.gateway.Charge(ctx, sessionID, *amount)
	if err == nil {
		err = p.sessions.AttachCharge(ctx, sessionID, handle.Reference)
	}
	if err != nil {
		reason := followUpFor(err)
		if dead != session.FollowUpNone && reason == session.FollowUpChargeNotIssued {
			// the dead charge is still attached; its flag keeps it replaceable
			reason = dead
		}
		if flagErr := p.sessions.Flag(ctx, sessionID, reason); flagErr != nil {
			log.Error("failed to flag session", "error", flagErr.Error())
		}
		log.Warn("charge retry failed", "follow_up", reason.String(), "error", err.Error())
		return charge.Handle{}, err
	}
	if err := p.sessions.Unflag(ctx, sessionID); err != nil {
		return charge.Handle{}, err
	}
	log.Info("charge issued on retry", "reference", handle.Reference)
	return handle, nil
}

func (p *parkingUseCaseImpl) CancelSession(ctx context.Context, sessionID uuid.UUID, reason string) (*session.Session, error) {
	cancelled, err := p.sessions.Cancel(ctx, sessionID, reason)
	if err != nil {
		return nil, err
	}
	released, err := p.slots.ReleaseHeldBy(ctx, cancelled.SlotCode(), cancelled.ID())
	if err != nil {
		return nil, errs.Wrapf(err, "release slot %s", cancelled.SlotCode())
	}
	p.logger.Info("session cancelled",
		"session_id", sessionID.String(),
		"slot", cancelled.SlotCode(),
		"slot_released", released,
		"reason", reason)
	return cancelled, nil
}
