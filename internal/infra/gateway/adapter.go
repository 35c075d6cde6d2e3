package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"parkflow/internal/domain/charge"
	"parkflow/internal/pkg/clock"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/pkg/retry"
	"parkflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Provider is the remote QRIS API. QRISClient implements it against HTTP.
type Provider interface {
	CreateCharge(ctx context.Context, orderID string, amount decimal.Decimal) (string, error)
	Status(ctx context.Context, orderID string) (*TransactionResponse, error)
}

type Options struct {
	ServerKey    string
	Currency     string
	PendingBatch int
}

// Adapter owns charges: it records them before calling the provider, retries
// transient failures with the same reference and verifies notifications.
type Adapter struct {
	provider Provider
	store    shared.ChargeStore
	retrier  *retry.Retrier
	breaker  *Breaker
	clock    clock.Clock
	logger   *slog.Logger
	opts     Options
}

func NewAdapter(
	provider Provider,
	store shared.ChargeStore,
	retrier *retry.Retrier,
	breaker *Breaker,
	clk clock.Clock,
	logger *slog.Logger,
	opts Options,
) *Adapter {
	if opts.PendingBatch <= 0 {
		opts.PendingBatch = 50
	}
	return &Adapter{
		provider: provider,
		store:    store,
		retrier:  retrier,
		breaker:  breaker,
		clock:    clk,
		logger:   logger,
		opts:     opts,
	}
}

var _ shared.PaymentGateway = (*Adapter)(nil)

func (a *Adapter) Charge(ctx context.Context, sessionID uuid.UUID, amount decimal.Decimal) (charge.Handle, error) {
	c, err := a.chargeFor(ctx, sessionID, amount)
	if err != nil {
		return charge.Handle{}, err
	}
	ref := c.Reference()
	log := a.logger.With("session_id", sessionID.String(), "reference", ref)

	var payload string
	err = a.retrier.Do(ctx, "gateway.charge", isTransient, func(ctx context.Context, _ int) error {
		callErr := a.breaker.Execute(func() error {
			var err error
			payload, err = a.provider.CreateCharge(ctx, ref, c.Amount())
			return err
		}, isTransient)
		if errs.Is(callErr, errDuplicateOrder) {
			// an earlier attempt reached the provider; the order exists under our reference
			log.Info("charge already accepted by gateway")
			callErr = nil
		}
		a.recordAttempt(ctx, ref, callErr)
		return callErr
	})

	switch {
	case err == nil:
		updated, mErr := a.store.Mutate(ctx, ref, func(c *charge.Charge) error {
			if payload != "" {
				c.SetPayload(payload, a.clock.Now())
			}
			return nil
		})
		if mErr != nil {
			return charge.Handle{}, errs.Wrap(mErr, "store charge payload")
		}
		log.Info("charge issued", "amount", c.Amount().String())
		return updated.Handle(), nil

	case errs.Is(err, errRejected):
		if _, mErr := a.store.Mutate(ctx, ref, func(c *charge.Charge) error {
			_, tErr := c.Transition(charge.StatusFailed, a.clock.Now())
			return tErr
		}); mErr != nil {
			log.Error("failed to mark rejected charge", "error", mErr.Error())
		}
		log.Warn("charge rejected by gateway", "error", err.Error())
		return charge.Handle{Reference: ref}, errs.Wrapf(charge.ErrGatewayRejected, "reference %s: %v", ref, err)

	default:
		log.Warn("charge left pending, gateway unavailable", "error", err.Error())
		return charge.Handle{Reference: ref}, errs.Wrapf(charge.ErrGatewayUnavailable, "reference %s: %v", ref, err)
	}
}

// chargeFor reuses the session's pending charge or records a new one.
func (a *Adapter) chargeFor(ctx context.Context, sessionID uuid.UUID, amount decimal.Decimal) (*charge.Charge, error) {
	existing, err := a.store.ListForSession(ctx, sessionID)
	if err != nil {
		return nil, errs.Wrap(err, "list session charges")
	}
	for i := len(existing) - 1; i >= 0; i-- {
		switch existing[i].Status() {
		case charge.StatusConfirmed:
			return nil, errs.Wrapf(charge.ErrAlreadyConfirmed, "session %s reference %s", sessionID, existing[i].Reference())
		case charge.StatusPending:
			return existing[i], nil
		}
	}

	c, err := charge.NewCharge(charge.NewReference(), sessionID, amount, a.opts.Currency, a.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := a.store.Create(ctx, c); err != nil {
		if errs.Is(err, charge.ErrPendingExists) {
			// a concurrent caller recorded one first
			return a.store.PendingForSession(ctx, sessionID)
		}
		return nil, errs.Wrap(err, "record charge")
	}
	return c, nil
}

func (a *Adapter) recordAttempt(ctx context.Context, ref string, callErr error) {
	if _, err := a.store.Mutate(ctx, ref, func(c *charge.Charge) error {
		c.RecordAttempt(callErr, a.clock.Now())
		return nil
	}); err != nil {
		a.logger.Error("failed to record charge attempt", "reference", ref, "error", err.Error())
	}
}

func (a *Adapter) PollStatus(ctx context.Context, ref string) (charge.Status, error) {
	c, err := a.store.Get(ctx, ref)
	if err != nil {
		return "", err
	}
	if c.Status().IsTerminal() {
		return c.Status(), nil
	}

	var resp *TransactionResponse
	err = a.retrier.Do(ctx, "gateway.status", isTransient, func(ctx context.Context, _ int) error {
		return a.breaker.Execute(func() error {
			var err error
			resp, err = a.provider.Status(ctx, ref)
			return err
		}, isTransient)
	})
	if err != nil {
		if errs.Is(err, errTransactionNotFound) {
			// never reached the provider; stays pending for a charge retry
			return charge.StatusPending, nil
		}
		return "", errs.Wrapf(charge.ErrGatewayUnavailable, "status %s: %v", ref, err)
	}

	status, ok := MapTransactionStatus(resp.TransactionStatus, resp.FraudStatus)
	if !ok {
		a.logger.Warn("unknown transaction status", "reference", ref, "transaction_status", resp.TransactionStatus)
		return charge.StatusPending, nil
	}
	return a.apply(ctx, ref, status)
}

func (a *Adapter) HandleCallback(ctx context.Context, payload []byte) (string, charge.Status, error) {
	var n Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		a.logger.Warn("rejected callback: malformed body", "error", err.Error())
		return "", "", errs.Wrap(charge.ErrInvalidCallback, "malformed body")
	}
	log := a.logger.With("reference", n.OrderID)

	if n.OrderID == "" || !VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, a.opts.ServerKey, n.SignatureKey) {
		log.Warn("rejected callback: signature mismatch")
		return "", "", errs.Wrap(charge.ErrInvalidCallback, "signature mismatch")
	}

	status, ok := MapTransactionStatus(n.TransactionStatus, n.FraudStatus)
	if !ok {
		log.Warn("rejected callback: unknown status", "transaction_status", n.TransactionStatus)
		return "", "", errs.Wrapf(charge.ErrInvalidCallback, "unknown status %q", n.TransactionStatus)
	}

	c, err := a.store.Get(ctx, n.OrderID)
	if err != nil {
		return "", "", err
	}

	gross, err := decimal.NewFromString(n.GrossAmount)
	if err != nil || !gross.Equal(c.Amount()) {
		log.Warn("rejected callback: amount mismatch",
			"callback_amount", n.GrossAmount,
			"charge_amount", c.Amount().String())
		return "", "", errs.Wrap(charge.ErrInvalidCallback, "amount mismatch")
	}

	applied, err := a.apply(ctx, n.OrderID, status)
	if err != nil {
		return "", "", err
	}
	return n.OrderID, applied, nil
}

// apply moves the charge to status. A conflicting terminal status is logged
// and the stored status is returned instead.
func (a *Adapter) apply(ctx context.Context, ref string, status charge.Status) (charge.Status, error) {
	updated, err := a.store.Mutate(ctx, ref, func(c *charge.Charge) error {
		_, err := c.Transition(status, a.clock.Now())
		return err
	})
	if err == nil {
		return updated.Status(), nil
	}
	if !errs.Is(err, charge.ErrInvalidTransition) {
		return "", err
	}

	current, getErr := a.store.Get(ctx, ref)
	if getErr != nil {
		return "", getErr
	}
	a.logger.Warn("ignoring conflicting charge status",
		"reference", ref,
		"current", current.Status().String(),
		"reported", status.String())
	return current.Status(), nil
}

func (a *Adapter) PendingCharges(ctx context.Context, olderThan time.Duration) ([]*charge.Charge, error) {
	return a.store.ListPending(ctx, a.clock.Now().Add(-olderThan), a.opts.PendingBatch)
}

func (a *Adapter) GetCharge(ctx context.Context, ref string) (*charge.Charge, error) {
	return a.store.Get(ctx, ref)
}
