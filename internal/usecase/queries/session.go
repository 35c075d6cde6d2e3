package queries

//go:generate mockgen -source=session.go -destination=../../testutil/mock/queries/session.go -package=queriesmock

import (
	"context"

	"parkflow/internal/domain/charge"
	"parkflow/internal/domain/session"
	"parkflow/internal/domain/vehicle"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/pkg/ptr"
	"parkflow/internal/usecase/shared"

	"github.com/google/uuid"
)

type SessionFilters struct {
	State       *string
	FlaggedOnly bool
}

type SessionQueries interface {
	Get(ctx context.Context, id uuid.UUID) (*SessionView, error)
	ActiveByPlate(ctx context.Context, plate string) (*SessionView, error)
	List(ctx context.Context, filters SessionFilters, after *Cursor, limit int) ([]*SessionListItem, *Cursor, error)
	Charge(ctx context.Context, ref string) (*ChargeView, error)
}

type sessionQueriesImpl struct {
	sessions shared.SessionLedger
	charges  shared.ChargeStore
}

func NewSessionQueries(sessions shared.SessionLedger, charges shared.ChargeStore) SessionQueries {
	return &sessionQueriesImpl{sessions: sessions, charges: charges}
}

func (q *sessionQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	s, err := q.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return q.withCharges(ctx, s)
}

func (q *sessionQueriesImpl) ActiveByPlate(ctx context.Context, rawPlate string) (*SessionView, error) {
	plate, err := vehicle.NewPlate(rawPlate)
	if err != nil {
		return nil, err
	}
	s, err := q.sessions.Lookup(ctx, plate)
	if err != nil {
		if errs.Is(err, session.ErrSessionNotFound) {
			return nil, errs.Wrapf(session.ErrNoActiveSession, "plate %s", plate)
		}
		return nil, err
	}
	return q.withCharges(ctx, s)
}

func (q *sessionQueriesImpl) withCharges(ctx context.Context, s *session.Session) (*SessionView, error) {
	charges, err := q.charges.ListForSession(ctx, s.ID())
	if err != nil {
		return nil, err
	}
	v := toSessionView(s)
	for _, c := range charges {
		v.Charges = append(v.Charges, *toChargeView(c))
	}
	return v, nil
}

func (q *sessionQueriesImpl) List(ctx context.Context, filters SessionFilters, after *Cursor, limit int) ([]*SessionListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	f := session.ListFilter{FlaggedOnly: filters.FlaggedOnly, Limit: limit + 1}
	if filters.State != nil {
		state, err := session.NewState(*filters.State)
		if err != nil {
			return nil, nil, err
		}
		f.State = &state
	}
	if after != nil && after.After != "" {
		entryAt, id, err := DecodeAfterCursor(after.After)
		if err != nil {
			return nil, nil, err
		}
		f.AfterEntryAt, f.AfterID = entryAt, id
	}

	rows, err := q.sessions.List(ctx, f)
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next = &Cursor{After: EncodeAfterCursor(last.EntryAt(), last.ID())}
	}

	items := make([]*SessionListItem, 0, len(rows))
	for _, s := range rows {
		v := toSessionView(s)
		items = append(items, &SessionListItem{
			ID:       v.ID,
			Plate:    v.Plate,
			Class:    v.Class,
			SlotCode: v.SlotCode,
			State:    v.State,
			EntryAt:  v.EntryAt,
			ExitAt:   v.ExitAt,
			Fee:      v.Fee,
			FollowUp: v.FollowUp,
		})
	}
	return items, next, nil
}

func (q *sessionQueriesImpl) Charge(ctx context.Context, ref string) (*ChargeView, error) {
	c, err := q.charges.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	return toChargeView(c), nil
}

func toSessionView(s *session.Session) *SessionView {
	v := &SessionView{
		ID:        s.ID(),
		Plate:     s.Plate().String(),
		Class:     s.Class().String(),
		SlotCode:  s.SlotCode(),
		State:     s.State().String(),
		EntryAt:   s.EntryAt(),
		ExitAt:    s.ExitAt(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
	if fee := s.Fee(); fee != nil {
		v.Fee = ptr.Of(fee.String())
	}
	v.ChargeRef = ptr.NonZero(s.ChargeRef())
	v.FollowUp = ptr.NonZero(s.FollowUp().String())
	v.CancelReason = ptr.NonZero(s.CancelReason())
	return v
}

func toChargeView(c *charge.Charge) *ChargeView {
	v := &ChargeView{
		Reference: c.Reference(),
		Amount:    c.Amount().String(),
		Currency:  c.Currency(),
		Status:    c.Status().String(),
		Payload:   c.Payload(),
		Attempts:  c.Attempts(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
	v.LastError = ptr.NonZero(c.LastError())
	return v
}
