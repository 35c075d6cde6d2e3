package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"parkflow/internal/domain/session"
	"parkflow/internal/domain/vehicle"
	"parkflow/internal/pkg/clock"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionLedger keeps sessions in memory. The single mutex is held only for
// map bookkeeping; callers never hold it across I/O.
type SessionLedger struct {
	mu          sync.Mutex
	sessions    map[uuid.UUID]*session.Session
	openByPlate map[vehicle.Plate]uuid.UUID
	openBySlot  map[string]uuid.UUID
	byChargeRef map[string]uuid.UUID
	clock       clock.Clock
}

func NewSessionLedger(clk clock.Clock) *SessionLedger {
	return &SessionLedger{
		sessions:    make(map[uuid.UUID]*session.Session),
		openByPlate: make(map[vehicle.Plate]uuid.UUID),
		openBySlot:  make(map[string]uuid.UUID),
		byChargeRef: make(map[string]uuid.UUID),
		clock:       clk,
	}
}

var _ shared.SessionLedger = (*SessionLedger)(nil)

func (l *SessionLedger) Open(_ context.Context, p session.OpenParams) (uuid.UUID, error) {
	s, err := session.NewSession(p, l.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.openByPlate[s.Plate()]; ok {
		return uuid.Nil, errs.Wrapf(session.ErrDuplicateActiveSession, "plate %s", s.Plate())
	}
	if s.SlotCode() != "" {
		if _, ok := l.openBySlot[s.SlotCode()]; ok {
			return uuid.Nil, errs.Wrapf(session.ErrDuplicateActiveSession, "slot %s", s.SlotCode())
		}
	}
	if _, ok := l.sessions[s.ID()]; ok {
		return uuid.Nil, errs.Wrapf(session.ErrDuplicateActiveSession, "session %s", s.ID())
	}

	l.sessions[s.ID()] = s
	l.openByPlate[s.Plate()] = s.ID()
	if s.SlotCode() != "" {
		l.openBySlot[s.SlotCode()] = s.ID()
	}
	return s.ID(), nil
}

// mutate applies fn to the stored session and keeps the open indexes in step
// with its state.
func (l *SessionLedger) mutate(id uuid.UUID, fn func(s *session.Session, now time.Time) error) (*session.Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stored, ok := l.sessions[id]
	if !ok {
		return nil, errs.Wrapf(session.ErrSessionNotFound, "session %s", id)
	}

	// work on a copy so a failed fn leaves the stored session untouched
	working := stored.Clone()
	if err := fn(working, l.clock.Now()); err != nil {
		return nil, err
	}
	if ref := working.ChargeRef(); ref != "" && ref != stored.ChargeRef() {
		if owner, taken := l.byChargeRef[ref]; taken && owner != id {
			return nil, errs.Wrapf(session.ErrChargeConflict, "charge %s is attached to another session", ref)
		}
	}
	l.sessions[id] = working

	// a superseded reference no longer resolves to the session
	if old := stored.ChargeRef(); old != "" && old != working.ChargeRef() {
		delete(l.byChargeRef, old)
	}

	if !working.IsOpen() && l.openByPlate[working.Plate()] == id {
		delete(l.openByPlate, working.Plate())
	}
	if !working.State().HoldsSlot() && l.openBySlot[working.SlotCode()] == id {
		delete(l.openBySlot, working.SlotCode())
	}
	if ref := working.ChargeRef(); ref != "" {
		l.byChargeRef[ref] = id
	}
	return working.Clone(), nil
}

func (l *SessionLedger) Close(_ context.Context, id uuid.UUID, exitAt time.Time) (*session.Session, error) {
	return l.mutate(id, func(s *session.Session, now time.Time) error {
		return s.Close(exitAt, now)
	})
}

func (l *SessionLedger) AttachFee(_ context.Context, id uuid.UUID, amount decimal.Decimal) error {
	_, err := l.mutate(id, func(s *session.Session, now time.Time) error {
		return s.AttachFee(amount, now)
	})
	return err
}

func (l *SessionLedger) AttachCharge(_ context.Context, id uuid.UUID, ref string) error {
	_, err := l.mutate(id, func(s *session.Session, now time.Time) error {
		_, err := s.AttachCharge(ref, now)
		return err
	})
	return err
}

func (l *SessionLedger) Settle(_ context.Context, id uuid.UUID) (bool, error) {
	var changed bool
	_, err := l.mutate(id, func(s *session.Session, now time.Time) error {
		var err error
		changed, err = s.Settle(now)
		return err
	})
	return changed, err
}

func (l *SessionLedger) Cancel(_ context.Context, id uuid.UUID, reason string) (*session.Session, error) {
	return l.mutate(id, func(s *session.Session, now time.Time) error {
		return s.Cancel(reason, now)
	})
}

func (l *SessionLedger) Flag(_ context.Context, id uuid.UUID, reason session.FollowUp) error {
	_, err := l.mutate(id, func(s *session.Session, now time.Time) error {
		s.Flag(reason, now)
		return nil
	})
	return err
}

func (l *SessionLedger) Unflag(_ context.Context, id uuid.UUID) error {
	_, err := l.mutate(id, func(s *session.Session, now time.Time) error {
		s.Unflag(now)
		return nil
	})
	return err
}

func (l *SessionLedger) Get(_ context.Context, id uuid.UUID) (*session.Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.sessions[id]
	if !ok {
		return nil, errs.Wrapf(session.ErrSessionNotFound, "session %s", id)
	}
	return s.Clone(), nil
}

func (l *SessionLedger) Lookup(_ context.Context, plate vehicle.Plate) (*session.Session, error) {
	return getIndexed(l, l.openByPlate, plate, "plate")
}

func (l *SessionLedger) LookupBySlot(_ context.Context, code string) (*session.Session, error) {
	return getIndexed(l, l.openBySlot, code, "slot")
}

func (l *SessionLedger) FindByChargeRef(_ context.Context, ref string) (*session.Session, error) {
	return getIndexed(l, l.byChargeRef, ref, "charge")
}

func getIndexed[K comparable](l *SessionLedger, index map[K]uuid.UUID, key K, label string) (*session.Session, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, ok := index[key]
	if !ok {
		return nil, errs.Wrapf(session.ErrSessionNotFound, "%s %v", label, key)
	}
	return l.sessions[id].Clone(), nil
}

func (l *SessionLedger) List(_ context.Context, f session.ListFilter) ([]*session.Session, error) {
	l.mu.Lock()
	out := make([]*session.Session, 0)
	for _, s := range l.sessions {
		if f.Matches(s) {
			out = append(out, s.Clone())
		}
	}
	l.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].EntryAt().Equal(out[j].EntryAt()) {
			return out[i].EntryAt().Before(out[j].EntryAt())
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}
