package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"parkflow/internal/domain/charge"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/usecase/shared"

	"github.com/google/uuid"
)

type ChargeStore struct {
	mu        sync.Mutex
	charges   map[string]*charge.Charge
	bySession map[uuid.UUID][]string
}

func NewChargeStore() *ChargeStore {
	return &ChargeStore{
		charges:   make(map[string]*charge.Charge),
		bySession: make(map[uuid.UUID][]string),
	}
}

var _ shared.ChargeStore = (*ChargeStore)(nil)

func (s *ChargeStore) Create(_ context.Context, c *charge.Charge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.charges[c.Reference()]; ok {
		return errs.Wrapf(charge.ErrDuplicateReference, "reference %s", c.Reference())
	}
	if c.Status() == charge.StatusPending {
		for _, ref := range s.bySession[c.SessionID()] {
			if s.charges[ref].Status() == charge.StatusPending {
				return errs.Wrapf(charge.ErrPendingExists, "session %s reference %s", c.SessionID(), ref)
			}
		}
	}
	s.charges[c.Reference()] = c.Clone()
	s.bySession[c.SessionID()] = append(s.bySession[c.SessionID()], c.Reference())
	return nil
}

func (s *ChargeStore) Get(_ context.Context, ref string) (*charge.Charge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.charges[ref]
	if !ok {
		return nil, errs.Wrapf(charge.ErrChargeNotFound, "reference %s", ref)
	}
	return c.Clone(), nil
}

func (s *ChargeStore) PendingForSession(_ context.Context, sessionID uuid.UUID) (*charge.Charge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs := s.bySession[sessionID]
	for i := len(refs) - 1; i >= 0; i-- {
		if c := s.charges[refs[i]]; c.Status() == charge.StatusPending {
			return c.Clone(), nil
		}
	}
	return nil, errs.Wrapf(charge.ErrChargeNotFound, "no pending charge for session %s", sessionID)
}

func (s *ChargeStore) ListForSession(_ context.Context, sessionID uuid.UUID) ([]*charge.Charge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs := s.bySession[sessionID]
	out := make([]*charge.Charge, 0, len(refs))
	for _, ref := range refs {
		out = append(out, s.charges[ref].Clone())
	}
	return out, nil
}

func (s *ChargeStore) Mutate(_ context.Context, ref string, fn func(c *charge.Charge) error) (*charge.Charge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.charges[ref]
	if !ok {
		return nil, errs.Wrapf(charge.ErrChargeNotFound, "reference %s", ref)
	}
	working := stored.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	s.charges[ref] = working
	return working.Clone(), nil
}

func (s *ChargeStore) ListPending(_ context.Context, createdBefore time.Time, limit int) ([]*charge.Charge, error) {
	s.mu.Lock()
	out := make([]*charge.Charge, 0)
	for _, c := range s.charges {
		if c.Status() == charge.StatusPending && c.CreatedAt().Before(createdBefore) {
			out = append(out, c.Clone())
		}
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
