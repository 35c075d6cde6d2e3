package operator

import (
	"parkflow/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAnonymous = errs.Sentinel("credentials carry no operator id", errs.ErrExternalUntrusted)

// Identity is the authenticated caller of the operator API.
type Identity struct {
	ID   uuid.UUID
	Role Role
}

func NewIdentity(id uuid.UUID, role string) (Identity, error) {
	if id == uuid.Nil {
		return Identity{}, ErrAnonymous
	}
	r, err := NewRole(role)
	if err != nil {
		return Identity{}, errs.Wrapf(err, "role %q", role)
	}
	return Identity{ID: id, Role: r}, nil
}

func (i Identity) Can(min Role) bool {
	return i.Role.AtLeast(min)
}
