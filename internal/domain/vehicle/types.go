package vehicle

import (
	"strings"

	"parkflow/internal/pkg/errs"
)

var (
	ErrInvalidClass = errs.Sentinel("invalid vehicle class", errs.ErrValidation)
	ErrInvalidPlate = errs.Sentinel("invalid vehicle plate", errs.ErrValidation)
)

type Class string

const (
	ClassBike  Class = "bike"
	ClassCar   Class = "car"
	ClassHeavy Class = "heavy"
)

func (c Class) String() string {
	return string(c)
}

func (c Class) IsValid() bool {
	switch c {
	case ClassBike, ClassCar, ClassHeavy:
		return true
	default:
		return false
	}
}

func NewClass(s string) (Class, error) {
	class := Class(strings.ToLower(strings.TrimSpace(s)))
	if !class.IsValid() {
		return "", errs.Wrapf(ErrInvalidClass, "class %q", s)
	}
	return class, nil
}

func AllClasses() []Class {
	return []Class{ClassBike, ClassCar, ClassHeavy}
}

// Plate is a normalised licence plate: upper-case, no whitespace or dashes.
type Plate string

const maxPlateLength = 16

func NewPlate(raw string) (Plate, error) {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		switch r {
		case ' ', '\t', '\n', '\r', '-':
			continue
		}
		b.WriteRune(r)
	}
	normalized := b.String()
	if normalized == "" {
		return "", errs.Wrap(ErrInvalidPlate, "plate is empty")
	}
	if len(normalized) > maxPlateLength {
		return "", errs.Wrapf(ErrInvalidPlate, "plate %q exceeds %d characters", normalized, maxPlateLength)
	}
	return Plate(normalized), nil
}

func (p Plate) String() string {
	return string(p)
}
