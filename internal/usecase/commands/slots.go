package commands

//go:generate mockgen -source=slots.go -destination=../../testutil/mock/commands/slots.go -package=commandsmock

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"parkflow/internal/domain/slot"
	"parkflow/internal/pkg/clock"
	"parkflow/internal/pkg/errs"
	"parkflow/internal/usecase/shared"
)

type SlotCommands interface {
	RegisterSlot(ctx context.Context, code, zone string, level int) (*slot.Slot, error)
	RemoveSlot(ctx context.Context, code string) error
	// Seed registers "zone:level:code" specs, skipping codes already present.
	Seed(ctx context.Context, specs []string) (int, error)
}

type slotUseCaseImpl struct {
	slots  shared.SlotRegistry
	clock  clock.Clock
	logger *slog.Logger
}

func NewSlotUseCase(slots shared.SlotRegistry, clk clock.Clock, logger *slog.Logger) SlotCommands {
	return &slotUseCaseImpl{
		slots:  slots,
		clock:  clk,
		logger: logger,
	}
}

func (u *slotUseCaseImpl) RegisterSlot(ctx context.Context, code, rawZone string, level int) (*slot.Slot, error) {
	zone, err := slot.NewZone(rawZone)
	if err != nil {
		return nil, err
	}
	s, err := slot.NewSlot(code, zone, level, u.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := u.slots.Register(ctx, s); err != nil {
		return nil, err
	}
	u.logger.Info("slot registered", "slot", s.Code(), "zone", zone.String(), "level", level)
	return s, nil
}

func (u *slotUseCaseImpl) RemoveSlot(ctx context.Context, code string) error {
	if err := u.slots.Remove(ctx, code); err != nil {
		return err
	}
	u.logger.Info("slot removed", "slot", code)
	return nil
}

func (u *slotUseCaseImpl) Seed(ctx context.Context, specs []string) (int, error) {
	added := 0
	for _, spec := range specs {
		zone, level, code, err := ParseSlotSpec(spec)
		if err != nil {
			return added, err
		}
		if _, err := u.RegisterSlot(ctx, code, zone, level); err != nil {
			if errs.Is(err, slot.ErrSlotAlreadyExists) {
				continue
			}
			return added, err
		}
		added++
	}
	return added, nil
}

// ParseSlotSpec splits "B:1:B-01-001" into zone, level and code.
func ParseSlotSpec(spec string) (zone string, level int, code string, err error) {
	parts := strings.SplitN(strings.TrimSpace(spec), ":", 3)
	if len(parts) != 3 {
		return "", 0, "", errs.Wrapf(slot.ErrInvalidSlot, "seed entry %q: want zone:level:code", spec)
	}
	level, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, "", errs.Wrapf(slot.ErrInvalidSlot, "seed entry %q: level %q is not a number", spec, parts[1])
	}
	return parts[0], level, parts[2], nil
}
