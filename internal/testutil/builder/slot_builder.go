//go:build unit || e2e

package builder

import (
	"fmt"
	"time"

	"parkflow/internal/domain/slot"
	reqdto "parkflow/internal/handler/dto/request"
)

type SlotBuilder struct {
	Code      string
	Zone      string
	Level     int
	CreatedAt time.Time
}

func NewSlotBuilder() *SlotBuilder {
	return &SlotBuilder{
		Code:      "B-01-001",
		Zone:      "B",
		Level:     1,
		CreatedAt: time.Now(),
	}
}

func (b *SlotBuilder) With(mutate func(*SlotBuilder)) *SlotBuilder {
	mutate(b)
	return b
}

func (b *SlotBuilder) WithCode(code string) *SlotBuilder {
	b.Code = code
	return b
}

func (b *SlotBuilder) WithZone(zone string, level int) *SlotBuilder {
	b.Zone = zone
	b.Level = level
	return b
}

func (b *SlotBuilder) BuildDomain() (*slot.Slot, error) {
	return slot.NewSlot(b.Code, slot.Zone(b.Zone), b.Level, b.CreatedAt)
}

func (b *SlotBuilder) BuildCreateRequestDTO() reqdto.CreateSlotRequest {
	level := b.Level
	return reqdto.CreateSlotRequest{
		Code:  b.Code,
		Zone:  b.Zone,
		Level: &level,
	}
}

// BuildSeed renders the SLOT_SEED form, zone:level:code.
func (b *SlotBuilder) BuildSeed() string {
	return fmt.Sprintf("%s:%d:%s", b.Zone, b.Level, b.Code)
}
