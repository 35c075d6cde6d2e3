//go:build unit || e2e

package builder

import (
	"parkflow/internal/domain/session"
	"parkflow/internal/domain/vehicle"
	reqdto "parkflow/internal/handler/dto/request"
)

type EntryBuilder struct {
	Plate    string
	Class    string
	SlotCode string
}

func NewEntryBuilder() *EntryBuilder {
	return &EntryBuilder{
		Plate: "B1234XYZ",
		Class: vehicle.ClassCar.String(),
	}
}

func (b *EntryBuilder) WithPlate(plate string) *EntryBuilder {
	b.Plate = plate
	return b
}

func (b *EntryBuilder) WithClass(class vehicle.Class) *EntryBuilder {
	b.Class = class.String()
	return b
}

func (b *EntryBuilder) WithSlot(code string) *EntryBuilder {
	b.SlotCode = code
	return b
}

func (b *EntryBuilder) BuildRequestDTO() reqdto.EntryRequest {
	return reqdto.EntryRequest{
		Plate:        b.Plate,
		VehicleClass: b.Class,
		SlotCode:     b.SlotCode,
	}
}

func (b *EntryBuilder) BuildExitRequestDTO() reqdto.ExitRequest {
	return reqdto.ExitRequest{Plate: b.Plate}
}

func (b *EntryBuilder) BuildOpenParams() session.OpenParams {
	return session.OpenParams{
		Plate:    vehicle.Plate(b.Plate),
		Class:    vehicle.Class(b.Class),
		SlotCode: b.SlotCode,
	}
}
