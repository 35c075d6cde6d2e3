package request

type EntryRequest struct {
	Plate        string `json:"plate" binding:"required,max=32"`
	VehicleClass string `json:"vehicle_class" binding:"required,max=16"`
	// operator override; requires the admin role
	SlotCode string `json:"slot_code" binding:"omitempty,max=32"`
}

type ExitRequest struct {
	Plate string `json:"plate" binding:"required,max=32"`
}

type CancelSessionRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}
