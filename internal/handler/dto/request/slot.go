package request

import "parkflow/internal/usecase/queries"

type CreateSlotRequest struct {
	Code  string `json:"code" binding:"required,max=32"`
	Zone  string `json:"zone" binding:"required,max=8"`
	Level *int   `json:"level" binding:"required"`
}

type ListSlotsQuery struct {
	Zone  *string `form:"zone"`
	Level *int    `form:"level"`
	State *string `form:"state" binding:"omitempty,oneof=free occupied"`
}

func (q ListSlotsQuery) ToFilters() queries.SlotFilters {
	return queries.SlotFilters{Zone: q.Zone, Level: q.Level, State: q.State}
}
