package response

import (
	"time"

	"parkflow/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SlotResponse struct {
	Code      string     `json:"code"`
	Zone      string     `json:"zone"`
	Level     int        `json:"level"`
	State     string     `json:"state"`
	SessionID *uuid.UUID `json:"session_id,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type ZoneOccupancyResponse struct {
	Zone     string `json:"zone"`
	Total    int    `json:"total"`
	Free     int    `json:"free"`
	Occupied int    `json:"occupied"`
}

type OccupancyResponse struct {
	Total    int                     `json:"total"`
	Free     int                     `json:"free"`
	Occupied int                     `json:"occupied"`
	Zones    []ZoneOccupancyResponse `json:"zones"`
}

func FromSlotView(v *queries.SlotView) (*SlotResponse, error) {
	var res SlotResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromSlotViews(views []*queries.SlotView) ([]SlotResponse, error) {
	res := make([]SlotResponse, 0, len(views))
	if err := copier.Copy(&res, &views); err != nil {
		return nil, err
	}
	return res, nil
}

func FromOccupancyView(v *queries.OccupancyView) (*OccupancyResponse, error) {
	var res OccupancyResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}
