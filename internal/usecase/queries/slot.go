package queries

//go:generate mockgen -source=slot.go -destination=../../testutil/mock/queries/slot.go -package=queriesmock

import (
	"context"
	"sort"

	"parkflow/internal/domain/slot"
	"parkflow/internal/pkg/metrics"
	"parkflow/internal/usecase/shared"
)

type SlotFilters struct {
	Zone  *string
	Level *int
	State *string
}

type SlotQueries interface {
	Get(ctx context.Context, code string) (*SlotView, error)
	List(ctx context.Context, filters SlotFilters) ([]*SlotView, error)
	Summary(ctx context.Context) (*OccupancyView, error)
}

type slotQueriesImpl struct {
	slots shared.SlotRegistry
}

func NewSlotQueries(slots shared.SlotRegistry) SlotQueries {
	return &slotQueriesImpl{slots: slots}
}

func (q *slotQueriesImpl) Get(ctx context.Context, code string) (*SlotView, error) {
	s, err := q.slots.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	return toSlotView(s), nil
}

func (q *slotQueriesImpl) List(ctx context.Context, filters SlotFilters) ([]*SlotView, error) {
	var f slot.Filter
	if filters.Zone != nil {
		zone, err := slot.NewZone(*filters.Zone)
		if err != nil {
			return nil, err
		}
		f.Zone = &zone
	}
	if filters.State != nil {
		state, err := slot.NewState(*filters.State)
		if err != nil {
			return nil, err
		}
		f.State = &state
	}
	f.Level = filters.Level

	slots, err := q.slots.Query(ctx, f)
	if err != nil {
		return nil, err
	}
	views := make([]*SlotView, 0, len(slots))
	for i := range slots {
		views = append(views, toSlotView(&slots[i]))
	}
	return views, nil
}

func (q *slotQueriesImpl) Summary(ctx context.Context) (*OccupancyView, error) {
	occ, err := q.slots.Summary(ctx)
	if err != nil {
		return nil, err
	}
	view := &OccupancyView{
		Total:    occ.Total,
		Free:     occ.Free,
		Occupied: occ.Occupied,
		Zones:    make([]ZoneOccupancyView, 0, len(occ.ByZone)),
	}
	for zone, zo := range occ.ByZone {
		view.Zones = append(view.Zones, ZoneOccupancyView{
			Zone:     zone.String(),
			Total:    zo.Total,
			Free:     zo.Free,
			Occupied: zo.Occupied,
		})
		metrics.SetOccupied(zone.String(), zo.Occupied)
	}
	sort.Slice(view.Zones, func(i, j int) bool { return view.Zones[i].Zone < view.Zones[j].Zone })
	return view, nil
}

func toSlotView(s *slot.Slot) *SlotView {
	v := &SlotView{
		Code:      s.Code(),
		Zone:      s.Zone().String(),
		Level:     s.Level(),
		State:     s.State().String(),
		UpdatedAt: s.UpdatedAt(),
	}
	if id, ok := s.SessionID(); ok {
		v.SessionID = &id
	}
	return v
}
