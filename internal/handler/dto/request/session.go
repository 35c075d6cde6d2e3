package request

import "parkflow/internal/usecase/queries"

type ListSessionsQuery struct {
	State   *string `form:"state"`
	Flagged bool    `form:"flagged"`
	Limit   int     `form:"limit" binding:"omitempty,min=1,max=200"`
	After   string  `form:"after"`
}

func (q ListSessionsQuery) ToFilters() (queries.SessionFilters, *queries.Cursor) {
	var cursor *queries.Cursor
	if q.After != "" {
		cursor = &queries.Cursor{After: q.After}
	}
	return queries.SessionFilters{State: q.State, FlaggedOnly: q.Flagged}, cursor
}
