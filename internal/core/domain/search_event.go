package domain

import "time"

// SearchPerformedEvent - аналитическое событие об одном выполненном поиске.
type SearchPerformedEvent struct {
	EventID          string
	TraceID          string
	OriginalQuery    *string
	InterpretedQuery *string
	ResolvedArea     *string
	HasAnyFilter     bool
	Total            int64
	Page             int
	PageSize         int
	Duration         time.Duration
	OccurredAt       time.Time
}
