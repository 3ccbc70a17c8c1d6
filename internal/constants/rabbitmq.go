package constants

// Обменник для аналитических событий
const (
	SearchEventsExchange     = "search_events"
	SearchEventsExchangeType = "topic"
)

// Ключи маршрутизации
const (
	RoutingKeySearchPerformed = "search.performed"
)

// Тип и версия события, по ним contracts находит JSON Schema
const (
	EventTypeSearchPerformed    = "SearchPerformedEvent"
	EventVersionSearchPerformed = "1.0.0"
)
