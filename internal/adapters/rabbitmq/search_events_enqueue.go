package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vgayam/proconnect-backend/internal/constants"
	"github.com/vgayam/proconnect-backend/internal/contextkeys"
	"github.com/vgayam/proconnect-backend/internal/contracts"
	"github.com/vgayam/proconnect-backend/internal/core/domain"
	"github.com/vgayam/proconnect-backend/internal/core/port"
)

const publishTimeout = 5 * time.Second

// Publisher - то, что адаптеру нужно от rabbitmq_producer.Publisher.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// SearchPerformedDTO - тело события search.performed, версия 1.0.0
type SearchPerformedDTO struct {
	EventID          string    `json:"event_id"`
	TraceID          string    `json:"trace_id,omitempty"`
	OriginalQuery    *string   `json:"original_query"`
	InterpretedQuery *string   `json:"interpreted_query"`
	ResolvedArea     *string   `json:"resolved_area"`
	HasAnyFilter     bool      `json:"has_any_filter"`
	Total            int64     `json:"total"`
	Page             int       `json:"page"`
	PageSize         int       `json:"page_size"`
	DurationMs       int64     `json:"duration_ms"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// SearchEventsAdapter публикует аналитику поиска в RabbitMQ.
type SearchEventsAdapter struct {
	producer   Publisher
	routingKey string
}

func NewSearchEventsAdapter(producer Publisher, routingKey string) (*SearchEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &SearchEventsAdapter{
		producer:   producer,
		routingKey: routingKey,
	}, nil
}

func (a *SearchEventsAdapter) PublishSearchPerformed(ctx context.Context, event domain.SearchPerformedEvent) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "SearchEventsAdapter",
		"routing_key": a.routingKey,
		"event_id":    event.EventID,
	})

	dto := SearchPerformedDTO{
		EventID:          event.EventID,
		TraceID:          event.TraceID,
		OriginalQuery:    event.OriginalQuery,
		InterpretedQuery: event.InterpretedQuery,
		ResolvedArea:     event.ResolvedArea,
		HasAnyFilter:     event.HasAnyFilter,
		Total:            event.Total,
		Page:             event.Page,
		PageSize:         event.PageSize,
		DurationMs:       event.Duration.Milliseconds(),
		OccurredAt:       event.OccurredAt.UTC(),
	}

	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal search event: %w", err)
	}

	if err := contracts.ValidateEvent(constants.EventTypeSearchPerformed, constants.EventVersionSearchPerformed, body); err != nil {
		adapterLogger.Error("Search event does not match its schema", err, nil)
		return fmt.Errorf("rabbitmq adapter: invalid search event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		MessageId:    event.EventID,
		Type:         constants.EventTypeSearchPerformed,
		Headers: amqp.Table{
			"x-event-version": constants.EventVersionSearchPerformed,
		},
	}
	if event.TraceID != "" {
		msg.Headers["x-trace-id"] = event.TraceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish search event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish search event %s: %w", event.EventID, err)
	}

	adapterLogger.Debug("Search event published", nil)
	return nil
}

// NoopSearchEventsAdapter используется, когда RabbitMQ выключен в конфиге.
type NoopSearchEventsAdapter struct{}

func (NoopSearchEventsAdapter) PublishSearchPerformed(context.Context, domain.SearchPerformedEvent) error {
	return nil
}
