package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgayam/proconnect-backend/internal/constants"
	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

type fakePublisher struct {
	routingKey string
	msg        amqp.Publishing
	calls      int
	err        error
}

func (f *fakePublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	f.calls++
	f.routingKey = routingKey
	f.msg = msg
	return f.err
}

func sampleEvent() domain.SearchPerformedEvent {
	query := "plumber in indiranagar"
	keyword := "plumber"
	area := "Indiranagar"
	return domain.SearchPerformedEvent{
		EventID:          "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
		TraceID:          "trace-1",
		OriginalQuery:    &query,
		InterpretedQuery: &keyword,
		ResolvedArea:     &area,
		HasAnyFilter:     true,
		Total:            1,
		Page:             0,
		PageSize:         10,
		Duration:         42 * time.Millisecond,
		OccurredAt:       time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC),
	}
}

func TestNewSearchEventsAdapter_Validation(t *testing.T) {
	_, err := NewSearchEventsAdapter(nil, constants.RoutingKeySearchPerformed)
	assert.Error(t, err)

	_, err = NewSearchEventsAdapter(&fakePublisher{}, "")
	assert.Error(t, err)
}

func TestPublishSearchPerformed(t *testing.T) {
	publisher := &fakePublisher{}
	adapter, err := NewSearchEventsAdapter(publisher, constants.RoutingKeySearchPerformed)
	require.NoError(t, err)

	require.NoError(t, adapter.PublishSearchPerformed(context.Background(), sampleEvent()))

	assert.Equal(t, 1, publisher.calls)
	assert.Equal(t, "search.performed", publisher.routingKey)
	assert.Equal(t, "application/json", publisher.msg.ContentType)
	assert.Equal(t, "trace-1", publisher.msg.Headers["x-trace-id"])
	assert.Equal(t, "1.0.0", publisher.msg.Headers["x-event-version"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(publisher.msg.Body, &body))
	assert.Equal(t, "plumber", body["interpreted_query"])
	assert.Equal(t, "Indiranagar", body["resolved_area"])
	assert.Equal(t, float64(42), body["duration_ms"])
}

func TestPublishSearchPerformed_InvalidEventIsNotPublished(t *testing.T) {
	publisher := &fakePublisher{}
	adapter, err := NewSearchEventsAdapter(publisher, constants.RoutingKeySearchPerformed)
	require.NoError(t, err)

	event := sampleEvent()
	event.PageSize = 0

	err = adapter.PublishSearchPerformed(context.Background(), event)
	assert.ErrorContains(t, err, "invalid search event")
	assert.Zero(t, publisher.calls)
}

func TestPublishSearchPerformed_PublisherError(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("channel closed")}
	adapter, err := NewSearchEventsAdapter(publisher, constants.RoutingKeySearchPerformed)
	require.NoError(t, err)

	err = adapter.PublishSearchPerformed(context.Background(), sampleEvent())
	assert.ErrorContains(t, err, "channel closed")
}

func TestToFields(t *testing.T) {
	fields := toFields("exchange", "search_events", 42, "skipped", "dangling")
	assert.Equal(t, "search_events", fields["exchange"])
	assert.Len(t, fields, 1)
}
