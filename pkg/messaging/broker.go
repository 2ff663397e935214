package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/medidesk-api/pkg/metrics"
)

// DefaultChannel carries every MediDesk domain event.
const DefaultChannel = "medidesk.events"

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

// Publisher defines the interface for publishing messages
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{})
}

type Message struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// EventPublisher wraps a Broker with best-effort semantics: failures are
// logged and counted, never returned to the caller.
type EventPublisher struct {
	broker  Broker
	channel string
	metrics *metrics.Metrics
}

func NewEventPublisher(broker Broker, channel string, m *metrics.Metrics) *EventPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &EventPublisher{broker: broker, channel: channel, metrics: m}
}

func (p *EventPublisher) Publish(ctx context.Context, eventType string, payload interface{}) {
	msg := Message{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	err := p.broker.Publish(ctx, p.channel, msg)
	p.metrics.ObserveEvent(eventType, err)
	if err != nil {
		log.Ctx(ctx).Warn().
			Err(err).
			Str("event_type", eventType).
			Str("event_id", msg.ID).
			Msg("failed to publish event")
	}
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) {}
