package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medidesk-api/pkg/metrics"
)

type recordingBroker struct {
	channel string
	msgs    []Message
	err     error
}

func (b *recordingBroker) Publish(_ context.Context, channel string, message interface{}) error {
	b.channel = channel
	if msg, ok := message.(Message); ok {
		b.msgs = append(b.msgs, msg)
	}
	return b.err
}

func (b *recordingBroker) Close() error { return nil }

func TestEventPublisherWrapsPayload(t *testing.T) {
	broker := &recordingBroker{}
	p := NewEventPublisher(broker, "", nil)

	p.Publish(context.Background(), "patient.registered", map[string]int64{"id": 4})

	require.Len(t, broker.msgs, 1)
	assert.Equal(t, DefaultChannel, broker.channel)
	assert.Equal(t, "patient.registered", broker.msgs[0].Type)
	assert.NotEmpty(t, broker.msgs[0].ID)
	assert.False(t, broker.msgs[0].OccurredAt.IsZero())
}

func TestEventPublisherSwallowsErrors(t *testing.T) {
	m := metrics.New("medidesk_test", prometheus.NewRegistry())
	broker := &recordingBroker{err: errors.New("redis down")}
	p := NewEventPublisher(broker, "custom", m)

	assert.NotPanics(t, func() {
		p.Publish(context.Background(), "invoice.issued", nil)
	})
	assert.Equal(t, "custom", broker.channel)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("invoice.issued", "error")))
}
