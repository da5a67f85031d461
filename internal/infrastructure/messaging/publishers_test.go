//go:build unit
// +build unit

package messaging

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Mathmagicians/theslope/internal/domain/events"
	"github.com/Mathmagicians/theslope/internal/pkg/config"
	"github.com/Mathmagicians/theslope/internal/pkg/testutil"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewPublisher_Disabled(t *testing.T) {
	publisher, closeFn, err := NewPublisher(config.MessagingSettings{}, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	assert.IsType(t, NopPublisher{}, publisher)
	assert.NoError(t, publisher.Publish(context.Background(), events.Event{Type: events.TypeOrderBooked}))
	assert.NoError(t, closeFn())
}

func TestNewPublisher_EnabledRequiresURL(t *testing.T) {
	_, _, err := NewPublisher(config.MessagingSettings{Enabled: true}, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}

func TestMemoryPublisher(t *testing.T) {
	publisher := &MemoryPublisher{}
	require.NoError(t, publisher.Publish(context.Background(), events.Event{Type: events.TypeOrderBooked, AggregateID: "a"}))
	require.NoError(t, publisher.Publish(context.Background(), events.Event{Type: events.TypeOrderCancelled, AggregateID: "b"}))
	require.NoError(t, publisher.Publish(context.Background(), events.Event{Type: events.TypeOrderBooked, AggregateID: "c"}))

	assert.Len(t, publisher.Events(), 3)
	booked := publisher.OfType(events.TypeOrderBooked)
	require.Len(t, booked, 2)
	assert.Equal(t, "c", booked[1].AggregateID)
}

func TestMemoryPublisher_ConcurrentPublish(t *testing.T) {
	publisher := &MemoryPublisher{}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, publisher.Publish(context.Background(), events.Event{Type: events.TypeOrderBooked}))
		}()
	}
	wg.Wait()

	assert.Len(t, publisher.OfType(events.TypeOrderBooked), 20)
}

func TestNewPublishing(t *testing.T) {
	occurred := time.Date(2025, time.March, 17, 18, 0, 0, 0, time.UTC)
	event := events.Event{
		Type:        events.TypeOrdersClosed,
		AggregateID: "event-id",
		OccurredAt:  occurred,
		Payload:     map[string]interface{}{"closed": 12},
	}

	msg, err := newPublishing(event)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, events.TypeOrdersClosed, msg.Type)

	var decoded events.Event
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, event.AggregateID, decoded.AggregateID)
	assert.True(t, occurred.Equal(decoded.OccurredAt))
	assert.Equal(t, float64(12), decoded.Payload["closed"])
}
