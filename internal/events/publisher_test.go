package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func headerMap(msg *sarama.ProducerMessage) map[string]string {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[string(h.Key)] = string(h.Value)
	}
	return headers
}

func TestKafkaPublisher_Publish(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "handler")
	defer span.End()

	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, "ecoscan-activity", msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "user_7", string(key))

		headers := headerMap(msg)
		assert.Equal(t, EventTypeFavoriteAdded, headers["event_type"])
		assert.NotEmpty(t, headers["event_id"])
		assert.Contains(t, headers["traceparent"], span.SpanContext().TraceID().String())

		value, err := msg.Value.Encode()
		require.NoError(t, err)

		var event ActivityEvent
		require.NoError(t, json.Unmarshal(value, &event))
		assert.Equal(t, EventTypeFavoriteAdded, event.EventType)
		assert.Equal(t, uint(7), event.UserID)
		require.NotNil(t, event.ProductID)
		assert.Equal(t, uint(1), *event.ProductID)
		assert.Equal(t, headers["event_id"], event.EventID)
		assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), event.Timestamp)
		return nil
	})

	publisher := NewKafkaPublisherWithProducer(producer, "")
	publisher.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	productID := uint(1)
	err := publisher.Publish(ctx, ActivityEvent{EventType: EventTypeFavoriteAdded, UserID: 7, ProductID: &productID})
	require.NoError(t, err)
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisher_PublishFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewKafkaPublisherWithProducer(producer, "activity")
	err := publisher.Publish(context.Background(), ActivityEvent{EventType: EventTypeSearchPerformed, UserID: 1, Query: "oat"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, sarama.ErrOutOfBrokers))
	require.NoError(t, publisher.Close())
}

func TestActivityEvent_OmitsEmptyFields(t *testing.T) {
	payload, err := json.Marshal(ActivityEvent{EventID: "e1", EventType: EventTypeSearchPerformed, UserID: 2, Query: "milk"})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(payload, &fields))
	assert.NotContains(t, fields, "product_id")
	assert.NotContains(t, fields, "favorite_id")
	assert.Equal(t, "milk", fields["query"])
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), ActivityEvent{EventType: EventTypeFavoriteRemoved}))
}
