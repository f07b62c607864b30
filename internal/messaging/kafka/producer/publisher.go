package producer

import (
	"context"

	"leavehub/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// publish writes one outbox row as a kafka message. The aggregate ID keys
// the message so events for one employee or request stay ordered within a
// partition.
func (w *Worker) publish(ctx context.Context, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
		},
	}

	return w.writer.WriteMessages(ctx, msg)
}
