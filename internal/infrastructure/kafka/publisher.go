// Package kafka publishes lifecycle events for downstream consumers
// (search indexers, owner notifications, billing reconciliation).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	adminapp "github.com/sngm3741/halal-food-club/api/internal/admin/application"
)

// Publisher implements the admin EventPublisher port on a long-lived kafka.Writer.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a writer for topic on brokers. Messages are keyed by
// submission id so every event for a submission lands on one partition in order.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}}
}

func (p *Publisher) Publish(ctx context.Context, event adminapp.LifecycleEvent) error {
	msg, err := encodeEvent(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write %s: %w", event.Type, err)
	}
	return nil
}

// Close flushes pending writes.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func encodeEvent(event adminapp.LifecycleEvent) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode lifecycle event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(event.SubmissionID),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}, nil
}
