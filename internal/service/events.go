package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"user-dashboard-service/internal/entity"
)

// EventPublisher delivers user lifecycle events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event entity.UserEvent) error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// EventKey is the message key of event, e.g. "user.deleted.3".
func EventKey(event entity.UserEvent) string {
	return fmt.Sprintf("user.%s.%d", event.Type, event.UserID)
}

func (p *KafkaPublisher) Publish(ctx context.Context, event entity.UserEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(EventKey(event)),
		Value: value,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, entity.UserEvent) error { return nil }
