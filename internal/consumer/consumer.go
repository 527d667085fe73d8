package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"user-dashboard-service/internal/entity"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type Consumer struct {
	reader MessageReader
}

func NewConsumer(reader MessageReader) *Consumer {
	return &Consumer{reader: reader}
}

// Run logs user events until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			log.Error().Msgf("Error reading message: %v", err)
			continue
		}

		if _, err := c.processMessage(msg); err != nil {
			log.Error().Str("key", string(msg.Key)).Msgf("Error processing message: %v", err)
		}
	}
}

// processMessage decodes msg and writes it to the audit log.
func (c *Consumer) processMessage(msg kafka.Message) (*entity.UserEvent, error) {
	var event entity.UserEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return nil, fmt.Errorf("unmarshal user event: %w", err)
	}

	// key -> "user.created.3", "user.updated.3" or "user.deleted.3"
	parts := strings.Split(string(msg.Key), ".")
	if len(parts) != 3 || parts[0] != "user" {
		return nil, fmt.Errorf("unexpected message key %q", msg.Key)
	}

	switch parts[1] {
	case entity.UserCreated, entity.UserUpdated:
		log.Info().Str("type", event.Type).Int("user_id", event.UserID).Str("name", event.Name).
			Str("date_of_birth", event.DateOfBirth).Time("occurred_at", event.OccurredAt).Msg("user event")
	case entity.UserDeleted:
		log.Info().Str("type", event.Type).Int("user_id", event.UserID).Str("name", event.Name).
			Time("occurred_at", event.OccurredAt).Msg("user event, later ids shifted down by one")
	default:
		return nil, fmt.Errorf("unknown user event type %q", parts[1])
	}
	return &event, nil
}
