package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/honeynil/PlayerServiceTochka/internal/infrastructure/kafka"
)

// KafkaPublisher writes events keyed by player id so that every event of a
// player lands on the same partition.
type KafkaPublisher struct {
	producer kafka.KafkaProducer
}

func NewKafkaPublisher(producer kafka.KafkaProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event PlayerEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal player event: %w", err)
	}
	if err := p.producer.Send(ctx, strconv.FormatInt(event.PlayerID, 10), payload); err != nil {
		return fmt.Errorf("failed to send player event: %w", err)
	}
	return nil
}
