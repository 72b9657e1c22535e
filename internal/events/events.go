package events

//go:generate mockgen -source=events.go -destination=mocks/mock_publisher.go -package=mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/honeynil/PlayerServiceTochka/internal/models"
)

type EventType string

const (
	PlayerCreated EventType = "player_created"
	PlayerUpdated EventType = "player_updated"
	PlayerDeleted EventType = "player_deleted"
)

type PlayerEvent struct {
	ID         string         `json:"event_id"`
	Type       EventType      `json:"event_type"`
	PlayerID   int64          `json:"player_id"`
	Player     *models.Player `json:"player,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewPlayerEvent stamps a fresh event. The player snapshot is copied; it is
// omitted for deletions.
func NewPlayerEvent(t EventType, player *models.Player) PlayerEvent {
	e := PlayerEvent{
		ID:         uuid.NewString(),
		Type:       t,
		PlayerID:   player.ID,
		OccurredAt: time.Now().UTC(),
	}
	if t != PlayerDeleted {
		snapshot := *player
		e.Player = &snapshot
	}
	return e
}

type Publisher interface {
	Publish(ctx context.Context, event PlayerEvent) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, PlayerEvent) error { return nil }
