package repository

//go:generate mockgen -source=player_repository.go -destination=mocks/mock_player_repository.go -package=mocks

import (
	"context"

	"github.com/honeynil/PlayerServiceTochka/internal/filter"
	"github.com/honeynil/PlayerServiceTochka/internal/models"
)

type PlayerRepository interface {
	// Find returns at most pageSize players matching pred, skipping
	// pageNumber*pageSize of them, ascending by order.
	Find(ctx context.Context, pred filter.Predicate, order models.Order, pageNumber, pageSize int) ([]models.Player, error)
	Count(ctx context.Context, pred filter.Predicate) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Player, error)
	// Save inserts the player when its ID is zero and assigns the new ID,
	// otherwise it overwrites the stored record.
	Save(ctx context.Context, player *models.Player) error
	DeleteByID(ctx context.Context, id int64) error
}
