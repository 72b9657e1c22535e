package memory

import (
	"context"
	"sync"

	"github.com/honeynil/PlayerServiceTochka/internal/filter"
	"github.com/honeynil/PlayerServiceTochka/internal/models"
	"github.com/honeynil/PlayerServiceTochka/internal/repository"
	pkgerrors "github.com/honeynil/PlayerServiceTochka/pkg/errors"
)

var _ repository.PlayerRepository = (*PlayerRepository)(nil)

// PlayerRepository keeps players in process memory.
type PlayerRepository struct {
	mu      sync.RWMutex
	players map[int64]models.Player
	nextID  int64
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{players: make(map[int64]models.Player)}
}

func (r *PlayerRepository) Find(_ context.Context, pred filter.Predicate, order models.Order, pageNumber, pageSize int) ([]models.Player, error) {
	r.mu.RLock()
	matched := r.match(pred)
	r.mu.RUnlock()

	return repository.Paginate(matched, order, pageNumber, pageSize), nil
}

func (r *PlayerRepository) Count(_ context.Context, pred filter.Predicate) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.match(pred))), nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (*models.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	if !ok {
		return nil, pkgerrors.ErrPlayerNotFound
	}
	return &p, nil
}

func (r *PlayerRepository) Save(_ context.Context, player *models.Player) error {
	if player == nil {
		return pkgerrors.ErrNilPlayer
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if player.ID == 0 {
		r.nextID++
		player.ID = r.nextID
	} else if _, ok := r.players[player.ID]; !ok {
		return pkgerrors.ErrPlayerNotFound
	}
	r.players[player.ID] = *player
	return nil
}

func (r *PlayerRepository) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[id]; !ok {
		return pkgerrors.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

func (r *PlayerRepository) match(pred filter.Predicate) []models.Player {
	out := []models.Player{}
	for _, p := range r.players {
		if pred.Match(&p) {
			out = append(out, p)
		}
	}
	return out
}
