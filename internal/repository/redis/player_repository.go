package redis

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/honeynil/PlayerServiceTochka/internal/filter"
	"github.com/honeynil/PlayerServiceTochka/internal/infrastructure/observability"
	"github.com/honeynil/PlayerServiceTochka/internal/models"
	"github.com/honeynil/PlayerServiceTochka/internal/repository"
	pkgerrors "github.com/honeynil/PlayerServiceTochka/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	indexKey    = "players"
	sequenceKey = "players:seq"
)

var _ repository.PlayerRepository = (*PlayerRepository)(nil)

// PlayerRepository stores each player as a JSON document under player:{id}
// and keeps the set of ids in an index. Filtering happens in process.
type PlayerRepository struct {
	client *redis.Client
}

func NewPlayerRepository(client *redis.Client) *PlayerRepository {
	return &PlayerRepository{client: client}
}

func playerKey(id int64) string {
	return fmt.Sprintf("player:%d", id)
}

func observe(method string, start time.Time, err error) {
	status := "success"
	if err != nil && !stderrors.Is(err, pkgerrors.ErrPlayerNotFound) {
		status = "error"
	}
	observability.RepositoryCalls.WithLabelValues(method, status).Inc()
	observability.RepositoryDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

func (r *PlayerRepository) Find(ctx context.Context, pred filter.Predicate, order models.Order, pageNumber, pageSize int) (players []models.Player, err error) {
	defer func(start time.Time) { observe("FindPlayers", start, err) }(time.Now())

	matched, err := r.load(ctx, pred)
	if err != nil {
		return nil, err
	}
	return repository.Paginate(matched, order, pageNumber, pageSize), nil
}

func (r *PlayerRepository) Count(ctx context.Context, pred filter.Predicate) (count int64, err error) {
	defer func(start time.Time) { observe("CountPlayers", start, err) }(time.Now())

	matched, err := r.load(ctx, pred)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player *models.Player, err error) {
	defer func(start time.Time) { observe("GetPlayerByID", start, err) }(time.Now())

	raw, err := r.client.Get(ctx, playerKey(id)).Result()
	if stderrors.Is(err, redis.Nil) {
		return nil, pkgerrors.ErrPlayerNotFound
	}
	if err != nil {
		slog.Error("failed to get player from Redis", "player_id", id, "error", err)
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	var p models.Player
	if err = json.Unmarshal([]byte(raw), &p); err != nil {
		slog.Error("failed to unmarshal player", "player_id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}
	return &p, nil
}

func (r *PlayerRepository) Save(ctx context.Context, player *models.Player) (err error) {
	defer func(start time.Time) { observe("SavePlayer", start, err) }(time.Now())

	if player == nil {
		return pkgerrors.ErrNilPlayer
	}

	if player.ID == 0 {
		id, err := r.client.Incr(ctx, sequenceKey).Result()
		if err != nil {
			slog.Error("failed to allocate player id", "error", err)
			return fmt.Errorf("failed to allocate player id: %w", err)
		}
		data, err := json.Marshal(withID(*player, id))
		if err != nil {
			return fmt.Errorf("failed to marshal player: %w", err)
		}
		_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, playerKey(id), data, 0)
			pipe.SAdd(ctx, indexKey, id)
			return nil
		})
		if err != nil {
			slog.Error("failed to insert player into Redis", "player_id", id, "error", err)
			return fmt.Errorf("failed to insert player: %w", err)
		}
		player.ID = id
		slog.Info("player inserted", "player_id", id)
		return nil
	}

	data, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}
	ok, err := r.client.SetXX(ctx, playerKey(player.ID), data, 0).Result()
	if err != nil {
		slog.Error("failed to update player in Redis", "player_id", player.ID, "error", err)
		return fmt.Errorf("failed to update player: %w", err)
	}
	if !ok {
		return pkgerrors.ErrPlayerNotFound
	}
	slog.Info("player updated", "player_id", player.ID)
	return nil
}

func (r *PlayerRepository) DeleteByID(ctx context.Context, id int64) (err error) {
	defer func(start time.Time) { observe("DeletePlayer", start, err) }(time.Now())

	var del *redis.IntCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, playerKey(id))
		pipe.SRem(ctx, indexKey, id)
		return nil
	})
	if err != nil {
		slog.Error("failed to delete player from Redis", "player_id", id, "error", err)
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if del.Val() == 0 {
		return pkgerrors.ErrPlayerNotFound
	}
	slog.Info("player deleted", "player_id", id)
	return nil
}

// load reads every indexed player and keeps those matching pred.
func (r *PlayerRepository) load(ctx context.Context, pred filter.Predicate) ([]models.Player, error) {
	members, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		slog.Error("failed to read player index", "error", err)
		return nil, fmt.Errorf("failed to read player index: %w", err)
	}
	matched := []models.Player{}
	if len(members) == 0 {
		return matched, nil
	}

	keys := make([]string, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			slog.Warn("skipping malformed player index entry", "member", m)
			continue
		}
		keys = append(keys, playerKey(id))
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		slog.Error("failed to read players", "error", err)
		return nil, fmt.Errorf("failed to read players: %w", err)
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// removed between SMEMBERS and MGET
			continue
		}
		var p models.Player
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			slog.Error("failed to unmarshal player", "key", keys[i], "error", err)
			return nil, fmt.Errorf("failed to unmarshal player: %w", err)
		}
		if pred.Match(&p) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func withID(p models.Player, id int64) models.Player {
	p.ID = id
	return p
}
