package repository

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/honeynil/PlayerServiceTochka/internal/filter"
	"github.com/honeynil/PlayerServiceTochka/internal/infrastructure/observability"
	"github.com/honeynil/PlayerServiceTochka/internal/models"
	pkgerrors "github.com/honeynil/PlayerServiceTochka/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const playerColumns = `id, name, title, race, profession, experience, level, until_next_level, birthday, banned`

type PostgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) *PostgresPlayerRepository {
	return &PostgresPlayerRepository{db: db}
}

// instrument starts a span for method and returns the hook that records the
// outcome. A missing player is not counted as a failed call.
func (r *PostgresPlayerRepository) instrument(ctx context.Context, method string) (context.Context, trace.Span, func(*error)) {
	ctx, span := otel.Tracer("player-repository").Start(ctx, method)
	start := time.Now()
	return ctx, span, func(errp *error) {
		status := "success"
		if err := *errp; err != nil && !stderrors.Is(err, pkgerrors.ErrPlayerNotFound) {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		observability.RepositoryCalls.WithLabelValues(method, status).Inc()
		observability.RepositoryDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		span.End()
	}
}

func (r *PostgresPlayerRepository) Find(ctx context.Context, pred filter.Predicate, order models.Order, pageNumber, pageSize int) (players []models.Player, err error) {
	ctx, span, done := r.instrument(ctx, "FindPlayers")
	defer done(&err)
	span.SetAttributes(
		attribute.String("order", string(order)),
		attribute.Int("page_number", pageNumber),
		attribute.Int("page_size", pageSize),
	)

	if pageSize <= 0 || pageNumber < 0 || pageNumber > math.MaxInt/pageSize {
		return []models.Player{}, nil
	}

	args := &filter.Args{}
	where := pred.SQL(args)
	orderBy := order.Column()
	if orderBy != "id" {
		orderBy += ", id"
	}
	limit := args.Add(pageSize)
	offset := args.Add(pageNumber * pageSize)
	query := `SELECT ` + playerColumns + ` FROM players WHERE ` + where +
		` ORDER BY ` + orderBy + ` LIMIT ` + limit + ` OFFSET ` + offset

	rows, err := r.db.QueryContext(ctx, query, args.Values()...)
	if err != nil {
		slog.Error("failed to find players", "method", "Find", "error", err)
		return nil, fmt.Errorf("failed to find players: %w", err)
	}
	defer rows.Close()

	players = []models.Player{}
	for rows.Next() {
		var p models.Player
		if err = scanPlayer(rows, &p); err != nil {
			slog.Error("failed to scan player", "method", "Find", "error", err)
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		slog.Error("failed to iterate players", "method", "Find", "error", err)
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}

	slog.Debug("players found", "method", "Find", "count", len(players), "order", order)
	return players, nil
}

func (r *PostgresPlayerRepository) Count(ctx context.Context, pred filter.Predicate) (count int64, err error) {
	ctx, _, done := r.instrument(ctx, "CountPlayers")
	defer done(&err)

	args := &filter.Args{}
	query := `SELECT COUNT(*) FROM players WHERE ` + pred.SQL(args)
	if err = r.db.QueryRowContext(ctx, query, args.Values()...).Scan(&count); err != nil {
		slog.Error("failed to count players", "method", "Count", "error", err)
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func (r *PostgresPlayerRepository) GetByID(ctx context.Context, id int64) (player *models.Player, err error) {
	ctx, span, done := r.instrument(ctx, "GetPlayerByID")
	defer done(&err)
	span.SetAttributes(attribute.Int64("player_id", id))

	var p models.Player
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	err = scanPlayer(r.db.QueryRowContext(ctx, query, id), &p)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrPlayerNotFound
	}
	if err != nil {
		slog.Error("failed to get player by id", "method", "GetByID", "player_id", id, "error", err)
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}
	return &p, nil
}

func (r *PostgresPlayerRepository) Save(ctx context.Context, player *models.Player) (err error) {
	ctx, span, done := r.instrument(ctx, "SavePlayer")
	defer done(&err)

	if player == nil {
		err = pkgerrors.ErrNilPlayer
		return err
	}
	span.SetAttributes(attribute.Int64("player_id", player.ID))

	if player.ID == 0 {
		query := `INSERT INTO players (name, title, race, profession, experience, level, until_next_level, birthday, banned) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
		err = r.db.QueryRowContext(ctx, query,
			player.Name, player.Title, string(player.Race), string(player.Profession),
			player.Experience, player.Level, player.UntilNextLevel, player.Birthday, player.Banned,
		).Scan(&player.ID)
		if err != nil {
			slog.Error("failed to insert player", "method", "Save", "name", player.Name, "error", err)
			return fmt.Errorf("failed to insert player: %w", err)
		}
		slog.Info("player inserted", "method", "Save", "player_id", player.ID)
		return nil
	}

	query := `UPDATE players SET name = $1, title = $2, race = $3, profession = $4, experience = $5, level = $6, until_next_level = $7, birthday = $8, banned = $9 WHERE id = $10`
	res, err := r.db.ExecContext(ctx, query,
		player.Name, player.Title, string(player.Race), string(player.Profession),
		player.Experience, player.Level, player.UntilNextLevel, player.Birthday, player.Banned,
		player.ID,
	)
	if err != nil {
		slog.Error("failed to update player", "method", "Save", "player_id", player.ID, "error", err)
		return fmt.Errorf("failed to update player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	if affected == 0 {
		return pkgerrors.ErrPlayerNotFound
	}
	slog.Info("player updated", "method", "Save", "player_id", player.ID)
	return nil
}

func (r *PostgresPlayerRepository) DeleteByID(ctx context.Context, id int64) (err error) {
	ctx, span, done := r.instrument(ctx, "DeletePlayer")
	defer done(&err)
	span.SetAttributes(attribute.Int64("player_id", id))

	res, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		slog.Error("failed to delete player", "method", "DeleteByID", "player_id", id, "error", err)
		return fmt.Errorf("failed to delete player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if affected == 0 {
		return pkgerrors.ErrPlayerNotFound
	}
	slog.Info("player deleted", "method", "DeleteByID", "player_id", id)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(s scanner, p *models.Player) error {
	err := s.Scan(
		&p.ID, &p.Name, &p.Title, &p.Race, &p.Profession,
		&p.Experience, &p.Level, &p.UntilNextLevel, &p.Birthday, &p.Banned,
	)
	if err != nil {
		return err
	}
	p.Birthday = p.Birthday.UTC()
	return nil
}
