package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/honeynil/PlayerServiceTochka/internal/events"
	"github.com/honeynil/PlayerServiceTochka/internal/filter"
	"github.com/honeynil/PlayerServiceTochka/internal/infrastructure/observability"
	"github.com/honeynil/PlayerServiceTochka/internal/models"
	"github.com/honeynil/PlayerServiceTochka/internal/repository"
	pkgerrors "github.com/honeynil/PlayerServiceTochka/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type PlayerService interface {
	List(ctx context.Context, pred filter.Predicate, order models.Order, pageNumber, pageSize int) ([]models.Player, error)
	Count(ctx context.Context, pred filter.Predicate) (int64, error)
	Get(ctx context.Context, id string) (*models.Player, error)
	Create(ctx context.Context, input models.PlayerInput) (*models.Player, error)
	Update(ctx context.Context, id string, input models.PlayerInput) (*models.Player, error)
	Delete(ctx context.Context, id string) error
}

type playerService struct {
	repo      repository.PlayerRepository
	publisher events.Publisher
}

func NewPlayerService(repo repository.PlayerRepository, publisher events.Publisher) *playerService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &playerService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *playerService) List(ctx context.Context, pred filter.Predicate, order models.Order, pageNumber, pageSize int) ([]models.Player, error) {
	tracer := otel.Tracer("player-service")
	ctx, span := tracer.Start(ctx, "ListPlayers")
	defer span.End()

	if pageNumber < 0 || pageSize < 0 {
		span.SetStatus(codes.Error, "negative pagination")
		return nil, fmt.Errorf("%w: pageNumber and pageSize must be non-negative", pkgerrors.ErrInvalidInput)
	}
	// Страница за пределами адресуемого диапазона всегда пуста
	if pageSize == 0 || pageNumber > math.MaxInt/pageSize {
		return []models.Player{}, nil
	}
	if pred == nil {
		pred = filter.All()
	}

	players, err := s.repo.Find(ctx, pred, order, pageNumber, pageSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "find failed")
		slog.Error("failed to list players", "order", order, "page_number", pageNumber, "page_size", pageSize, "error", err)
		return nil, err
	}
	if players == nil {
		players = []models.Player{}
	}
	return players, nil
}

func (s *playerService) Count(ctx context.Context, pred filter.Predicate) (int64, error) {
	tracer := otel.Tracer("player-service")
	ctx, span := tracer.Start(ctx, "CountPlayers")
	defer span.End()

	if pred == nil {
		pred = filter.All()
	}
	count, err := s.repo.Count(ctx, pred)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count failed")
		slog.Error("failed to count players", "error", err)
		return 0, err
	}
	return count, nil
}

func (s *playerService) Get(ctx context.Context, id string) (*models.Player, error) {
	tracer := otel.Tracer("player-service")
	ctx, span := tracer.Start(ctx, "GetPlayer")
	defer span.End()

	playerID, err := ParseID(id)
	if err != nil {
		span.SetStatus(codes.Error, "invalid id")
		return nil, err
	}
	span.SetAttributes(attribute.Int64("player_id", playerID))

	player, err := s.repo.GetByID(ctx, playerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "player lookup failed")
		return nil, err
	}
	return player, nil
}

func (s *playerService) Create(ctx context.Context, input models.PlayerInput) (*models.Player, error) {
	tracer := otel.Tracer("player-service")
	ctx, span := tracer.Start(ctx, "CreatePlayer")
	defer span.End()

	if err := validateInput(input, true); err != nil {
		span.SetStatus(codes.Error, "invalid input")
		slog.Warn("rejected player creation", "error", err)
		return nil, err
	}

	player := &models.Player{
		Name:       input.Name.OrElse(""),
		Title:      input.Title.OrElse(""),
		Race:       input.Race.OrElse(""),
		Profession: input.Profession.OrElse(""),
		Birthday:   input.Birthday.OrElse(time.Time{}).UTC(),
		Banned:     input.Banned.OrElse(false),
	}
	player.ApplyExperience(input.Experience.OrElse(0))

	if err := s.repo.Save(ctx, player); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		slog.Error("failed to create player", "name", player.Name, "error", err)
		return nil, err
	}

	s.publish(ctx, events.NewPlayerEvent(events.PlayerCreated, player))
	slog.Info("player created", "player_id", player.ID, "name", player.Name, "level", player.Level)
	return player, nil
}

func (s *playerService) Update(ctx context.Context, id string, input models.PlayerInput) (*models.Player, error) {
	tracer := otel.Tracer("player-service")
	ctx, span := tracer.Start(ctx, "UpdatePlayer")
	defer span.End()

	existing, err := s.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, "player lookup failed")
		return nil, err
	}

	// Все поля проверяются до изменения записи
	if err := validateInput(input, false); err != nil {
		span.SetStatus(codes.Error, "invalid input")
		slog.Warn("rejected player update", "player_id", existing.ID, "error", err)
		return nil, err
	}

	updated := *existing
	if v, ok := input.Name.Get(); ok {
		updated.Name = v
	}
	if v, ok := input.Title.Get(); ok {
		updated.Title = v
	}
	if v, ok := input.Race.Get(); ok {
		updated.Race = v
	}
	if v, ok := input.Profession.Get(); ok {
		updated.Profession = v
	}
	if v, ok := input.Birthday.Get(); ok {
		updated.Birthday = v.UTC()
	}
	if v, ok := input.Banned.Get(); ok {
		updated.Banned = v
	}
	if v, ok := input.Experience.Get(); ok {
		updated.ApplyExperience(v)
	}

	if err := s.repo.Save(ctx, &updated); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		slog.Error("failed to update player", "player_id", updated.ID, "error", err)
		return nil, err
	}

	s.publish(ctx, events.NewPlayerEvent(events.PlayerUpdated, &updated))
	slog.Info("player updated", "player_id", updated.ID, "level", updated.Level)
	return &updated, nil
}

func (s *playerService) Delete(ctx context.Context, id string) error {
	tracer := otel.Tracer("player-service")
	ctx, span := tracer.Start(ctx, "DeletePlayer")
	defer span.End()

	player, err := s.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, "player lookup failed")
		return err
	}

	if err := s.repo.DeleteByID(ctx, player.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		slog.Error("failed to delete player", "player_id", player.ID, "error", err)
		return err
	}

	s.publish(ctx, events.NewPlayerEvent(events.PlayerDeleted, player))
	slog.Info("player deleted", "player_id", player.ID)
	return nil
}

// publish hands the event to the publisher. The mutation is already stored,
// so a failure is only logged.
func (s *playerService) publish(ctx context.Context, event events.PlayerEvent) {
	status := "success"
	if err := s.publisher.Publish(ctx, event); err != nil {
		status = "error"
		slog.Error("failed to publish player event",
			"event_id", event.ID,
			"event_type", event.Type,
			"player_id", event.PlayerID,
			"error", err)
	}
	observability.PlayerEvents.WithLabelValues(string(event.Type), status).Inc()
}
