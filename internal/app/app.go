package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/honeynil/PlayerServiceTochka/internal/config"
	"github.com/honeynil/PlayerServiceTochka/internal/events"
	"github.com/honeynil/PlayerServiceTochka/internal/infrastructure/kafka"
	redisclient "github.com/honeynil/PlayerServiceTochka/internal/infrastructure/redis"
	"github.com/honeynil/PlayerServiceTochka/internal/repository"
	"github.com/honeynil/PlayerServiceTochka/internal/repository/memory"
	postgres "github.com/honeynil/PlayerServiceTochka/internal/repository/postgres"
	redisrepo "github.com/honeynil/PlayerServiceTochka/internal/repository/redis"
	service "github.com/honeynil/PlayerServiceTochka/internal/services"
	_ "github.com/lib/pq"
)

// App holds the assembled player service and the resources behind it.
type App struct {
	Service service.PlayerService
	closers []func() error
}

// New connects the configured store and event publisher.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	repo, err := a.openRepository(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.PlayerTopic)
		a.closers = append(a.closers, producer.Close)
		publisher = events.NewKafkaPublisher(producer)
		slog.Info("player events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.PlayerTopic)
	} else {
		slog.Info("player events disabled")
	}

	a.Service = service.NewPlayerService(repo, publisher)
	return a, nil
}

func (a *App) openRepository(ctx context.Context, cfg *config.Config) (repository.PlayerRepository, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		slog.Info("connected to Postgres")
		return postgres.NewPostgresPlayerRepository(db), nil

	case config.StorageRedis:
		client, err := redisclient.NewClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return redisrepo.NewPlayerRepository(client), nil

	case config.StorageMemory:
		slog.Warn("using in-memory storage, players are lost on restart")
		return memory.NewPlayerRepository(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Error("failed to release resource", "error", err)
		}
	}
	a.closers = nil
}
