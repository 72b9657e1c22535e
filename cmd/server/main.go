package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/honeynil/PlayerServiceTochka/internal/api"
	"github.com/honeynil/PlayerServiceTochka/internal/app"
	"github.com/honeynil/PlayerServiceTochka/internal/config"
	"github.com/honeynil/PlayerServiceTochka/internal/observability"
	"github.com/spf13/cobra"
)

func main() {
	// Загружаем .env и переменные окружения, флаги переопределяют их
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "player-service",
		Short:        "HTTP service managing game player records",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "HTTP listen address (env: HTTP_ADDR)")
	flags.StringVar(&cfg.StorageDriver, "storage", cfg.StorageDriver, "Storage driver: postgres, redis, memory (env: STORAGE_DRIVER)")
	flags.StringVar(&cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "Postgres connection string (env: POSTGRES_DSN)")
	flags.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address (env: REDIS_ADDR)")
	flags.StringSliceVar(&cfg.KafkaBrokers, "kafka-brokers", cfg.KafkaBrokers, "Kafka brokers, empty disables events (env: KAFKA_BROKERS)")
	flags.StringVar(&cfg.PlayerTopic, "topic", cfg.PlayerTopic, "Player events topic (env: PLAYER_EVENTS_TOPIC)")
	flags.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", cfg.OTLPEndpoint, "OTLP/HTTP trace endpoint, empty disables export (env: OTEL_EXPORTER_OTLP_ENDPOINT)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (env: LOG_LEVEL)")
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	// Инициализируем логи, метрики, трейсы
	shutdownTracing, metrics, err := observability.Setup(ctx, "player-service", cfg)
	if err != nil {
		slog.Error("failed to set up observability", "error", err)
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Error("failed to shut down tracing", "error", err)
		}
	}()

	// Инициализируем зависимости
	application, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialise application", "storage", cfg.StorageDriver, "error", err)
		return err
	}
	defer application.Close()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.SetupRouter(application.Service, metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.HTTPAddr, "storage", cfg.StorageDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-serverErr:
		if err != nil {
			slog.Error("server failed", "error", err)
			return err
		}
		return nil
	case s := <-sig:
		slog.Info("shutting down", "signal", s.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		return err
	}
	slog.Info("server stopped")
	return nil
}
