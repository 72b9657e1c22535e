package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageMemory   = "memory"
)

type Config struct {
	HTTPAddr      string
	StorageDriver string
	PostgresDSN   string
	RedisAddr     string
	// Пустой список брокеров отключает публикацию событий
	KafkaBrokers []string
	PlayerTopic  string
	OTLPEndpoint string
	LogLevel     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, using default values", "error", err)
	}

	cfg := &Config{
		HTTPAddr:      os.Getenv("HTTP_ADDR"),
		StorageDriver: strings.ToLower(os.Getenv("STORAGE_DRIVER")),
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		PlayerTopic:   os.Getenv("PLAYER_EVENTS_TOPIC"),
		OTLPEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = StoragePostgres
	}
	if cfg.PostgresDSN == "" {
		cfg.PostgresDSN = "host=localhost user=postgres password=postgres dbname=game sslmode=disable"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if cfg.PlayerTopic == "" {
		cfg.PlayerTopic = "players"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	slog.Info("config loaded",
		"http_addr", cfg.HTTPAddr,
		"storage", cfg.StorageDriver,
		"redis_addr", cfg.RedisAddr,
		"kafka_brokers", cfg.KafkaBrokers,
		"player_topic", cfg.PlayerTopic)
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
