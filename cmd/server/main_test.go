package main

import (
	"testing"

	"github.com/honeynil/PlayerServiceTochka/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	cfg := &config.Config{
		HTTPAddr:      ":8080",
		StorageDriver: config.StoragePostgres,
		OTLPEndpoint:  "",
		LogLevel:      "info",
	}
	cmd := newRootCmd(cfg)

	require.NoError(t, cmd.ParseFlags([]string{
		"--addr", ":9090",
		"--storage", "memory",
		"--kafka-brokers", "k1:9092,k2:9092",
		"--otlp-endpoint", "collector:4318",
		"--log-level", "debug",
	}))

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, config.StorageMemory, cfg.StorageDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "collector:4318", cfg.OTLPEndpoint)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestRootCmd_DefaultsComeFromConfig(t *testing.T) {
	cfg := &config.Config{HTTPAddr: ":7000", OTLPEndpoint: "otel:4318"}
	cmd := newRootCmd(cfg)

	require.NoError(t, cmd.ParseFlags(nil))
	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, "otel:4318", cfg.OTLPEndpoint)
}
