package observability

import (
	"context"
	"net/http"

	"github.com/honeynil/PlayerServiceTochka/internal/config"
	"github.com/honeynil/PlayerServiceTochka/internal/infrastructure/observability"
)

// Setup initialises logging and tracing and returns the tracer shutdown hook
// together with the metrics handler.
func Setup(ctx context.Context, serviceName string, cfg *config.Config) (func(context.Context) error, http.Handler, error) {
	observability.InitLogger(cfg.LogLevel)
	tracerShutdown, err := observability.InitTracing(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		return nil, nil, err
	}
	return tracerShutdown, observability.MetricsHandler(), nil
}
