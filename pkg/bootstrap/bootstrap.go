// Package bootstrap wires process-level infrastructure: logging, telemetry and messaging.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abgdnv/gocrud/pkg/config"
	"github.com/abgdnv/gocrud/pkg/logger"
	"github.com/abgdnv/gocrud/pkg/messaging"
	natsclient "github.com/abgdnv/gocrud/pkg/nats"
	"github.com/abgdnv/gocrud/pkg/telemetry"
)

// NewLogger creates a new JSON slog.Logger writing to stdout with the specified log level.
func NewLogger(level string) *slog.Logger {
	return newLogger(os.Stdout, level)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	logLevel := logger.ToLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	return slog.New(logger.NewContextHandler(slog.NewJSONHandler(w, loggerOpts)))
}

// ShutdownFunc releases what a bootstrap step acquired.
type ShutdownFunc func(ctx context.Context) error

// NewTelemetry installs the tracer and meter providers enabled in cfg.
func NewTelemetry(ctx context.Context, serviceName string, cfg config.TelemetryConfig) (ShutdownFunc, error) {
	var shutdowns []ShutdownFunc
	if cfg.Traces.Enabled {
		tp, err := telemetry.NewTracerProvider(ctx, serviceName, cfg.Traces.OtlpHttp)
		if err != nil {
			return nil, err
		}
		shutdowns = append(shutdowns, tp.Shutdown)
	}
	if cfg.Metrics.Enabled {
		mp, err := telemetry.NewMeterProvider(serviceName)
		if err != nil {
			return nil, err
		}
		shutdowns = append(shutdowns, mp.Shutdown)
	}
	return func(ctx context.Context) error {
		var errs []error
		for _, shutdown := range shutdowns {
			errs = append(errs, shutdown(ctx))
		}
		return errors.Join(errs...)
	}, nil
}

// NewPublisher connects to NATS JetStream, makes sure the stream capturing subjects exists and
// returns a circuit-breaker guarded publisher. A no-op publisher is returned when NATS is disabled.
func NewPublisher(ctx context.Context, natsCfg config.NATSConfig, cbCfg config.CircuitBreakerConfig, subjects ...string) (messaging.Publisher, func(), error) {
	if !natsCfg.Enabled {
		return messaging.NoopPublisher{}, func() {}, nil
	}
	nc, err := natsclient.NewClient(natsCfg.Url, natsCfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := natsclient.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}
	streamCtx, cancel := context.WithTimeout(ctx, natsCfg.Timeout)
	defer cancel()
	if err := natsclient.EnsureStream(streamCtx, js, natsCfg.Stream, subjects...); err != nil {
		nc.Close()
		return nil, nil, err
	}
	publisher := messaging.NewBreakerPublisher(fmt.Sprintf("nats-%s", natsCfg.Stream), natsclient.NewNatsPublisher(js), cbCfg)
	return publisher, func() {
		_ = nc.Drain()
	}, nil
}
