// Package main runs the product service: the in-memory product collection exposed over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "net/http/pprof"

	"github.com/abgdnv/gocrud/internal/product/app"
	"github.com/abgdnv/gocrud/internal/product/config"
	"github.com/abgdnv/gocrud/pkg/bootstrap"
	"github.com/abgdnv/gocrud/pkg/config/configloader"
	"github.com/abgdnv/gocrud/pkg/messaging/events"
	"github.com/abgdnv/gocrud/pkg/server"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const serviceName = "product"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads the configuration, seeds the collection and starts the HTTP, gRPC and pprof servers.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](serviceName, config.Defaults())
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	shutdownTelemetry, err := bootstrap.NewTelemetry(ctx, serviceName, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Error("Failed to shut down telemetry", "error", err)
		}
	}()

	publisher, closePublisher, err := bootstrap.NewPublisher(ctx, cfg.NATS, cfg.CircuitBreaker, events.ProductSubjects)
	if err != nil {
		return fmt.Errorf("failed to set up event publisher: %w", err)
	}
	defer closePublisher()

	deps, err := app.SetupDependencies(cfg, publisher, logger)
	if err != nil {
		return err
	}

	healthServer := health.NewServer()
	httpServer := app.SetupHttpServer(deps, cfg)
	grpcServer := app.SetupGrpcServer(deps, cfg, healthServer)

	lis, err := net.Listen("tcp", ":"+cfg.GRPC.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	server.RunHTTP(gCtx, g, "http", httpServer, cfg.Shutdown.Timeout, logger)
	server.RunGRPC(gCtx, g, grpcServer, lis, cfg.Shutdown.Timeout, logger)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	g.Go(func() error {
		<-gCtx.Done()
		// report NOT_SERVING while the servers drain
		healthServer.Shutdown()
		return nil
	})
	if cfg.PProf.Enabled {
		pprofServer := &http.Server{
			Addr:              cfg.PProf.Addr,
			ReadHeaderTimeout: cfg.HTTPServer.Timeout.ReadHeader,
		}
		server.RunHTTP(gCtx, g, "pprof", pprofServer, cfg.Shutdown.Timeout, logger)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}
