// Package main runs the user service: a single in-memory user record exposed over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/gocrud/internal/user/app"
	"github.com/abgdnv/gocrud/internal/user/config"
	"github.com/abgdnv/gocrud/pkg/bootstrap"
	"github.com/abgdnv/gocrud/pkg/config/configloader"
	"github.com/abgdnv/gocrud/pkg/server"
	"golang.org/x/sync/errgroup"
)

const serviceName = "user"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

func run(ctx context.Context) error {
	cfg, err := configloader.Load[*config.Config](serviceName, config.Defaults())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	httpServer, err := app.SetupHttpServer(cfg, logger)
	if err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	server.RunHTTP(gCtx, g, "http", httpServer, cfg.Shutdown.Timeout, logger)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}
