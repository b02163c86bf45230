// Package app contains the application setup for the user service.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocrud/internal/user/config"
	"github.com/abgdnv/gocrud/internal/user/store"
	"github.com/abgdnv/gocrud/internal/user/transport/rest"
	"github.com/abgdnv/gocrud/pkg/server"
)

// SetupHttpHandler seeds the user record and returns the routed handler.
func SetupHttpHandler(cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	initial, err := store.LoadRecord(cfg.Seed.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load user record: %w", err)
	}

	mux := server.NewChiRouter(logger, cfg.CORS)
	rest.NewHandler(store.NewInMemoryStore(initial), logger).RegisterRoutes(mux)
	return mux, nil
}

// SetupHttpServer creates and configures the HTTP server of the user service.
func SetupHttpServer(cfg *config.Config, logger *slog.Logger) (*http.Server, error) {
	handler, err := SetupHttpHandler(cfg, logger)
	if err != nil {
		return nil, err
	}
	return server.NewHTTPServer(server.FromConfig(cfg.HTTPServer), handler), nil
}
