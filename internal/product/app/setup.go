// Package app contains the application setup for the ProductService.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocrud/internal/product/config"
	"github.com/abgdnv/gocrud/internal/product/service"
	"github.com/abgdnv/gocrud/internal/product/store"
	"github.com/abgdnv/gocrud/internal/product/transport/rest"
	pkgconfig "github.com/abgdnv/gocrud/pkg/config"
	"github.com/abgdnv/gocrud/pkg/messaging"
	"github.com/abgdnv/gocrud/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

const instrumentationName = "github.com/abgdnv/gocrud/internal/product"

type Dependencies struct {
	ProductService service.ProductService
	Logger         *slog.Logger
	CORS           pkgconfig.CORSConfig
	Telemetry      pkgconfig.TelemetryConfig
}

// SetupDependencies seeds the product collection from the configured snapshot and builds the
// service on top of it.
func SetupDependencies(cfg *config.Config, publisher messaging.Publisher, logger *slog.Logger, opts ...store.Option) (*Dependencies, error) {
	seed, err := store.LoadSnapshot(cfg.Seed.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load product snapshot: %w", err)
	}
	logger.Info("Product collection seeded", "file", cfg.Seed.File, "count", len(seed))

	pService, err := service.NewService(
		store.NewInMemoryStore(seed, opts...),
		publisher,
		logger.With("component", "service"),
		otel.Meter(instrumentationName),
		len(seed),
	)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		ProductService: pService,
		Logger:         logger,
		CORS:           cfg.CORS,
		Telemetry:      cfg.Telemetry,
	}, nil
}

// SetupHttpHandler initializes the routes for the ProductService application.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger, deps.CORS)
	wireRoutes(mux, deps)

	if deps.Telemetry.Metrics.Enabled {
		mux.Handle(deps.Telemetry.Metrics.Path, promhttp.Handler())
	}
	if deps.Telemetry.Traces.Enabled {
		return otelhttp.NewHandler(mux, "product-http")
	}
	return mux
}

// wireRoutes sets up the HTTP routes for the ProductService application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	productAPI := rest.NewAPI(deps.ProductService, deps.Logger)
	rest.RegisterRoutes(mux, productAPI)
}

// SetupHttpServer creates and configures an HTTP server for the ProductService application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	return server.NewHTTPServer(server.FromConfig(cfg.HTTPServer), SetupHttpHandler(deps))
}

// SetupGrpcServer initializes the gRPC server exposing the health service.
func SetupGrpcServer(deps *Dependencies, cfg *config.Config, hs *health.Server) *grpc.Server {
	return server.NewGRPCServer(deps.Logger, cfg.GRPC.ReflectionEnabled, server.HealthRegistration(hs))
}
