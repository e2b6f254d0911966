// Package app contains the application setup for the Cart service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocart/internal/config"
	"github.com/abgdnv/gocart/internal/service"
	"github.com/abgdnv/gocart/internal/store"
	"github.com/abgdnv/gocart/internal/transport/rest"
	"github.com/abgdnv/gocart/pkg/messaging"
	"github.com/abgdnv/gocart/pkg/server"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

type Dependencies struct {
	CartService service.CartService
	Health      *health.Server
	Logger      *slog.Logger
}

// SetupDependencies builds the cart service on top of the given snapshot slot and event publisher.
// When the circuit breaker is enabled the slot is wrapped with it.
func SetupDependencies(slot store.SnapshotStore, publisher messaging.Publisher, cfg *config.Config, logger *slog.Logger) *Dependencies {
	if cfg.Resilience.CircuitBreaker.Enabled {
		slot = store.NewBreakerStore(slot, cfg.Resilience.CircuitBreaker)
	}
	cService := service.NewService(slot, publisher, cfg.Storage, cfg.Cart, cfg.UI, logger)

	return &Dependencies{
		CartService: cService,
		Health:      health.NewServer(),
		Logger:      logger,
	}
}

// SetupHttpHandler initializes the HTTP routes and middleware for the Cart service.
// Used by tests to exercise the full HTTP stack.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return otelhttp.NewHandler(mux, "cart-http")
}

// wireRoutes sets up the HTTP routes for the Cart service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	cartHandler := rest.NewHandler(deps.CartService, deps.Logger)
	cartHandler.RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())
}

// SetupHttpServer creates and configures an HTTP server for the Cart service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	handler := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, handler)
}

// SetupGrpcServer initializes the gRPC server exposing the standard health service.
func SetupGrpcServer(deps *Dependencies, reflectionEnabled bool) *grpc.Server {
	return server.NewGRPCServer(reflectionEnabled, server.WithHealth(deps.Health))
}
