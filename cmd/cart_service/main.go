// Package main runs the storefront cart service.
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
	"time"

	_ "net/http/pprof"

	"github.com/abgdnv/gocart/internal/app"
	"github.com/abgdnv/gocart/internal/config"
	"github.com/abgdnv/gocart/internal/store"
	"github.com/abgdnv/gocart/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/gocart/pkg/config"
	"github.com/abgdnv/gocart/pkg/config/configloader"
	"github.com/abgdnv/gocart/pkg/messaging"
	natsclient "github.com/abgdnv/gocart/pkg/nats"
	"github.com/abgdnv/gocart/pkg/rabbitmq"
	"github.com/abgdnv/gocart/pkg/telemetry"
	"github.com/abgdnv/gocart/pkg/web"
	"golang.org/x/sync/errgroup"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const serviceName = "cart"

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads the configuration, connects the snapshot storage and the event broker,
// and starts the HTTP, gRPC and pprof servers.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](serviceName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level, serviceName, web.SessionAttr)
	slog.SetDefault(logger)

	if cfg.Telemetry.Enabled {
		tp, err := telemetry.NewTracerProvider(ctx, serviceName, cfg.Telemetry)
		if err != nil {
			return fmt.Errorf("failed to create tracer provider: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Error("failed to shutdown tracer provider", "error", err)
			}
		}()
	}
	mp, err := telemetry.NewMeterProvider(serviceName)
	if err != nil {
		return fmt.Errorf("failed to create meter provider: %w", err)
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown meter provider", "error", err)
		}
	}()

	slot, closeSlot, err := newSnapshotStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSlot()

	publisher, closePublisher, err := newPublisher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	deps := app.SetupDependencies(slot, publisher, cfg, logger)
	httpServer := app.SetupHttpServer(deps, cfg)
	grpcServer := app.SetupGrpcServer(deps, cfg.GrpcServer.ReflectionEnabled)
	pprofServer := &http.Server{
		Addr: cfg.PProf.Addr,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Start the HTTP server
	g.Go(func() error {
		logger.Info("HTTP server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown HTTP server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if cfg.GrpcServer.Enabled {
		// Start the gRPC health server
		g.Go(func() error {
			grpcAddr := ":" + cfg.GrpcServer.Port
			lis, err := net.Listen("tcp", grpcAddr)
			if err != nil {
				return fmt.Errorf("failed to listen on gRPC port: %w", err)
			}
			deps.Health.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
			logger.Info("gRPC server listening", slog.String("addr", grpcAddr))
			return grpcServer.Serve(lis)
		})
		// gracefully shutdown gRPC server on context cancellation
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down gRPC server...")
			deps.Health.Shutdown()
			stopped := make(chan struct{})
			go func() {
				grpcServer.GracefulStop()
				close(stopped)
			}()
			select {
			case <-stopped:
				logger.Info("gRPC server stopped gracefully.")
				return nil
			case <-time.After(cfg.Shutdown.Timeout):
				logger.Warn("gRPC server graceful stop timed out. Forcing stop.")
				grpcServer.Stop()
				return fmt.Errorf("grpc server graceful stop timed out")
			}
		})
	}

	// Start the pprof server if enabled
	if cfg.PProf.Enabled {
		g.Go(func() error {
			logger.Info("Pprof server listening", slog.String("addr", pprofServer.Addr))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server failed: %w", err)
			}
			return nil
		})
		// gracefully shutdown pprof server on context cancellation
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down pprof server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			return pprofServer.Shutdown(shutdownCtx)
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// newSnapshotStore connects the configured storage backend. The returned func releases its connections.
func newSnapshotStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.SnapshotStore, func(), error) {
	switch cfg.Storage.Backend {
	case pkgconfig.StoragePostgres:
		if err := store.RunMigrations(cfg.Database.URL, logger); err != nil {
			return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create database connection pool: %w", err)
		}
		logger.Info("Successfully connected to the database!")
		return store.NewPgStore(dbPool), dbPool.Close, nil
	case pkgconfig.StorageRedis:
		client, err := bootstrap.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info("Successfully connected to redis", "addr", cfg.Redis.Addr)
		return store.NewRedisStore(client, cfg.Storage.TTL), func() { _ = client.Close() }, nil
	case pkgconfig.StorageMySQL:
		db, err := bootstrap.NewMySQL(ctx, cfg.MySQL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to mysql: %w", err)
		}
		mysqlStore := store.NewMySQLStore(db)
		if err := mysqlStore.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to prepare mysql schema: %w", err)
		}
		logger.Info("Successfully connected to mysql")
		return mysqlStore, func() { _ = db.Close() }, nil
	default:
		logger.Warn("Using in-memory cart storage, carts are lost on restart")
		return store.NewInMemoryStore(), func() {}, nil
	}
}

// newPublisher connects the configured message broker. The returned func releases its connections.
func newPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (messaging.Publisher, func(), error) {
	switch cfg.Messaging.Broker {
	case pkgconfig.BrokerNATS:
		nc, err := natsclient.NewClient(cfg.Nats.Url, cfg.Nats.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		js, err := natsclient.NewJetStreamContext(nc)
		if err != nil {
			nc.Close()
			return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
		}
		if err := natsclient.EnsureStream(ctx, js, cfg.Nats.Stream); err != nil {
			nc.Close()
			return nil, nil, fmt.Errorf("failed to ensure NATS stream: %w", err)
		}
		logger.Info("Successfully connected to NATS", "url", cfg.Nats.Url)
		return natsclient.NewNatsPublisher(js), nc.Close, nil
	case pkgconfig.BrokerRabbitMQ:
		conn, err := rabbitmq.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		publisher, err := rabbitmq.NewPublisher(conn, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Timeout)
		if err != nil {
			_ = conn.Close()
			return nil, nil, fmt.Errorf("failed to create RabbitMQ publisher: %w", err)
		}
		logger.Info("Successfully connected to RabbitMQ", "exchange", cfg.RabbitMQ.Exchange)
		return publisher, func() {
			_ = publisher.Close()
			_ = conn.Close()
		}, nil
	default:
		logger.Info("Cart events are not published, no broker configured")
		return messaging.NopPublisher{}, func() {}, nil
	}
}
