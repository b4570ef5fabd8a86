package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/trustmarket/trustmarket/internal/cache"
	"github.com/trustmarket/trustmarket/internal/catalog"
	"github.com/trustmarket/trustmarket/internal/config"
	"github.com/trustmarket/trustmarket/internal/dispatch"
	"github.com/trustmarket/trustmarket/internal/event"
	handler "github.com/trustmarket/trustmarket/internal/handler/http"
	"github.com/trustmarket/trustmarket/internal/identity"
	"github.com/trustmarket/trustmarket/internal/repository"
	"github.com/trustmarket/trustmarket/internal/repository/memory"
	"github.com/trustmarket/trustmarket/internal/repository/postgres"
	"github.com/trustmarket/trustmarket/internal/service"
	"github.com/trustmarket/trustmarket/pkg/database"
	"github.com/trustmarket/trustmarket/pkg/health"
	"github.com/trustmarket/trustmarket/pkg/httpclient"
	"github.com/trustmarket/trustmarket/pkg/kafka"
	"github.com/trustmarket/trustmarket/pkg/middleware"
	"github.com/trustmarket/trustmarket/pkg/tracing"
)

// App holds the wired application and its owned resources.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server

	pool            *pgxpool.Pool
	redisClient     *redis.Client
	producer        *kafka.Producer
	tracingShutdown func(context.Context) error
}

// New wires the application from configuration. Optional collaborators
// (Redis, Kafka, tracing) are skipped when unconfigured.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	shutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "trustmarket",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.Tracing.OTLPEndpoint,
		SampleRate:     cfg.Tracing.SampleRate,
		Enabled:        cfg.Tracing.Enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	a.tracingShutdown = shutdown

	healthHandler := health.NewHandler()

	catalogRepo, submissionRepo, err := a.repositories(ctx, healthHandler)
	if err != nil {
		return nil, err
	}

	var snapshotCache service.SnapshotCache
	if cfg.Redis.Host != "" {
		client, err := database.NewRedisClient(ctx, cfg.RedisClientConfig())
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.redisClient = client
		snapshotCache = cache.NewCatalogCache(client, cfg.CacheTTL, logger)
		healthHandler.Register("redis", func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}

	var producer service.EventProducer
	if len(cfg.Kafka.Brokers) > 0 {
		a.producer = kafka.NewProducer(kafka.DefaultProducerConfig(cfg.Kafka.Brokers), logger)
		producer = event.NewFeedbackProducer(a.producer, logger)
		healthHandler.Register("kafka", a.producer.Ping)
	}

	dispatcher := dispatch.NewHTTPDispatcher(
		httpclient.NewCircuitBreakerClient(
			httpclient.New(httpclient.DefaultConfig()),
			httpclient.DefaultCircuitBreakerConfig("moderation"),
			logger,
		),
		cfg.ModerationURL,
		logger,
	)

	catalogSvc := service.NewCatalogService(catalogRepo, snapshotCache, logger)
	feedbackSvc := service.NewFeedbackService(
		dispatcher, submissionRepo, producer, identity.NewClaimsProvider(), logger)

	var tokenValidator middleware.TokenValidator
	if cfg.JWTSecret != "" {
		tokenValidator = identity.NewTokenVerifier(cfg.JWTSecret).Validate
	}

	router := handler.NewRouter(handler.RouterConfig{
		Catalog:        handler.NewCatalogHandler(catalogSvc, logger),
		Feedback:       handler.NewFeedbackHandler(feedbackSvc, logger),
		Health:         healthHandler,
		Logger:         logger,
		TokenValidator: tokenValidator,
	})

	a.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return a, nil
}

// repositories builds the catalog and submission stores for the configured
// catalog source.
func (a *App) repositories(ctx context.Context, h *health.Handler) (repository.CatalogRepository, repository.SubmissionRepository, error) {
	if a.cfg.CatalogSource == config.CatalogSourceMemory {
		a.logger.Info("using seeded in-memory catalog")
		return memory.NewCatalogRepository(catalog.Seed()), memory.NewSubmissionRepository(), nil
	}

	pool, err := database.NewPostgresPool(ctx, a.cfg.PostgresPoolConfig(), a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	a.pool = pool

	h.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	return postgres.NewCatalogRepository(pool), postgres.NewSubmissionRepository(pool), nil
}

// Run starts the HTTP server and blocks until the context is canceled, then
// shuts everything down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown failed", slog.String("error", err.Error()))
	}

	a.close(shutdownCtx)
	return nil
}

func (a *App) close(ctx context.Context) {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close failed", slog.String("error", err.Error()))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("redis close failed", slog.String("error", err.Error()))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.tracingShutdown != nil {
		if err := a.tracingShutdown(ctx); err != nil {
			a.logger.Error("tracing shutdown failed", slog.String("error", err.Error()))
		}
	}
}
