package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/gigboard/marketplace/internal/api"
	"github.com/gigboard/marketplace/internal/core/ports"
	"github.com/gigboard/marketplace/internal/core/service"
	"github.com/gigboard/marketplace/internal/infrastructure/config"
	"github.com/gigboard/marketplace/internal/infrastructure/db/mongo"
	"github.com/gigboard/marketplace/internal/infrastructure/db/redis"
	httpserver "github.com/gigboard/marketplace/internal/infrastructure/http"
	"github.com/gigboard/marketplace/internal/infrastructure/http/handlers"
	"github.com/gigboard/marketplace/internal/infrastructure/memory"
	"github.com/gigboard/marketplace/internal/infrastructure/queue"
	"github.com/gigboard/marketplace/pkg/logger"
)

const closeTimeout = 5 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "marketplace",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	readiness := map[string]handlers.Pinger{}

	// ---------------- Activity store ----------------

	var activity ports.ActivityRepository = queue.NewLogSink(log)
	if cfg.Mongo.URI != "" {
		store, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer closeWithTimeout(log, "mongodb", store.Close)

		repo := mongo.NewActivityRepository(store.DB)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("activity indexes not created")
		}
		activity = repo
		readiness["mongodb"] = store.Ping
		log.Info().Str("database", cfg.Mongo.Database).Msg("activity audit stored in mongodb")
	}

	// ---------------- Idempotency keys ----------------

	var idempotency ports.IdempotencyStore = memory.NewIdempotencyStore()
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close failed")
			}
		}()

		idempotency = redis.NewIdempotencyStore(client, "post_job")
		readiness["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency keys stored in redis")
	}

	// ---------------- Audit dispatcher ----------------

	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, activity, log)
	dispatcher.Start(context.WithoutCancel(ctx))
	defer dispatcher.Close()

	// ---------------- Service ----------------

	svc := service.NewMarketplaceService(
		memory.NewUserRegistry(),
		memory.NewJobRegistry(),
		log,
		service.WithActivityPublisher(dispatcher),
	)

	// ---------------- HTTP ----------------

	e := api.NewRouter(api.Dependencies{
		Service:        svc,
		Idempotency:    idempotency,
		IdempotencyTTL: cfg.Idempotency.TTL,
		Readiness:      readiness,
		RateLimitRPS:   cfg.RateLimitRPS,
		Logger:         log,
	})

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting marketplace server")
	return httpserver.NewServer(e, ":"+cfg.Port, cfg.ShutdownTimeout, log).Run(ctx)
}

func closeWithTimeout(log zerolog.Logger, name string, closeFn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := closeFn(ctx); err != nil {
		log.Warn().Err(err).Str("dependency", name).Msg("close failed")
	}
}
