package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	"resourced/internal/platform/config"
	"resourced/internal/platform/db"
	"resourced/internal/platform/httpserver"
	"resourced/internal/platform/messaging"
	"resourced/internal/shared/events"
	"resourced/resource"
	cacheadapter "resourced/resource/adapters/cache"
	postgresadapter "resourced/resource/adapters/postgres"
	"resourced/resource/application"
	"resourced/resource/application/workers"
	"resourced/resource/ports"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	module   resource.Module
	postgres *db.Postgres
	channel  *messaging.KafkaChannel
	logger   *slog.Logger
}

// BuildAPI wires postgres + kafka when POSTGRES_DSN is set, and falls back
// to the memory adapters over the in-process bus for brokerless local runs.
func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return buildMemoryAPI(cfg, logger)
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := postgresadapter.NewRepository(pg.DB, logger)
	if err := repo.Migrate(); err != nil {
		_ = pg.Close()
		return nil, err
	}

	channel := messaging.NewKafkaChannel(cfg.KafkaBrokers, logger)
	publisher := application.Publisher{
		Channel: channel,
		Topic:   cfg.KafkaTopic,
		Source:  cfg.ServiceName,
		Clock:   ports.SystemClock{},
		Logger:  logger,
	}

	module := resource.NewModule(resource.Dependencies{
		Repository: repo,
		Cache: cacheadapter.New(cacheadapter.Config{
			Capacity:           cfg.CacheCapacity,
			NumShards:          64,
			TTL:                cfg.CacheTTL,
			EvictionPercentage: 10,
		}),
		Publisher: publisher,
		Clock:     ports.SystemClock{},
		IDs:       postgresadapter.UUIDGenerator{},
		Logger:    logger,
	})

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		module:   module,
		postgres: pg,
		channel:  channel,
		logger:   logger,
	}, nil
}

func buildMemoryAPI(cfg config.Config, logger *slog.Logger) (*APIApp, error) {
	logger.Info("no postgres dsn configured, using in-memory wiring",
		"event", "api_memory_wiring",
		"module", "internal/app/bootstrap",
		"layer", "app",
	)

	bus := messaging.NewBus(logger)

	dispatcher := events.NewDispatcher(logger)
	projection := workers.ProjectionConsumer{
		Projection: workers.NewProjection(),
		Logger:     logger,
	}
	projection.Register(dispatcher)
	bus.Subscribe(context.Background(), cfg.KafkaTopic, dispatcher)

	publisher := application.Publisher{
		Channel: bus,
		Topic:   cfg.KafkaTopic,
		Source:  cfg.ServiceName,
		Clock:   ports.SystemClock{},
		Logger:  logger,
	}

	module := resource.NewInMemoryModule(publisher, postgresadapter.UUIDGenerator{}, logger)
	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server: server,
		module: module,
		logger: logger,
	}, nil
}

func (a *APIApp) Run() error {
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.channel != nil {
		_ = a.channel.Close()
	}
	return a.postgres.Close()
}

type WorkerApp struct {
	consumer *messaging.KafkaConsumer
	logger   *slog.Logger
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")

	dispatcher := events.NewDispatcher(logger)
	projection := workers.ProjectionConsumer{
		Projection: workers.NewProjection(),
		Logger:     logger,
	}
	projection.Register(dispatcher)

	consumer := messaging.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroup, dispatcher, logger)
	return &WorkerApp{
		consumer: consumer,
		logger:   logger,
	}, nil
}

func (a *WorkerApp) Run(ctx context.Context) error {
	a.logger.Info("worker consuming",
		"event", "worker_starting",
		"module", "internal/app/bootstrap",
		"layer", "app",
	)
	return a.consumer.Run(ctx)
}

func (a *WorkerApp) Close() error {
	return a.consumer.Close()
}

func normalizeAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
