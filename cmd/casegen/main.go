package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/casegen/internal/config"
	"github.com/spec-kit/casegen/internal/events"
	"github.com/spec-kit/casegen/internal/observability"
	"github.com/spec-kit/casegen/internal/persistence"
	"github.com/spec-kit/casegen/internal/reference"
	"github.com/spec-kit/casegen/internal/repository"
	"github.com/spec-kit/casegen/internal/service"
	"github.com/spec-kit/casegen/internal/worker"
	"github.com/spec-kit/casegen/pkg/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		domainErr := util.ToDomainError(err)
		logger.Error("generation failed",
			zap.String("code", domainErr.Code),
			zap.Any("details", domainErr.Details),
			zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting generator",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.Stringer("config", cfg))

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			return err
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	deps := service.SinkDependencies{
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	}
	if pool := pg.PoolHandle(); pool != nil {
		deps.CaseRepo = repository.NewCaseRepository(pool)
	}
	if client := redis.ClientHandle(); client != nil {
		deps.Summaries = repository.NewSummaryCache(client, cfg.Redis.SummaryTTL())
	}
	worker.StartSinkWorker(service.NewSinkService(deps))

	pipeline := service.NewPipeline(*cfg, service.PipelineDependencies{
		Tables:     reference.Default(),
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
		Out:        os.Stdout,
	})
	_, err = pipeline.Run(ctx)
	return err
}
