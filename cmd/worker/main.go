package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/softphone-backend/internal/bus"
	"github.com/spec-kit/softphone-backend/internal/config"
	"github.com/spec-kit/softphone-backend/internal/crm"
	"github.com/spec-kit/softphone-backend/internal/observability"
	"github.com/spec-kit/softphone-backend/internal/persistence"
	"github.com/spec-kit/softphone-backend/internal/queue"
	"github.com/spec-kit/softphone-backend/internal/repository"
	"github.com/spec-kit/softphone-backend/internal/worker"
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
	logger = logger.Named("lookup-worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	if pool != nil {
		defer pool.Close()
	}

	redisClient := persistence.NewRedis(cfg.Redis, logger)
	defer redisClient.Close()

	w := worker.New(
		queue.NewRedisQueue(redisClient, logger),
		repository.NewContactRepository(pool),
		crm.NewClient(cfg.CRM.BaseURL, cfg.CRM.CRMTimeout(), logger),
		bus.NewLoopbackPublisher(cfg.App.LoopbackBaseURL, logger),
		cfg.Queue.JobsTube,
		cfg.Queue.PingTube(),
		logger,
	)

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("worker stopped", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
