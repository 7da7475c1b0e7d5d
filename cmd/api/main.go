package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/softphone-backend/internal/api/http"
	"github.com/spec-kit/softphone-backend/internal/api/http/handlers"
	"github.com/spec-kit/softphone-backend/internal/auth"
	"github.com/spec-kit/softphone-backend/internal/bus"
	"github.com/spec-kit/softphone-backend/internal/config"
	"github.com/spec-kit/softphone-backend/internal/observability"
	"github.com/spec-kit/softphone-backend/internal/persistence"
	"github.com/spec-kit/softphone-backend/internal/queue"
	"github.com/spec-kit/softphone-backend/internal/report"
	"github.com/spec-kit/softphone-backend/internal/repository"
	"github.com/spec-kit/softphone-backend/internal/service"
	"github.com/spec-kit/softphone-backend/internal/token"
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

	observability.RegisterMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	if pool != nil {
		defer pool.Close()
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redisClient := persistence.NewRedis(cfg.Redis, logger)
	defer redisClient.Close()

	secret, err := token.LoadOrCreateSecret(cfg.Auth.SecretFile)
	if err != nil {
		logger.Fatal("failed to load signing secret", zap.Error(err))
	}
	tokens := token.NewManager(secret, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL())

	security := observability.NewSecurityLog(logger)
	broker := bus.NewRedisBroker(redisClient)
	lookupQueue := queue.NewRedisQueue(redisClient, logger)
	lookups := queue.NewClient(lookupQueue, cfg.Queue.JobsTube, cfg.Queue.ReplyTimeout())

	accountRepo := repository.NewSipAccountRepository(pool)
	extensionRepo := repository.NewExtensionRepository(pool)

	authService := service.NewAuthService(accountRepo, tokens)
	directoryService := service.NewDirectoryService(broker, logger)
	historyService := service.NewHistoryService(
		report.NewHTTPClient(cfg.Report.BaseURL, cfg.Report.ReportTimeout()),
		extensionRepo,
		lookups,
		logger,
	)

	authMiddleware := auth.NewMiddleware(tokens)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Auth:           handlers.NewAuthHandler(authService, security, cfg.Auth.AccessTokenTTLSeconds),
		Profile:        handlers.NewProfileHandler(directoryService, historyService),
		Media:          handlers.NewMediaHandler(authMiddleware, security),
		Publish:        handlers.NewPublishHandler(broker),
		Health:         handlers.NewHealthHandler(),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
