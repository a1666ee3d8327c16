package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/roleforge-api/internal/ai"
	httptransport "github.com/spec-kit/roleforge-api/internal/api/http"
	"github.com/spec-kit/roleforge-api/internal/api/http/handlers"
	"github.com/spec-kit/roleforge-api/internal/auth"
	"github.com/spec-kit/roleforge-api/internal/config"
	"github.com/spec-kit/roleforge-api/internal/events"
	"github.com/spec-kit/roleforge-api/internal/observability"
	"github.com/spec-kit/roleforge-api/internal/persistence"
	"github.com/spec-kit/roleforge-api/internal/repository"
	"github.com/spec-kit/roleforge-api/internal/service"
	"github.com/spec-kit/roleforge-api/internal/worker"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	characterRepo := repository.NewCharacterRepository(pool)
	campaignRepo := repository.NewCampaignRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)

	authService := service.NewAuthService(cfg.Auth, userRepo)
	characterService := service.NewCharacterService(characterRepo, dispatcher, logger)
	campaignService := service.NewCampaignService(campaignRepo, dispatcher, logger)
	sessionService := service.NewSessionService(sessionRepo, campaignRepo, dispatcher, logger)

	aiClient := ai.NewClient(cfg.AI, logger)
	aiService := service.NewAIService(cfg.AI, aiClient, redis, dispatcher, logger)

	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	app.Use(httptransport.RateLimitMiddleware(cfg.RateLimit, redis, logger))

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Characters:     handlers.NewCharactersHandler(characterService),
		Campaigns:      handlers.NewCampaignsHandler(campaignService),
		Sessions:       handlers.NewSessionsHandler(sessionService),
		AI:             handlers.NewAIHandler(aiService),
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
