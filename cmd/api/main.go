package main

// @title Spot Discovery API
// @version 1.0.0
// @description Сервис поиска мест для автостопа, велотуризма, ван-лайфа и пеших походов.
// @description
// @description Основные возможности:
// @description - Поиск спотов с учётом предпочтений путешественника
// @description - Отзывы с агрегацией рейтингов по видам передвижения
// @description - Trust score и бейджи пользователей

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/spot-discovery/docs"
	"github.com/spot-discovery/internal/config"
	httpDelivery "github.com/spot-discovery/internal/delivery/http"
	"github.com/spot-discovery/internal/delivery/http/handler"
	"github.com/spot-discovery/internal/pkg/logger"
	"github.com/spot-discovery/internal/repository/cache"
	"github.com/spot-discovery/internal/repository/postgres"
	redisRepo "github.com/spot-discovery/internal/repository/redis"
	"github.com/spot-discovery/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env, "spot-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Spot Discovery API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize Repositories
	spotRepo := postgres.NewSpotRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	badgeRepo := postgres.NewBadgeRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	// API только публикует события, поэтому block не используется
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log, cfg.Worker.StreamReadTimeout)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	resolver := usecase.NewPreferenceResolver(profileRepo, cacheRepo, cfg.Cache.PreferencesTTL, log)
	events := usecase.NewProfileEvents(streamRepo, log)

	spotUC := usecase.NewSpotUseCase(spotRepo, profileRepo, resolver, events, log)
	reviewUC := usecase.NewReviewUseCase(spotRepo, reviewRepo, ratingRepo, profileRepo, events, log)
	profileUC := usecase.NewProfileUseCase(profileRepo, badgeRepo, resolver, events, log)
	trustUC := usecase.NewTrustUseCase(profileRepo, badgeRepo, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	handlers := httpDelivery.Handlers{
		Spot:    handler.NewSpotHandler(spotUC, log),
		Review:  handler.NewReviewHandler(reviewUC, log),
		Profile: handler.NewProfileHandler(profileUC, trustUC, log),
		Health: handler.NewHealthHandler(map[string]handler.HealthChecker{
			"postgres": db,
			"redis":    redisClient,
		}),
	}

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, handlers)

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
