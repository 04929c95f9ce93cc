package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"learnhub/internal/core"
	"learnhub/internal/gamification"
	"learnhub/internal/progress"
	httpProtocol "learnhub/internal/protocols/http"
	wsProtocol "learnhub/internal/protocols/websocket"
	"learnhub/internal/repository"
	"learnhub/pkg/config"
	"learnhub/pkg/database"
	"learnhub/pkg/logger"
)

func main() {
	// Load configuration
	configPath := os.Getenv("LEARNHUB_CONFIG")
	if configPath == "" {
		configPath = "./configs/development.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.Init(cfg.Logging)

	logger.Info("Starting LearnHub server...")

	// Connect to database
	dbCfg := database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		Timeout:         cfg.Database.Timeout,
	}

	pool, err := database.NewPGXPool(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Health-check handle for the /health endpoint
	db, err := database.NewDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to open health-check connection: %v", err)
	}
	defer db.Close()

	logger.Info("Connected to PostgreSQL database")

	// Apply schema and seed the badge catalog
	ctx := context.Background()
	if err := database.ApplySchema(ctx, pool); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	xpEventRepo := repository.NewXPEventRepository(pool)
	topicRepo := repository.NewTopicRepository(pool)
	topicProgressRepo := repository.NewTopicProgressRepository(pool)
	quizRepo := repository.NewQuizRepository(pool)
	attemptRepo := repository.NewAttemptRepository(pool)
	badgeRepo := repository.NewBadgeRepository(pool)

	if err := badgeRepo.SeedCatalog(ctx, gamification.Catalog); err != nil {
		log.Fatalf("Failed to seed badge catalog: %v", err)
	}

	logger.Info("Initialized all repositories")

	// Optional leaderboard cache
	cache, err := database.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Warnf("Redis unavailable, leaderboard cache disabled: %v", err)
		cache = nil
	}

	// WebSocket gamification feed
	hub := wsProtocol.NewHub()

	// Initialize core services
	authSvc := core.NewAuthService(userRepo, progressRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	gamificationSvc := core.NewGamificationService(progressRepo, xpEventRepo, badgeRepo, hub, cfg.Gamification.DailyLoginXP)
	quizSvc := core.NewQuizService(quizRepo, attemptRepo, gamificationSvc, cfg.Gamification.FailedQuizXPRate)
	aggregator := progress.NewAggregator(progress.Estimates{
		HoursPerProgressPercent: cfg.Gamification.HoursPerProgressPercent,
		HoursPerQuizAttempt:     cfg.Gamification.HoursPerQuizAttempt,
	})
	progressSvc := core.NewProgressService(topicRepo, topicProgressRepo, attemptRepo, gamificationSvc, aggregator)
	leaderboardSvc := core.NewLeaderboardService(progressRepo, xpEventRepo, cache, cfg.Redis.CacheTTL)

	logger.Info("Initialized all core services")

	httpServer := httpProtocol.NewServer(
		cfg,
		authSvc,
		gamificationSvc,
		quizSvc,
		progressSvc,
		leaderboardSvc,
		hub,
		db,
	)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("HTTP server panic recovered: %v", r)
			}
		}()
		httpAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info(fmt.Sprintf("Starting HTTP server on %s", httpAddr))
		if err := httpServer.Start(httpAddr); err != nil {
			logger.Errorf("HTTP server error: %v", err)
		}
	}()

	logger.Info("Server started successfully")
	logger.Info("Press Ctrl+C to shutdown")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info(fmt.Sprintf("Received signal: %v", sig))

	logger.Info("Shutdown complete")
}
