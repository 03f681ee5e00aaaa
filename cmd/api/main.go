package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"peer-match/internal/config"
	"peer-match/internal/crisis"
	"peer-match/internal/db"
	"peer-match/internal/directory"
	apihttp "peer-match/internal/http"
	"peer-match/internal/realtime"
	"peer-match/internal/repository"
	"peer-match/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	matchRepo := repository.NewPgMatchRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	messageRepo := repository.NewPgMessageRepository(pool)
	reportRepo := repository.NewPgReportRepository(pool)

	profileDir := directory.NewHTTPClient(cfg.DirectoryBaseURL, cfg.DirectoryAPIKey, logger)

	crisisNotifier := crisis.NewDisabledNotifier("crisis webhook not configured")
	if cfg.CrisisWebhookURL != "" {
		crisisNotifier = crisis.NewHTTPNotifier(cfg.CrisisWebhookURL, cfg.CrisisAPIKey, logger)
	} else {
		logger.Warn("crisis webhook not configured, escalations will be logged only")
	}

	var (
		findLimiter service.RateLimiter
		redisClient *redis.Client
	)
	window := time.Duration(cfg.FindRateWindowS) * time.Second
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
			redisClient = nil
		} else {
			findLimiter = service.NewRedisRateLimiter(redisClient, window, cfg.FindRateMax)
		}
		cancel()
	}
	if findLimiter == nil {
		findLimiter = service.NewMemoryRateLimiter(window, cfg.FindRateMax)
	}

	hub := realtime.NewHub(logger, redisClient)

	chatSvc := service.NewChatService(logger, sessionRepo, messageRepo, service.KeywordClassifier{}, crisisNotifier, hub)
	matchSvc := service.NewMatchService(logger, profileDir, matchRepo, chatSvc)
	safetySvc := service.NewSafetyService(logger, reportRepo)

	var tokenSvc *service.TokenService
	if cfg.JWTSecret != "" {
		tokenSvc = service.NewTokenService(cfg.JWTSecret)
	} else {
		logger.Warn("jwt secret not configured, api auth disabled")
	}

	matchHandler := apihttp.NewMatchHandler(logger, matchSvc)
	chatHandler := apihttp.NewChatHandler(logger, chatSvc)
	safetyHandler := apihttp.NewSafetyHandler(logger, safetySvc)
	streamHandler := apihttp.NewStreamHandler(logger, sessionRepo, tokenSvc, hub)
	router := apihttp.NewRouter(logger, matchHandler, chatHandler, safetyHandler, streamHandler, tokenSvc, findLimiter, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
