package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/saeid-a/JudoNutritionBack/internal/config"
	"github.com/saeid-a/JudoNutritionBack/internal/database"
	"github.com/saeid-a/JudoNutritionBack/internal/handlers"
	"github.com/saeid-a/JudoNutritionBack/internal/logging"
	"github.com/saeid-a/JudoNutritionBack/internal/middleware"
	"github.com/saeid-a/JudoNutritionBack/internal/observability"
	"github.com/saeid-a/JudoNutritionBack/internal/queue"
	"github.com/saeid-a/JudoNutritionBack/internal/routes"
	"github.com/saeid-a/JudoNutritionBack/internal/services"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logs, err := logging.Init(cfg.LogLevel, cfg.AppEnv, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logs.Closer()
	logger := logs.Base

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.AppEnv, version)
	if err != nil {
		logger.Warn("sentry disabled", zap.Error(err))
	} else {
		defer flushSentry()
	}

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		logger.Fatal("DB_URL is required")
	}
	if err := database.Migrate(cfg.DBUrl); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}
	pool, err := database.Connect(context.Background(), cfg.DBUrl, cfg.DBMaxConns, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := database.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	if rdb == nil {
		logger.Warn("REDIS_ADDR not set; logout revocation and login rate limiting are off")
	} else {
		defer rdb.Close()
	}

	var notifier services.ResetNotifier
	if cfg.RabbitMQURL != "" {
		notifier = queue.NewPublisher(cfg.RabbitMQURL, logger)
	} else if cfg.IsDevelopment() {
		logger.Warn("RABBITMQ_URL not set; password reset links are only logged")
		notifier = queue.NewLogNotifier(logger)
	} else {
		logger.Fatal("RABBITMQ_URL is required outside development")
	}

	// 3. Setup Fiber
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.IsDevelopment()}))
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(logger))

	if err := routes.RegisterRoutes(app, cfg, pool, rdb, notifier, logger); err != nil {
		logger.Fatal("failed to register routes", zap.Error(err))
	}

	// 4. Start Server
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped", zap.Error(err))
		}
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(ctx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}
