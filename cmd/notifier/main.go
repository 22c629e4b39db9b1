// Command notifier drains the password reset queue and hands each link to
// the mail gateway. Until a gateway is configured it only logs the delivery.
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/saeid-a/JudoNutritionBack/internal/config"
	"github.com/saeid-a/JudoNutritionBack/internal/logging"
	"github.com/saeid-a/JudoNutritionBack/internal/queue"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logs, err := logging.Init(cfg.LogLevel, cfg.AppEnv, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logs.Closer()
	logger := logs.Base.Named("notifier")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = queue.ConsumePasswordResets(ctx, cfg.RabbitMQURL, logger, func(_ context.Context, event queue.PasswordResetEvent) error {
		logger.Info("password reset email sent",
			zap.Int64("user_id", event.UserID),
			zap.String("email", event.Email),
			zap.String("expires_at", event.ExpiresAt),
		)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("consumer stopped", zap.Error(err))
	}
}
