// Command migrate applies or rolls back the embedded schema migrations.
//
//	migrate [up|down|version]
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/saeid-a/JudoNutritionBack/internal/database"
	"github.com/saeid-a/JudoNutritionBack/internal/logging"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logs, err := logging.Init(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV"), "")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logs.Closer()
	logger := logs.Base.Named("migrate")

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		logger.Fatal("DB_URL is required")
	}

	action := "up"
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	switch action {
	case "up":
		err = database.Migrate(dbURL)
	case "down":
		err = database.Rollback(dbURL)
	case "version":
		v, dirty, verr := database.Version(dbURL)
		if verr != nil {
			logger.Fatal("read schema version", zap.Error(verr))
		}
		logger.Info("schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return
	default:
		logger.Fatal("unknown command, expected up, down or version", zap.String("command", action))
	}
	if err != nil {
		logger.Fatal("migration failed", zap.String("command", action), zap.Error(err))
	}

	v, _, _ := database.Version(dbURL)
	logger.Info("migration complete", zap.String("command", action), zap.Uint("version", v))
}
