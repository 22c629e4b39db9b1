package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DBUrl             string
	DBMaxConns        int
	JWTSecret         string
	TokenTTL          time.Duration
	AppEnv            string
	EnableDocs        bool
	LogLevel          string
	LogFile           string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	RabbitMQURL       string
	ResetTokenTTL     time.Duration
	ResetLinkBase     string
	SentryDSN         string
	LoginRateCapacity int
	LoginRateRefill   time.Duration
	BcryptCost        int
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret, exists := os.LookupEnv("JWT_SECRET")
	if !exists || jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DBUrl:             getEnv("DB_URL", ""),
		DBMaxConns:        getEnvInt("DB_MAX_CONNS", 10),
		JWTSecret:         jwtSecret,
		TokenTTL:          getEnvDuration("TOKEN_TTL", 24*time.Hour),
		AppEnv:            normalizeEnv(getEnv("APP_ENV", "production")),
		EnableDocs:        getEnvBool("ENABLE_API_DOCS", false),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           getEnv("LOG_FILE", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RabbitMQURL:       getEnv("RABBITMQ_URL", ""),
		ResetTokenTTL:     getEnvDuration("RESET_TOKEN_TTL", 24*time.Hour),
		ResetLinkBase:     getEnv("RESET_LINK_BASE", "http://localhost:8080/reset_password"),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LoginRateCapacity: getEnvInt("LOGIN_RATE_CAPACITY", 10),
		LoginRateRefill:   getEnvDuration("LOGIN_RATE_REFILL", time.Minute),
		BcryptCost:        getEnvInt("BCRYPT_COST", 10),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "dev", "develop", "development", "local":
		return "development"
	case "prod", "production":
		return "production"
	case "stage", "staging":
		return "staging"
	case "test", "testing":
		return "test"
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}

func (c *Config) DocsEnabled() bool {
	return c != nil && c.EnableDocs && c.AppEnv == "development"
}

func (c *Config) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}
