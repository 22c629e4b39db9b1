package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/saeid-a/JudoNutritionBack/internal/cache"
	"github.com/saeid-a/JudoNutritionBack/internal/config"
	"github.com/saeid-a/JudoNutritionBack/internal/handlers"
	"github.com/saeid-a/JudoNutritionBack/internal/metrics"
	"github.com/saeid-a/JudoNutritionBack/internal/middleware"
	"github.com/saeid-a/JudoNutritionBack/internal/repository"
	"github.com/saeid-a/JudoNutritionBack/internal/services"
	"go.uber.org/zap"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// RegisterRoutes wires repositories, services and handlers onto app. rdb may
// be nil, which disables logout revocation and login rate limiting.
func RegisterRoutes(
	app *fiber.App,
	cfg *config.Config,
	db *pgxpool.Pool,
	rdb *redis.Client,
	notifier services.ResetNotifier,
	log *zap.Logger,
) error {
	userRepo := repository.NewUserRepository(db)
	athleteRepo := repository.NewAthleteRepository(db)
	nutritionistRepo := repository.NewNutritionistRepository(db)
	weightRepo := repository.NewWeightRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	competitionRepo := repository.NewCompetitionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	revocations := cache.NewRevocationStore(rdb)

	authService := services.NewAuthService(db, userRepo, revocations, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost)
	resetService := services.NewPasswordResetService(userRepo, notifier, cfg.ResetTokenTTL, cfg.ResetLinkBase, cfg.BcryptCost, log)
	profileService := services.NewProfileService(userRepo, athleteRepo, nutritionistRepo)
	weightService := services.NewWeightService(athleteRepo, weightRepo)
	assessmentService := services.NewAssessmentService(athleteRepo, assessmentRepo)
	taskService := services.NewTaskService(athleteRepo, taskRepo)
	competitionService := services.NewCompetitionService(athleteRepo, competitionRepo)
	dashboardService := services.NewDashboardService(athleteRepo, weightRepo, assessmentRepo, taskRepo, competitionRepo)
	nutritionistService := services.NewNutritionistService(athleteRepo, weightRepo, assessmentRepo, taskRepo)
	messageService := services.NewMessageService(userRepo, messageRepo)

	authHandler := handlers.NewAuthHandler(authService, resetService)
	profileHandler := handlers.NewProfileHandler(profileService)
	athleteHandler := handlers.NewAthleteHandler(weightService, assessmentService, taskService, competitionService, dashboardService)
	nutritionistHandler := handlers.NewNutritionistHandler(nutritionistService)
	messageHandler := handlers.NewMessageHandler(messageService)

	app.Get("/health", healthHandler(db))
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	if err := registerDocsRoutes(app, cfg); err != nil {
		return err
	}

	loginLimits, forgotLimits := authRateLimits(cfg)
	loginLimit := middleware.RateLimit(loginLimits, rdb, log)
	forgotLimit := middleware.RateLimit(forgotLimits, rdb, log)

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", loginLimit, authHandler.Login)
	api.Post("/forgot_password", forgotLimit, authHandler.ForgotPassword)
	api.Post("/reset_password", authHandler.ResetPassword)

	authRequired := middleware.AuthRequired(cfg.JWTSecret, revocations)
	athleteOnly := middleware.AthleteOnly()
	nutritionistOnly := middleware.NutritionistOnly()

	api.Post("/logout", authRequired, authHandler.Logout)
	api.Get("/user/profile", authRequired, profileHandler.GetProfile)
	api.Put("/user/profile", authRequired, profileHandler.UpdateProfile)

	api.Post("/weight", authRequired, athleteOnly, athleteHandler.CreateWeight)
	api.Get("/weight", authRequired, athleteOnly, athleteHandler.ListWeights)
	api.Post("/assessment", authRequired, athleteOnly, athleteHandler.SubmitAssessment)
	api.Get("/assessment", authRequired, athleteOnly, athleteHandler.GetAssessment)
	api.Get("/tasks", authRequired, athleteOnly, athleteHandler.ListTasks)
	api.Post("/tasks", authRequired, athleteOnly, athleteHandler.CreateTask)
	api.Put("/tasks", authRequired, athleteOnly, athleteHandler.UpdateTask)
	api.Get("/competitions", authRequired, athleteOnly, athleteHandler.ListCompetitions)
	api.Post("/competitions", authRequired, athleteOnly, athleteHandler.CreateCompetition)
	api.Get("/athlete/dashboard", authRequired, athleteOnly, athleteHandler.Dashboard)

	nutritionist := api.Group("/nutritionist", authRequired, nutritionistOnly)
	nutritionist.Get("/athletes", nutritionistHandler.ListAthletes)
	nutritionist.Get("/athlete/:id", nutritionistHandler.AthleteDetail)
	nutritionist.Get("/athlete/:id/export", nutritionistHandler.ExportAthlete)

	api.Post("/send_message", authRequired, messageHandler.Send)
	api.Get("/get_messages", authRequired, messageHandler.List)
	api.Post("/mark_read", authRequired, messageHandler.MarkRead)
	api.Get("/unread_count", authRequired, messageHandler.UnreadCount)

	return nil
}

func healthHandler(db pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		start := time.Now()
		err := db.Ping(ctx)
		metrics.ObserveDBPing(time.Since(start))
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "degraded",
				"database": "unreachable",
			})
		}

		return c.JSON(fiber.Map{
			"status":   "ok",
			"database": "ok",
		})
	}
}

// authRateLimits returns separate buckets for login and password reset
// requests so reset traffic cannot exhaust a client's login attempts.
func authRateLimits(cfg *config.Config) (login, forgot middleware.RateLimitConfig) {
	login = middleware.RateLimitConfig{
		Prefix:         "login",
		Capacity:       cfg.LoginRateCapacity,
		RefillTokens:   1,
		RefillInterval: cfg.LoginRateRefill,
		TTL:            time.Hour,
	}
	forgot = login
	forgot.Prefix = "forgot_password"
	return login, forgot
}
