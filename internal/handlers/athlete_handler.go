package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/services"
)

type weightService interface {
	Create(ctx context.Context, userID int64, input services.CreateWeightInput) (*models.WeightEntry, error)
	List(ctx context.Context, userID int64, input services.ListWeightsInput) ([]models.WeightEntry, error)
}

type assessmentService interface {
	Submit(ctx context.Context, userID int64, answers map[string]any) (*models.WeeklyAssessment, error)
	Get(ctx context.Context, userID int64, weekDate string) (*models.WeeklyAssessment, error)
}

type taskService interface {
	Create(ctx context.Context, userID int64, input services.CreateTaskInput) (*models.Task, error)
	List(ctx context.Context, userID int64) ([]models.Task, error)
	Update(ctx context.Context, userID int64, input services.UpdateTaskInput) (*models.Task, error)
}

type competitionService interface {
	Create(ctx context.Context, userID int64, input services.CreateCompetitionInput) (*models.Competition, error)
	List(ctx context.Context, userID int64, upcomingOnly bool) ([]models.Competition, error)
}

type dashboardService interface {
	BuildAthleteDashboard(ctx context.Context, userID int64, now time.Time) (*models.AthleteDashboard, error)
}

// AthleteHandler serves the athlete-only record endpoints.
type AthleteHandler struct {
	weights      weightService
	assessments  assessmentService
	tasks        taskService
	competitions competitionService
	dashboard    dashboardService
	now          func() time.Time
}

func NewAthleteHandler(
	weights weightService,
	assessments assessmentService,
	tasks taskService,
	competitions competitionService,
	dashboard dashboardService,
) *AthleteHandler {
	return &AthleteHandler{
		weights:      weights,
		assessments:  assessments,
		tasks:        tasks,
		competitions: competitions,
		dashboard:    dashboard,
		now:          time.Now,
	}
}

const athleteProfileMissing = "Athlete profile not found"

type createWeightRequest struct {
	Weight *float64 `json:"weight"`
	Date   string   `json:"date"`
	Timing *string  `json:"timing"`
	Notes  *string  `json:"notes"`
}

type submitAssessmentRequest struct {
	Answers map[string]any `json:"answers"`
}

type createTaskRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	TaskType    *string `json:"task_type"`
	Target      *string `json:"target"`
	DueDate     string  `json:"due_date"`
}

type updateTaskRequest struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Progress    *int    `json:"progress"`
}

type createCompetitionRequest struct {
	Name            string   `json:"name"`
	CompetitionDate string   `json:"competition_date"`
	WeightCategory  *string  `json:"weight_category"`
	TargetWeight    *float64 `json:"target_weight"`
	Notes           *string  `json:"notes"`
}

func (h *AthleteHandler) CreateWeight(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	var req createWeightRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	entry, err := h.weights.Create(c.UserContext(), caller.UserID, services.CreateWeightInput{
		Weight: req.Weight,
		Date:   req.Date,
		Timing: req.Timing,
		Notes:  req.Notes,
	})
	if err != nil {
		return writeServiceError(c, err, athleteProfileMissing)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Weight entry added successfully",
		"entry":   entry,
	})
}

func (h *AthleteHandler) ListWeights(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	entries, err := h.weights.List(c.UserContext(), caller.UserID, services.ListWeightsInput{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	})
	if err != nil {
		return writeServiceError(c, err, athleteProfileMissing)
	}
	return c.JSON(fiber.Map{"entries": entries})
}

func (h *AthleteHandler) SubmitAssessment(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	var req submitAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	assessment, err := h.assessments.Submit(c.UserContext(), caller.UserID, req.Answers)
	if err != nil {
		return writeServiceError(c, err, athleteProfileMissing)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Assessment submitted successfully",
		"assessment": assessment,
	})
}

func (h *AthleteHandler) GetAssessment(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	assessment, err := h.assessments.Get(c.UserContext(), caller.UserID, c.Query("week_date"))
	if err != nil {
		return writeServiceError(c, err, "No assessment found")
	}
	return c.JSON(assessment)
}

func (h *AthleteHandler) ListTasks(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	tasks, err := h.tasks.List(c.UserContext(), caller.UserID)
	if err != nil {
		return writeServiceError(c, err, athleteProfileMissing)
	}
	return c.JSON(fiber.Map{"tasks": tasks})
}

func (h *AthleteHandler) CreateTask(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	task, err := h.tasks.Create(c.UserContext(), caller.UserID, services.CreateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		TaskType:    req.TaskType,
		Target:      req.Target,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return writeServiceError(c, err, athleteProfileMissing)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Task created successfully",
		"task":    task,
	})
}

func (h *AthleteHandler) UpdateTask(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	var req updateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	task, err := h.tasks.Update(c.UserContext(), caller.UserID, services.UpdateTaskInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Completed:   req.Completed,
		Progress:    req.Progress,
	})
	if err != nil {
		return writeServiceError(c, err, "Task not found")
	}

	return c.JSON(fiber.Map{
		"message": "Task updated successfully",
		"task":    task,
	})
}

func (h *AthleteHandler) ListCompetitions(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	competitions, err := h.competitions.List(c.UserContext(), caller.UserID, c.QueryBool("upcoming", false))
	if err != nil {
		return writeServiceError(c, err, athleteProfileMissing)
	}
	return c.JSON(fiber.Map{"competitions": competitions})
}

func (h *AthleteHandler) CreateCompetition(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	var req createCompetitionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	competition, err := h.competitions.Create(c.UserContext(), caller.UserID, services.CreateCompetitionInput{
		Name:            req.Name,
		CompetitionDate: req.CompetitionDate,
		WeightCategory:  req.WeightCategory,
		TargetWeight:    req.TargetWeight,
		Notes:           req.Notes,
	})
	if err != nil {
		return writeServiceError(c, err, athleteProfileMissing)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Competition created successfully",
		"competition": competition,
	})
}

func (h *AthleteHandler) Dashboard(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	dashboard, err := h.dashboard.BuildAthleteDashboard(c.UserContext(), caller.UserID, h.now())
	if err != nil {
		return writeServiceError(c, err, athleteProfileMissing)
	}
	return c.JSON(dashboard)
}
