package services

import (
	"context"
	"strings"
	"time"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/repository"
)

type taskStore interface {
	Create(ctx context.Context, input repository.CreateTaskInput) (*models.Task, error)
	Update(ctx context.Context, athleteID int64, taskID int64, input repository.UpdateTaskInput) (*models.Task, error)
	ListByAthlete(ctx context.Context, athleteID int64, filter repository.TaskFilter) ([]models.Task, error)
}

type TaskService struct {
	athletes athleteReader
	tasks    taskStore
}

type CreateTaskInput struct {
	Name        string
	Description *string
	TaskType    *string
	Target      *string
	DueDate     string
}

type UpdateTaskInput struct {
	ID          int64
	Name        *string
	Description *string
	Completed   *bool
	Progress    *int
}

func NewTaskService(athletes athleteReader, tasks taskStore) *TaskService {
	return &TaskService{athletes: athletes, tasks: tasks}
}

func (s *TaskService) Create(ctx context.Context, userID int64, input CreateTaskInput) (*models.Task, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidf("task name is required")
	}
	dueDate, err := parseOptionalDate("due_date", input.DueDate)
	if err != nil {
		return nil, err
	}

	athlete, err := resolveAthlete(ctx, s.athletes, userID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Create(ctx, repository.CreateTaskInput{
		AthleteID:   athlete.ID,
		Name:        name,
		Description: trimOptional(input.Description),
		TaskType:    trimOptional(input.TaskType),
		Target:      trimOptional(input.Target),
		DueDate:     dueDate,
	})
	if err != nil {
		return nil, storeError(err)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context, userID int64) ([]models.Task, error) {
	athlete, err := resolveAthlete(ctx, s.athletes, userID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByAthlete(ctx, athlete.ID, repository.TaskFilter{})
	if err != nil {
		return nil, storeError(err)
	}
	return tasks, nil
}

// Update applies the non-nil fields of input to one of the caller's tasks.
// Tasks owned by other athletes are reported as ErrNotFound.
func (s *TaskService) Update(ctx context.Context, userID int64, input UpdateTaskInput) (*models.Task, error) {
	if input.ID <= 0 {
		return nil, invalidf("task id is required")
	}

	var name *string
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		if trimmed == "" {
			return nil, invalidf("task name cannot be empty")
		}
		name = &trimmed
	}
	if input.Progress != nil && (*input.Progress < 0 || *input.Progress > 100) {
		return nil, invalidf("progress must be between 0 and 100")
	}

	athlete, err := resolveAthlete(ctx, s.athletes, userID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Update(ctx, athlete.ID, input.ID, repository.UpdateTaskInput{
		Name:        name,
		Description: input.Description,
		Completed:   input.Completed,
		Progress:    input.Progress,
	})
	if err != nil {
		return nil, storeError(err)
	}
	return task, nil
}

func activeTasksFilter() repository.TaskFilter {
	completed := false
	return repository.TaskFilter{Completed: &completed}
}

func completedSinceFilter(since time.Time) repository.TaskFilter {
	completed := true
	return repository.TaskFilter{Completed: &completed, CompletedSince: &since}
}
