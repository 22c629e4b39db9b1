package repository

import (
	"context"
	"time"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
)

type TaskRepository struct {
	db DBTX
}

func NewTaskRepository(db DBTX) *TaskRepository {
	return &TaskRepository{db: db}
}

type CreateTaskInput struct {
	AthleteID   int64
	Name        string
	Description *string
	TaskType    *string
	Target      *string
	DueDate     *time.Time
}

type UpdateTaskInput struct {
	Name        *string
	Description *string
	Completed   *bool
	Progress    *int
}

// TaskFilter narrows ListByAthlete. CompletedSince only applies to
// completed tasks.
type TaskFilter struct {
	Completed      *bool
	CompletedSince *time.Time
}

const taskColumns = `id, athlete_id, name, description, task_type, target, completed, progress,
	due_date, created_at, completed_at`

func scanTask(row interface{ Scan(dest ...any) error }) (*models.Task, error) {
	var task models.Task
	var dueDate *time.Time
	err := row.Scan(
		&task.ID,
		&task.AthleteID,
		&task.Name,
		&task.Description,
		&task.TaskType,
		&task.Target,
		&task.Completed,
		&task.Progress,
		&dueDate,
		&task.CreatedAt,
		&task.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	if dueDate != nil {
		d := models.NewDate(*dueDate)
		task.DueDate = &d
	}
	return &task, nil
}

func (r *TaskRepository) Create(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	query := `
		INSERT INTO tasks (athlete_id, name, description, task_type, target, due_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns
	return scanTask(r.db.QueryRow(ctx, query,
		input.AthleteID,
		input.Name,
		input.Description,
		input.TaskType,
		input.Target,
		input.DueDate,
	))
}

// Update applies a partial update to a task owned by athleteID. A task that
// exists but belongs to another athlete yields pgx.ErrNoRows, same as a
// missing one. completed_at is stamped on the transition to completed and
// cleared on the transition away from it.
func (r *TaskRepository) Update(
	ctx context.Context,
	athleteID int64,
	taskID int64,
	input UpdateTaskInput,
) (*models.Task, error) {
	query := `
		UPDATE tasks
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			progress = COALESCE($3, progress),
			completed_at = CASE
				WHEN $4::boolean IS NULL THEN completed_at
				WHEN $4::boolean AND NOT completed THEN NOW()
				WHEN NOT $4::boolean THEN NULL
				ELSE completed_at
			END,
			completed = COALESCE($4::boolean, completed)
		WHERE id = $5 AND athlete_id = $6
		RETURNING ` + taskColumns
	return scanTask(r.db.QueryRow(ctx, query,
		input.Name,
		input.Description,
		input.Progress,
		input.Completed,
		taskID,
		athleteID,
	))
}

func (r *TaskRepository) ListByAthlete(ctx context.Context, athleteID int64, filter TaskFilter) ([]models.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE athlete_id = $1
		  AND ($2::boolean IS NULL OR completed = $2::boolean)
		  AND ($3::timestamptz IS NULL OR completed_at >= $3::timestamptz)
		ORDER BY CASE WHEN $3::timestamptz IS NULL THEN created_at ELSE completed_at END DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, athleteID, filter.Completed, filter.CompletedSince)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
