package repository

import (
	"context"
	"time"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
)

type AssessmentRepository struct {
	db DBTX
}

func NewAssessmentRepository(db DBTX) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

const assessmentColumns = `id, athlete_id, week_start, answers, submitted_at`

func scanAssessment(row interface{ Scan(dest ...any) error }) (*models.WeeklyAssessment, error) {
	var assessment models.WeeklyAssessment
	var weekStart time.Time
	err := row.Scan(
		&assessment.ID,
		&assessment.AthleteID,
		&weekStart,
		&assessment.Answers,
		&assessment.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	assessment.WeekStart = models.NewDate(weekStart)
	if assessment.Answers == nil {
		assessment.Answers = map[string]any{}
	}
	return &assessment, nil
}

// Upsert keeps one row per (athlete, week): a resubmission replaces the
// answers and bumps submitted_at.
func (r *AssessmentRepository) Upsert(
	ctx context.Context,
	athleteID int64,
	weekStart time.Time,
	answers map[string]any,
) (*models.WeeklyAssessment, error) {
	query := `
		INSERT INTO weekly_assessments (athlete_id, week_start, answers)
		VALUES ($1, $2, $3)
		ON CONFLICT (athlete_id, week_start)
		DO UPDATE SET answers = EXCLUDED.answers, submitted_at = NOW()
		RETURNING ` + assessmentColumns
	return scanAssessment(r.db.QueryRow(ctx, query, athleteID, weekStart, answers))
}

func (r *AssessmentRepository) GetLatest(ctx context.Context, athleteID int64) (*models.WeeklyAssessment, error) {
	query := `
		SELECT ` + assessmentColumns + `
		FROM weekly_assessments
		WHERE athlete_id = $1
		ORDER BY week_start DESC
		LIMIT 1
	`
	return scanAssessment(r.db.QueryRow(ctx, query, athleteID))
}

func (r *AssessmentRepository) GetByWeek(ctx context.Context, athleteID int64, weekStart time.Time) (*models.WeeklyAssessment, error) {
	query := `
		SELECT ` + assessmentColumns + `
		FROM weekly_assessments
		WHERE athlete_id = $1 AND week_start = $2
	`
	return scanAssessment(r.db.QueryRow(ctx, query, athleteID, weekStart))
}

func (r *AssessmentRepository) ListByAthlete(ctx context.Context, athleteID int64) ([]models.WeeklyAssessment, error) {
	query := `
		SELECT ` + assessmentColumns + `
		FROM weekly_assessments
		WHERE athlete_id = $1
		ORDER BY week_start DESC
	`

	rows, err := r.db.Query(ctx, query, athleteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assessments := make([]models.WeeklyAssessment, 0)
	for rows.Next() {
		assessment, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, *assessment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assessments, nil
}
