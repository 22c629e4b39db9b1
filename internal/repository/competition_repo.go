package repository

import (
	"context"
	"time"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
)

type CompetitionRepository struct {
	db DBTX
}

func NewCompetitionRepository(db DBTX) *CompetitionRepository {
	return &CompetitionRepository{db: db}
}

type CreateCompetitionInput struct {
	AthleteID       int64
	Name            string
	CompetitionDate time.Time
	WeightCategory  *string
	TargetWeight    *float64
	Notes           *string
}

const competitionColumns = `id, athlete_id, name, competition_date, weight_category, target_weight, notes, created_at`

func scanCompetition(row interface{ Scan(dest ...any) error }) (*models.Competition, error) {
	var competition models.Competition
	var competitionDate time.Time
	err := row.Scan(
		&competition.ID,
		&competition.AthleteID,
		&competition.Name,
		&competitionDate,
		&competition.WeightCategory,
		&competition.TargetWeight,
		&competition.Notes,
		&competition.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	competition.CompetitionDate = models.NewDate(competitionDate)
	return &competition, nil
}

func (r *CompetitionRepository) Create(ctx context.Context, input CreateCompetitionInput) (*models.Competition, error) {
	query := `
		INSERT INTO competitions (athlete_id, name, competition_date, weight_category, target_weight, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + competitionColumns
	return scanCompetition(r.db.QueryRow(ctx, query,
		input.AthleteID,
		input.Name,
		input.CompetitionDate,
		input.WeightCategory,
		input.TargetWeight,
		input.Notes,
	))
}

// ListByAthlete returns competitions on or after from, soonest first. A nil
// from returns the full history.
func (r *CompetitionRepository) ListByAthlete(ctx context.Context, athleteID int64, from *time.Time) ([]models.Competition, error) {
	query := `
		SELECT ` + competitionColumns + `
		FROM competitions
		WHERE athlete_id = $1
		  AND ($2::date IS NULL OR competition_date >= $2::date)
		ORDER BY competition_date ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, athleteID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	competitions := make([]models.Competition, 0)
	for rows.Next() {
		competition, err := scanCompetition(rows)
		if err != nil {
			return nil, err
		}
		competitions = append(competitions, *competition)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return competitions, nil
}
