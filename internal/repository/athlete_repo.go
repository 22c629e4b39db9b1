package repository

import (
	"context"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
)

type AthleteRepository struct {
	db DBTX
}

func NewAthleteRepository(db DBTX) *AthleteRepository {
	return &AthleteRepository{db: db}
}

const athleteColumns = `id, user_id, name, age, gender, weight_category, sport_level,
	height_cm, target_weight, created_at, updated_at`

func scanAthlete(row interface{ Scan(dest ...any) error }) (*models.AthleteProfile, error) {
	var profile models.AthleteProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.Age,
		&profile.Gender,
		&profile.WeightCategory,
		&profile.SportLevel,
		&profile.HeightCM,
		&profile.TargetWeight,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type CreateAthleteInput struct {
	Name           string
	Age            *int
	Gender         *string
	WeightCategory *string
	SportLevel     *string
	HeightCM       *float64
	TargetWeight   *float64
}

type UpdateAthleteInput struct {
	Name           *string
	Age            *int
	Gender         *string
	WeightCategory *string
	SportLevel     *string
	HeightCM       *float64
	TargetWeight   *float64
}

func (r *AthleteRepository) Create(ctx context.Context, userID int64, input CreateAthleteInput) (*models.AthleteProfile, error) {
	query := `
		INSERT INTO athletes (user_id, name, age, gender, weight_category, sport_level, height_cm, target_weight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + athleteColumns
	return scanAthlete(r.db.QueryRow(ctx, query,
		userID,
		input.Name,
		input.Age,
		input.Gender,
		input.WeightCategory,
		input.SportLevel,
		input.HeightCM,
		input.TargetWeight,
	))
}

func (r *AthleteRepository) GetByUserID(ctx context.Context, userID int64) (*models.AthleteProfile, error) {
	query := `SELECT ` + athleteColumns + ` FROM athletes WHERE user_id = $1`
	return scanAthlete(r.db.QueryRow(ctx, query, userID))
}

func (r *AthleteRepository) GetByID(ctx context.Context, athleteID int64) (*models.AthleteProfile, error) {
	query := `SELECT ` + athleteColumns + ` FROM athletes WHERE id = $1`
	return scanAthlete(r.db.QueryRow(ctx, query, athleteID))
}

func (r *AthleteRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateAthleteInput) (*models.AthleteProfile, error) {
	query := `
		UPDATE athletes
		SET name = COALESCE($1, name),
			age = COALESCE($2, age),
			gender = COALESCE($3, gender),
			weight_category = COALESCE($4, weight_category),
			sport_level = COALESCE($5, sport_level),
			height_cm = COALESCE($6, height_cm),
			target_weight = COALESCE($7, target_weight),
			updated_at = NOW()
		WHERE user_id = $8
		RETURNING ` + athleteColumns
	return scanAthlete(r.db.QueryRow(ctx, query,
		req.Name,
		req.Age,
		req.Gender,
		req.WeightCategory,
		req.SportLevel,
		req.HeightCM,
		req.TargetWeight,
		userID,
	))
}

// ListSummaries returns every athlete with their most recent weigh-in.
func (r *AthleteRepository) ListSummaries(ctx context.Context) ([]models.AthleteSummary, error) {
	query := `
		SELECT
			a.id, a.user_id, a.name, a.age, a.gender, a.weight_category, a.sport_level,
			a.height_cm, a.target_weight, a.created_at, a.updated_at,
			u.email,
			lw.weight,
			lw.entry_date
		FROM athletes a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN LATERAL (
			SELECT weight, entry_date
			FROM weight_entries
			WHERE athlete_id = a.id
			ORDER BY entry_date DESC, id DESC
			LIMIT 1
		) lw ON TRUE
		WHERE u.role = 'athlete'
		ORDER BY a.name, a.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.AthleteSummary, 0)
	for rows.Next() {
		var summary models.AthleteSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.UserID,
			&summary.Name,
			&summary.Age,
			&summary.Gender,
			&summary.WeightCategory,
			&summary.SportLevel,
			&summary.HeightCM,
			&summary.TargetWeight,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.Email,
			&summary.CurrentWeight,
			&summary.LastWeighIn,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
