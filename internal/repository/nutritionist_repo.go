package repository

import (
	"context"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
)

type NutritionistRepository struct {
	db DBTX
}

func NewNutritionistRepository(db DBTX) *NutritionistRepository {
	return &NutritionistRepository{db: db}
}

const nutritionistColumns = `id, user_id, name, license_number, specialization, experience_years, created_at, updated_at`

func scanNutritionist(row interface{ Scan(dest ...any) error }) (*models.NutritionistProfile, error) {
	var profile models.NutritionistProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.LicenseNumber,
		&profile.Specialization,
		&profile.ExperienceYears,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type CreateNutritionistInput struct {
	Name            string
	LicenseNumber   *string
	Specialization  *string
	ExperienceYears *int
}

type UpdateNutritionistInput struct {
	Name            *string
	LicenseNumber   *string
	Specialization  *string
	ExperienceYears *int
}

func (r *NutritionistRepository) Create(ctx context.Context, userID int64, input CreateNutritionistInput) (*models.NutritionistProfile, error) {
	query := `
		INSERT INTO nutritionists (user_id, name, license_number, specialization, experience_years)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + nutritionistColumns
	return scanNutritionist(r.db.QueryRow(ctx, query,
		userID,
		input.Name,
		input.LicenseNumber,
		input.Specialization,
		input.ExperienceYears,
	))
}

func (r *NutritionistRepository) GetByUserID(ctx context.Context, userID int64) (*models.NutritionistProfile, error) {
	query := `SELECT ` + nutritionistColumns + ` FROM nutritionists WHERE user_id = $1`
	return scanNutritionist(r.db.QueryRow(ctx, query, userID))
}

func (r *NutritionistRepository) UpdatePartial(ctx context.Context, userID int64, req UpdateNutritionistInput) (*models.NutritionistProfile, error) {
	query := `
		UPDATE nutritionists
		SET name = COALESCE($1, name),
			license_number = COALESCE($2, license_number),
			specialization = COALESCE($3, specialization),
			experience_years = COALESCE($4, experience_years),
			updated_at = NOW()
		WHERE user_id = $5
		RETURNING ` + nutritionistColumns
	return scanNutritionist(r.db.QueryRow(ctx, query,
		req.Name,
		req.LicenseNumber,
		req.Specialization,
		req.ExperienceYears,
		userID,
	))
}
