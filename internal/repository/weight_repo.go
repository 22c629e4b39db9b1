package repository

import (
	"context"
	"time"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
)

type WeightRepository struct {
	db DBTX
}

func NewWeightRepository(db DBTX) *WeightRepository {
	return &WeightRepository{db: db}
}

type CreateWeightEntryInput struct {
	AthleteID int64
	Weight    float64
	Date      time.Time
	Timing    *string
	Notes     *string
}

// DateRange bounds are inclusive; nil means unbounded.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

const weightColumns = `id, athlete_id, weight, entry_date, timing, notes, created_at`

func scanWeightEntry(row interface{ Scan(dest ...any) error }) (*models.WeightEntry, error) {
	var entry models.WeightEntry
	var entryDate time.Time
	err := row.Scan(
		&entry.ID,
		&entry.AthleteID,
		&entry.Weight,
		&entryDate,
		&entry.Timing,
		&entry.Notes,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	entry.Date = models.NewDate(entryDate)
	return &entry, nil
}

func (r *WeightRepository) Create(ctx context.Context, input CreateWeightEntryInput) (*models.WeightEntry, error) {
	query := `
		INSERT INTO weight_entries (athlete_id, weight, entry_date, timing, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + weightColumns
	return scanWeightEntry(r.db.QueryRow(ctx, query,
		input.AthleteID,
		input.Weight,
		input.Date,
		input.Timing,
		input.Notes,
	))
}

func (r *WeightRepository) ListByAthlete(ctx context.Context, athleteID int64, dateRange DateRange) ([]models.WeightEntry, error) {
	query := `
		SELECT ` + weightColumns + `
		FROM weight_entries
		WHERE athlete_id = $1
		  AND ($2::date IS NULL OR entry_date >= $2::date)
		  AND ($3::date IS NULL OR entry_date <= $3::date)
		ORDER BY entry_date DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, athleteID, dateRange.From, dateRange.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.WeightEntry, 0)
	for rows.Next() {
		entry, err := scanWeightEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
