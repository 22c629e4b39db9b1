package services

import (
	"context"
	"strings"
	"time"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/repository"
)

type competitionStore interface {
	Create(ctx context.Context, input repository.CreateCompetitionInput) (*models.Competition, error)
	ListByAthlete(ctx context.Context, athleteID int64, from *time.Time) ([]models.Competition, error)
}

type CompetitionService struct {
	athletes     athleteReader
	competitions competitionStore
	now          func() time.Time
}

type CreateCompetitionInput struct {
	Name            string
	CompetitionDate string
	WeightCategory  *string
	TargetWeight    *float64
	Notes           *string
}

func NewCompetitionService(athletes athleteReader, competitions competitionStore) *CompetitionService {
	return &CompetitionService{
		athletes:     athletes,
		competitions: competitions,
		now:          time.Now,
	}
}

func (s *CompetitionService) Create(ctx context.Context, userID int64, input CreateCompetitionInput) (*models.Competition, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidf("competition name is required")
	}
	date, err := parseOptionalDate("competition_date", input.CompetitionDate)
	if err != nil {
		return nil, err
	}
	if date == nil {
		return nil, invalidf("competition_date is required")
	}
	if input.TargetWeight != nil && *input.TargetWeight <= 0 {
		return nil, invalidf("target_weight must be greater than zero")
	}

	athlete, err := resolveAthlete(ctx, s.athletes, userID)
	if err != nil {
		return nil, err
	}

	competition, err := s.competitions.Create(ctx, repository.CreateCompetitionInput{
		AthleteID:       athlete.ID,
		Name:            name,
		CompetitionDate: *date,
		WeightCategory:  trimOptional(input.WeightCategory),
		TargetWeight:    input.TargetWeight,
		Notes:           trimOptional(input.Notes),
	})
	if err != nil {
		return nil, storeError(err)
	}
	return competition, nil
}

// List returns the caller's competitions, soonest first. With upcomingOnly
// set, competitions before today are left out.
func (s *CompetitionService) List(ctx context.Context, userID int64, upcomingOnly bool) ([]models.Competition, error) {
	athlete, err := resolveAthlete(ctx, s.athletes, userID)
	if err != nil {
		return nil, err
	}

	var from *time.Time
	if upcomingOnly {
		today := startOfDay(s.now())
		from = &today
	}

	competitions, err := s.competitions.ListByAthlete(ctx, athlete.ID, from)
	if err != nil {
		return nil, storeError(err)
	}
	return competitions, nil
}
