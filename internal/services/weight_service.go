package services

import (
	"context"
	"time"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/repository"
)

type weightStore interface {
	Create(ctx context.Context, input repository.CreateWeightEntryInput) (*models.WeightEntry, error)
	ListByAthlete(ctx context.Context, athleteID int64, dateRange repository.DateRange) ([]models.WeightEntry, error)
}

type WeightService struct {
	athletes athleteReader
	weights  weightStore
	now      func() time.Time
}

type CreateWeightInput struct {
	Weight *float64
	Date   string
	Timing *string
	Notes  *string
}

type ListWeightsInput struct {
	StartDate string
	EndDate   string
}

func NewWeightService(athletes athleteReader, weights weightStore) *WeightService {
	return &WeightService{
		athletes: athletes,
		weights:  weights,
		now:      time.Now,
	}
}

func (s *WeightService) Create(ctx context.Context, userID int64, input CreateWeightInput) (*models.WeightEntry, error) {
	if input.Weight == nil {
		return nil, invalidf("weight is required")
	}
	if *input.Weight <= 0 {
		return nil, invalidf("weight must be greater than zero")
	}

	entryDate := startOfDay(s.now())
	parsed, err := parseOptionalDate("date", input.Date)
	if err != nil {
		return nil, err
	}
	if parsed != nil {
		entryDate = *parsed
	}

	athlete, err := resolveAthlete(ctx, s.athletes, userID)
	if err != nil {
		return nil, err
	}

	entry, err := s.weights.Create(ctx, repository.CreateWeightEntryInput{
		AthleteID: athlete.ID,
		Weight:    *input.Weight,
		Date:      entryDate,
		Timing:    trimOptional(input.Timing),
		Notes:     trimOptional(input.Notes),
	})
	if err != nil {
		return nil, storeError(err)
	}
	return entry, nil
}

func (s *WeightService) List(ctx context.Context, userID int64, input ListWeightsInput) ([]models.WeightEntry, error) {
	from, err := parseOptionalDate("start_date", input.StartDate)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate("end_date", input.EndDate)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, invalidf("start_date must not be after end_date")
	}

	athlete, err := resolveAthlete(ctx, s.athletes, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.weights.ListByAthlete(ctx, athlete.ID, repository.DateRange{From: from, To: to})
	if err != nil {
		return nil, storeError(err)
	}
	return entries, nil
}
