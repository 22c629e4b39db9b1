package services

import (
	"context"
	"fmt"

	"github.com/saeid-a/JudoNutritionBack/internal/export"
	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/repository"
)

type athleteDirectory interface {
	GetByID(ctx context.Context, athleteID int64) (*models.AthleteProfile, error)
	ListSummaries(ctx context.Context) ([]models.AthleteSummary, error)
}

type NutritionistService struct {
	athletes    athleteDirectory
	weights     weightStore
	assessments assessmentStore
	tasks       taskStore
}

func NewNutritionistService(
	athletes athleteDirectory,
	weights weightStore,
	assessments assessmentStore,
	tasks taskStore,
) *NutritionistService {
	return &NutritionistService{
		athletes:    athletes,
		weights:     weights,
		assessments: assessments,
		tasks:       tasks,
	}
}

func (s *NutritionistService) ListAthletes(ctx context.Context) ([]models.AthleteSummary, error) {
	summaries, err := s.athletes.ListSummaries(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return nonNil(summaries), nil
}

func (s *NutritionistService) AthleteDetail(ctx context.Context, athleteID int64) (*models.AthleteDetail, error) {
	if athleteID <= 0 {
		return nil, invalidf("athlete id must be positive")
	}

	athlete, err := s.athletes.GetByID(ctx, athleteID)
	if err != nil {
		return nil, storeError(err)
	}

	weights, err := s.weights.ListByAthlete(ctx, athlete.ID, repository.DateRange{})
	if err != nil {
		return nil, storeError(err)
	}
	assessments, err := s.assessments.ListByAthlete(ctx, athlete.ID)
	if err != nil {
		return nil, storeError(err)
	}
	tasks, err := s.tasks.ListByAthlete(ctx, athlete.ID, repository.TaskFilter{})
	if err != nil {
		return nil, storeError(err)
	}

	return &models.AthleteDetail{
		Athlete:       athlete,
		WeightEntries: nonNil(weights),
		Assessments:   nonNil(assessments),
		Tasks:         nonNil(tasks),
	}, nil
}

// ExportAthlete renders the athlete's history as an XLSX workbook and returns
// its bytes together with a download filename.
func (s *NutritionistService) ExportAthlete(ctx context.Context, athleteID int64) ([]byte, string, error) {
	detail, err := s.AthleteDetail(ctx, athleteID)
	if err != nil {
		return nil, "", err
	}

	data, err := export.AthleteWorkbook(detail)
	if err != nil {
		return nil, "", fmt.Errorf("build athlete workbook: %w", err)
	}
	return data, fmt.Sprintf("athlete_%d.xlsx", athleteID), nil
}
