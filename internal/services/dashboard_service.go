package services

import (
	"context"
	"errors"
	"time"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/repository"
)

const dashboardWindowDays = 7

type DashboardService struct {
	athletes     athleteReader
	weights      weightStore
	assessments  assessmentStore
	tasks        taskStore
	competitions competitionStore
}

func NewDashboardService(
	athletes athleteReader,
	weights weightStore,
	assessments assessmentStore,
	tasks taskStore,
	competitions competitionStore,
) *DashboardService {
	return &DashboardService{
		athletes:     athletes,
		weights:      weights,
		assessments:  assessments,
		tasks:        tasks,
		competitions: competitions,
	}
}

// BuildAthleteDashboard collects the athlete's last week of activity as of
// now. It only reads.
func (s *DashboardService) BuildAthleteDashboard(ctx context.Context, userID int64, now time.Time) (*models.AthleteDashboard, error) {
	athlete, err := resolveAthlete(ctx, s.athletes, userID)
	if err != nil {
		return nil, err
	}

	today := startOfDay(now)
	windowStart := today.AddDate(0, 0, -dashboardWindowDays)

	weights, err := s.weights.ListByAthlete(ctx, athlete.ID, repository.DateRange{From: &windowStart, To: &today})
	if err != nil {
		return nil, storeError(err)
	}

	latest, err := s.assessments.GetLatest(ctx, athlete.ID)
	if err != nil {
		if !errors.Is(storeError(err), ErrNotFound) {
			return nil, err
		}
		latest = nil
	}

	active, err := s.tasks.ListByAthlete(ctx, athlete.ID, activeTasksFilter())
	if err != nil {
		return nil, storeError(err)
	}

	completed, err := s.tasks.ListByAthlete(ctx, athlete.ID, completedSinceFilter(windowStart))
	if err != nil {
		return nil, storeError(err)
	}

	upcoming, err := s.competitions.ListByAthlete(ctx, athlete.ID, &today)
	if err != nil {
		return nil, storeError(err)
	}

	return &models.AthleteDashboard{
		Athlete:              athlete,
		RecentWeights:        nonNil(weights),
		LatestAssessment:     latest,
		ActiveTasks:          nonNil(active),
		RecentCompletedTasks: nonNil(completed),
		UpcomingCompetitions: nonNil(upcoming),
	}, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
