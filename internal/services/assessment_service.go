package services

import (
	"context"
	"time"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
)

type assessmentStore interface {
	Upsert(ctx context.Context, athleteID int64, weekStart time.Time, answers map[string]any) (*models.WeeklyAssessment, error)
	GetLatest(ctx context.Context, athleteID int64) (*models.WeeklyAssessment, error)
	GetByWeek(ctx context.Context, athleteID int64, weekStart time.Time) (*models.WeeklyAssessment, error)
	ListByAthlete(ctx context.Context, athleteID int64) ([]models.WeeklyAssessment, error)
}

type AssessmentService struct {
	athletes    athleteReader
	assessments assessmentStore
	now         func() time.Time
}

func NewAssessmentService(athletes athleteReader, assessments assessmentStore) *AssessmentService {
	return &AssessmentService{
		athletes:    athletes,
		assessments: assessments,
		now:         time.Now,
	}
}

// WeekStart returns the Monday of the week containing t, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// Submit stores answers for the current week, replacing any earlier
// submission for the same week.
func (s *AssessmentService) Submit(ctx context.Context, userID int64, answers map[string]any) (*models.WeeklyAssessment, error) {
	if len(answers) == 0 {
		return nil, invalidf("assessment answers are required")
	}

	athlete, err := resolveAthlete(ctx, s.athletes, userID)
	if err != nil {
		return nil, err
	}

	assessment, err := s.assessments.Upsert(ctx, athlete.ID, WeekStart(s.now()), answers)
	if err != nil {
		return nil, storeError(err)
	}
	return assessment, nil
}

// Get returns the assessment for the week containing weekDate, or the most
// recent one when weekDate is blank.
func (s *AssessmentService) Get(ctx context.Context, userID int64, weekDate string) (*models.WeeklyAssessment, error) {
	day, err := parseOptionalDate("week_date", weekDate)
	if err != nil {
		return nil, err
	}

	athlete, err := resolveAthlete(ctx, s.athletes, userID)
	if err != nil {
		return nil, err
	}

	var assessment *models.WeeklyAssessment
	if day == nil {
		assessment, err = s.assessments.GetLatest(ctx, athlete.ID)
	} else {
		assessment, err = s.assessments.GetByWeek(ctx, athlete.ID, WeekStart(*day))
	}
	if err != nil {
		return nil, storeError(err)
	}
	return assessment, nil
}
