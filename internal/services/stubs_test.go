package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/queue"
	"github.com/saeid-a/JudoNutritionBack/internal/repository"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }

type stubAthleteRepo struct {
	profile      *models.AthleteProfile
	err          error
	summaries    []models.AthleteSummary
	lastUpdate   repository.UpdateAthleteInput
	updateCalled bool
}

func (r *stubAthleteRepo) GetByUserID(_ context.Context, _ int64) (*models.AthleteProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.profile == nil {
		return nil, pgx.ErrNoRows
	}
	return r.profile, nil
}

func (r *stubAthleteRepo) GetByID(_ context.Context, id int64) (*models.AthleteProfile, error) {
	if r.profile == nil || r.profile.ID != id {
		return nil, pgx.ErrNoRows
	}
	return r.profile, nil
}

func (r *stubAthleteRepo) ListSummaries(_ context.Context) ([]models.AthleteSummary, error) {
	return r.summaries, r.err
}

func (r *stubAthleteRepo) UpdatePartial(_ context.Context, _ int64, req repository.UpdateAthleteInput) (*models.AthleteProfile, error) {
	r.updateCalled = true
	r.lastUpdate = req
	if r.profile == nil {
		return nil, pgx.ErrNoRows
	}
	return r.profile, nil
}

type stubNutritionistRepo struct {
	profile *models.NutritionistProfile
}

func (r *stubNutritionistRepo) GetByUserID(_ context.Context, _ int64) (*models.NutritionistProfile, error) {
	if r.profile == nil {
		return nil, pgx.ErrNoRows
	}
	return r.profile, nil
}

func (r *stubNutritionistRepo) UpdatePartial(_ context.Context, _ int64, _ repository.UpdateNutritionistInput) (*models.NutritionistProfile, error) {
	if r.profile == nil {
		return nil, pgx.ErrNoRows
	}
	return r.profile, nil
}

type stubUserRepo struct {
	users map[int64]*models.User
}

func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type stubWeightRepo struct {
	lastCreate repository.CreateWeightEntryInput
	lastRange  repository.DateRange
	entries    []models.WeightEntry
	err        error
}

func (r *stubWeightRepo) Create(_ context.Context, input repository.CreateWeightEntryInput) (*models.WeightEntry, error) {
	r.lastCreate = input
	if r.err != nil {
		return nil, r.err
	}
	return &models.WeightEntry{ID: 1, AthleteID: input.AthleteID, Weight: input.Weight, Date: models.NewDate(input.Date)}, nil
}

func (r *stubWeightRepo) ListByAthlete(_ context.Context, _ int64, dateRange repository.DateRange) ([]models.WeightEntry, error) {
	r.lastRange = dateRange
	return r.entries, r.err
}

type stubAssessmentRepo struct {
	latest        *models.WeeklyAssessment
	byWeek        map[string]*models.WeeklyAssessment
	all           []models.WeeklyAssessment
	lastWeekStart time.Time
	lastAnswers   map[string]any
}

func (r *stubAssessmentRepo) Upsert(_ context.Context, athleteID int64, weekStart time.Time, answers map[string]any) (*models.WeeklyAssessment, error) {
	r.lastWeekStart = weekStart
	r.lastAnswers = answers
	return &models.WeeklyAssessment{ID: 1, AthleteID: athleteID, WeekStart: models.NewDate(weekStart), Answers: answers}, nil
}

func (r *stubAssessmentRepo) GetLatest(_ context.Context, _ int64) (*models.WeeklyAssessment, error) {
	if r.latest == nil {
		return nil, pgx.ErrNoRows
	}
	return r.latest, nil
}

func (r *stubAssessmentRepo) GetByWeek(_ context.Context, _ int64, weekStart time.Time) (*models.WeeklyAssessment, error) {
	r.lastWeekStart = weekStart
	if a, ok := r.byWeek[weekStart.Format(models.DateLayout)]; ok {
		return a, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubAssessmentRepo) ListByAthlete(_ context.Context, _ int64) ([]models.WeeklyAssessment, error) {
	return r.all, nil
}

type stubTaskRepo struct {
	tasks       []models.Task
	lastCreate  repository.CreateTaskInput
	lastUpdate  repository.UpdateTaskInput
	lastFilters []repository.TaskFilter
	updateErr   error
}

func (r *stubTaskRepo) Create(_ context.Context, input repository.CreateTaskInput) (*models.Task, error) {
	r.lastCreate = input
	return &models.Task{ID: 1, AthleteID: input.AthleteID, Name: input.Name}, nil
}

func (r *stubTaskRepo) Update(_ context.Context, athleteID int64, taskID int64, input repository.UpdateTaskInput) (*models.Task, error) {
	r.lastUpdate = input
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	return &models.Task{ID: taskID, AthleteID: athleteID}, nil
}

func (r *stubTaskRepo) ListByAthlete(_ context.Context, _ int64, filter repository.TaskFilter) ([]models.Task, error) {
	r.lastFilters = append(r.lastFilters, filter)
	return r.tasks, nil
}

type stubCompetitionRepo struct {
	lastFrom   *time.Time
	lastCreate repository.CreateCompetitionInput
	items      []models.Competition
}

func (r *stubCompetitionRepo) Create(_ context.Context, input repository.CreateCompetitionInput) (*models.Competition, error) {
	r.lastCreate = input
	return &models.Competition{ID: 1, AthleteID: input.AthleteID, Name: input.Name, CompetitionDate: models.NewDate(input.CompetitionDate)}, nil
}

func (r *stubCompetitionRepo) ListByAthlete(_ context.Context, _ int64, from *time.Time) ([]models.Competition, error) {
	r.lastFrom = from
	return r.items, nil
}

type stubMessageRepo struct {
	created    []repository.CreateMessageInput
	lastLimit  int
	unread     map[[2]int64]int64
	listResult []models.Message
}

func (r *stubMessageRepo) Create(_ context.Context, input repository.CreateMessageInput) (*models.Message, error) {
	r.created = append(r.created, input)
	return &models.Message{
		ID:          int64(len(r.created)),
		SenderID:    input.SenderID,
		ReceiverID:  input.ReceiverID,
		Role:        input.Role,
		Content:     input.Content,
		MessageType: input.MessageType,
		Context:     input.Context,
	}, nil
}

func (r *stubMessageRepo) ListBetween(_ context.Context, _, _ int64, limit int) ([]models.Message, error) {
	r.lastLimit = limit
	return r.listResult, nil
}

func (r *stubMessageRepo) MarkRead(_ context.Context, receiverID, senderID int64) (int64, error) {
	key := [2]int64{receiverID, senderID}
	n := r.unread[key]
	r.unread[key] = 0
	return n, nil
}

func (r *stubMessageRepo) CountUnread(_ context.Context, receiverID int64) (int, error) {
	total := 0
	for key, n := range r.unread {
		if key[0] == receiverID {
			total += int(n)
		}
	}
	return total, nil
}

type stubResetStore struct {
	user          *models.User
	tokenHash     string
	expiresAt     time.Time
	resetErr      error
	resetHash     string
	resetPassword string
}

func (s *stubResetStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, pgx.ErrNoRows
	}
	return s.user, nil
}

func (s *stubResetStore) SetResetToken(_ context.Context, _ int64, tokenHash string, expiresAt time.Time) error {
	s.tokenHash = tokenHash
	s.expiresAt = expiresAt
	return nil
}

func (s *stubResetStore) ResetPassword(_ context.Context, tokenHash, passwordHash string) (int64, error) {
	s.resetHash = tokenHash
	s.resetPassword = passwordHash
	if s.resetErr != nil {
		return 0, s.resetErr
	}
	return 1, nil
}

type stubNotifier struct {
	events []queue.PasswordResetEvent
	err    error
}

func (n *stubNotifier) PublishPasswordReset(_ context.Context, event queue.PasswordResetEvent) error {
	n.events = append(n.events, event)
	return n.err
}

type stubRevoker struct {
	tokenID string
	ttl     time.Duration
}

func (r *stubRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	r.tokenID = tokenID
	r.ttl = ttl
	return nil
}

type failingBeginner struct {
	called bool
}

func (b *failingBeginner) Begin(_ context.Context) (pgx.Tx, error) {
	b.called = true
	return nil, pgx.ErrTxClosed
}
