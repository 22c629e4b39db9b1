//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/testutil/pgtest"
)

var (
	testDB    *pgtest.Handle
	testDBErr error
)

func TestMain(m *testing.M) {
	testDB, testDBErr = pgtest.Start(context.Background())
	code := m.Run()
	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}

func integrationDB(t *testing.T) *pgtest.Handle {
	t.Helper()
	if testDBErr != nil {
		t.Skipf("skipping integration test: %v", testDBErr)
	}
	if err := testDB.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	return testDB
}

func createUser(t *testing.T, ctx context.Context, db DBTX, role string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        fmt.Sprintf("%s-%d@judo.test", role, time.Now().UnixNano()),
		PasswordHash: "hash",
		Role:         role,
	}
	if err := NewUserRepository(db).CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func createAthlete(t *testing.T, ctx context.Context, db DBTX) *models.AthleteProfile {
	t.Helper()
	user := createUser(t, ctx, db, models.RoleAthlete)
	athlete, err := NewAthleteRepository(db).Create(ctx, user.ID, CreateAthleteInput{Name: "Noa"})
	if err != nil {
		t.Fatalf("Create athlete: %v", err)
	}
	return athlete
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := integrationDB(t).Pool
	repo := NewUserRepository(db)

	first := createUser(t, ctx, db, models.RoleAthlete)
	dup := &models.User{Email: first.Email, PasswordHash: "hash", Role: models.RoleNutritionist}
	err := repo.CreateUser(ctx, dup)
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestResetPasswordRespectsExpiry(t *testing.T) {
	ctx := context.Background()
	db := integrationDB(t).Pool
	repo := NewUserRepository(db)
	user := createUser(t, ctx, db, models.RoleAthlete)

	if err := repo.SetResetToken(ctx, user.ID, "expired-hash", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("SetResetToken: %v", err)
	}
	if _, err := repo.ResetPassword(ctx, "expired-hash", "new"); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected ErrNoRows for expired token, got %v", err)
	}

	if err := repo.SetResetToken(ctx, user.ID, "fresh-hash", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("SetResetToken: %v", err)
	}
	id, err := repo.ResetPassword(ctx, "fresh-hash", "new")
	if err != nil || id != user.ID {
		t.Fatalf("expected reset for user %d, got %d %v", user.ID, id, err)
	}
	if _, err := repo.ResetPassword(ctx, "fresh-hash", "again"); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected token to be single use, got %v", err)
	}
}

func TestAssessmentUpsertKeepsOneRowPerWeek(t *testing.T) {
	ctx := context.Background()
	db := integrationDB(t).Pool
	athlete := createAthlete(t, ctx, db)
	repo := NewAssessmentRepository(db)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	first, err := repo.Upsert(ctx, athlete.ID, monday, map[string]any{"sleep": "7"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	second, err := repo.Upsert(ctx, athlete.ID, monday, map[string]any{"sleep": "8"})
	if err != nil {
		t.Fatalf("Upsert again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same row, got %d and %d", first.ID, second.ID)
	}
	if second.Answers["sleep"] != "8" {
		t.Fatalf("expected replaced answers, got %v", second.Answers)
	}

	all, err := repo.ListByAthlete(ctx, athlete.ID)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected a single assessment, got %d %v", len(all), err)
	}
	if all[0].WeekStart.String() != "2026-03-02" {
		t.Fatalf("unexpected week start %s", all[0].WeekStart)
	}
}

func TestTaskCompletionStampsOnTransition(t *testing.T) {
	ctx := context.Background()
	db := integrationDB(t).Pool
	athlete := createAthlete(t, ctx, db)
	repo := NewTaskRepository(db)

	task, err := repo.Create(ctx, CreateTaskInput{AthleteID: athlete.ID, Name: "Hydrate"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.Completed || task.CompletedAt != nil {
		t.Fatalf("new task should be open, got %+v", task)
	}

	done := true
	completed, err := repo.Update(ctx, athlete.ID, task.ID, UpdateTaskInput{Completed: &done})
	if err != nil || completed.CompletedAt == nil {
		t.Fatalf("expected completed_at stamped, got %+v %v", completed, err)
	}

	again, err := repo.Update(ctx, athlete.ID, task.ID, UpdateTaskInput{Completed: &done})
	if err != nil {
		t.Fatalf("Update again: %v", err)
	}
	if !again.CompletedAt.Equal(*completed.CompletedAt) {
		t.Fatalf("re-completing should keep the first stamp: %v vs %v", again.CompletedAt, completed.CompletedAt)
	}

	open := false
	reopened, err := repo.Update(ctx, athlete.ID, task.ID, UpdateTaskInput{Completed: &open})
	if err != nil || reopened.Completed || reopened.CompletedAt != nil {
		t.Fatalf("expected reopened task, got %+v %v", reopened, err)
	}

	other := createAthlete(t, ctx, db)
	if _, err := repo.Update(ctx, other.ID, task.ID, UpdateTaskInput{Completed: &done}); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected ErrNoRows for a foreign task, got %v", err)
	}
}

func TestMessagesBetweenUsers(t *testing.T) {
	ctx := context.Background()
	db := integrationDB(t).Pool
	repo := NewMessageRepository(db)
	athlete := createUser(t, ctx, db, models.RoleAthlete)
	coach := createUser(t, ctx, db, models.RoleNutritionist)
	outsider := createUser(t, ctx, db, models.RoleAthlete)

	send := func(from, to *models.User, content string) {
		t.Helper()
		if _, err := repo.Create(ctx, CreateMessageInput{
			SenderID: from.ID, ReceiverID: to.ID, Role: from.Role, Content: content, MessageType: models.MessageTypeText,
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	send(athlete, coach, "first")
	send(coach, athlete, "second")
	send(athlete, coach, "third")
	send(outsider, coach, "unrelated")

	forward, err := repo.ListBetween(ctx, athlete.ID, coach.ID, 50)
	if err != nil {
		t.Fatalf("ListBetween: %v", err)
	}
	backward, err := repo.ListBetween(ctx, coach.ID, athlete.ID, 50)
	if err != nil {
		t.Fatalf("ListBetween reversed: %v", err)
	}
	if len(forward) != 3 || len(backward) != 3 {
		t.Fatalf("expected 3 messages each way, got %d and %d", len(forward), len(backward))
	}
	if forward[0].Content != "third" || forward[2].Content != "first" {
		t.Fatalf("expected newest first, got %q..%q", forward[0].Content, forward[2].Content)
	}
	for i := range forward {
		if forward[i].ID != backward[i].ID {
			t.Fatalf("conversation should be symmetric at %d", i)
		}
	}

	limited, err := repo.ListBetween(ctx, athlete.ID, coach.ID, 2)
	if err != nil || len(limited) != 2 {
		t.Fatalf("expected limit 2, got %d %v", len(limited), err)
	}

	unread, err := repo.CountUnread(ctx, coach.ID)
	if err != nil || unread != 3 {
		t.Fatalf("expected 3 unread for coach, got %d %v", unread, err)
	}

	updated, err := repo.MarkRead(ctx, coach.ID, athlete.ID)
	if err != nil || updated != 2 {
		t.Fatalf("expected 2 marked read, got %d %v", updated, err)
	}
	updated, err = repo.MarkRead(ctx, coach.ID, athlete.ID)
	if err != nil || updated != 0 {
		t.Fatalf("second mark read should be a no-op, got %d %v", updated, err)
	}

	unread, err = repo.CountUnread(ctx, coach.ID)
	if err != nil || unread != 1 {
		t.Fatalf("expected only the outsider message unread, got %d %v", unread, err)
	}
}

func TestListSummariesUsesLatestWeighIn(t *testing.T) {
	ctx := context.Background()
	db := integrationDB(t).Pool
	athlete := createAthlete(t, ctx, db)
	weights := NewWeightRepository(db)

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
	for _, entry := range []CreateWeightEntryInput{
		{AthleteID: athlete.ID, Weight: 64.0, Date: newer},
		{AthleteID: athlete.ID, Weight: 65.5, Date: older},
	} {
		if _, err := weights.Create(ctx, entry); err != nil {
			t.Fatalf("Create weight: %v", err)
		}
	}

	summaries, err := NewAthleteRepository(db).ListSummaries(ctx)
	if err != nil || len(summaries) != 1 {
		t.Fatalf("expected one summary, got %d %v", len(summaries), err)
	}
	if summaries[0].CurrentWeight == nil || *summaries[0].CurrentWeight != 64.0 {
		t.Fatalf("expected latest weight 64.0, got %v", summaries[0].CurrentWeight)
	}
}
