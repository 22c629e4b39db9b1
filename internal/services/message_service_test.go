package services

import (
	"context"
	"errors"
	"testing"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
)

func newMessageFixture() (*MessageService, *stubMessageRepo) {
	users := &stubUserRepo{users: map[int64]*models.User{
		1: {ID: 1, Email: "athlete@judo.io", Role: models.RoleAthlete},
		2: {ID: 2, Email: "coach@judo.io", Role: models.RoleNutritionist},
	}}
	messages := &stubMessageRepo{unread: map[[2]int64]int64{}}
	return NewMessageService(users, messages), messages
}

func TestSendRejectsBlankContent(t *testing.T) {
	service, messages := newMessageFixture()

	_, err := service.Send(context.Background(), 1, SendMessageInput{ReceiverID: 2, Content: "   \n"})
	if !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	if len(messages.created) != 0 {
		t.Fatal("nothing should be stored for blank content")
	}
}

func TestSendToUnknownReceiver(t *testing.T) {
	service, _ := newMessageFixture()

	_, err := service.Send(context.Background(), 1, SendMessageInput{ReceiverID: 42, Content: "hi"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSendToSelf(t *testing.T) {
	service, _ := newMessageFixture()

	var vErr *ValidationError
	_, err := service.Send(context.Background(), 1, SendMessageInput{ReceiverID: 1, Content: "hi"})
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSendRoleMustMatchSender(t *testing.T) {
	service, _ := newMessageFixture()

	var vErr *ValidationError
	_, err := service.Send(context.Background(), 1, SendMessageInput{
		ReceiverID: 2,
		Content:    "hi",
		Role:       strPtr(models.RoleNutritionist),
	})
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error for role mismatch, got %v", err)
	}
}

func TestSendDefaults(t *testing.T) {
	service, messages := newMessageFixture()

	message, err := service.Send(context.Background(), 2, SendMessageInput{ReceiverID: 1, Content: "  eat more greens  "})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if message.Content != "eat more greens" {
		t.Fatalf("expected trimmed content, got %q", message.Content)
	}
	if message.Role != models.RoleNutritionist {
		t.Fatalf("expected sender role, got %q", message.Role)
	}
	if message.MessageType != models.MessageTypeText {
		t.Fatalf("expected text type, got %q", message.MessageType)
	}
	if len(messages.created) != 1 {
		t.Fatalf("expected one stored message, got %d", len(messages.created))
	}
}

func TestListBetweenLimits(t *testing.T) {
	service, messages := newMessageFixture()
	ctx := context.Background()

	if _, err := service.ListBetween(ctx, 1, 2, 0); err != nil {
		t.Fatalf("ListBetween: %v", err)
	}
	if messages.lastLimit != DefaultMessageLimit {
		t.Fatalf("expected default limit, got %d", messages.lastLimit)
	}

	if _, err := service.ListBetween(ctx, 1, 2, 10_000); err != nil {
		t.Fatalf("ListBetween: %v", err)
	}
	if messages.lastLimit != MaxMessageLimit {
		t.Fatalf("expected capped limit, got %d", messages.lastLimit)
	}

	var vErr *ValidationError
	if _, err := service.ListBetween(ctx, 1, 2, -1); !errors.As(err, &vErr) {
		t.Fatalf("expected validation error for negative limit, got %v", err)
	}
	if _, err := service.ListBetween(ctx, 1, 0, 10); !errors.As(err, &vErr) {
		t.Fatalf("expected validation error for missing peer, got %v", err)
	}
	if _, err := service.ListBetween(ctx, 1, 99, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown peer, got %v", err)
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	service, messages := newMessageFixture()
	messages.unread[[2]int64{1, 2}] = 3
	ctx := context.Background()

	count, err := service.UnreadCount(ctx, 1)
	if err != nil || count != 3 {
		t.Fatalf("UnreadCount = %d, %v", count, err)
	}

	updated, err := service.MarkRead(ctx, 1, 2)
	if err != nil || updated != 3 {
		t.Fatalf("first MarkRead = %d, %v", updated, err)
	}
	updated, err = service.MarkRead(ctx, 1, 2)
	if err != nil || updated != 0 {
		t.Fatalf("second MarkRead = %d, %v", updated, err)
	}

	count, _ = service.UnreadCount(ctx, 1)
	if count != 0 {
		t.Fatalf("expected no unread messages, got %d", count)
	}
}
