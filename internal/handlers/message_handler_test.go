package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/services"
)

type stubMessageService struct {
	sendErr     error
	listErr     error
	lastSender  int64
	lastSend    services.SendMessageInput
	lastOther   int64
	lastLimit   int
	markUpdated int64
	lastMarked  [2]int64
	unread      int
}

func (s *stubMessageService) Send(_ context.Context, senderID int64, input services.SendMessageInput) (*models.Message, error) {
	s.lastSender = senderID
	s.lastSend = input
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &models.Message{ID: 1, SenderID: senderID, ReceiverID: input.ReceiverID, Content: input.Content, MessageType: models.MessageTypeText}, nil
}

func (s *stubMessageService) ListBetween(_ context.Context, _ int64, otherID int64, limit int) ([]models.Message, error) {
	s.lastOther = otherID
	s.lastLimit = limit
	if s.listErr != nil {
		return nil, s.listErr
	}
	return []models.Message{{ID: 2}, {ID: 1}}, nil
}

func (s *stubMessageService) MarkRead(_ context.Context, receiverID, senderID int64) (int64, error) {
	s.lastMarked = [2]int64{receiverID, senderID}
	return s.markUpdated, nil
}

func (s *stubMessageService) UnreadCount(context.Context, int64) (int, error) {
	return s.unread, nil
}

func TestSendMessageOK(t *testing.T) {
	service := &stubMessageService{}
	handler := NewMessageHandler(service)

	app := newTestApp("42", models.RoleAthlete)
	app.Post("/api/send_message", handler.Send)

	resp, body := doJSON(t, app, http.MethodPost, "/api/send_message", map[string]any{
		"receiver_id": 7,
		"content":     "Weigh-in done",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["success"] != true {
		t.Fatalf("expected success flag, got %v", body)
	}
	if service.lastSender != 42 || service.lastSend.ReceiverID != 7 {
		t.Fatalf("unexpected forwarded send: sender=%d input=%+v", service.lastSender, service.lastSend)
	}
}

func TestSendMessageErrors(t *testing.T) {
	cases := []struct {
		name    string
		body    map[string]any
		err     error
		status  int
		message string
	}{
		{"missing receiver", map[string]any{"content": "hi"}, nil, http.StatusBadRequest, "Receiver ID and content are required"},
		{"missing content", map[string]any{"receiver_id": 7}, nil, http.StatusBadRequest, "Receiver ID and content are required"},
		{"blank content", map[string]any{"receiver_id": 7, "content": ""}, nil, http.StatusBadRequest, "Receiver ID and content are required"},
		{"empty content", map[string]any{"receiver_id": 7, "content": "   "}, services.ErrEmptyContent, http.StatusBadRequest, "Message content cannot be empty"},
		{"unknown receiver", map[string]any{"receiver_id": 999, "content": "hi"}, services.ErrNotFound, http.StatusNotFound, "Receiver not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewMessageHandler(&stubMessageService{sendErr: tc.err})
			app := newTestApp("42", models.RoleAthlete)
			app.Post("/api/send_message", handler.Send)

			resp, body := doJSON(t, app, http.MethodPost, "/api/send_message", tc.body)
			if resp.StatusCode != tc.status || body["error"] != tc.message {
				t.Fatalf("expected %d %q, got %d %v", tc.status, tc.message, resp.StatusCode, body)
			}
		})
	}
}

func TestGetMessagesRequiresPeer(t *testing.T) {
	handler := NewMessageHandler(&stubMessageService{})
	app := newTestApp("42", models.RoleAthlete)
	app.Get("/api/get_messages", handler.List)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/get_messages", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetMessagesForwardsLimit(t *testing.T) {
	service := &stubMessageService{}
	handler := NewMessageHandler(service)
	app := newTestApp("42", models.RoleAthlete)
	app.Get("/api/get_messages", handler.List)

	resp, body := doJSON(t, app, http.MethodGet, "/api/get_messages?user2_id=7&limit=20", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastOther != 7 || service.lastLimit != 20 {
		t.Fatalf("unexpected forwarded query: other=%d limit=%d", service.lastOther, service.lastLimit)
	}
	if messages, ok := body["messages"].([]any); !ok || len(messages) != 2 {
		t.Fatalf("expected two messages, got %v", body["messages"])
	}
}

func TestGetMessagesInvalidLimit(t *testing.T) {
	service := &stubMessageService{listErr: &services.ValidationError{Message: "limit must not be negative"}}
	handler := NewMessageHandler(service)
	app := newTestApp("42", models.RoleAthlete)
	app.Get("/api/get_messages", handler.List)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/get_messages?user2_id=7&limit=-1", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestMarkReadReturnsUpdatedCount(t *testing.T) {
	service := &stubMessageService{markUpdated: 3}
	handler := NewMessageHandler(service)
	app := newTestApp("42", models.RoleNutritionist)
	app.Post("/api/mark_read", handler.MarkRead)

	resp, body := doJSON(t, app, http.MethodPost, "/api/mark_read", map[string]any{"sender_id": 7})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if body["updated"] != float64(3) {
		t.Fatalf("expected updated=3, got %v", body["updated"])
	}
	if service.lastMarked != [2]int64{42, 7} {
		t.Fatalf("expected receiver 42 sender 7, got %v", service.lastMarked)
	}
}

func TestUnreadCount(t *testing.T) {
	handler := NewMessageHandler(&stubMessageService{unread: 4})
	app := newTestApp("42", models.RoleAthlete)
	app.Get("/api/unread_count", handler.UnreadCount)

	resp, body := doJSON(t, app, http.MethodGet, "/api/unread_count", nil)
	if resp.StatusCode != http.StatusOK || body["unread_count"] != float64(4) {
		t.Fatalf("expected unread_count 4, got %d %v", resp.StatusCode, body)
	}
}

func TestGetMessagesRejectsMalformedLimit(t *testing.T) {
	service := &stubMessageService{}
	handler := NewMessageHandler(service)
	app := newTestApp("42", models.RoleAthlete)
	app.Get("/api/get_messages", handler.List)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/get_messages?user2_id=7&limit=lots", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if service.lastOther != 0 {
		t.Fatal("service should not be called with a malformed limit")
	}
}
