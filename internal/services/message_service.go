package services

import (
	"context"
	"errors"
	"strings"

	"github.com/saeid-a/JudoNutritionBack/internal/metrics"
	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/repository"
)

const (
	DefaultMessageLimit = 50
	MaxMessageLimit     = 200
	maxMessageTypeLen   = 32
)

type messageStore interface {
	Create(ctx context.Context, input repository.CreateMessageInput) (*models.Message, error)
	ListBetween(ctx context.Context, userA, userB int64, limit int) ([]models.Message, error)
	MarkRead(ctx context.Context, receiverID, senderID int64) (int64, error)
	CountUnread(ctx context.Context, receiverID int64) (int, error)
}

type MessageService struct {
	users    userReader
	messages messageStore
}

type SendMessageInput struct {
	ReceiverID  int64
	Content     string
	Role        *string
	MessageType *string
	Context     *string
}

func NewMessageService(users userReader, messages messageStore) *MessageService {
	return &MessageService{users: users, messages: messages}
}

func (s *MessageService) Send(ctx context.Context, senderID int64, input SendMessageInput) (*models.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if input.ReceiverID <= 0 {
		return nil, invalidf("receiver_id is required")
	}
	if input.ReceiverID == senderID {
		return nil, invalidf("cannot send a message to yourself")
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		if errors.Is(storeError(err), ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	role := sender.Role
	if claimed := trimOptional(input.Role); claimed != nil && *claimed != sender.Role {
		return nil, invalidf("role does not match the sender")
	}

	messageType := models.MessageTypeText
	if requested := trimOptional(input.MessageType); requested != nil {
		if len(*requested) > maxMessageTypeLen {
			return nil, invalidf("message_type is too long")
		}
		messageType = *requested
	}

	if _, err := s.users.GetByID(ctx, input.ReceiverID); err != nil {
		return nil, storeError(err)
	}

	message, err := s.messages.Create(ctx, repository.CreateMessageInput{
		SenderID:    senderID,
		ReceiverID:  input.ReceiverID,
		Role:        role,
		Content:     content,
		MessageType: messageType,
		Context:     trimOptional(input.Context),
	})
	if err != nil {
		return nil, storeError(err)
	}

	metrics.MessagesSent.Inc()
	return message, nil
}

// ListBetween returns the newest messages between userID and otherID in
// either direction, newest first. A zero limit means DefaultMessageLimit;
// larger limits are capped at MaxMessageLimit.
func (s *MessageService) ListBetween(ctx context.Context, userID, otherID int64, limit int) ([]models.Message, error) {
	if otherID <= 0 {
		return nil, invalidf("user2_id is required")
	}
	switch {
	case limit < 0:
		return nil, invalidf("limit must be positive")
	case limit == 0:
		limit = DefaultMessageLimit
	case limit > MaxMessageLimit:
		limit = MaxMessageLimit
	}

	if _, err := s.users.GetByID(ctx, otherID); err != nil {
		return nil, storeError(err)
	}

	messages, err := s.messages.ListBetween(ctx, userID, otherID, limit)
	if err != nil {
		return nil, storeError(err)
	}
	return messages, nil
}

// MarkRead flags every unread message from senderID to receiverID as read
// and reports how many changed.
func (s *MessageService) MarkRead(ctx context.Context, receiverID, senderID int64) (int64, error) {
	if senderID <= 0 {
		return 0, invalidf("sender_id is required")
	}
	updated, err := s.messages.MarkRead(ctx, receiverID, senderID)
	if err != nil {
		return 0, storeError(err)
	}
	return updated, nil
}

func (s *MessageService) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count, err := s.messages.CountUnread(ctx, userID)
	if err != nil {
		return 0, storeError(err)
	}
	return count, nil
}
