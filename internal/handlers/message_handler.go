package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/JudoNutritionBack/internal/models"
	"github.com/saeid-a/JudoNutritionBack/internal/services"
)

type messageService interface {
	Send(ctx context.Context, senderID int64, input services.SendMessageInput) (*models.Message, error)
	ListBetween(ctx context.Context, userID, otherID int64, limit int) ([]models.Message, error)
	MarkRead(ctx context.Context, receiverID, senderID int64) (int64, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
}

type MessageHandler struct {
	messages messageService
}

func NewMessageHandler(messages messageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type sendMessageRequest struct {
	ReceiverID  int64   `json:"receiver_id"`
	Content     string  `json:"content"`
	Role        *string `json:"role"`
	MessageType *string `json:"message_type"`
	Context     *string `json:"context"`
}

type markReadRequest struct {
	SenderID int64 `json:"sender_id"`
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	if req.ReceiverID == 0 || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Receiver ID and content are required"})
	}

	message, err := h.messages.Send(c.UserContext(), caller.UserID, services.SendMessageInput{
		ReceiverID:  req.ReceiverID,
		Content:     req.Content,
		Role:        req.Role,
		MessageType: req.MessageType,
		Context:     req.Context,
	})
	if err != nil {
		return writeServiceError(c, err, "Receiver not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Message sent successfully",
		"data":    message,
	})
}

func (h *MessageHandler) List(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	otherID, ok := queryInt(c, "user2_id", 0)
	if !ok || otherID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User2 ID is required"})
	}
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be an integer"})
	}

	messages, err := h.messages.ListBetween(c.UserContext(), caller.UserID, int64(otherID), limit)
	if err != nil {
		return writeServiceError(c, err, "User2 not found")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"messages": messages,
	})
}

func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	var req markReadRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	updated, err := h.messages.MarkRead(c.UserContext(), caller.UserID, req.SenderID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"updated": updated,
	})
}

func (h *MessageHandler) UnreadCount(c *fiber.Ctx) error {
	caller, ok, err := identity(c)
	if !ok {
		return err
	}

	count, err := h.messages.UnreadCount(c.UserContext(), caller.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"unread_count": count,
	})
}
