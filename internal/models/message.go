package models

import "time"

const MessageTypeText = "text"

type Message struct {
	ID          int64     `json:"id"`
	SenderID    int64     `json:"sender_id"`
	ReceiverID  int64     `json:"receiver_id"`
	Role        string    `json:"role"`
	Content     string    `json:"message"`
	MessageType string    `json:"message_type"`
	Context     *string   `json:"context"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"timestamp"`
}
