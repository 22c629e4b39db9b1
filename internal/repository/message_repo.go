package repository

import (
	"context"

	"github.com/saeid-a/JudoNutritionBack/internal/models"
)

type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

type CreateMessageInput struct {
	SenderID    int64
	ReceiverID  int64
	Role        string
	Content     string
	MessageType string
	Context     *string
}

const messageColumns = `id, sender_id, receiver_id, role, content, message_type, context, is_read, created_at`

func scanMessage(row interface{ Scan(dest ...any) error }) (*models.Message, error) {
	var message models.Message
	err := row.Scan(
		&message.ID,
		&message.SenderID,
		&message.ReceiverID,
		&message.Role,
		&message.Content,
		&message.MessageType,
		&message.Context,
		&message.IsRead,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) Create(ctx context.Context, input CreateMessageInput) (*models.Message, error) {
	query := `
		INSERT INTO messages (sender_id, receiver_id, role, content, message_type, context, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING ` + messageColumns
	return scanMessage(r.db.QueryRow(ctx, query,
		input.SenderID,
		input.ReceiverID,
		input.Role,
		input.Content,
		input.MessageType,
		input.Context,
	))
}

// ListBetween returns the newest limit messages exchanged by the two users in
// either direction, newest first.
func (r *MessageRepository) ListBetween(ctx context.Context, userA, userB int64, limit int) ([]models.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, userA, userB, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		message, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *message)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, receiverID, senderID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE messages
		SET is_read = TRUE
		WHERE receiver_id = $1
		  AND sender_id = $2
		  AND is_read = FALSE
	`, receiverID, senderID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, receiverID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM messages
		WHERE receiver_id = $1 AND is_read = FALSE
	`, receiverID).Scan(&count)
	return count, err
}
