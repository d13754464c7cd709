package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carebridge/carebridge-api/internal/models"
)

// MessageRepository persists conversation messages.
type MessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository constructs a message repository.
func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// ListConversations summarises a user's threads, newest activity first.
func (r *MessageRepository) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	const query = `SELECT c.id, c.subject,
	(SELECT body FROM messages m WHERE m.conversation_id = c.id ORDER BY sent_at DESC LIMIT 1) AS last_message,
	(SELECT MAX(sent_at) FROM messages m WHERE m.conversation_id = c.id) AS last_sent_at,
	(SELECT COUNT(*) FROM messages m WHERE m.conversation_id = c.id AND m.recipient_id = $1 AND NOT m.read) AS unread_count
FROM conversations c
WHERE c.id IN (SELECT DISTINCT conversation_id FROM messages WHERE sender_id = $1 OR recipient_id = $1)
ORDER BY last_sent_at DESC`
	var conversations []models.Conversation
	if err := r.db.SelectContext(ctx, &conversations, query, userID); err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return conversations, nil
}

// ListByConversation returns a thread's messages oldest first.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	const query = `SELECT id, conversation_id, sender_id, sender_name, recipient_id, body, read, sent_at
FROM messages WHERE conversation_id = $1 ORDER BY sent_at ASC`
	var messages []models.Message
	if err := r.db.SelectContext(ctx, &messages, query, conversationID); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// CountUnread returns how many messages await the user.
func (r *MessageRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND NOT read", userID); err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return count, nil
}

// MarkRead marks a thread's messages to the user as read.
func (r *MessageRepository) MarkRead(ctx context.Context, conversationID, userID string) error {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE messages SET read = TRUE WHERE conversation_id = $1 AND recipient_id = $2 AND NOT read",
		conversationID, userID); err != nil {
		return fmt.Errorf("mark messages read: %w", err)
	}
	return nil
}

// Create appends a message to a thread.
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.SentAt.IsZero() {
		message.SentAt = time.Now().UTC()
	}
	const query = `INSERT INTO messages (id, conversation_id, sender_id, sender_name, recipient_id, body, read, sent_at)
VALUES (:id, :conversation_id, :sender_id, :sender_name, :recipient_id, :body, :read, :sent_at)`
	if _, err := r.db.NamedExecContext(ctx, query, message); err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}
