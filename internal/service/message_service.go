package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carebridge/carebridge-api/internal/models"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
)

type messageRepository interface {
	ListConversations(ctx context.Context, userID string) ([]models.Conversation, error)
	ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, conversationID, userID string) error
	Create(ctx context.Context, message *models.Message) error
}

// MessageService handles the worker's inbox.
type MessageService struct {
	repo   messageRepository
	logger *zap.Logger
}

// NewMessageService constructs the service.
func NewMessageService(repo messageRepository, logger *zap.Logger) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{repo: repo, logger: logger}
}

// Conversations lists the user's threads, newest first.
func (s *MessageService) Conversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	conversations, err := s.repo.ListConversations(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list conversations")
	}
	return conversations, nil
}

// Open returns a conversation's messages and marks them read for the user.
func (s *MessageService) Open(ctx context.Context, conversationID, userID string) ([]models.Message, error) {
	messages, err := s.repo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load conversation")
	}
	if err := s.repo.MarkRead(ctx, conversationID, userID); err != nil {
		s.logger.Warn("failed to mark conversation read",
			zap.String("conversation_id", conversationID), zap.Error(err))
	}
	return messages, nil
}

// UnreadCount reports how many messages await the user.
func (s *MessageService) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count unread messages")
	}
	return count, nil
}

// Send appends a message to a conversation.
func (s *MessageService) Send(ctx context.Context, conversationID, senderID, senderName, recipientID, body string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "message body is required")
	}
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	message := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderName:     senderName,
		RecipientID:    recipientID,
		Body:           strings.TrimSpace(body),
		SentAt:         time.Now(),
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to send message")
	}
	return message, nil
}
