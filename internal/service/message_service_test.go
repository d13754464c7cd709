package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/carebridge-api/internal/models"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
)

type mockMessageRepo struct {
	mock.Mock
}

func (m *mockMessageRepo) ListConversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Conversation), args.Error(1)
}

func (m *mockMessageRepo) ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *mockMessageRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockMessageRepo) MarkRead(ctx context.Context, conversationID, userID string) error {
	args := m.Called(ctx, conversationID, userID)
	return args.Error(0)
}

func (m *mockMessageRepo) Create(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func TestOpenConversationMarksRead(t *testing.T) {
	repo := new(mockMessageRepo)
	repo.On("ListByConversation", mock.Anything, "c1").Return([]models.Message{
		{ID: "m1", ConversationID: "c1", Body: "Shift swap?"},
	}, nil).Once()
	repo.On("MarkRead", mock.Anything, "c1", "w1").Return(nil).Once()
	svc := NewMessageService(repo, nil)

	messages, err := svc.Open(context.Background(), "c1", "w1")

	require.NoError(t, err)
	require.Len(t, messages, 1)
	repo.AssertExpectations(t)
}

func TestOpenConversationToleratesMarkReadFailure(t *testing.T) {
	repo := new(mockMessageRepo)
	repo.On("ListByConversation", mock.Anything, "c1").Return([]models.Message{{ID: "m1"}}, nil).Once()
	repo.On("MarkRead", mock.Anything, "c1", "w1").Return(errors.New("db down")).Once()
	svc := NewMessageService(repo, nil)

	messages, err := svc.Open(context.Background(), "c1", "w1")

	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestSendMessageRequiresBody(t *testing.T) {
	repo := new(mockMessageRepo)
	svc := NewMessageService(repo, nil)

	_, err := svc.Send(context.Background(), "c1", "w1", "Jordan Lee", "u2", "   ")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestSendMessageStartsNewConversation(t *testing.T) {
	repo := new(mockMessageRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(m *models.Message) bool {
		return m.ID != "" && m.ConversationID != "" && m.Body == "Running 10 minutes late"
	})).Return(nil).Once()
	svc := NewMessageService(repo, nil)

	message, err := svc.Send(context.Background(), "", "w1", "Jordan Lee", "u2", "Running 10 minutes late ")

	require.NoError(t, err)
	assert.NotEmpty(t, message.ConversationID)
	assert.False(t, message.SentAt.IsZero())
	repo.AssertExpectations(t)
}
