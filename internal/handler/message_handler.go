package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carebridge/carebridge-api/internal/service"
	appErrors "github.com/carebridge/carebridge-api/pkg/errors"
	"github.com/carebridge/carebridge-api/pkg/response"
)

// MessageHandler wires HTTP endpoints to the message service.
type MessageHandler struct {
	service *service.MessageService
}

// NewMessageHandler creates a new handler.
func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{service: svc}
}

// Conversations godoc
// @Summary List the caller's conversations
// @Tags Messages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /messages [get]
func (h *MessageHandler) Conversations(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	conversations, err := h.service.Conversations(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, conversations, nil)
}

// Open godoc
// @Summary Open a conversation and mark it read
// @Tags Messages
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} response.Envelope
// @Router /messages/{id} [get]
func (h *MessageHandler) Open(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	messages, err := h.service.Open(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, messages, nil)
}

// Send godoc
// @Summary Send a message
// @Tags Messages
// @Accept json
// @Produce json
// @Param payload body object true "Message payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		ConversationID string `json:"conversation_id"`
		RecipientID    string `json:"recipient_id" binding:"required"`
		Body           string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid message payload"))
		return
	}

	message, err := h.service.Send(c.Request.Context(), payload.ConversationID, claims.UserID, claims.FullName, payload.RecipientID, payload.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, message)
}

// Unread godoc
// @Summary Unread message count
// @Tags Messages
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /messages/unread [get]
func (h *MessageHandler) Unread(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"unread": count}, nil)
}
