package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sparkmatch/sparkmatch-backend/internal/delivery/http/middleware"
	"github.com/sparkmatch/sparkmatch-backend/internal/usecase/chat"
)

type ChatHandler struct {
	chatUseCase *chat.ChatUseCase
}

func NewChatHandler(chatUseCase *chat.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

// SendMessageRequest carries the message body
type SendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// ListConversations handles GET /chats
// @Summary List conversations
// @Tags chats
// @Security BearerAuth
// @Produce json
// @Success 200 {object} Response
// @Router /chats [get]
func (h *ChatHandler) ListConversations(c *gin.Context) {
	conversations, err := h.chatUseCase.ListConversations(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, conversations)
}

// Messages handles GET /chats/:conversation_id/messages
// @Summary Conversation history
// @Tags chats
// @Security BearerAuth
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Success 200 {object} Response
// @Failure 403 {object} Response
// @Router /chats/{conversation_id}/messages [get]
func (h *ChatHandler) Messages(c *gin.Context) {
	limit, offset := parsePage(c)
	messages, err := h.chatUseCase.Messages(c.Request.Context(), middleware.UserID(c), c.Param("conversation_id"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, messages)
}

// SendMessage handles POST /chats/:conversation_id/messages
// @Summary Send a message
// @Tags chats
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param conversation_id path string true "Conversation ID"
// @Param request body SendMessageRequest true "Message body"
// @Success 201 {object} Response
// @Failure 403 {object} Response
// @Router /chats/{conversation_id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	message, err := h.chatUseCase.SendMessage(c.Request.Context(), middleware.UserID(c), c.Param("conversation_id"), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, message)
}
