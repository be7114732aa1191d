// Package handler contains the HTTP controller logic.
package handler

import (
	"net/http"

	"bankbot-go/internal/model"
	"bankbot-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler serves the question-answering endpoint.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Ask handles POST /api/v1/chat. An empty question is still answered (with a
// prompt-for-input reply); only an unparsable body or an unknown model
// selector is a client error.
func (h *ChatHandler) Ask(c *gin.Context) {
	var req model.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Model != "" && !h.chatService.HasProvider(req.Model) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown model: " + req.Model})
		return
	}

	answer := h.chatService.Answer(c.Request.Context(), req.Question, req.Model)
	c.JSON(http.StatusOK, answer)
}
