package handler

import (
	"net/http"

	"bankbot-go/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler serves the chat history API.
type SessionHandler struct {
	service service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service service.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// List handles GET /api/v1/sessions. The optional "q" parameter filters
// sessions to those containing the substring in any message.
func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.service.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "Failed to retrieve session history",
			"data":    nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    sessions,
	})
}

// Current handles GET /api/v1/sessions/current.
func (h *SessionHandler) Current(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "success",
		"data":    h.service.Current(),
	})
}

// Save handles POST /api/v1/sessions/save.
func (h *SessionHandler) Save(c *gin.Context) {
	if err := h.service.Save(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "Failed to save session",
			"data":    nil,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}

// NewChat handles POST /api/v1/sessions/new: the current transcript is
// saved, then cleared.
func (h *SessionHandler) NewChat(c *gin.Context) {
	if err := h.service.NewChat(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "Failed to start a new chat",
			"data":    nil,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}

// ClearAll handles DELETE /api/v1/sessions.
func (h *SessionHandler) ClearAll(c *gin.Context) {
	if err := h.service.ClearAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    http.StatusInternalServerError,
			"message": "Failed to clear sessions",
			"data":    nil,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": nil})
}
