package handler

import (
	"context"
	"errors"
	"net/http"

	"placefinder/internal/auth"
	"placefinder/internal/model"
	"placefinder/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-ask request id back to the caller
const RequestIDHeader = "X-Request-ID"

// Asker answers one ask for an authenticated user
type Asker interface {
	Handle(ctx context.Context, userID, credential string, req *model.AskRequest) (*model.AskResponse, error)
}

// AskHandler handles ask-related HTTP requests
type AskHandler struct {
	assistant Asker
	logger    *zap.Logger
}

// NewAskHandler creates a new ask handler
func NewAskHandler(assistant Asker, logger *zap.Logger) *AskHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AskHandler{
		assistant: assistant,
		logger:    logger.With(zap.String("component", "ask_handler")),
	}
}

// Ask handles POST /api/v1/ask and POST /ask. It must run behind
// auth.Middleware, which supplies the user id and credential.
func (h *AskHandler) Ask(c *gin.Context) {
	var req model.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	userID := c.GetString(auth.ContextUserID)
	credential := c.GetString(auth.ContextCredential)

	resp, err := h.assistant.Handle(c.Request.Context(), userID, credential, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
			return
		}
		h.logger.Error("ask failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if resp.RequestID != "" {
		c.Header(RequestIDHeader, resp.RequestID)
	}
	c.JSON(http.StatusOK, resp)
}
