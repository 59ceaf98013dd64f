package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"petprompt/internal/middleware"
	"petprompt/pkg/llm"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

type PromptHandler struct {
	client  llm.PromptClient
	timeout time.Duration
}

// NewPromptHandler bounds every upstream call by timeout; a non-positive
// value falls back to 10s.
func NewPromptHandler(client llm.PromptClient, timeout time.Duration) *PromptHandler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &PromptHandler{client: client, timeout: timeout}
}

func (h *PromptHandler) GetPrompt(c *gin.Context) {
	requestID := middleware.GetRequestID(c)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	var req ClassificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid prompt request body", "error", err, "request_id", requestID)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "requestId": requestID})
		return
	}

	classification := strings.TrimSpace(req.Classification)
	if classification == "" {
		slog.Warn("prompt request missing classification", "request_id", requestID)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Classification is required", "requestId": requestID})
		return
	}

	cacheBuster := uuid.NewString()

	slog.Info("prompt request received",
		"classification", classification,
		"request_id", requestID,
		"cache_buster", cacheBuster,
	)

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.client.GeneratePrompt(ctx, llm.PromptInput{
		Classification: classification,
		RequestID:      requestID,
		CacheBuster:    cacheBuster,
	})
	if err != nil {
		h.writeError(c, ctx, err, requestID)
		return
	}

	slog.Info("prompt generated",
		"request_id", requestID,
		"provider", h.client.Name(),
		"model", result.ModelUsed,
		"prompt", result.Text,
	)

	c.JSON(http.StatusOK, PromptResponse{
		Prompt:         strings.TrimSpace(result.Text),
		Classification: classification,
		RequestID:      requestID,
		CacheBuster:    cacheBuster,
	})
}

func (h *PromptHandler) writeError(c *gin.Context, ctx context.Context, err error, requestID string) {
	var upErr *llm.UpstreamError

	switch {
	case errors.Is(err, llm.ErrTimeout), errors.Is(ctx.Err(), context.DeadlineExceeded):
		slog.Error("completion API timed out", "error", err, "request_id", requestID, "timeout", h.timeout)
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"error":     "Request to completion API timed out",
			"requestId": requestID,
		})

	case errors.As(err, &upErr):
		slog.Error("completion API returned an error",
			"error", err,
			"status", upErr.StatusCode,
			"body", string(upErr.Body),
			"request_id", requestID,
		)
		c.JSON(relayStatus(upErr.StatusCode), gin.H{
			"error":     "Failed to get prompt from completion API",
			"details":   upstreamDetails(upErr),
			"requestId": requestID,
		})

	default:
		slog.Error("error calling completion API", "error", err, "request_id", requestID)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to get prompt from completion API",
			"details":   err.Error(),
			"requestId": requestID,
		})
	}
}

// relayStatus passes upstream 4xx/5xx codes through unchanged.
func relayStatus(status int) int {
	if status >= 400 && status <= 599 {
		return status
	}
	return http.StatusInternalServerError
}

func upstreamDetails(upErr *llm.UpstreamError) any {
	body := upErr.Body
	if len(strings.TrimSpace(string(body))) == 0 {
		if upErr.Err != nil {
			return upErr.Err.Error()
		}
		return http.StatusText(upErr.StatusCode)
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}

// Options answers a plain OPTIONS request. CORS preflights are answered by
// the CORS middleware before reaching this handler.
func (h *PromptHandler) Options(c *gin.Context) {
	c.Header("Allow", "POST, OPTIONS")
	c.Status(http.StatusNoContent)
}

func (h *PromptHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "healthy",
		Provider: h.client.Name(),
		Model:    h.client.Model(),
	})
}
