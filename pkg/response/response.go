// Package response renders error payloads. Resource representations are
// written bare by the handlers: conditional GET revalidation needs a stable
// body, so success responses carry no envelope.
package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIError is the uniform error payload.
type APIError struct {
	Status    int       `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Message   string    `json:"message"`
	Details   any       `json:"details,omitempty"`
}

// Error writes an error payload and the matching status code.
func Error(ctx *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, APIError{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Message:   message,
		Details:   details,
	})
}

// AbortError writes an error payload and aborts the handler chain.
func AbortError(ctx *gin.Context, status int, message string, details any) {
	Error(ctx, status, message, details)
	ctx.Abort()
}
