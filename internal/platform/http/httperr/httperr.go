// Package httperr renders the application error taxonomy as HTTP responses.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobtracker_backend/internal/shared/apperr"
)

const internalMessage = "internal server error"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// Status maps err onto an HTTP status and a client-safe message.
// Unknown errors (store failures included) become a generic 500.
func Status(err error) (int, string) {
	var status int
	switch {
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrInvalidReference),
		errors.Is(err, apperr.ErrInvalidStage),
		errors.Is(err, apperr.ErrConflict):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	default:
		return http.StatusInternalServerError, internalMessage
	}
	return status, message(err)
}

// Write renders err as {message, statusCode}. 5xx errors are logged with their cause.
func Write(c *gin.Context, err error) {
	status, msg := Status(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "method", c.Request.Method, "path", c.FullPath())
	}
	c.JSON(status, ErrorResponse{Message: msg, StatusCode: status})
}

// Abort is Write followed by aborting the handler chain.
func Abort(c *gin.Context, err error) {
	status, msg := Status(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Message: msg, StatusCode: status})
}

// Recovery is a gin.RecoveryFunc rendering panics as a generic 500.
func Recovery(c *gin.Context, recovered any) {
	slog.Error("panic recovered", "panic", recovered, "method", c.Request.Method, "path", c.Request.URL.Path)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Message:    internalMessage,
		StatusCode: http.StatusInternalServerError,
	})
}

// message prefers the client-safe text of an apperr.Error over wrapping context.
func message(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}
