package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agroadvisor-backend/internal/apperr"
	"agroadvisor-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details any `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details any) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if username := c.GetString("username"); username != "" {
		fields["username"] = username
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// FromError maps an engine error kind to a status code and standardized body.
// Messages for internal kinds stay generic so collaborator detail never
// leaks to callers.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, apperr.ErrInvalidImage):
		Error(c, http.StatusBadRequest, "invalid_image", err.Error(), nil)
	case errors.Is(err, apperr.ErrAuthentication):
		Error(c, http.StatusUnauthorized, "unauthorized", "incorrect username or password", nil)
	case errors.Is(err, apperr.ErrInvalidToken):
		Error(c, http.StatusUnauthorized, "invalid_token", "invalid or expired token", nil)
	case errors.Is(err, apperr.ErrUnavailable):
		Error(c, http.StatusServiceUnavailable, "service_unavailable", err.Error(), nil)
	case errors.Is(err, apperr.ErrIndexOutOfRange):
		Error(c, http.StatusInternalServerError, "internal_error", "prediction failed", nil)
	default:
		Error(c, http.StatusInternalServerError, "internal_error", "unexpected server error", nil)
	}
}
