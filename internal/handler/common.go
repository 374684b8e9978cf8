// Package handler exposes the engine over HTTP. Owner identity arrives
// as the X-User-ID header; authentication itself lives upstream.
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subtrackhq/subtrack/internal/domain"
)

const ownerHeader = "X-User-ID"

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, errorResponse{
		Error:   errType,
		Message: message,
	})
}

// ownerID extracts the caller's identity. Empty means the upstream
// proxy misbehaved; the request is rejected.
func ownerID(c *gin.Context) (string, bool) {
	id := c.GetHeader(ownerHeader)
	if id == "" {
		respondError(c, http.StatusUnauthorized, "missing_owner", "X-User-ID header is required")
		return "", false
	}
	return id, true
}

// respondDomainError maps domain sentinels onto HTTP statuses. Unknown
// errors become opaque 500s; the detail stays in the log.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrEventNotFound),
		errors.Is(err, domain.ErrLinkNotFound):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrStartDateRequired),
		errors.Is(err, domain.ErrInvalidReminderOffset),
		errors.Is(err, domain.ErrInvalidEventType):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
