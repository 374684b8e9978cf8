package logging

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

var requestIDKey contextKey

const maxRequestIDLength = 128

// WithRequestID attaches a request id to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request id, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ValidateAndExtractRequestID returns the given id when it is usable
// for propagation, otherwise a fresh one.
func ValidateAndExtractRequestID(requestID string) string {
	if requestID == "" || len(requestID) > maxRequestIDLength {
		return uuid.NewString()
	}
	return requestID
}
