// Package logging configures the process-wide slog handler and the
// request-scoped attributes attached to every record.
package logging

import (
	"context"
	"log/slog"
	"os"
)

// Environment selects log output conventions.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module tags log records with the emitting subsystem.
type Module string

// ServiceInfo identifies the running binary in every log record.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

// NewLogger builds the default logger: JSON records to stdout with
// service identity and module attached, request id pulled from context.
func NewLogger(level slog.Level, service ServiceInfo, module Module) *slog.Logger {
	base := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})

	handler := &contextHandler{inner: base}

	logger := slog.New(handler).With(
		slog.String("service", service.Name),
		slog.String("module", string(module)),
	)
	if service.Version != "" {
		logger = logger.With(slog.String("version", service.Version))
	}
	return logger
}

// contextHandler enriches records with request-scoped attributes.
type contextHandler struct {
	inner slog.Handler
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, record slog.Record) error {
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		record.AddAttrs(slog.String("request_id", requestID))
	}
	return h.inner.Handle(ctx, record)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{inner: h.inner.WithGroup(name)}
}
