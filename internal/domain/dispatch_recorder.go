package domain

import (
	"context"
	"time"
)

// DispatchRecord captures the outcome of one channel delivery attempt.
type DispatchRecord struct {
	OwnerID   string
	EventID   string
	EventType string
	Attempted bool
	Succeeded bool
	Duration  time.Duration
}

// SweepRecord summarizes one reminder sweep run.
type SweepRecord struct {
	RunID         string
	StartedAt     time.Time
	ItemsSeen     int
	RemindersSent int
	ReportsSent   int
	Failures      int
	Duration      time.Duration
}

// DispatchRecorder sinks delivery and sweep outcomes for offline analysis.
type DispatchRecorder interface {
	RecordDispatch(ctx context.Context, record DispatchRecord) error
	RecordSweep(ctx context.Context, record SweepRecord) error
	Close() error
}
