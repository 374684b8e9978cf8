package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const engineMeterName = "subtrack.engine"

type EngineMetrics struct {
	eventsRecorded   metric.Int64Counter
	dispatchAttempts metric.Int64Counter
	remindersSent    metric.Int64Counter
	sweepDuration    metric.Float64Histogram
	sweepFailures    metric.Int64Counter
}

func NewEngineMetrics() (*EngineMetrics, error) {
	meter := otel.Meter(engineMeterName)

	eventsRecorded, err := meter.Int64Counter(
		"subtrack_notification_events_total",
		metric.WithDescription("Total notification events written to the ledger"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	dispatchAttempts, err := meter.Int64Counter(
		"subtrack_dispatch_attempts_total",
		metric.WithDescription("Channel delivery attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	remindersSent, err := meter.Int64Counter(
		"subtrack_reminders_sent_total",
		metric.WithDescription("Payment reminders recorded by sweep runs"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	sweepDuration, err := meter.Float64Histogram(
		"subtrack_sweep_duration_seconds",
		metric.WithDescription("Duration of reminder sweep runs"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60,
		),
	)
	if err != nil {
		return nil, err
	}

	sweepFailures, err := meter.Int64Counter(
		"subtrack_sweep_item_failures_total",
		metric.WithDescription("Items that failed during a sweep run"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	return &EngineMetrics{
		eventsRecorded:   eventsRecorded,
		dispatchAttempts: dispatchAttempts,
		remindersSent:    remindersSent,
		sweepDuration:    sweepDuration,
		sweepFailures:    sweepFailures,
	}, nil
}

func (m *EngineMetrics) RecordEvent(ctx context.Context, eventType string) {
	if m == nil {
		return
	}
	m.eventsRecorded.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
	))
}

func (m *EngineMetrics) RecordDispatch(ctx context.Context, eventType, outcome string) {
	if m == nil {
		return
	}
	m.dispatchAttempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("event_type", eventType),
		attribute.String("outcome", outcome),
	))
}

func (m *EngineMetrics) RecordReminder(ctx context.Context, offsetDays int) {
	if m == nil {
		return
	}
	m.remindersSent.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("offset_days", offsetDays),
	))
}

func (m *EngineMetrics) RecordSweep(ctx context.Context, duration time.Duration, failures int) {
	if m == nil {
		return
	}
	m.sweepDuration.Record(ctx, duration.Seconds())
	if failures > 0 {
		m.sweepFailures.Add(ctx, int64(failures))
	}
}
