package dispatchrecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/subtrackhq/subtrack/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DispatchRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "dispatch result recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, dispatch result recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "dispatch result recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func (r *influxDBRecorder) RecordDispatch(ctx context.Context, record domain.DispatchRecord) error {
	point := influxdb2.NewPoint(
		"dispatch_attempt",
		map[string]string{
			"event_type": record.EventType,
			"outcome":    dispatchOutcome(record),
		},
		map[string]any{
			"owner_id":    record.OwnerID,
			"event_id":    record.EventID,
			"duration_ms": record.Duration.Milliseconds(),
		},
		time.Now(),
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write dispatch attempt to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("event_id", record.EventID),
		)
	}

	return nil
}

func (r *influxDBRecorder) RecordSweep(ctx context.Context, record domain.SweepRecord) error {
	point := influxdb2.NewPoint(
		"sweep_run",
		map[string]string{
			"run_id": record.RunID,
		},
		map[string]any{
			"items_seen":     record.ItemsSeen,
			"reminders_sent": record.RemindersSent,
			"reports_sent":   record.ReportsSent,
			"failures":       record.Failures,
			"duration_ms":    record.Duration.Milliseconds(),
		},
		record.StartedAt,
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write sweep run to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}

	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}

func dispatchOutcome(record domain.DispatchRecord) string {
	switch {
	case record.Succeeded:
		return "delivered"
	case record.Attempted:
		return "failed"
	default:
		return "skipped"
	}
}
