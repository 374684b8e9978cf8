// Package dispatch attempts best-effort channel delivery of ledger
// events. The ledger row is already durable when Attempt runs; nothing
// here may fail the operation that produced the event.
package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/subtrackhq/subtrack/internal/domain"
	"github.com/subtrackhq/subtrack/internal/observability/metrics"
	"github.com/subtrackhq/subtrack/internal/observability/tracing"
)

const defaultSendTimeout = 10 * time.Second

type Dispatcher struct {
	links       domain.ChannelLinkRepository
	sender      domain.ChannelSender
	events      domain.NotificationRepository
	recorder    domain.DispatchRecorder
	metrics     *metrics.EngineMetrics
	sendTimeout time.Duration
}

func NewDispatcher(
	links domain.ChannelLinkRepository,
	sender domain.ChannelSender,
	events domain.NotificationRepository,
	recorder domain.DispatchRecorder,
	engineMetrics *metrics.EngineMetrics,
	sendTimeout time.Duration,
) *Dispatcher {
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}
	return &Dispatcher{
		links:       links,
		sender:      sender,
		events:      events,
		recorder:    recorder,
		metrics:     engineMetrics,
		sendTimeout: sendTimeout,
	}
}

// Attempt delivers the event through the owner's channel, if one is
// linked and the event type is allowed. Exactly one synchronous try,
// bounded by the send timeout; no retries. Success flips the ledger's
// delivered flag; failure leaves the event recorded-but-undelivered,
// which is a valid terminal state.
func (d *Dispatcher) Attempt(ctx context.Context, event *domain.Event) domain.DeliveryOutcome {
	ctx, span := tracing.StartDispatchSpan(ctx, event.ID, event.Type.String())
	defer span.End()

	start := time.Now()
	outcome := d.attempt(ctx, event)
	d.record(ctx, event, outcome, time.Since(start))
	return outcome
}

func (d *Dispatcher) attempt(ctx context.Context, event *domain.Event) domain.DeliveryOutcome {
	if d.sender == nil {
		return domain.DeliveryOutcome{}
	}

	link, err := d.links.GetByOwner(ctx, event.OwnerID)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			return domain.DeliveryOutcome{}
		}
		// Treat a link lookup failure like a channel failure: the event
		// stays recorded, delivery just did not happen.
		slog.WarnContext(ctx, "channel link lookup failed",
			slog.String("owner_id", event.OwnerID),
			slog.String("error", err.Error()),
		)
		return domain.DeliveryOutcome{Err: err}
	}

	if !link.Allows(event.Type) {
		slog.DebugContext(ctx, "event type not in owner allow-list",
			slog.String("owner_id", event.OwnerID),
			slog.String("event_type", event.Type.String()),
		)
		return domain.DeliveryOutcome{}
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	text := event.Title + "\n" + event.Message
	if err := d.sender.Send(sendCtx, link.ChatID, text); err != nil {
		slog.WarnContext(ctx, "channel delivery failed",
			slog.String("event_id", event.ID),
			slog.String("event_type", event.Type.String()),
			slog.String("error", err.Error()),
		)
		return domain.DeliveryOutcome{Attempted: true, Err: err}
	}

	if err := d.events.MarkDelivered(ctx, event.ID); err != nil {
		// The message went out; only the flag update failed. Log and
		// report the delivery as succeeded.
		slog.ErrorContext(ctx, "failed to mark event delivered",
			slog.String("event_id", event.ID),
			slog.String("error", err.Error()),
		)
	}
	event.Delivered = true

	return domain.DeliveryOutcome{Attempted: true, Succeeded: true}
}

func (d *Dispatcher) record(ctx context.Context, event *domain.Event, outcome domain.DeliveryOutcome, duration time.Duration) {
	d.metrics.RecordDispatch(ctx, event.Type.String(), outcomeLabel(outcome))

	if d.recorder == nil {
		return
	}
	if err := d.recorder.RecordDispatch(ctx, domain.DispatchRecord{
		OwnerID:   event.OwnerID,
		EventID:   event.ID,
		EventType: event.Type.String(),
		Attempted: outcome.Attempted,
		Succeeded: outcome.Succeeded,
		Duration:  duration,
	}); err != nil {
		slog.WarnContext(ctx, "failed to record dispatch outcome",
			slog.String("event_id", event.ID),
			slog.String("error", err.Error()),
		)
	}
}

func outcomeLabel(outcome domain.DeliveryOutcome) string {
	switch {
	case outcome.Succeeded:
		return "delivered"
	case outcome.Attempted:
		return "failed"
	case outcome.Err != nil:
		return "error"
	default:
		return "skipped"
	}
}
