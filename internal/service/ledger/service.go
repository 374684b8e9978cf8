// Package ledger is the durable notification event log. A ledger row is
// written before the triggering operation reports success; channel
// delivery happens after and may fail independently.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/subtrackhq/subtrack/internal/domain"
)

type Service struct {
	events domain.NotificationRepository
	clock  domain.Clock
}

func NewService(events domain.NotificationRepository, clock domain.Clock) *Service {
	return &Service{
		events: events,
		clock:  clock,
	}
}

// RecordInput describes the event to append. Title and Message are
// rendered from the type's template; OffsetDays and CycleStart scope
// payment reminders and are zero for everything else.
type RecordInput struct {
	OwnerID    string
	ItemID     string
	Type       domain.EventType
	Params     MessageParams
	OffsetDays int
	CycleStart time.Time
}

// Record appends one event and returns it once it is durably stored.
// A storage failure propagates: an event that cannot be recorded must
// fail the operation that triggered it. For reminder-scoped events a
// concurrent duplicate surfaces as domain.ErrDuplicateScope.
func (s *Service) Record(ctx context.Context, in RecordInput) (*domain.Event, error) {
	if in.OwnerID == "" {
		return nil, domain.ErrOwnerRequired
	}
	title, message, err := Compose(in.Type, in.Params)
	if err != nil {
		return nil, err
	}

	event := &domain.Event{
		ID:         uuid.NewString(),
		OwnerID:    in.OwnerID,
		ItemID:     in.ItemID,
		Type:       in.Type,
		Title:      title,
		Message:    message,
		SentAt:     s.clock.Now().UTC(),
		OffsetDays: in.OffsetDays,
		CycleStart: in.CycleStart,
	}

	if err := s.events.Insert(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to record notification event: %w", err)
	}

	return event, nil
}

// ReminderExists reports whether a reminder for the scope was already
// recorded this cycle.
func (s *Service) ReminderExists(ctx context.Context, scope domain.ReminderScope) (bool, error) {
	return s.events.ReminderExists(ctx, scope)
}

// ReportSentSince reports whether a periodic report already went out to
// the owner at or after the given time.
func (s *Service) ReportSentSince(ctx context.Context, ownerID string, since time.Time) (bool, error) {
	return s.events.TypeExistsSince(ctx, ownerID, domain.EventPeriodicReport, since)
}

// MarkDelivered flips the delivered flag once a channel attempt
// succeeds. Never reverted.
func (s *Service) MarkDelivered(ctx context.Context, eventID string) error {
	return s.events.MarkDelivered(ctx, eventID)
}

// MarkRead records the user's acknowledgment in the UI.
func (s *Service) MarkRead(ctx context.Context, ownerID, eventID string) error {
	return s.events.MarkRead(ctx, ownerID, eventID)
}

// ClearAll hard-deletes the owner's history. Irreversible; confirmation
// is the UI boundary's job.
func (s *Service) ClearAll(ctx context.Context, ownerID string) error {
	return s.events.DeleteByOwner(ctx, ownerID)
}

// HistoryPage is one page of an owner's history, newest first.
type HistoryPage struct {
	Events []*domain.Event
	Unread int
}

func (s *Service) History(ctx context.Context, ownerID string, limit, offset int) (*HistoryPage, error) {
	events, err := s.events.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notification history: %w", err)
	}
	unread, err := s.events.CountUnread(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return &HistoryPage{Events: events, Unread: unread}, nil
}
