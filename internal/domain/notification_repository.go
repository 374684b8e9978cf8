package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=notification_repository.go -destination=notification_repository_mock.go -package=domain

type NotificationRepository interface {
	// Insert persists an event. For events carrying a reminder scope the
	// insert is conditional: a second insert for the same scope returns
	// ErrDuplicateScope instead of creating a row.
	Insert(ctx context.Context, event *Event) error
	ReminderExists(ctx context.Context, scope ReminderScope) (bool, error)
	// TypeExistsSince reports whether any event of the given type was
	// recorded for the owner at or after the given time.
	TypeExistsSince(ctx context.Context, ownerID string, eventType EventType, since time.Time) (bool, error)
	MarkDelivered(ctx context.Context, eventID string) error
	MarkRead(ctx context.Context, ownerID, eventID string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Event, error)
	CountUnread(ctx context.Context, ownerID string) (int, error)
}
