package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=reminder_marks.go -destination=reminder_marks_mock.go -package=domain

// ReminderMarkRepository is the fast-path dedup store for reminder scopes.
// It exists to keep sweep ticks from hitting the ledger for scopes that
// were already handled; the ledger's conditional insert stays the source
// of truth.
type ReminderMarkRepository interface {
	// MarkIfAbsent atomically records the scope and reports whether it was
	// newly marked. A false result means another tick already handled it.
	MarkIfAbsent(ctx context.Context, scope ReminderScope, ttl time.Duration) (bool, error)
	IsMarked(ctx context.Context, scope ReminderScope) (bool, error)
	Unmark(ctx context.Context, scope ReminderScope) error
}
