package domain

import (
	"time"
)

// EventType classifies a notification event.
type EventType string

const (
	EventItemCreated         EventType = "item_created"
	EventItemUpdated         EventType = "item_updated"
	EventItemDeleted         EventType = "item_deleted"
	EventPaymentReminder     EventType = "payment_reminder"
	EventChannelConnected    EventType = "channel_connected"
	EventChannelDisconnected EventType = "channel_disconnected"
	EventTest                EventType = "test"
	EventPeriodicReport      EventType = "periodic_report"
)

// AllEventTypes lists every event type the ledger can record.
var AllEventTypes = []EventType{
	EventItemCreated,
	EventItemUpdated,
	EventItemDeleted,
	EventPaymentReminder,
	EventChannelConnected,
	EventChannelDisconnected,
	EventTest,
	EventPeriodicReport,
}

func (t EventType) String() string {
	return string(t)
}

func (t EventType) Valid() bool {
	switch t {
	case EventItemCreated, EventItemUpdated, EventItemDeleted,
		EventPaymentReminder, EventChannelConnected, EventChannelDisconnected,
		EventTest, EventPeriodicReport:
		return true
	}
	return false
}

// Event is a single ledger entry. The ledger row is the durability
// guarantee; Delivered only reflects a best-effort channel attempt.
type Event struct {
	ID        string
	OwnerID   string
	ItemID    string
	Type      EventType
	Title     string
	Message   string
	SentAt    time.Time
	Delivered bool
	Read      bool

	// Reminder scoping. Zero values for non-reminder events.
	OffsetDays int
	CycleStart time.Time
}

// ReminderScope identifies one reminder slot within one billing cycle.
// At most one ledger row may exist per scope.
type ReminderScope struct {
	OwnerID    string
	ItemID     string
	OffsetDays int
	CycleStart time.Time
}
