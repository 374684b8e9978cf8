package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=channel.go -destination=channel_mock.go -package=domain

// ChannelLink maps an owner to an external delivery address (e.g. a
// Telegram chat) plus the event types the owner allows on that channel.
type ChannelLink struct {
	OwnerID      string
	ChatID       string
	AllowedTypes []EventType
	LinkedAt     time.Time
}

// Allows reports whether the owner accepts the given event type on the
// channel. An empty allow-list means every type is allowed.
func (l *ChannelLink) Allows(t EventType) bool {
	if len(l.AllowedTypes) == 0 {
		return true
	}
	for _, allowed := range l.AllowedTypes {
		if allowed == t {
			return true
		}
	}
	return false
}

type ChannelLinkRepository interface {
	Save(ctx context.Context, link *ChannelLink) error
	GetByOwner(ctx context.Context, ownerID string) (*ChannelLink, error)
	Delete(ctx context.Context, ownerID string) error
}

// ChannelSender delivers one message to one address. Best effort; the
// ledger row, not the send, is the durability guarantee.
type ChannelSender interface {
	Send(ctx context.Context, chatID, text string) error
}

// DeliveryOutcome is the result of one dispatch attempt.
type DeliveryOutcome struct {
	Attempted bool
	Succeeded bool
	Err       error
}
