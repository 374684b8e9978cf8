package postgres

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/subtrackhq/subtrack/internal/domain"
)

type itemRow struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	OwnerID      string    `gorm:"type:text;not null;index:idx_items_owner"`
	Title        string    `gorm:"type:text;not null"`
	Price        float64   `gorm:"not null"`
	Currency     string    `gorm:"type:text;not null"`
	Period       string    `gorm:"type:text;not null"`
	StartDate    time.Time `gorm:"not null"`
	Category     string    `gorm:"type:text"`
	Active       bool      `gorm:"not null;default:true;index:idx_items_active"`
	ReminderDays string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (itemRow) TableName() string { return "items" }

type notificationRow struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	OwnerID    string    `gorm:"type:text;not null;index:idx_notifications_owner"`
	ItemID     string    `gorm:"type:text"`
	Type       string    `gorm:"type:text;not null"`
	Title      string    `gorm:"type:text;not null"`
	Message    string    `gorm:"type:text;not null"`
	SentAt     time.Time `gorm:"not null;index:idx_notifications_sent_at"`
	Delivered  bool      `gorm:"not null;default:false"`
	Read       bool      `gorm:"not null;default:false"`
	OffsetDays int       `gorm:"not null;default:0"`
	CycleStart time.Time
	// DedupKey is set only for events that must be unique per scope.
	// The unique index turns a duplicate insert into a constraint
	// violation instead of a read-then-write race.
	DedupKey *string `gorm:"type:text;uniqueIndex:idx_notifications_dedup"`
}

func (notificationRow) TableName() string { return "notifications" }

type channelLinkRow struct {
	OwnerID      string    `gorm:"type:text;primaryKey"`
	ChatID       string    `gorm:"type:text;not null"`
	AllowedTypes string    `gorm:"type:text"`
	LinkedAt     time.Time `gorm:"not null"`
}

func (channelLinkRow) TableName() string { return "channel_links" }

func itemToRow(item *domain.Item) *itemRow {
	return &itemRow{
		ID:           item.ID,
		OwnerID:      item.OwnerID,
		Title:        item.Title,
		Price:        item.Price,
		Currency:     string(item.Currency),
		Period:       string(item.Period),
		StartDate:    item.StartDate.UTC(),
		Category:     item.Category,
		Active:       item.Active,
		ReminderDays: joinInts(item.ReminderDays),
		CreatedAt:    item.CreatedAt.UTC(),
	}
}

func rowToItem(row *itemRow) (*domain.Item, error) {
	days, err := splitInts(row.ReminderDays)
	if err != nil {
		return nil, fmt.Errorf("item %s has malformed reminder days: %w", row.ID, err)
	}
	return &domain.Item{
		ID:           row.ID,
		OwnerID:      row.OwnerID,
		Title:        row.Title,
		Price:        row.Price,
		Currency:     domain.Currency(row.Currency),
		Period:       domain.Period(row.Period),
		StartDate:    row.StartDate,
		Category:     row.Category,
		Active:       row.Active,
		ReminderDays: days,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func eventToRow(event *domain.Event) *notificationRow {
	row := &notificationRow{
		ID:         event.ID,
		OwnerID:    event.OwnerID,
		ItemID:     event.ItemID,
		Type:       event.Type.String(),
		Title:      event.Title,
		Message:    event.Message,
		SentAt:     event.SentAt.UTC(),
		Delivered:  event.Delivered,
		Read:       event.Read,
		OffsetDays: event.OffsetDays,
		CycleStart: event.CycleStart.UTC(),
	}
	if event.Type == domain.EventPaymentReminder {
		key := dedupKey(domain.ReminderScope{
			OwnerID:    event.OwnerID,
			ItemID:     event.ItemID,
			OffsetDays: event.OffsetDays,
			CycleStart: event.CycleStart,
		})
		row.DedupKey = &key
	}
	return row
}

func rowToEvent(row *notificationRow) *domain.Event {
	return &domain.Event{
		ID:         row.ID,
		OwnerID:    row.OwnerID,
		ItemID:     row.ItemID,
		Type:       domain.EventType(row.Type),
		Title:      row.Title,
		Message:    row.Message,
		SentAt:     row.SentAt,
		Delivered:  row.Delivered,
		Read:       row.Read,
		OffsetDays: row.OffsetDays,
		CycleStart: row.CycleStart,
	}
}

func linkToRow(link *domain.ChannelLink) *channelLinkRow {
	types := make([]string, 0, len(link.AllowedTypes))
	for _, t := range link.AllowedTypes {
		types = append(types, t.String())
	}
	return &channelLinkRow{
		OwnerID:      link.OwnerID,
		ChatID:       link.ChatID,
		AllowedTypes: strings.Join(types, ","),
		LinkedAt:     link.LinkedAt.UTC(),
	}
}

func rowToLink(row *channelLinkRow) *domain.ChannelLink {
	var types []domain.EventType
	if row.AllowedTypes != "" {
		for _, raw := range strings.Split(row.AllowedTypes, ",") {
			types = append(types, domain.EventType(raw))
		}
	}
	return &domain.ChannelLink{
		OwnerID:      row.OwnerID,
		ChatID:       row.ChatID,
		AllowedTypes: types,
		LinkedAt:     row.LinkedAt,
	}
}

// dedupKey flattens a reminder scope into the unique column value.
// CycleStart is reduced to its calendar date, matching the granularity
// the billing clock works at.
func dedupKey(scope domain.ReminderScope) string {
	return fmt.Sprintf("%s:%s:%d:%s",
		scope.OwnerID,
		scope.ItemID,
		scope.OffsetDays,
		scope.CycleStart.UTC().Format("2006-01-02"),
	)
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitInts(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	values := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		values[i] = n
	}
	return values, nil
}
