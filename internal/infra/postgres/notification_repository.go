package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/domain"
)

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &notificationRepository{db: db}
}

// Insert writes one ledger row. Reminder rows carry a dedup key; a
// second insert for the same scope hits the unique index and surfaces
// as ErrDuplicateScope.
func (r *notificationRepository) Insert(ctx context.Context, event *domain.Event) error {
	if err := r.db.WithContext(ctx).Create(eventToRow(event)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateScope
		}
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) ReminderExists(ctx context.Context, scope domain.ReminderScope) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationRow{}).
		Where("dedup_key = ?", dedupKey(scope)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check reminder scope: %w", err)
	}
	return count > 0, nil
}

func (r *notificationRepository) TypeExistsSince(ctx context.Context, ownerID string, eventType domain.EventType, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationRow{}).
		Where("owner_id = ? AND type = ? AND sent_at >= ?", ownerID, eventType.String(), since.UTC()).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check event history: %w", err)
	}
	return count > 0, nil
}

func (r *notificationRepository) MarkDelivered(ctx context.Context, eventID string) error {
	result := r.db.WithContext(ctx).
		Model(&notificationRow{}).
		Where("id = ?", eventID).
		Update("delivered", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification delivered: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, ownerID, eventID string) error {
	result := r.db.WithContext(ctx).
		Model(&notificationRow{}).
		Where("owner_id = ? AND id = ?", ownerID, eventID).
		Update("read", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *notificationRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&notificationRow{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear notification history: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Event, error) {
	var rows []notificationRow
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("sent_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	events := make([]*domain.Event, 0, len(rows))
	for i := range rows {
		events = append(events, rowToEvent(&rows[i]))
	}
	return events, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, ownerID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationRow{}).
		Where("owner_id = ? AND read = ?", ownerID, false).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return int(count), nil
}
