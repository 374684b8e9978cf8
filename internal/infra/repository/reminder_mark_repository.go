package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/subtrackhq/subtrack/internal/domain"
)

const reminderMarkKeyPrefix = "reminder:mark:"

type reminderMarkRepository struct {
	client *redis.Client
}

// NewReminderMarkRepository builds the redis-backed fast-path dedup
// store for reminder scopes.
func NewReminderMarkRepository(client *redis.Client) domain.ReminderMarkRepository {
	return &reminderMarkRepository{
		client: client,
	}
}

func (r *reminderMarkRepository) MarkIfAbsent(ctx context.Context, scope domain.ReminderScope, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, ErrInvalidMarkTTL
	}

	set, err := r.client.SetNX(ctx, markKey(scope), "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisConnection, err)
	}
	return set, nil
}

func (r *reminderMarkRepository) IsMarked(ctx context.Context, scope domain.ReminderScope) (bool, error) {
	exists, err := r.client.Exists(ctx, markKey(scope)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisConnection, err)
	}
	return exists > 0, nil
}

func (r *reminderMarkRepository) Unmark(ctx context.Context, scope domain.ReminderScope) error {
	if err := r.client.Del(ctx, markKey(scope)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisConnection, err)
	}
	return nil
}

// markKey flattens a scope into one key. CycleStart is reduced to its
// calendar date so wall-clock noise cannot split a cycle across keys.
func markKey(scope domain.ReminderScope) string {
	return fmt.Sprintf("%s%s:%s:%d:%s",
		reminderMarkKeyPrefix,
		scope.OwnerID,
		scope.ItemID,
		scope.OffsetDays,
		scope.CycleStart.Format("2006-01-02"),
	)
}
