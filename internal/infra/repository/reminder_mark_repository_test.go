package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/subtrackhq/subtrack/internal/domain"
	"github.com/subtrackhq/subtrack/internal/testutil"
)

func testScope(itemID string) domain.ReminderScope {
	return domain.ReminderScope{
		OwnerID:    "owner-1",
		ItemID:     itemID,
		OffsetDays: 7,
		CycleStart: time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestMarkIfAbsentSuccess(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderMarkRepository(client)
	scope := testScope("item-1")

	fresh, err := repo.MarkIfAbsent(ctx, scope, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fresh {
		t.Error("expected first mark to be fresh")
	}

	fresh, err = repo.MarkIfAbsent(ctx, scope, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh {
		t.Error("expected second mark of the same scope to report not fresh")
	}
}

func TestMarkIfAbsentDistinguishesScopes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderMarkRepository(client)

	tests := []struct {
		name  string
		scope domain.ReminderScope
	}{
		{
			name:  "different item",
			scope: testScope("item-2"),
		},
		{
			name: "different offset",
			scope: domain.ReminderScope{
				OwnerID:    "owner-1",
				ItemID:     "item-1",
				OffsetDays: 3,
				CycleStart: time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name: "different cycle",
			scope: domain.ReminderScope{
				OwnerID:    "owner-1",
				ItemID:     "item-1",
				OffsetDays: 7,
				CycleStart: time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	if _, err := repo.MarkIfAbsent(ctx, testScope("item-1"), time.Hour); err != nil {
		t.Fatalf("failed to set up base mark: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fresh, err := repo.MarkIfAbsent(ctx, tt.scope, time.Hour)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !fresh {
				t.Error("expected a distinct scope to be fresh")
			}
		})
	}
}

func TestMarkIfAbsentRejectsNonPositiveTTL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderMarkRepository(client)

	if _, err := repo.MarkIfAbsent(ctx, testScope("item-1"), 0); !errors.Is(err, ErrInvalidMarkTTL) {
		t.Fatalf("expected ErrInvalidMarkTTL, got %v", err)
	}
}

func TestMarkStoreErrorsWrapConnectionSentinel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderMarkRepository(client)
	if err := client.Close(); err != nil {
		t.Fatalf("failed to close client: %v", err)
	}

	if _, err := repo.MarkIfAbsent(ctx, testScope("item-1"), time.Hour); !errors.Is(err, ErrRedisConnection) {
		t.Errorf("MarkIfAbsent error = %v, want ErrRedisConnection", err)
	}
	if _, err := repo.IsMarked(ctx, testScope("item-1")); !errors.Is(err, ErrRedisConnection) {
		t.Errorf("IsMarked error = %v, want ErrRedisConnection", err)
	}
	if err := repo.Unmark(ctx, testScope("item-1")); !errors.Is(err, ErrRedisConnection) {
		t.Errorf("Unmark error = %v, want ErrRedisConnection", err)
	}
}

func TestIsMarkedAndUnmark(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewReminderMarkRepository(client)
	scope := testScope("item-1")

	marked, err := repo.IsMarked(ctx, scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if marked {
		t.Error("expected unmarked scope")
	}

	if _, err := repo.MarkIfAbsent(ctx, scope, time.Hour); err != nil {
		t.Fatalf("failed to mark: %v", err)
	}

	marked, err = repo.IsMarked(ctx, scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !marked {
		t.Error("expected marked scope")
	}

	if err := repo.Unmark(ctx, scope); err != nil {
		t.Fatalf("failed to unmark: %v", err)
	}

	marked, err = repo.IsMarked(ctx, scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if marked {
		t.Error("expected scope to be gone after unmark")
	}
}
