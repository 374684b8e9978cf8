package item

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/subtrackhq/subtrack/internal/domain"
	"github.com/subtrackhq/subtrack/internal/service/dispatch"
	"github.com/subtrackhq/subtrack/internal/service/ledger"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fixture struct {
	items  *domain.MockItemRepository
	events *domain.MockNotificationRepository
	links  *domain.MockChannelLinkRepository
	sender *domain.MockChannelSender
	svc    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	items := domain.NewMockItemRepository(ctrl)
	events := domain.NewMockNotificationRepository(ctrl)
	links := domain.NewMockChannelLinkRepository(ctrl)
	sender := domain.NewMockChannelSender(ctrl)

	clock := fixedClock{t: time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)}
	ledgerSvc := ledger.NewService(events, clock)
	dispatcher := dispatch.NewDispatcher(links, sender, events, nil, nil, time.Second)

	return &fixture{
		items:  items,
		events: events,
		links:  links,
		sender: sender,
		svc:    NewService(items, ledgerSvc, dispatcher, clock, nil),
	}
}

func validItem() *domain.Item {
	return &domain.Item{
		OwnerID:   "owner-1",
		Title:     "Netflix",
		Price:     599,
		Currency:  domain.CurrencyRUB,
		Period:    domain.PeriodMonth,
		StartDate: time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateRejectsInvalidItemBeforeStorage(t *testing.T) {
	f := newFixture(t)

	item := validItem()
	item.Price = -1

	_, err := f.svc.Create(context.Background(), item)
	if !errors.Is(err, domain.ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}
}

func TestCreatePersistsAndRecordsLifecycleEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var recorded *domain.Event
	f.items.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	f.events.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.Event) error {
			recorded = e
			return nil
		})
	f.links.EXPECT().GetByOwner(gomock.Any(), "owner-1").Return(nil, domain.ErrLinkNotFound)

	created, err := f.svc.Create(ctx, validItem())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("expected a generated item ID")
	}
	if !created.Active {
		t.Error("expected new item to be active")
	}
	if recorded == nil {
		t.Fatal("expected a ledger event")
	}
	if recorded.Type != domain.EventItemCreated {
		t.Errorf("expected item_created event, got %s", recorded.Type)
	}
	if recorded.ItemID != created.ID {
		t.Errorf("event item ID = %s, want %s", recorded.ItemID, created.ID)
	}
}

func TestCreateFailsWhenLedgerFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	storeErr := errors.New("insert failed")

	f.items.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	f.events.EXPECT().Insert(ctx, gomock.Any()).Return(storeErr)

	_, err := f.svc.Create(ctx, validItem())
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected ledger failure to propagate, got %v", err)
	}
}

func TestCreateSucceedsWhenChannelSendFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.items.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	f.events.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	f.links.EXPECT().GetByOwner(gomock.Any(), "owner-1").
		Return(&domain.ChannelLink{OwnerID: "owner-1", ChatID: "42"}, nil)
	f.sender.EXPECT().Send(gomock.Any(), "42", gomock.Any()).
		Return(errors.New("telegram unreachable"))

	if _, err := f.svc.Create(ctx, validItem()); err != nil {
		t.Fatalf("channel failure must not fail the create: %v", err)
	}
}

func TestUpdatePreservesCreatedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	createdAt := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	existing := validItem()
	existing.ID = "item-1"
	existing.CreatedAt = createdAt

	updated := validItem()
	updated.ID = "item-1"
	updated.Price = 799

	f.items.EXPECT().GetByID(ctx, "owner-1", "item-1").Return(existing, nil)
	f.items.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	f.events.EXPECT().Insert(ctx, gomock.Any()).Return(nil)
	f.links.EXPECT().GetByOwner(gomock.Any(), "owner-1").Return(nil, domain.ErrLinkNotFound)

	got, err := f.svc.Update(ctx, updated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt = %v, want original %v", got.CreatedAt, createdAt)
	}
}

func TestUpdateUnknownItemReturnsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.items.EXPECT().GetByID(ctx, "owner-1", "missing").
		Return(nil, domain.ErrItemNotFound)

	item := validItem()
	item.ID = "missing"
	if _, err := f.svc.Update(ctx, item); !errors.Is(err, domain.ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestDeleteRecordsEventBeforeRemovingRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing := validItem()
	existing.ID = "item-1"

	f.items.EXPECT().GetByID(ctx, "owner-1", "item-1").Return(existing, nil)
	recorded := f.events.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.Event) error {
			if e.Type != domain.EventItemDeleted {
				t.Errorf("expected item_deleted event, got %s", e.Type)
			}
			return nil
		})
	f.links.EXPECT().GetByOwner(gomock.Any(), "owner-1").Return(nil, domain.ErrLinkNotFound)
	f.items.EXPECT().Delete(ctx, "owner-1", "item-1").Return(nil).After(recorded)

	if err := f.svc.Delete(ctx, "owner-1", "item-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteAbortsWhenEventCannotBeRecorded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing := validItem()
	existing.ID = "item-1"

	f.items.EXPECT().GetByID(ctx, "owner-1", "item-1").Return(existing, nil)
	f.events.EXPECT().Insert(ctx, gomock.Any()).Return(errors.New("db down"))

	if err := f.svc.Delete(ctx, "owner-1", "item-1"); err == nil {
		t.Fatal("expected delete to abort when the ledger write fails")
	}
}

func TestListDecoratesActiveItemsWithNextCharge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	active := validItem()
	active.ID = "item-1"
	inactive := validItem()
	inactive.ID = "item-2"
	inactive.Active = false
	active.Active = true

	f.items.EXPECT().ListByOwner(ctx, "owner-1").
		Return([]*domain.Item{active, inactive}, nil)

	listed, err := f.svc.List(ctx, "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 items, got %d", len(listed))
	}

	// Clock is 2025-03-10; a monthly item started Jan 15 charges Mar 15.
	if listed[0].NextCharge != "2025-03-15" {
		t.Errorf("NextCharge = %s, want 2025-03-15", listed[0].NextCharge)
	}
	if listed[0].DaysUntil != 5 {
		t.Errorf("DaysUntil = %d, want 5", listed[0].DaysUntil)
	}
	if listed[1].NextCharge != "" || listed[1].DaysUntil != -1 {
		t.Errorf("inactive item should carry no schedule, got %q/%d",
			listed[1].NextCharge, listed[1].DaysUntil)
	}
}
