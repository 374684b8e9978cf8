package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/subtrackhq/subtrack/internal/domain"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var testNow = time.Date(2024, time.February, 8, 10, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *domain.MockNotificationRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := domain.NewMockNotificationRepository(ctrl)
	return NewService(repo, fixedClock{now: testNow}), repo
}

func TestRecordPersistsBeforeReturning(t *testing.T) {
	svc, repo := newTestService(t)

	var inserted *domain.Event
	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.Event) error {
			inserted = e
			return nil
		})

	event, err := svc.Record(context.Background(), RecordInput{
		OwnerID: "owner-1",
		ItemID:  "item-1",
		Type:    domain.EventItemCreated,
		Params:  MessageParams{ItemTitle: "Streaming A", Price: 299, Currency: domain.CurrencyRUB},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inserted == nil {
		t.Fatal("event was not inserted")
	}
	if event.ID == "" {
		t.Error("event id not assigned")
	}
	if !event.SentAt.Equal(testNow) {
		t.Errorf("sent at = %v, want %v", event.SentAt, testNow)
	}
	if event.Delivered || event.Read {
		t.Error("new events must start undelivered and unread")
	}
	if !strings.Contains(event.Message, "Streaming A") {
		t.Errorf("message %q does not mention the item", event.Message)
	}
}

func TestRecordPropagatesPersistenceFailure(t *testing.T) {
	svc, repo := newTestService(t)

	storageErr := errors.New("connection refused")
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(storageErr)

	_, err := svc.Record(context.Background(), RecordInput{
		OwnerID: "owner-1",
		Type:    domain.EventTest,
	})
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected persistence error to propagate, got %v", err)
	}
}

func TestRecordRejectsUnknownType(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Record(context.Background(), RecordInput{
		OwnerID: "owner-1",
		Type:    domain.EventType("bogus"),
	})
	if !errors.Is(err, domain.ErrInvalidEventType) {
		t.Fatalf("expected ErrInvalidEventType, got %v", err)
	}
}

func TestRecordRequiresOwner(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Record(context.Background(), RecordInput{Type: domain.EventTest})
	if !errors.Is(err, domain.ErrOwnerRequired) {
		t.Fatalf("expected ErrOwnerRequired, got %v", err)
	}
}

func TestRecordPassesThroughDuplicateScope(t *testing.T) {
	svc, repo := newTestService(t)

	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(domain.ErrDuplicateScope)

	_, err := svc.Record(context.Background(), RecordInput{
		OwnerID:    "owner-1",
		ItemID:     "item-1",
		Type:       domain.EventPaymentReminder,
		OffsetDays: 7,
		CycleStart: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, domain.ErrDuplicateScope) {
		t.Fatalf("expected ErrDuplicateScope, got %v", err)
	}
}

func TestComposeCoversEveryEventType(t *testing.T) {
	for _, eventType := range domain.AllEventTypes {
		title, message, err := Compose(eventType, MessageParams{
			ItemTitle:  "Item",
			Price:      100,
			Currency:   domain.CurrencyRUB,
			DaysUntil:  3,
			ChargeDate: testNow,
			ItemCount:  2,
		})
		if err != nil {
			t.Errorf("Compose(%s) returned error: %v", eventType, err)
		}
		if title == "" || message == "" {
			t.Errorf("Compose(%s) rendered empty title or message", eventType)
		}
	}
}

func TestComposeReminderWording(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "today"},
		{1, "tomorrow"},
		{7, "in 7 days"},
	}

	for _, tt := range tests {
		_, message, err := Compose(domain.EventPaymentReminder, MessageParams{
			ItemTitle:  "Streaming A",
			Price:      299,
			Currency:   domain.CurrencyRUB,
			DaysUntil:  tt.days,
			ChargeDate: testNow,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(message, tt.want) {
			t.Errorf("reminder for %d days = %q, want it to contain %q", tt.days, message, tt.want)
		}
	}
}

func TestHistoryIncludesUnreadCount(t *testing.T) {
	svc, repo := newTestService(t)

	events := []*domain.Event{
		{ID: "e2", OwnerID: "owner-1"},
		{ID: "e1", OwnerID: "owner-1"},
	}
	repo.EXPECT().ListByOwner(gomock.Any(), "owner-1", 50, 0).Return(events, nil)
	repo.EXPECT().CountUnread(gomock.Any(), "owner-1").Return(1, nil)

	page, err := svc.History(context.Background(), "owner-1", 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Events) != 2 {
		t.Errorf("expected 2 events, got %d", len(page.Events))
	}
	if page.Unread != 1 {
		t.Errorf("unread = %d, want 1", page.Unread)
	}
}
