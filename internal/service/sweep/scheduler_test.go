package sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/subtrackhq/subtrack/internal/config"
	"github.com/subtrackhq/subtrack/internal/domain"
	"github.com/subtrackhq/subtrack/internal/service/dispatch"
	"github.com/subtrackhq/subtrack/internal/service/ledger"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fixture struct {
	items  *domain.MockItemRepository
	marks  *domain.MockReminderMarkRepository
	events *domain.MockNotificationRepository
	links  *domain.MockChannelLinkRepository
	runner *Runner
}

// newFixture builds a runner whose clock reads 2025-03-08. The monthly
// report is disabled unless a test opts in.
func newFixture(t *testing.T, cfg *config.ReminderConfig) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	items := domain.NewMockItemRepository(ctrl)
	marks := domain.NewMockReminderMarkRepository(ctrl)
	events := domain.NewMockNotificationRepository(ctrl)
	links := domain.NewMockChannelLinkRepository(ctrl)
	sender := domain.NewMockChannelSender(ctrl)

	clock := fixedClock{t: time.Date(2025, time.March, 8, 9, 0, 0, 0, time.UTC)}
	ledgerSvc := ledger.NewService(events, clock)
	dispatcher := dispatch.NewDispatcher(links, sender, events, nil, nil, time.Second)

	if cfg == nil {
		cfg = &config.ReminderConfig{Offsets: []int{7, 3, 1}}
	}

	return &fixture{
		items:  items,
		marks:  marks,
		events: events,
		links:  links,
		runner: NewRunner(items, marks, ledgerSvc, dispatcher, nil, clock, nil, cfg),
	}
}

// monthlyItem charges on the 15th; with the clock at Mar 8 the next
// charge is 7 days out.
func monthlyItem() *domain.Item {
	return &domain.Item{
		ID:        "item-1",
		OwnerID:   "owner-1",
		Title:     "Netflix",
		Price:     599,
		Currency:  domain.CurrencyRUB,
		Period:    domain.PeriodMonth,
		StartDate: time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC),
		Active:    true,
	}
}

func TestRunOnceFiresReminderAtMatchingOffset(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	item := monthlyItem()

	f.items.EXPECT().ListActive(gomock.Any()).Return([]*domain.Item{item}, nil)
	f.marks.EXPECT().MarkIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.events.EXPECT().ReminderExists(gomock.Any(), gomock.Any()).Return(false, nil)

	var recorded *domain.Event
	f.events.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.Event) error {
			recorded = e
			return nil
		})
	f.links.EXPECT().GetByOwner(gomock.Any(), "owner-1").Return(nil, domain.ErrLinkNotFound)

	report := f.runner.RunOnce(ctx)
	if len(report.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}
	if report.RemindersSent != 1 {
		t.Fatalf("RemindersSent = %d, want 1", report.RemindersSent)
	}
	if recorded.Type != domain.EventPaymentReminder {
		t.Errorf("event type = %s, want payment_reminder", recorded.Type)
	}
	if recorded.OffsetDays != 7 {
		t.Errorf("OffsetDays = %d, want 7", recorded.OffsetDays)
	}
	wantCycleStart := time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC)
	if !recorded.CycleStart.Equal(wantCycleStart) {
		t.Errorf("CycleStart = %v, want %v", recorded.CycleStart, wantCycleStart)
	}
}

func TestRunOnceSkipsItemWithNoMatchingOffset(t *testing.T) {
	f := newFixture(t, nil)

	item := monthlyItem()
	// Charges on the 20th; 12 days out matches no default offset.
	item.StartDate = time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

	f.items.EXPECT().ListActive(gomock.Any()).Return([]*domain.Item{item}, nil)

	report := f.runner.RunOnce(context.Background())
	if report.RemindersSent != 0 {
		t.Fatalf("RemindersSent = %d, want 0", report.RemindersSent)
	}
	if report.ItemsSeen != 1 {
		t.Fatalf("ItemsSeen = %d, want 1", report.ItemsSeen)
	}
}

func TestRunOnceHonorsFastPathMark(t *testing.T) {
	f := newFixture(t, nil)

	f.items.EXPECT().ListActive(gomock.Any()).Return([]*domain.Item{monthlyItem()}, nil)
	f.marks.EXPECT().MarkIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

	report := f.runner.RunOnce(context.Background())
	if report.RemindersSent != 0 {
		t.Fatalf("RemindersSent = %d, want 0 when scope already marked", report.RemindersSent)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", report.Errors)
	}
}

func TestRunOnceDegradesToLedgerWhenMarkStoreFails(t *testing.T) {
	f := newFixture(t, nil)

	f.items.EXPECT().ListActive(gomock.Any()).Return([]*domain.Item{monthlyItem()}, nil)
	f.marks.EXPECT().MarkIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, errors.New("redis down"))
	f.events.EXPECT().ReminderExists(gomock.Any(), gomock.Any()).Return(true, nil)

	report := f.runner.RunOnce(context.Background())
	if report.RemindersSent != 0 {
		t.Fatalf("RemindersSent = %d, want 0", report.RemindersSent)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("mark store outage must not surface as a failure: %v", report.Errors)
	}
}

func TestRunOnceToleratesDuplicateScopeRace(t *testing.T) {
	f := newFixture(t, nil)

	f.items.EXPECT().ListActive(gomock.Any()).Return([]*domain.Item{monthlyItem()}, nil)
	f.marks.EXPECT().MarkIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.events.EXPECT().ReminderExists(gomock.Any(), gomock.Any()).Return(false, nil)
	f.events.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(domain.ErrDuplicateScope)

	report := f.runner.RunOnce(context.Background())
	if report.RemindersSent != 0 {
		t.Fatalf("RemindersSent = %d, want 0", report.RemindersSent)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("losing the conditional insert is not a failure: %v", report.Errors)
	}
}

func TestRunOnceIsolatesPerItemFailures(t *testing.T) {
	f := newFixture(t, nil)

	broken := monthlyItem()
	broken.ID = "item-broken"
	broken.Period = domain.Period("weekly")

	healthy := monthlyItem()

	f.items.EXPECT().ListActive(gomock.Any()).
		Return([]*domain.Item{broken, healthy}, nil)
	f.marks.EXPECT().MarkIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.events.EXPECT().ReminderExists(gomock.Any(), gomock.Any()).Return(false, nil)
	f.events.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.links.EXPECT().GetByOwner(gomock.Any(), "owner-1").Return(nil, domain.ErrLinkNotFound)

	report := f.runner.RunOnce(context.Background())
	if report.RemindersSent != 1 {
		t.Fatalf("RemindersSent = %d, want 1", report.RemindersSent)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected exactly one failure, got %v", report.Errors)
	}
	if !errors.Is(report.Errors[0], domain.ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", report.Errors[0])
	}
}

func TestRunOnceReleasesMarkWhenRecordFails(t *testing.T) {
	f := newFixture(t, nil)

	scope := domain.ReminderScope{
		OwnerID:    "owner-1",
		ItemID:     "item-1",
		OffsetDays: 7,
		CycleStart: time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC),
	}

	f.items.EXPECT().ListActive(gomock.Any()).
		Return([]*domain.Item{monthlyItem()}, nil).Times(2)
	f.marks.EXPECT().MarkIfAbsent(gomock.Any(), scope, gomock.Any()).
		Return(true, nil).Times(2)
	f.events.EXPECT().ReminderExists(gomock.Any(), scope).
		Return(false, nil).Times(2)

	// First pass: the insert fails after the mark was set, so the mark
	// must be released. Second pass: the reminder goes through.
	f.events.EXPECT().Insert(gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset"))
	f.marks.EXPECT().Unmark(gomock.Any(), scope).Return(nil)
	f.events.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.links.EXPECT().GetByOwner(gomock.Any(), "owner-1").Return(nil, domain.ErrLinkNotFound)

	report := f.runner.RunOnce(context.Background())
	if report.RemindersSent != 0 {
		t.Fatalf("RemindersSent = %d, want 0 on the failing pass", report.RemindersSent)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected one failure, got %v", report.Errors)
	}

	report = f.runner.RunOnce(context.Background())
	if report.RemindersSent != 1 {
		t.Fatalf("RemindersSent = %d, want 1 on the retry pass", report.RemindersSent)
	}
	if len(report.Errors) != 0 {
		t.Fatalf("unexpected errors on retry: %v", report.Errors)
	}
}

func TestRunOnceSweepsRemainingOffsetsAfterFailure(t *testing.T) {
	f := newFixture(t, nil)

	// Duplicate override offsets both land on today; the first failing
	// must not skip the second.
	item := monthlyItem()
	item.ReminderDays = []int{7, 7}

	f.items.EXPECT().ListActive(gomock.Any()).Return([]*domain.Item{item}, nil)
	f.marks.EXPECT().MarkIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(true, nil).Times(2)
	f.events.EXPECT().ReminderExists(gomock.Any(), gomock.Any()).
		Return(false, nil).Times(2)
	f.events.EXPECT().Insert(gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset"))
	f.marks.EXPECT().Unmark(gomock.Any(), gomock.Any()).Return(nil)
	f.events.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	f.links.EXPECT().GetByOwner(gomock.Any(), "owner-1").Return(nil, domain.ErrLinkNotFound)

	report := f.runner.RunOnce(context.Background())
	if report.RemindersSent != 1 {
		t.Fatalf("RemindersSent = %d, want 1", report.RemindersSent)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("expected one failure, got %v", report.Errors)
	}
}

func TestStartFinishesSweepStartedBeforeCancel(t *testing.T) {
	f := newFixture(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f.items.EXPECT().ListActive(gomock.Any()).DoAndReturn(
		func(_ context.Context) ([]*domain.Item, error) {
			cancel()
			return []*domain.Item{monthlyItem()}, nil
		})
	f.marks.EXPECT().MarkIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(callCtx context.Context, _ domain.ReminderScope, _ time.Duration) (bool, error) {
			if callCtx.Err() != nil {
				t.Error("sweep pass observed a canceled context")
			}
			return false, nil
		})

	done := make(chan struct{})
	go func() {
		f.runner.Start(ctx)
		close(done)
	}()
	<-done
}

func TestRunOncePrefersItemReminderOverrides(t *testing.T) {
	f := newFixture(t, nil)

	item := monthlyItem()
	// 7 days out, but the item only wants a 2-day reminder.
	item.ReminderDays = []int{2}

	f.items.EXPECT().ListActive(gomock.Any()).Return([]*domain.Item{item}, nil)

	report := f.runner.RunOnce(context.Background())
	if report.RemindersSent != 0 {
		t.Fatalf("RemindersSent = %d, want 0 with a 2-day override at 7 days out", report.RemindersSent)
	}
}

func TestRunOnceEmitsMonthlyReportOncePerOwner(t *testing.T) {
	cfg := &config.ReminderConfig{Offsets: []int{1}, MonthlyReportEnabled: true}
	f := newFixture(t, cfg)

	item := monthlyItem()
	yearly := monthlyItem()
	yearly.ID = "item-2"
	yearly.Period = domain.PeriodYear
	yearly.Price = 1200

	f.items.EXPECT().ListActive(gomock.Any()).
		Return([]*domain.Item{item, yearly}, nil)

	monthStart := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	f.events.EXPECT().
		TypeExistsSince(gomock.Any(), "owner-1", domain.EventPeriodicReport, monthStart).
		Return(false, nil)

	var recorded *domain.Event
	f.events.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.Event) error {
			recorded = e
			return nil
		})
	f.links.EXPECT().GetByOwner(gomock.Any(), "owner-1").Return(nil, domain.ErrLinkNotFound)

	report := f.runner.RunOnce(context.Background())
	if report.ReportsSent != 1 {
		t.Fatalf("ReportsSent = %d, want 1", report.ReportsSent)
	}
	if recorded.Type != domain.EventPeriodicReport {
		t.Errorf("event type = %s, want periodic_report", recorded.Type)
	}
}

func TestRunOnceSkipsMonthlyReportAlreadySent(t *testing.T) {
	cfg := &config.ReminderConfig{Offsets: []int{1}, MonthlyReportEnabled: true}
	f := newFixture(t, cfg)

	f.items.EXPECT().ListActive(gomock.Any()).
		Return([]*domain.Item{monthlyItem()}, nil)
	f.events.EXPECT().
		TypeExistsSince(gomock.Any(), "owner-1", domain.EventPeriodicReport, gomock.Any()).
		Return(true, nil)

	report := f.runner.RunOnce(context.Background())
	if report.ReportsSent != 0 {
		t.Fatalf("ReportsSent = %d, want 0", report.ReportsSent)
	}
}

func TestRunOnceReportsListFailure(t *testing.T) {
	f := newFixture(t, nil)

	f.items.EXPECT().ListActive(gomock.Any()).Return(nil, errors.New("db down"))

	report := f.runner.RunOnce(context.Background())
	if len(report.Errors) != 1 {
		t.Fatalf("expected one error, got %v", report.Errors)
	}
	if report.ItemsSeen != 0 {
		t.Fatalf("ItemsSeen = %d, want 0", report.ItemsSeen)
	}
}
