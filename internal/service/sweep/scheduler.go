// Package sweep drives the reminder engine. A Runner periodically walks
// every active item, fires the reminders whose offsets land on today,
// and emits the monthly summary on the first sweep of each month.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/subtrackhq/subtrack/internal/config"
	"github.com/subtrackhq/subtrack/internal/domain"
	"github.com/subtrackhq/subtrack/internal/observability/metrics"
	"github.com/subtrackhq/subtrack/internal/observability/tracing"
	"github.com/subtrackhq/subtrack/internal/service/billing"
	"github.com/subtrackhq/subtrack/internal/service/dispatch"
	"github.com/subtrackhq/subtrack/internal/service/ledger"
)

// markTTL keeps fast-path dedup marks alive long past the cycle they
// guard. Expiry is harmless: the ledger's conditional insert still
// blocks a duplicate.
const markTTL = 45 * 24 * time.Hour

// Report summarizes one sweep pass. Errors collects per-item failures;
// a non-empty slice does not mean the sweep aborted.
type Report struct {
	RunID         string
	StartedAt     time.Time
	ItemsSeen     int
	RemindersSent int
	ReportsSent   int
	Errors        []error
}

type Runner struct {
	items      domain.ItemRepository
	marks      domain.ReminderMarkRepository
	ledger     *ledger.Service
	dispatcher *dispatch.Dispatcher
	recorder   domain.DispatchRecorder
	clock      domain.Clock
	metrics    *metrics.EngineMetrics
	cfg        *config.ReminderConfig
}

func NewRunner(
	items domain.ItemRepository,
	marks domain.ReminderMarkRepository,
	ledgerSvc *ledger.Service,
	dispatcher *dispatch.Dispatcher,
	recorder domain.DispatchRecorder,
	clock domain.Clock,
	engineMetrics *metrics.EngineMetrics,
	cfg *config.ReminderConfig,
) *Runner {
	return &Runner{
		items:      items,
		marks:      marks,
		ledger:     ledgerSvc,
		dispatcher: dispatcher,
		recorder:   recorder,
		clock:      clock,
		metrics:    engineMetrics,
		cfg:        cfg,
	}
}

// Start runs sweeps on the configured interval until the context is
// canceled. A sweep in flight finishes; cancellation is honored only
// between ticks.
func (r *Runner) Start(ctx context.Context) {
	interval := r.cfg.SweepInterval
	if interval <= 0 {
		interval = 24 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Ticks run detached from the shutdown signal so an in-flight
	// sweep is not cut off mid-write.
	tickCtx := context.WithoutCancel(ctx)

	r.runAndLog(tickCtx)
	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(tickCtx, "sweep runner stopped")
			return
		case <-ticker.C:
			r.runAndLog(tickCtx)
		}
	}
}

func (r *Runner) runAndLog(ctx context.Context) {
	report := r.RunOnce(ctx)
	slog.InfoContext(ctx, "sweep completed",
		slog.String("run_id", report.RunID),
		slog.Int("items_seen", report.ItemsSeen),
		slog.Int("reminders_sent", report.RemindersSent),
		slog.Int("reports_sent", report.ReportsSent),
		slog.Int("failures", len(report.Errors)),
	)
	for _, err := range report.Errors {
		slog.WarnContext(ctx, "sweep item failed",
			slog.String("run_id", report.RunID),
			slog.String("error", err.Error()),
		)
	}
}

// RunOnce performs a single sweep pass. An item that fails does not
// abort the pass; its error lands in the report.
func (r *Runner) RunOnce(ctx context.Context) *Report {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: r.clock.Now().UTC(),
	}

	ctx, span := tracing.StartSweepSpan(ctx, report.RunID)
	defer span.End()

	items, err := r.items.ListActive(ctx)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Errorf("failed to list active items: %w", err))
		r.finish(ctx, report)
		return report
	}
	report.ItemsSeen = len(items)

	now := r.clock.Now()
	for _, item := range items {
		sent, err := r.sweepItem(ctx, item, now)
		report.RemindersSent += sent
		if err != nil {
			report.Errors = append(report.Errors,
				fmt.Errorf("item %s: %w", item.ID, err))
		}
	}

	if r.cfg.MonthlyReportEnabled {
		report.ReportsSent = r.emitMonthlyReports(ctx, items, now, report)
	}

	r.finish(ctx, report)
	return report
}

// sweepItem fires every offset that lands on today for one item and
// returns the number of reminders actually recorded.
func (r *Runner) sweepItem(ctx context.Context, item *domain.Item, now time.Time) (int, error) {
	cycle, err := billing.CurrentCycle(item.StartDate, item.Period, now)
	if err != nil {
		return 0, fmt.Errorf("failed to compute billing cycle: %w", err)
	}
	daysUntil := billing.DaysUntil(cycle.End, now)

	sent := 0
	var errs []error
	for _, offset := range r.offsetsFor(item) {
		if daysUntil != offset {
			continue
		}
		// Offsets are independent; one failing must not starve the rest.
		fired, err := r.fireReminder(ctx, item, cycle, offset, daysUntil)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if fired {
			sent++
		}
	}
	return sent, errors.Join(errs...)
}

func (r *Runner) fireReminder(ctx context.Context, item *domain.Item, cycle billing.Cycle, offset, daysUntil int) (bool, error) {
	scope := domain.ReminderScope{
		OwnerID:    item.OwnerID,
		ItemID:     item.ID,
		OffsetDays: offset,
		CycleStart: cycle.Start,
	}

	// Fast path. A mark store failure degrades to the ledger check
	// instead of blocking the reminder.
	if r.marks != nil {
		fresh, err := r.marks.MarkIfAbsent(ctx, scope, markTTL)
		if err != nil {
			slog.WarnContext(ctx, "reminder mark store unavailable",
				slog.String("item_id", item.ID),
				slog.String("error", err.Error()),
			)
		} else if !fresh {
			return false, nil
		}
	}

	exists, err := r.ledger.ReminderExists(ctx, scope)
	if err != nil {
		return false, fmt.Errorf("failed to check reminder dedup: %w", err)
	}
	if exists {
		return false, nil
	}

	event, err := r.ledger.Record(ctx, ledger.RecordInput{
		OwnerID: item.OwnerID,
		ItemID:  item.ID,
		Type:    domain.EventPaymentReminder,
		Params: ledger.MessageParams{
			ItemTitle:  item.Title,
			Price:      item.Price,
			Currency:   item.Currency,
			DaysUntil:  daysUntil,
			ChargeDate: cycle.End,
		},
		OffsetDays: offset,
		CycleStart: cycle.Start,
	})
	if err != nil {
		// Another sweep won the conditional insert. Not a failure.
		if errors.Is(err, domain.ErrDuplicateScope) {
			return false, nil
		}
		// Release the fast-path mark so the next sweep retries
		// instead of skipping the reminder until the mark expires.
		if r.marks != nil {
			if unmarkErr := r.marks.Unmark(ctx, scope); unmarkErr != nil {
				slog.WarnContext(ctx, "failed to release reminder mark",
					slog.String("item_id", item.ID),
					slog.String("error", unmarkErr.Error()),
				)
			}
		}
		return false, fmt.Errorf("failed to record reminder: %w", err)
	}

	r.metrics.RecordReminder(ctx, offset)
	r.dispatcher.Attempt(ctx, event)
	return true, nil
}

// emitMonthlyReports sends one periodic summary per owner on the first
// sweep of each calendar month.
func (r *Runner) emitMonthlyReports(ctx context.Context, items []*domain.Item, now time.Time, report *Report) int {
	type ownerTotals struct {
		count   int
		monthly float64
	}
	byOwner := make(map[string]*ownerTotals)
	for _, item := range items {
		t, ok := byOwner[item.OwnerID]
		if !ok {
			t = &ownerTotals{}
			byOwner[item.OwnerID] = t
		}
		t.count++
		t.monthly += item.MonthlyPrice()
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	sent := 0
	for ownerID, totals := range byOwner {
		already, err := r.ledger.ReportSentSince(ctx, ownerID, monthStart)
		if err != nil {
			report.Errors = append(report.Errors,
				fmt.Errorf("owner %s: failed to check monthly report: %w", ownerID, err))
			continue
		}
		if already {
			continue
		}

		event, err := r.ledger.Record(ctx, ledger.RecordInput{
			OwnerID: ownerID,
			Type:    domain.EventPeriodicReport,
			Params: ledger.MessageParams{
				ItemCount:    totals.count,
				MonthlyTotal: totals.monthly,
			},
		})
		if err != nil {
			report.Errors = append(report.Errors,
				fmt.Errorf("owner %s: failed to record monthly report: %w", ownerID, err))
			continue
		}
		r.dispatcher.Attempt(ctx, event)
		sent++
	}
	return sent
}

func (r *Runner) offsetsFor(item *domain.Item) []int {
	if len(item.ReminderDays) > 0 {
		return item.ReminderDays
	}
	return r.cfg.Offsets
}

func (r *Runner) finish(ctx context.Context, report *Report) {
	duration := r.clock.Now().UTC().Sub(report.StartedAt)
	r.metrics.RecordSweep(ctx, duration, len(report.Errors))

	if r.recorder == nil {
		return
	}
	if err := r.recorder.RecordSweep(ctx, domain.SweepRecord{
		RunID:         report.RunID,
		StartedAt:     report.StartedAt,
		ItemsSeen:     report.ItemsSeen,
		RemindersSent: report.RemindersSent,
		ReportsSent:   report.ReportsSent,
		Failures:      len(report.Errors),
		Duration:      duration,
	}); err != nil {
		slog.WarnContext(ctx, "failed to record sweep outcome",
			slog.String("run_id", report.RunID),
			slog.String("error", err.Error()),
		)
	}
}
