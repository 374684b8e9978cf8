// Package item orchestrates subscription CRUD. Every mutation records a
// lifecycle event in the ledger before it is reported successful, then
// hands the event to the dispatcher best-effort.
package item

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/subtrackhq/subtrack/internal/domain"
	"github.com/subtrackhq/subtrack/internal/observability/metrics"
	"github.com/subtrackhq/subtrack/internal/service/billing"
	"github.com/subtrackhq/subtrack/internal/service/dispatch"
	"github.com/subtrackhq/subtrack/internal/service/ledger"
)

type Service struct {
	items      domain.ItemRepository
	ledger     *ledger.Service
	dispatcher *dispatch.Dispatcher
	clock      domain.Clock
	metrics    *metrics.EngineMetrics
}

func NewService(
	items domain.ItemRepository,
	ledgerSvc *ledger.Service,
	dispatcher *dispatch.Dispatcher,
	clock domain.Clock,
	engineMetrics *metrics.EngineMetrics,
) *Service {
	return &Service{
		items:      items,
		ledger:     ledgerSvc,
		dispatcher: dispatcher,
		clock:      clock,
		metrics:    engineMetrics,
	}
}

// Create validates and stores a new item, records item_created, and
// attempts channel delivery. A storage or ledger failure fails the
// whole operation; a channel failure does not.
func (s *Service) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	item.ID = uuid.NewString()
	item.Active = true
	item.CreatedAt = s.clock.Now().UTC()

	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	if err := s.recordAndDispatch(ctx, item, domain.EventItemCreated); err != nil {
		return nil, err
	}

	return item, nil
}

// Update replaces every mutable field of an existing item.
func (s *Service) Update(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	existing, err := s.items.GetByID(ctx, item.OwnerID, item.ID)
	if err != nil {
		return nil, err
	}
	item.CreatedAt = existing.CreatedAt

	if err := item.Validate(); err != nil {
		return nil, err
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	if err := s.recordAndDispatch(ctx, item, domain.EventItemUpdated); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes the item. The terminal lifecycle event is recorded
// before the row disappears, so the ledger keeps the item's name even
// after the delete.
func (s *Service) Delete(ctx context.Context, ownerID, itemID string) error {
	item, err := s.items.GetByID(ctx, ownerID, itemID)
	if err != nil {
		return err
	}

	if err := s.recordAndDispatch(ctx, item, domain.EventItemDeleted); err != nil {
		return err
	}

	if err := s.items.Delete(ctx, ownerID, itemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, ownerID, itemID string) (*domain.Item, error) {
	return s.items.GetByID(ctx, ownerID, itemID)
}

// ListedItem decorates an item with its charge schedule for display.
type ListedItem struct {
	Item       *domain.Item
	NextCharge string
	DaysUntil  int
}

// List returns the owner's items with next-charge decoration. A date
// computation failure on one item degrades that item's decoration
// instead of failing the listing.
func (s *Service) List(ctx context.Context, ownerID string) ([]ListedItem, error) {
	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	now := s.clock.Now()
	listed := make([]ListedItem, 0, len(items))
	for _, it := range items {
		entry := ListedItem{Item: it, DaysUntil: -1}
		if it.Active {
			if next, err := billing.NextCharge(it.StartDate, it.Period, now); err == nil {
				entry.NextCharge = next.Format("2006-01-02")
				entry.DaysUntil = billing.DaysUntil(next, now)
			} else {
				slog.WarnContext(ctx, "failed to compute next charge",
					slog.String("item_id", it.ID),
					slog.String("error", err.Error()),
				)
			}
		}
		listed = append(listed, entry)
	}
	return listed, nil
}

func (s *Service) recordAndDispatch(ctx context.Context, item *domain.Item, eventType domain.EventType) error {
	event, err := s.ledger.Record(ctx, ledger.RecordInput{
		OwnerID: item.OwnerID,
		ItemID:  item.ID,
		Type:    eventType,
		Params: ledger.MessageParams{
			ItemTitle: item.Title,
			Price:     item.Price,
			Currency:  item.Currency,
		},
	})
	if err != nil {
		return err
	}
	s.metrics.RecordEvent(ctx, eventType.String())

	s.dispatcher.Attempt(ctx, event)
	return nil
}
