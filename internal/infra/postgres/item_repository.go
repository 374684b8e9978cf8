package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/subtrackhq/subtrack/internal/domain"
)

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) domain.ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) error {
	if err := r.db.WithContext(ctx).Create(itemToRow(item)).Error; err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", item.OwnerID).
		Select("*").
		Omit("id", "owner_id").
		Updates(itemToRow(item))
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, ownerID, itemID string) error {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, itemID).
		Delete(&itemRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *itemRepository) GetByID(ctx context.Context, ownerID, itemID string) (*domain.Item, error) {
	var row itemRow
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, itemID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to load item: %w", err)
	}
	return rowToItem(&row)
}

func (r *itemRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Item, error) {
	var rows []itemRow
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return rowsToItems(rows)
}

func (r *itemRepository) ListActive(ctx context.Context) ([]*domain.Item, error) {
	var rows []itemRow
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("owner_id ASC, created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active items: %w", err)
	}
	return rowsToItems(rows)
}

func rowsToItems(rows []itemRow) ([]*domain.Item, error) {
	items := make([]*domain.Item, 0, len(rows))
	for i := range rows {
		item, err := rowToItem(&rows[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
