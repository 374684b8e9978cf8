package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/subtrackhq/subtrack/internal/domain"
)

type channelLinkRepository struct {
	db *gorm.DB
}

func NewChannelLinkRepository(db *gorm.DB) domain.ChannelLinkRepository {
	return &channelLinkRepository{db: db}
}

// Save upserts the owner's link. Relinking replaces the previous chat
// and allow-list.
func (r *channelLinkRepository) Save(ctx context.Context, link *domain.ChannelLink) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			UpdateAll: true,
		}).
		Create(linkToRow(link)).Error
	if err != nil {
		return fmt.Errorf("failed to save channel link: %w", err)
	}
	return nil
}

func (r *channelLinkRepository) GetByOwner(ctx context.Context, ownerID string) (*domain.ChannelLink, error) {
	var row channelLinkRow
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to load channel link: %w", err)
	}
	return rowToLink(&row), nil
}

func (r *channelLinkRepository) Delete(ctx context.Context, ownerID string) error {
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Delete(&channelLinkRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete channel link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrLinkNotFound
	}
	return nil
}
