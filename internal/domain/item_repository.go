package domain

import "context"

//go:generate mockgen -source=item_repository.go -destination=item_repository_mock.go -package=domain

type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, ownerID, itemID string) error
	GetByID(ctx context.Context, ownerID, itemID string) (*Item, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Item, error)
	// ListActive returns every active item across all owners, for the
	// reminder sweep.
	ListActive(ctx context.Context) ([]*Item, error)
}
