package ports

import (
	"context"

	"github.com/ironguard/inventory-server/internal/core/domain"
)

// CategoryFilter narrows a category listing.
type CategoryFilter struct {
	ParentID string // non-empty = children of this category
	RootOnly bool   // only categories without a parent (ignored when ParentID is set)
	Limit    int64  // <= 0 = no limit
}

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	// List returns matching categories ordered by updated_at descending.
	List(ctx context.Context, filter CategoryFilter) ([]*domain.Category, error)
	Count(ctx context.Context, filter CategoryFilter) (int64, error)
	Create(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// ItemFilter narrows an item listing.
type ItemFilter struct {
	CategoryID string // non-empty = items in this category
	RootOnly   bool   // only items without a category (ignored when CategoryID is set)
	Limit      int64  // <= 0 = no limit
}

// ItemRepository defines persistence operations for items.
type ItemRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Item, error)
	// List returns matching items ordered by updated_at descending.
	List(ctx context.Context, filter ItemFilter) ([]*domain.Item, error)
	Count(ctx context.Context, filter ItemFilter) (int64, error)
	Create(ctx context.Context, it *domain.Item) error
	Update(ctx context.Context, it *domain.Item) error
	Delete(ctx context.Context, id string) error
}
