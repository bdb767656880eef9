package ports

import (
	"context"

	"github.com/ironguard/inventory-server/internal/core/domain"
)

// CreateUserInput carries the fields for a new account.
type CreateUserInput struct {
	Firstname      string
	Lastname       string
	Email          string
	Password       string
	Role           domain.Role
	Meta           string
	IdempotencyKey string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Firstname *string
	Lastname  *string
	Email     *string
	Password  *string
	Role      *domain.Role
	Meta      *string
}

// UserService manages accounts. Every operation except Me is admin-only.
type UserService interface {
	Me(ctx context.Context, id domain.Identity) (*domain.User, error)
	List(ctx context.Context, id domain.Identity) ([]*domain.User, error)
	Get(ctx context.Context, id domain.Identity, userID string) (*domain.User, error)
	// Create returns replayed=true when the idempotency key matched an earlier create.
	Create(ctx context.Context, id domain.Identity, in CreateUserInput) (u *domain.User, replayed bool, err error)
	Update(ctx context.Context, id domain.Identity, userID string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id domain.Identity, userID string) error
}

// CategoryInput carries the fields for a new category.
type CategoryInput struct {
	ParentID       *string
	Name           string
	Description    string
	Meta           string
	IdempotencyKey string
}

// UpdateCategoryInput is a partial update. ClearParent moves the category
// back to the root.
type UpdateCategoryInput struct {
	ParentID    *string
	ClearParent bool
	Name        *string
	Description *string
	Meta        *string
}

// CategoryDetail is a category together with its direct children and items.
type CategoryDetail struct {
	Category *domain.Category
	Children []*domain.Category
	Items    []*domain.Item
}

// CategoryService manages categories. Reads are open to any authenticated
// identity, writes are admin-only.
type CategoryService interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Get(ctx context.Context, categoryID string) (*CategoryDetail, error)
	Create(ctx context.Context, id domain.Identity, in CategoryInput) (c *domain.Category, replayed bool, err error)
	Update(ctx context.Context, id domain.Identity, categoryID string, in UpdateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id domain.Identity, categoryID string) error
}

// ItemInput carries the fields for a new item.
type ItemInput struct {
	CategoryID     *string
	Name           string
	Description    string
	Quantity       int
	Meta           string
	IdempotencyKey string
}

// UpdateItemInput is a partial update. ClearCategory uncategorises the item.
type UpdateItemInput struct {
	CategoryID    *string
	ClearCategory bool
	Name          *string
	Description   *string
	Quantity      *int
	Meta          *string
}

// ItemService manages items. Reads are open to any authenticated identity,
// writes are admin-only.
type ItemService interface {
	List(ctx context.Context) ([]*domain.Item, error)
	Get(ctx context.Context, itemID string) (*domain.Item, error)
	Create(ctx context.Context, id domain.Identity, in ItemInput) (it *domain.Item, replayed bool, err error)
	Update(ctx context.Context, id domain.Identity, itemID string, in UpdateItemInput) (*domain.Item, error)
	Delete(ctx context.Context, id domain.Identity, itemID string) error
}

// Inventory is the top level of the tree: root categories and uncategorised items.
type Inventory struct {
	Categories []*domain.Category
	Items      []*domain.Item
}

// Dashboard summarises the store. User figures stay zero for non-admins.
type Dashboard struct {
	CountUsers       int64
	CountCategories  int64
	CountItems       int64
	LatestUsers      []*domain.User
	LatestCategories []*domain.Category
	LatestItems      []*domain.Item
}

// OverviewService serves the read-only aggregate views.
type OverviewService interface {
	Inventory(ctx context.Context) (*Inventory, error)
	Dashboard(ctx context.Context, id domain.Identity) (*Dashboard, error)
}
