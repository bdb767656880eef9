package ports

import (
	"context"

	"github.com/ironguard/inventory-server/internal/core/domain"
)

// CredentialStore is the read-only lookup the sign-in flow depends on.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	CredentialStore
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns users newest-updated first. limit <= 0 means no limit.
	List(ctx context.Context, limit int64) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}
