package ports

import (
	"context"

	"github.com/ironguard/inventory-server/internal/core/domain"
)

// AuthService issues session tokens.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (string, error)
}

// TokenCodec signs claims into a compact token and verifies them back.
type TokenCodec interface {
	Encode(claims domain.Claims) (string, error)
	Decode(token string) (domain.Claims, error)
}

// PasswordVerifier compares a plaintext password with a stored hash.
// A false result with a nil error means "no match"; an error is only
// returned when the check could not run (for example the request ended).
type PasswordVerifier interface {
	Verify(ctx context.Context, plaintext, hash string) (bool, error)
}

// PasswordHasher turns a plaintext password into a storable hash.
type PasswordHasher func(plaintext string) (string, error)
