package domain

import "errors"

// Authentication and authorization.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAdminRequired      = errors.New("admin required")
)

// Inventory.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already in use")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category still has child categories or items")
	ErrInvalidParent    = errors.New("invalid parent category")
	ErrItemNotFound     = errors.New("item not found")
)

// ErrIdempotencyInProgress is returned while an earlier request with the
// same idempotency key is still being processed.
var ErrIdempotencyInProgress = errors.New("request with this idempotency key is still in progress")
