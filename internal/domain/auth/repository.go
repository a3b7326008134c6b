package auth

import (
	"context"

	"larder/internal/core/id"
)

// Repository defines user persistence.
type Repository interface {
	// Create inserts a new user.
	Create(ctx context.Context, u *User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id id.ID) (*User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update persists login bookkeeping and profile changes.
	Update(ctx context.Context, u *User) error
}
