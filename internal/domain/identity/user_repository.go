package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID, with role IDs loaded
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username or email
	FindByUsername(ctx context.Context, usernameOrEmail string) (*User, error)

	// FindAll finds users matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)

	// Save creates or updates a user together with its role assignments
	Save(ctx context.Context, user *User) error

	// Delete deletes a user and its role assignments
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts users matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
