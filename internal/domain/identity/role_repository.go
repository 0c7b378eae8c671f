package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// FindByID finds a role by ID, with permissions loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// FindByIDs finds roles by IDs, with permissions loaded
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Role, error)

	// FindByName finds a role by name
	FindByName(ctx context.Context, name string) (*Role, error)

	// FindAll finds roles matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Role, error)

	// Save creates or updates a role together with its permissions
	Save(ctx context.Context, role *Role) error

	// Delete deletes a role, its permissions and its user assignments
	Delete(ctx context.Context, id uuid.UUID) error

	// CountUsers counts the users assigned to a role
	CountUsers(ctx context.Context, roleID uuid.UUID) (int64, error)
}
