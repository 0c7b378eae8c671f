package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// Permission is a value object in "resource:action" form,
// e.g. "marketplace.category:create".
type Permission struct {
	RoleID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Code     string    `gorm:"type:varchar(100);primaryKey" json:"code"`
	Resource string    `gorm:"type:varchar(80);not null" json:"resource"`
	Action   string    `gorm:"type:varchar(20);not null" json:"action"`
}

// TableName returns the table name for GORM
func (Permission) TableName() string {
	return "role_permissions"
}

// NewPermissionFromCode parses a "resource:action" code into a Permission
func NewPermissionFromCode(code string) (Permission, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(code)), ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Permission{}, shared.NewDomainError("INVALID_PERMISSION",
			"Permission code must be in 'resource:action' form")
	}
	return Permission{
		Code:     parts[0] + ":" + parts[1],
		Resource: parts[0],
		Action:   parts[1],
	}, nil
}

// Role groups a set of permissions that can be assigned to admin users
type Role struct {
	shared.BaseAggregateRoot
	Name        string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string       `gorm:"type:varchar(255)"`
	IsSystem    bool         `gorm:"not null;default:false"`
	Permissions []Permission `gorm:"-"` // loaded from role_permissions by the repository
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a new role with the given permission codes
func NewRole(name, description string, permissionCodes []string) (*Role, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}

	role := &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Permissions:       make([]Permission, 0, len(permissionCodes)),
	}

	if err := role.SetPermissions(permissionCodes); err != nil {
		return nil, err
	}

	return role, nil
}

// Update updates the role's name and description.
// System roles keep their name.
func (r *Role) Update(name, description string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}
	if r.IsSystem && name != r.Name {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be renamed")
	}

	r.Name = name
	r.Description = description
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// SetPermissions replaces the role's permissions with the given codes,
// dropping duplicates.
func (r *Role) SetPermissions(codes []string) error {
	seen := make(map[string]struct{}, len(codes))
	perms := make([]Permission, 0, len(codes))

	for _, code := range codes {
		perm, err := NewPermissionFromCode(code)
		if err != nil {
			return err
		}
		if _, dup := seen[perm.Code]; dup {
			continue
		}
		perm.RoleID = r.ID
		seen[perm.Code] = struct{}{}
		perms = append(perms, perm)
	}

	r.Permissions = perms
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// HasPermission checks whether the role grants the given permission code
func (r *Role) HasPermission(code string) bool {
	for _, p := range r.Permissions {
		if p.Code == code {
			return true
		}
	}
	return false
}

// PermissionCodes returns the role's permission codes
func (r *Role) PermissionCodes() []string {
	codes := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		codes[i] = p.Code
	}
	return codes
}
