package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/identity"
	"github.com/ikada/backend/internal/domain/shared"
)

// GormRoleRepository implements identity.RoleRepository using GORM.
// Permissions live in the role_permissions table and are replaced as a
// whole whenever the role is saved.
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// FindByID finds a role by ID with permissions loaded
func (r *GormRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	var role identity.Role
	if err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadPermissions(ctx, []*identity.Role{&role}); err != nil {
		return nil, err
	}
	return &role, nil
}

// FindByIDs finds roles by their IDs with permissions loaded.
// Missing IDs are skipped, not reported as errors.
func (r *GormRoleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]identity.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var roles []identity.Role
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&roles).Error; err != nil {
		return nil, err
	}

	ptrs := make([]*identity.Role, len(roles))
	for i := range roles {
		ptrs[i] = &roles[i]
	}
	if err := r.loadPermissions(ctx, ptrs); err != nil {
		return nil, err
	}
	return roles, nil
}

// FindByName finds a role by name (case-insensitive)
func (r *GormRoleRepository) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	var role identity.Role
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadPermissions(ctx, []*identity.Role{&role}); err != nil {
		return nil, err
	}
	return &role, nil
}

// FindAll finds all roles matching the filter
func (r *GormRoleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Role, error) {
	var roles []identity.Role
	query := r.db.WithContext(ctx).Model(&identity.Role{})

	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchPattern)
	}
	query = applyPagination(query, filter)

	if err := query.Order("name ASC").Find(&roles).Error; err != nil {
		return nil, err
	}

	ptrs := make([]*identity.Role, len(roles))
	for i := range roles {
		ptrs[i] = &roles[i]
	}
	if err := r.loadPermissions(ctx, ptrs); err != nil {
		return nil, err
	}
	return roles, nil
}

// Save persists the role and replaces its permissions in one transaction
func (r *GormRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(role).Error; err != nil {
			return err
		}

		if err := tx.Where("role_id = ?", role.ID).Delete(&identity.Permission{}).Error; err != nil {
			return err
		}
		if len(role.Permissions) > 0 {
			perms := make([]identity.Permission, len(role.Permissions))
			for i, p := range role.Permissions {
				p.RoleID = role.ID
				perms[i] = p
			}
			if err := tx.Create(&perms).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a role and its permissions
func (r *GormRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&identity.Permission{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&identity.Role{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountUsers counts the users assigned to a role
func (r *GormRoleRepository) CountUsers(ctx context.Context, roleID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.UserRole{}).
		Where("role_id = ?", roleID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// loadPermissions loads the permissions for a batch of roles in one query
func (r *GormRoleRepository) loadPermissions(ctx context.Context, roles []*identity.Role) error {
	if len(roles) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(roles))
	for i, role := range roles {
		ids[i] = role.ID
	}

	var perms []identity.Permission
	if err := r.db.WithContext(ctx).
		Where("role_id IN ?", ids).
		Order("code ASC").
		Find(&perms).Error; err != nil {
		return err
	}

	byRole := make(map[uuid.UUID][]identity.Permission, len(roles))
	for _, p := range perms {
		byRole[p.RoleID] = append(byRole[p.RoleID], p)
	}
	for _, role := range roles {
		role.Permissions = byRole[role.ID]
	}
	return nil
}

// Ensure GormRoleRepository implements RoleRepository
var _ identity.RoleRepository = (*GormRoleRepository)(nil)
