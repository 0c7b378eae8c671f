package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/identity"
	"github.com/ikada/backend/internal/domain/shared"
)

// GormUserRepository implements identity.UserRepository using GORM.
// Role assignments live in the user_roles join table and are loaded
// together with the user so a later Save does not drop them.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID with role assignments loaded
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadRoleIDs(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username or email, with role assignments loaded
func (r *GormUserRepository) FindByUsername(ctx context.Context, usernameOrEmail string) (*identity.User, error) {
	needle := strings.ToLower(strings.TrimSpace(usernameOrEmail))

	var user identity.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) = ? OR LOWER(email) = ?", needle, needle).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadRoleIDs(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAll finds all users matching the filter
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	var users []identity.User
	query := r.applyFilter(r.db.WithContext(ctx).Model(&identity.User{}), filter)
	query = applyPagination(query, filter)
	query = applyOrdering(query, filter, UserSortFields, "created_at")

	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return users, nil
	}

	// Load all role assignments in one query and fan them out.
	ids := make([]uuid.UUID, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	var joins []identity.UserRole
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", ids).
		Find(&joins).Error; err != nil {
		return nil, err
	}
	byUser := make(map[uuid.UUID][]uuid.UUID, len(users))
	for _, j := range joins {
		byUser[j.UserID] = append(byUser[j.UserID], j.RoleID)
	}
	for i := range users {
		users[i].RoleIDs = byUser[users[i].ID]
	}

	return users, nil
}

// Save persists the user and replaces its role assignments in one transaction
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&identity.UserRole{}).Error; err != nil {
			return err
		}
		if len(user.RoleIDs) > 0 {
			joins := make([]identity.UserRole, len(user.RoleIDs))
			for i, roleID := range user.RoleIDs {
				joins[i] = identity.UserRole{
					UserID:    user.ID,
					RoleID:    roleID,
					CreatedAt: time.Now(),
				}
			}
			if err := tx.Create(&joins).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a user and its role assignments
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&identity.UserRole{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&identity.User{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts users matching the filter
func (r *GormUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&identity.User{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// loadRoleIDs loads the role assignments for a single user
func (r *GormUserRepository) loadRoleIDs(ctx context.Context, user *identity.User) error {
	var joins []identity.UserRole
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", user.ID).
		Find(&joins).Error; err != nil {
		return err
	}

	roleIDs := make([]uuid.UUID, len(joins))
	for i, j := range joins {
		roleIDs[i] = j.RoleID
	}
	user.RoleIDs = roleIDs
	return nil
}

// applyFilter applies search and filter options to the query
func (r *GormUserRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(full_name) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "role_id":
			query = query.Where("id IN (?)",
				r.db.Model(&identity.UserRole{}).Select("user_id").Where("role_id = ?", value))
		}
	}

	return query
}

// Ensure GormUserRepository implements UserRepository
var _ identity.UserRepository = (*GormUserRepository)(nil)
