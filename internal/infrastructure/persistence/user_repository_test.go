package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/identity"
	"github.com/ikada/backend/internal/domain/shared"
)

func setupIdentityTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&identity.User{}, &identity.UserRole{}, &identity.Role{}, &identity.Permission{})
	require.NoError(t, err)

	return db
}

func createTestRole(t *testing.T, repo *GormRoleRepository, name string, codes []string) *identity.Role {
	role, err := identity.NewRole(name, "", codes)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), role))
	return role
}

func TestGormUserRepository_SaveLoadsRoles(t *testing.T) {
	db := setupIdentityTestDB(t)
	userRepo := NewGormUserRepository(db)
	roleRepo := NewGormRoleRepository(db)
	ctx := context.Background()

	role := createTestRole(t, roleRepo, "pengurus", []string{"alumni:read", "alumni:verify"})

	user, err := identity.NewUser("sekretaris", "sekretaris@ikada.or.id", "rahasia-123", "Sekretaris Umum")
	require.NoError(t, err)
	user.RoleIDs = []uuid.UUID{role.ID}
	require.NoError(t, userRepo.Save(ctx, user))

	t.Run("FindByID loads role assignments", func(t *testing.T) {
		found, err := userRepo.FindByID(ctx, user.ID)

		require.NoError(t, err)
		require.Len(t, found.RoleIDs, 1)
		assert.Equal(t, role.ID, found.RoleIDs[0])
	})

	t.Run("FindByUsername matches email too", func(t *testing.T) {
		found, err := userRepo.FindByUsername(ctx, "SEKRETARIS@ikada.or.id")

		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Len(t, found.RoleIDs, 1)
	})

	t.Run("re-save replaces role assignments", func(t *testing.T) {
		other := createTestRole(t, roleRepo, "bendahara", []string{"donation:read"})

		user.RoleIDs = []uuid.UUID{other.ID}
		require.NoError(t, userRepo.Save(ctx, user))

		found, err := userRepo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, found.RoleIDs, 1)
		assert.Equal(t, other.ID, found.RoleIDs[0])
	})

	t.Run("delete removes join rows", func(t *testing.T) {
		require.NoError(t, userRepo.Delete(ctx, user.ID))

		_, err := userRepo.FindByID(ctx, user.ID)
		assert.Equal(t, shared.ErrNotFound, err)

		var joinCount int64
		require.NoError(t, db.Model(&identity.UserRole{}).Where("user_id = ?", user.ID).Count(&joinCount).Error)
		assert.Equal(t, int64(0), joinCount)
	})
}

func TestGormUserRepository_FindAll(t *testing.T) {
	db := setupIdentityTestDB(t)
	userRepo := NewGormUserRepository(db)
	roleRepo := NewGormRoleRepository(db)
	ctx := context.Background()

	role := createTestRole(t, roleRepo, "pengurus", []string{"alumni:read"})

	active, err := identity.NewUser("aktif", "aktif@ikada.or.id", "rahasia-123", "Pengurus Aktif")
	require.NoError(t, err)
	active.RoleIDs = []uuid.UUID{role.ID}
	require.NoError(t, userRepo.Save(ctx, active))

	deactivated, err := identity.NewUser("nonaktif", "nonaktif@ikada.or.id", "rahasia-123", "Mantan Pengurus")
	require.NoError(t, err)
	require.NoError(t, deactivated.Deactivate())
	require.NoError(t, userRepo.Save(ctx, deactivated))

	t.Run("status filter", func(t *testing.T) {
		users, err := userRepo.FindAll(ctx, shared.Filter{
			Filters: map[string]interface{}{"status": identity.UserStatusActive},
		})

		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, active.ID, users[0].ID)
		assert.Len(t, users[0].RoleIDs, 1)
	})

	t.Run("search by full name", func(t *testing.T) {
		users, err := userRepo.FindAll(ctx, shared.Filter{Search: "mantan"})

		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, deactivated.ID, users[0].ID)
	})
}

func TestGormRoleRepository_Permissions(t *testing.T) {
	db := setupIdentityTestDB(t)
	roleRepo := NewGormRoleRepository(db)
	ctx := context.Background()

	role := createTestRole(t, roleRepo, "pengurus", []string{"alumni:verify", "alumni:read"})

	t.Run("FindByID loads permissions sorted by code", func(t *testing.T) {
		found, err := roleRepo.FindByID(ctx, role.ID)

		require.NoError(t, err)
		require.Len(t, found.Permissions, 2)
		assert.Equal(t, "alumni:read", found.Permissions[0].Code)
		assert.Equal(t, "alumni:verify", found.Permissions[1].Code)
	})

	t.Run("save replaces permissions", func(t *testing.T) {
		require.NoError(t, role.SetPermissions([]string{"donation:read"}))
		require.NoError(t, roleRepo.Save(ctx, role))

		found, err := roleRepo.FindByID(ctx, role.ID)
		require.NoError(t, err)
		require.Len(t, found.Permissions, 1)
		assert.Equal(t, "donation:read", found.Permissions[0].Code)
	})

	t.Run("FindByIDs batch loads permissions", func(t *testing.T) {
		other := createTestRole(t, roleRepo, "redaktur", []string{"post:create", "post:publish"})

		roles, err := roleRepo.FindByIDs(ctx, []uuid.UUID{role.ID, other.ID, uuid.New()})

		require.NoError(t, err)
		require.Len(t, roles, 2)
		for _, r := range roles {
			assert.NotEmpty(t, r.Permissions)
		}
	})

	t.Run("FindByName is case-insensitive", func(t *testing.T) {
		found, err := roleRepo.FindByName(ctx, "PENGURUS")

		require.NoError(t, err)
		assert.Equal(t, role.ID, found.ID)
	})
}

func TestGormRoleRepository_CountUsers(t *testing.T) {
	db := setupIdentityTestDB(t)
	userRepo := NewGormUserRepository(db)
	roleRepo := NewGormRoleRepository(db)
	ctx := context.Background()

	role := createTestRole(t, roleRepo, "pengurus", []string{"alumni:read"})

	count, err := roleRepo.CountUsers(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	user, err := identity.NewUser("sekretaris", "sekretaris@ikada.or.id", "rahasia-123", "Sekretaris")
	require.NoError(t, err)
	user.RoleIDs = []uuid.UUID{role.ID}
	require.NoError(t, userRepo.Save(ctx, user))

	count, err = roleRepo.CountUsers(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
