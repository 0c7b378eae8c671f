package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPermissionFromCode(t *testing.T) {
	t.Run("parses resource and action", func(t *testing.T) {
		perm, err := NewPermissionFromCode("marketplace.category:create")
		require.NoError(t, err)
		assert.Equal(t, "marketplace.category", perm.Resource)
		assert.Equal(t, "create", perm.Action)
		assert.Equal(t, "marketplace.category:create", perm.Code)
	})

	t.Run("normalizes case", func(t *testing.T) {
		perm, err := NewPermissionFromCode("CMS.Post:Publish")
		require.NoError(t, err)
		assert.Equal(t, "cms.post:publish", perm.Code)
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		for _, code := range []string{"", "nocolon", ":action", "resource:"} {
			_, err := NewPermissionFromCode(code)
			require.Error(t, err, code)
		}
	})
}

func TestNewRole(t *testing.T) {
	t.Run("creates role with deduplicated permissions", func(t *testing.T) {
		role, err := NewRole("editor", "CMS editors", []string{
			"cms.post:create",
			"cms.post:update",
			"cms.post:create",
		})
		require.NoError(t, err)

		assert.Len(t, role.Permissions, 2)
		assert.True(t, role.HasPermission("cms.post:create"))
		assert.False(t, role.HasPermission("cms.post:delete"))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewRole("", "", nil)
		require.Error(t, err)
	})

	t.Run("rejects invalid permission code", func(t *testing.T) {
		_, err := NewRole("editor", "", []string{"bad"})
		require.Error(t, err)
	})
}

func TestRoleUpdate(t *testing.T) {
	t.Run("system role cannot be renamed", func(t *testing.T) {
		role, err := NewRole("superadmin", "", nil)
		require.NoError(t, err)
		role.IsSystem = true

		require.Error(t, role.Update("something-else", ""))
		require.NoError(t, role.Update("superadmin", "full access"))
		assert.Equal(t, "full access", role.Description)
	})
}
