package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/marketplace"
	"github.com/ikada/backend/internal/domain/shared"
)

func setupCategoryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&marketplace.Category{}, &marketplace.Store{}, &marketplace.Product{})
	require.NoError(t, err)

	return db
}

// buildCategoryTree creates kuliner > minuman > kopi and returns all three.
func buildCategoryTree(t *testing.T, repo *GormCategoryRepository) (root, child, grandchild *marketplace.Category) {
	ctx := context.Background()

	root, err := marketplace.NewCategory("Kuliner")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, root))

	child, err = marketplace.NewChildCategory("Minuman", root)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, child))

	grandchild, err = marketplace.NewChildCategory("Kopi", child)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, grandchild))

	return root, child, grandchild
}

func TestGormCategoryRepository_FindDescendants(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	root, child, grandchild := buildCategoryTree(t, repo)

	descendants, err := repo.FindDescendants(ctx, root.Path)

	require.NoError(t, err)
	require.Len(t, descendants, 2)
	assert.Equal(t, child.ID, descendants[0].ID)
	assert.Equal(t, grandchild.ID, descendants[1].ID)
}

func TestGormCategoryRepository_SaveWithSubtree_Rename(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	root, child, grandchild := buildCategoryTree(t, repo)

	oldPath := root.Path
	root.Name = "Kuliner Halal"
	root.Path = "kuliner-halal"
	require.NoError(t, repo.SaveWithSubtree(ctx, root, oldPath, 0))

	reloadedChild, err := repo.FindByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "kuliner-halal/minuman", reloadedChild.Path)
	assert.Equal(t, 1, reloadedChild.Level)

	reloadedGrandchild, err := repo.FindByID(ctx, grandchild.ID)
	require.NoError(t, err)
	assert.Equal(t, "kuliner-halal/minuman/kopi", reloadedGrandchild.Path)
	assert.Equal(t, 2, reloadedGrandchild.Level)
}

func TestGormCategoryRepository_SaveWithSubtree_Move(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	_, child, grandchild := buildCategoryTree(t, repo)

	newRoot, err := marketplace.NewCategory("Jasa")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, newRoot))

	// Move minuman (level 1) under jasa; the whole subtree shifts with it.
	oldPath := child.Path
	child.ParentID = &newRoot.ID
	child.Path = newRoot.Path + "/" + "minuman"
	require.NoError(t, repo.SaveWithSubtree(ctx, child, oldPath, 0))

	reloaded, err := repo.FindByID(ctx, grandchild.ID)
	require.NoError(t, err)
	assert.Equal(t, "jasa/minuman/kopi", reloaded.Path)

	descendants, err := repo.FindDescendants(ctx, newRoot.Path)
	require.NoError(t, err)
	assert.Len(t, descendants, 2)
}

func TestGormCategoryRepository_FindSiblingByName(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	root, child, _ := buildCategoryTree(t, repo)

	t.Run("finds case-insensitive sibling under same parent", func(t *testing.T) {
		found, err := repo.FindSiblingByName(ctx, &root.ID, "MINUMAN", nil)

		require.NoError(t, err)
		assert.Equal(t, child.ID, found.ID)
	})

	t.Run("returns not found when the only match is excluded", func(t *testing.T) {
		found, err := repo.FindSiblingByName(ctx, &root.ID, "Minuman", &child.ID)

		assert.Nil(t, found)
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("scopes search to root level when parent is nil", func(t *testing.T) {
		found, err := repo.FindSiblingByName(ctx, nil, "Kuliner", nil)

		require.NoError(t, err)
		assert.Equal(t, root.ID, found.ID)
	})
}

func TestGormCategoryRepository_DeleteChecked(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	root, child, grandchild := buildCategoryTree(t, repo)

	t.Run("refuses a category with children and keeps the row", func(t *testing.T) {
		err := repo.DeleteChecked(ctx, root.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "HAS_CHILDREN", domainErr.Code)

		_, err = repo.FindByID(ctx, root.ID)
		require.NoError(t, err)
	})

	t.Run("refuses a category with referencing products", func(t *testing.T) {
		store, err := marketplace.NewStore(uuid.New(), "Warung Kopi Alumni", "", "08123456789", "Kediri")
		require.NoError(t, err)
		require.NoError(t, db.Save(store).Error)

		product, err := marketplace.NewProduct(store.ID, grandchild.ID, "Kopi Robusta 250g", "", decimal.NewFromInt(35000), 10)
		require.NoError(t, err)
		require.NoError(t, db.Save(product).Error)

		err = repo.DeleteChecked(ctx, grandchild.ID)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "HAS_PRODUCTS", domainErr.Code)

		require.NoError(t, db.Delete(product).Error)
	})

	t.Run("deletes an empty leaf", func(t *testing.T) {
		require.NoError(t, repo.DeleteChecked(ctx, grandchild.ID))

		_, err := repo.FindByID(ctx, grandchild.ID)
		assert.Equal(t, shared.ErrNotFound, err)

		// With the leaf gone its former parent becomes deletable.
		require.NoError(t, repo.DeleteChecked(ctx, child.ID))
	})

	t.Run("reports a missing category", func(t *testing.T) {
		assert.Equal(t, shared.ErrNotFound, repo.DeleteChecked(ctx, uuid.New()))
	})
}

func TestGormCategoryRepository_CountProducts(t *testing.T) {
	db := setupCategoryTestDB(t)
	repo := NewGormCategoryRepository(db)
	ctx := context.Background()

	_, _, grandchild := buildCategoryTree(t, repo)

	store, err := marketplace.NewStore(uuid.New(), "Warung Kopi Alumni", "", "08123456789", "Kediri")
	require.NoError(t, err)
	require.NoError(t, db.Save(store).Error)

	product, err := marketplace.NewProduct(store.ID, grandchild.ID, "Kopi Robusta 250g", "", decimal.NewFromInt(35000), 10)
	require.NoError(t, err)
	require.NoError(t, db.Save(product).Error)

	count, err := repo.CountProducts(ctx, grandchild.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountProducts(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGormProductRepository_CategoryPathFilter(t *testing.T) {
	db := setupCategoryTestDB(t)
	categoryRepo := NewGormCategoryRepository(db)
	productRepo := NewGormProductRepository(db)
	ctx := context.Background()

	root, child, grandchild := buildCategoryTree(t, categoryRepo)

	store, err := marketplace.NewStore(uuid.New(), "Warung Kopi Alumni", "", "08123456789", "Kediri")
	require.NoError(t, err)
	require.NoError(t, db.Save(store).Error)

	inSubtree, err := marketplace.NewProduct(store.ID, grandchild.ID, "Kopi Robusta 250g", "", decimal.NewFromInt(35000), 10)
	require.NoError(t, err)
	require.NoError(t, productRepo.Save(ctx, inSubtree))

	other, err := marketplace.NewCategory("Fashion")
	require.NoError(t, err)
	require.NoError(t, categoryRepo.Save(ctx, other))

	outside, err := marketplace.NewProduct(store.ID, other.ID, "Sarung Tenun", "", decimal.NewFromInt(120000), 5)
	require.NoError(t, err)
	require.NoError(t, productRepo.Save(ctx, outside))

	t.Run("subtree filter matches descendants of the path", func(t *testing.T) {
		products, err := productRepo.FindAll(ctx, shared.Filter{
			Filters: map[string]interface{}{"category_path": root.Path},
		})

		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, inSubtree.ID, products[0].ID)
	})

	t.Run("subtree filter matches the category itself", func(t *testing.T) {
		products, err := productRepo.FindAll(ctx, shared.Filter{
			Filters: map[string]interface{}{"category_path": grandchild.Path},
		})

		require.NoError(t, err)
		require.Len(t, products, 1)
	})

	t.Run("unrelated path matches nothing", func(t *testing.T) {
		products, err := productRepo.FindAll(ctx, shared.Filter{
			Filters: map[string]interface{}{"category_path": child.Path + "/teh"},
		})

		require.NoError(t, err)
		assert.Empty(t, products)
	})
}
