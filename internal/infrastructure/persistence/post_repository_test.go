package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ikada/backend/internal/domain/cms"
	"github.com/ikada/backend/internal/domain/shared"
)

func setupCMSTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&cms.PostCategory{}, &cms.Post{}, &cms.Comment{})
	require.NoError(t, err)

	return db
}

func createTestPost(t *testing.T, repo *GormPostRepository, categoryID uuid.UUID, title string, publish bool) *cms.Post {
	post, err := cms.NewPost(uuid.New(), categoryID, title, "Ringkasan berita", "Isi berita lengkap.")
	require.NoError(t, err)
	if publish {
		require.NoError(t, post.Publish())
	}
	require.NoError(t, repo.Save(context.Background(), post))
	return post
}

func TestGormPostRepository_FindBySlug(t *testing.T) {
	db := setupCMSTestDB(t)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	post := createTestPost(t, repo, uuid.New(), "Kabar Reuni Akbar", true)

	found, err := repo.FindBySlug(ctx, post.Slug)

	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)

	_, err = repo.FindBySlug(ctx, "tidak-ada")
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormPostRepository_IncrementViewCount(t *testing.T) {
	db := setupCMSTestDB(t)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	post := createTestPost(t, repo, uuid.New(), "Kabar Reuni Akbar", true)
	savedUpdatedAt := post.UpdatedAt

	require.NoError(t, repo.IncrementViewCount(ctx, post.ID))
	require.NoError(t, repo.IncrementViewCount(ctx, post.ID))

	found, err := repo.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.ViewCount)
	// A read must not look like an edit
	assert.Equal(t, savedUpdatedAt.Unix(), found.UpdatedAt.Unix())
	assert.Equal(t, post.Version, found.Version)

	err = repo.IncrementViewCount(ctx, uuid.New())
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormPostRepository_FindAll_Filters(t *testing.T) {
	db := setupCMSTestDB(t)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	categoryID := uuid.New()
	published := createTestPost(t, repo, categoryID, "Kabar Reuni Akbar", true)
	createTestPost(t, repo, categoryID, "Draft Pengumuman", false)
	createTestPost(t, repo, uuid.New(), "Kabar Syubiyah Jakarta", true)

	posts, err := repo.FindAll(ctx, shared.Filter{
		Filters: map[string]interface{}{
			"status":      string(cms.PostStatusPublished),
			"category_id": categoryID,
		},
	})

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, published.ID, posts[0].ID)
}

func TestGormPostRepository_FindAll_Search(t *testing.T) {
	db := setupCMSTestDB(t)
	repo := NewGormPostRepository(db)
	ctx := context.Background()

	match := createTestPost(t, repo, uuid.New(), "Kabar Reuni Akbar", true)
	createTestPost(t, repo, uuid.New(), "Pengumuman Zakat", true)

	posts, err := repo.FindAll(ctx, shared.Filter{Search: "reuni"})

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, match.ID, posts[0].ID)
}

func TestGormPostRepository_DeleteCascadesComments(t *testing.T) {
	db := setupCMSTestDB(t)
	postRepo := NewGormPostRepository(db)
	commentRepo := NewGormCommentRepository(db)
	ctx := context.Background()

	post := createTestPost(t, postRepo, uuid.New(), "Kabar Reuni Akbar", true)

	comment, err := cms.NewComment(post.ID, "Ahmad Fauzi", "fauzi@example.com", "Barakallah, sukses acaranya.")
	require.NoError(t, err)
	require.NoError(t, commentRepo.Save(ctx, comment))

	require.NoError(t, postRepo.Delete(ctx, post.ID))

	var commentCount int64
	require.NoError(t, db.Model(&cms.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount).Error)
	assert.Equal(t, int64(0), commentCount)

	_, err = postRepo.FindByID(ctx, post.ID)
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormCommentRepository_FindByPost_StatusFilter(t *testing.T) {
	db := setupCMSTestDB(t)
	postRepo := NewGormPostRepository(db)
	commentRepo := NewGormCommentRepository(db)
	ctx := context.Background()

	post := createTestPost(t, postRepo, uuid.New(), "Kabar Reuni Akbar", true)

	approved, err := cms.NewComment(post.ID, "Ahmad Fauzi", "fauzi@example.com", "Barakallah.")
	require.NoError(t, err)
	require.NoError(t, approved.Approve(uuid.New()))
	require.NoError(t, commentRepo.Save(ctx, approved))

	pending, err := cms.NewComment(post.ID, "Siti Maryam", "maryam@example.com", "Kapan acaranya?")
	require.NoError(t, err)
	require.NoError(t, commentRepo.Save(ctx, pending))

	status := cms.CommentStatusApproved
	comments, err := commentRepo.FindByPost(ctx, post.ID, &status)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, approved.ID, comments[0].ID)

	all, err := commentRepo.FindByPost(ctx, post.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGormPostCategoryRepository_FindByName(t *testing.T) {
	db := setupCMSTestDB(t)
	repo := NewGormPostCategoryRepository(db)
	ctx := context.Background()

	category, err := cms.NewPostCategory("Berita Pondok")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, category))

	found, err := repo.FindByName(ctx, "BERITA pondok")
	require.NoError(t, err)
	assert.Equal(t, category.ID, found.ID)

	_, err = repo.FindByName(ctx, "Tidak Ada")
	assert.Equal(t, shared.ErrNotFound, err)
}
