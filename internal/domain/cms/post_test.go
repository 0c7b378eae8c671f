package cms

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostLifecycle(t *testing.T) {
	authorID := uuid.New()
	categoryID := uuid.New()

	t.Run("new post starts as draft with derived slug", func(t *testing.T) {
		post, err := NewPost(authorID, categoryID, "Reuni Akbar 2026", "", "Pendaftaran dibuka.")
		require.NoError(t, err)

		assert.Equal(t, PostStatusDraft, post.Status)
		assert.Equal(t, "reuni-akbar-2026", post.Slug)
		assert.Nil(t, post.PublishedAt)
		assert.False(t, post.IsPublished())
	})

	t.Run("publish sets timestamp, unpublish clears it", func(t *testing.T) {
		post, _ := NewPost(authorID, categoryID, "Reuni Akbar 2026", "", "Pendaftaran dibuka.")

		require.NoError(t, post.Publish())
		assert.True(t, post.IsPublished())
		assert.NotNil(t, post.PublishedAt)

		require.Error(t, post.Publish())

		require.NoError(t, post.Unpublish())
		assert.Nil(t, post.PublishedAt)
		require.Error(t, post.Unpublish())
	})

	t.Run("rejects empty title or content", func(t *testing.T) {
		_, err := NewPost(authorID, categoryID, "", "", "body")
		require.Error(t, err)

		_, err = NewPost(authorID, categoryID, "Judul", "", "  ")
		require.Error(t, err)
	})
}

func TestCommentModeration(t *testing.T) {
	postID := uuid.New()
	moderatorID := uuid.New()

	t.Run("new comment is pending", func(t *testing.T) {
		comment, err := NewComment(postID, "Budi", "budi@example.com", "Mantap!")
		require.NoError(t, err)
		assert.Equal(t, CommentStatusPending, comment.Status)
	})

	t.Run("approve and reject record moderator", func(t *testing.T) {
		comment, _ := NewComment(postID, "Budi", "", "Mantap!")

		require.NoError(t, comment.Approve(moderatorID))
		assert.Equal(t, CommentStatusApproved, comment.Status)
		require.NotNil(t, comment.ModeratedBy)
		require.Error(t, comment.Approve(moderatorID))

		require.NoError(t, comment.Reject(moderatorID))
		require.Error(t, comment.Reject(moderatorID))
	})

	t.Run("rejects empty body", func(t *testing.T) {
		_, err := NewComment(postID, "Budi", "", " ")
		require.Error(t, err)
	})
}
