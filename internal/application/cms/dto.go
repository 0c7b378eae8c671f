package cms

import (
	"time"

	"github.com/google/uuid"

	"github.com/ikada/backend/internal/domain/cms"
)

// CreatePostRequest represents the request to create a post
type CreatePostRequest struct {
	Title      string `json:"title" binding:"required,max=200"`
	Excerpt    string `json:"excerpt" binding:"max=500"`
	Content    string `json:"content" binding:"required"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
	CoverURL   string `json:"cover_url" binding:"omitempty,url"`
}

// UpdatePostRequest represents the request to update a post
type UpdatePostRequest struct {
	Title      string `json:"title" binding:"required,max=200"`
	Excerpt    string `json:"excerpt" binding:"max=500"`
	Content    string `json:"content" binding:"required"`
	CategoryID string `json:"category_id" binding:"required,uuid"`
	CoverURL   string `json:"cover_url" binding:"omitempty,url"`
}

// PostListFilter represents query filters for listing posts
type PostListFilter struct {
	Status     string `form:"status" binding:"omitempty,oneof=draft published"`
	CategoryID string `form:"categoryId" binding:"omitempty,uuid"`
	AuthorID   string `form:"authorId" binding:"omitempty,uuid"`
}

// PostResponse represents a post in API responses
type PostResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Content     string     `json:"content,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	CategoryID  uuid.UUID  `json:"category_id"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ViewCount   int64      `json:"view_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToPostResponse converts a post aggregate to a response DTO
func ToPostResponse(post *cms.Post) PostResponse {
	return PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Slug:        post.Slug,
		Excerpt:     post.Excerpt,
		Content:     post.Content,
		CoverURL:    post.CoverURL,
		CategoryID:  post.CategoryID,
		AuthorID:    post.AuthorID,
		Status:      string(post.Status),
		PublishedAt: post.PublishedAt,
		ViewCount:   post.ViewCount,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

// PostCategoryRequest represents the request to create or rename a post category
type PostCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// PostCategoryResponse represents a post category in API responses
type PostCategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	PostCount *int64    `json:"post_count,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPostCategoryResponse converts a post category to a response DTO
func ToPostCategoryResponse(category *cms.PostCategory) PostCategoryResponse {
	return PostCategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Slug:      category.Slug,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// CreateCommentRequest represents the public request to comment on a post
type CreateCommentRequest struct {
	AuthorName  string `json:"author_name" binding:"required,max=100"`
	AuthorEmail string `json:"author_email" binding:"omitempty,email"`
	Body        string `json:"body" binding:"required,max=2000"`
}

// CommentListFilter represents query filters for listing comments
type CommentListFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	PostID string `form:"postId" binding:"omitempty,uuid"`
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	PostID     uuid.UUID `json:"post_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToCommentResponse converts a comment to a response DTO
func ToCommentResponse(comment *cms.Comment) CommentResponse {
	return CommentResponse{
		ID:         comment.ID,
		PostID:     comment.PostID,
		AuthorName: comment.AuthorName,
		Body:       comment.Body,
		Status:     string(comment.Status),
		CreatedAt:  comment.CreatedAt,
	}
}
