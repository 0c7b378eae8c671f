package cms

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// PostStatus represents the publication state of a post
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// Post is a news or blog article
type Post struct {
	shared.BaseAggregateRoot
	Title       string     `gorm:"type:varchar(200);not null"`
	Slug        string     `gorm:"type:varchar(220);not null;uniqueIndex"`
	Excerpt     string     `gorm:"type:varchar(500)"`
	Content     string     `gorm:"type:text;not null"`
	CoverURL    string     `gorm:"type:varchar(500)"`
	CategoryID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status      PostStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	PublishedAt *time.Time
	ViewCount   int64 `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// NewPost creates a new draft post
func NewPost(authorID, categoryID uuid.UUID, title, excerpt, content string) (*Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Post title cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Post content cannot be empty")
	}

	return &Post{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Slug:              shared.Slugify(title),
		Excerpt:           excerpt,
		Content:           content,
		CategoryID:        categoryID,
		AuthorID:          authorID,
		Status:            PostStatusDraft,
	}, nil
}

// Update updates the post's editorial fields
func (p *Post) Update(categoryID uuid.UUID, title, excerpt, content string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Post title cannot be empty")
	}
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("INVALID_CONTENT", "Post content cannot be empty")
	}

	p.CategoryID = categoryID
	p.Title = title
	p.Slug = shared.Slugify(title)
	p.Excerpt = excerpt
	p.Content = content
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetCover updates the cover image URL
func (p *Post) SetCover(url string) {
	p.CoverURL = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Publish makes the post publicly visible
func (p *Post) Publish() error {
	if p.Status == PostStatusPublished {
		return shared.NewDomainError("ALREADY_PUBLISHED", "Post is already published")
	}

	now := time.Now()
	p.Status = PostStatusPublished
	p.PublishedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()
	return nil
}

// Unpublish reverts the post to draft
func (p *Post) Unpublish() error {
	if p.Status == PostStatusDraft {
		return shared.NewDomainError("NOT_PUBLISHED", "Post is not published")
	}

	p.Status = PostStatusDraft
	p.PublishedAt = nil
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsPublished returns true when the post is publicly visible
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
