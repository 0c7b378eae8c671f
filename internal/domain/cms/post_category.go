package cms

import (
	"strings"
	"time"

	"github.com/ikada/backend/internal/domain/shared"
)

// PostCategory is a flat category for news posts.
// Unlike marketplace categories there is no hierarchy here.
type PostCategory struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Slug string `gorm:"type:varchar(120);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (PostCategory) TableName() string {
	return "post_categories"
}

// NewPostCategory creates a new post category
func NewPostCategory(name string) (*PostCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}

	return &PostCategory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              shared.Slugify(name),
	}, nil
}

// Rename changes the category name and slug
func (c *PostCategory) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}

	c.Name = name
	c.Slug = shared.Slugify(name)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
