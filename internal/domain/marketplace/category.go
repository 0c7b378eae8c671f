package marketplace

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// MaxCategoryLevel is the deepest level a category may occupy.
// Levels are zero-based, so the tree holds at most three tiers (0, 1, 2).
const MaxCategoryLevel = 2

// Category is a node in the marketplace product classification tree.
// The ancestry is materialized twice: Level holds the zero-based depth and
// Path holds the slash-joined slugs from the root down to this node, which
// makes descendant lookups a single prefix query.
type Category struct {
	shared.BaseAggregateRoot
	Name        string     `gorm:"type:varchar(100);not null"`
	Slug        string     `gorm:"type:varchar(120);not null;index"`
	Description string     `gorm:"type:text"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	Path        string     `gorm:"type:varchar(500);not null;index"`
	Level       int        `gorm:"not null;default:0"`
	SortOrder   int        `gorm:"not null;default:0"`
	IsActive    bool       `gorm:"not null;default:true"`
	Icon        string     `gorm:"type:varchar(100)"`
	Color       string     `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "marketplace_categories"
}

// NewCategory creates a new root category
func NewCategory(name string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              shared.Slugify(name),
		IsActive:          true,
		Level:             0,
	}
	category.Path = category.Slug

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// NewChildCategory creates a new category under a parent
func NewChildCategory(name string, parent *Category) (*Category, error) {
	if parent == nil {
		return nil, shared.NewDomainError("INVALID_PARENT", "Parent category is required")
	}

	if parent.Level >= MaxCategoryLevel {
		return nil, shared.NewDomainError("MAX_DEPTH_EXCEEDED",
			fmt.Sprintf("Categories cannot be nested beyond level %d", MaxCategoryLevel))
	}

	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              shared.Slugify(name),
		ParentID:          &parent.ID,
		Level:             parent.Level + 1,
		IsActive:          true,
	}
	category.Path = parent.Path + "/" + category.Slug

	category.AddDomainEvent(NewCategoryCreatedEvent(category))

	return category, nil
}

// Rename changes the category name, rederiving the slug and path.
// parentPath must be the current parent's path, or "" for a root category.
// The caller is responsible for rewriting descendant paths when the
// returned path differs from the previous one.
func (c *Category) Rename(name, parentPath string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = name
	c.Slug = shared.Slugify(name)
	c.rebuildPath(parentPath)
	c.touch()

	c.AddDomainEvent(NewCategoryUpdatedEvent(c))

	return nil
}

// MoveTo reparents the category. A nil parent moves it to the root.
// Depth and cycle validation are the caller's concern since they need
// repository access; this only recomputes the derived fields.
func (c *Category) MoveTo(parent *Category) error {
	if parent == nil {
		c.ParentID = nil
		c.Level = 0
		c.rebuildPath("")
	} else {
		if parent.Level >= MaxCategoryLevel {
			return shared.NewDomainError("MAX_DEPTH_EXCEEDED",
				fmt.Sprintf("Categories cannot be nested beyond level %d", MaxCategoryLevel))
		}
		c.ParentID = &parent.ID
		c.Level = parent.Level + 1
		c.rebuildPath(parent.Path)
	}
	c.touch()

	c.AddDomainEvent(NewCategoryMovedEvent(c))

	return nil
}

// UpdateDisplay updates the presentation metadata
func (c *Category) UpdateDisplay(description, icon, color string) {
	c.Description = description
	c.Icon = icon
	c.Color = color
	c.touch()
}

// SetSortOrder sets the display order of the category
func (c *Category) SetSortOrder(order int) {
	c.SortOrder = order
	c.touch()
}

// SetActive toggles the visibility flag
func (c *Category) SetActive(active bool) {
	c.IsActive = active
	c.touch()
}

// IsRoot returns true if this is a root category
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// IsAncestorOf returns true if this category is an ancestor of the given category
func (c *Category) IsAncestorOf(other *Category) bool {
	if other == nil || other.Path == "" {
		return false
	}
	return strings.HasPrefix(other.Path, c.Path+"/")
}

// IsDescendantOf returns true if this category is a descendant of the given category
func (c *Category) IsDescendantOf(other *Category) bool {
	if other == nil {
		return false
	}
	return other.IsAncestorOf(c)
}

func (c *Category) rebuildPath(parentPath string) {
	if parentPath == "" {
		c.Path = c.Slug
		return
	}
	c.Path = parentPath + "/" + c.Slug
}

func (c *Category) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// validateCategoryName validates the category name
func validateCategoryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	if shared.Slugify(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name must contain at least one letter or digit")
	}
	return nil
}
