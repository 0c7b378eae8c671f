package marketplace

import (
	"time"

	"github.com/google/uuid"

	"github.com/ikada/backend/internal/domain/marketplace"
)

// CreateCategoryRequest represents a request to create a new category
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Description string     `json:"description" binding:"max=2000"`
	Icon        string     `json:"icon" binding:"max=100"`
	Color       string     `json:"color" binding:"max=20"`
	SortOrder   *int       `json:"sort_order"`
	IsActive    *bool      `json:"is_active"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// UpdateCategoryRequest represents a request to update a category.
// It carries the same shape as create; a changed parent_id reparents the
// category and a changed name renames it, either of which rewrites the
// paths of every descendant.
type UpdateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Description string     `json:"description" binding:"max=2000"`
	Icon        string     `json:"icon" binding:"max=100"`
	Color       string     `json:"color" binding:"max=20"`
	SortOrder   *int       `json:"sort_order"`
	IsActive    *bool      `json:"is_active"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// CategoryListFilter represents filter options for the category list
type CategoryListFilter struct {
	IsActive     *bool  `form:"isActive"`
	Level        *int   `form:"level" binding:"omitempty,min=0,max=2"`
	ParentID     string `form:"parentId"`
	Hierarchical bool   `form:"hierarchical"`
	IncludeCount bool   `form:"includeCount"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Slug         string             `json:"slug"`
	Description  string             `json:"description"`
	ParentID     *uuid.UUID         `json:"parent_id"`
	Path         string             `json:"path"`
	Level        int                `json:"level"`
	SortOrder    int                `json:"sort_order"`
	IsActive     bool               `json:"is_active"`
	Icon         string             `json:"icon"`
	Color        string             `json:"color"`
	ProductCount *int64             `json:"product_count,omitempty"`
	Parent       *CategoryResponse  `json:"parent,omitempty"`
	Children     []CategoryResponse `json:"children,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *marketplace.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ParentID:    c.ParentID,
		Path:        c.Path,
		Level:       c.Level,
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
		Icon:        c.Icon,
		Color:       c.Color,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
