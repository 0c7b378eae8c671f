package marketplace

import (
	"time"

	"github.com/google/uuid"

	"github.com/ikada/backend/internal/domain/marketplace"
)

// CreateStoreRequest represents a request to open a new store
type CreateStoreRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Phone       string `json:"phone" binding:"max=20"`
	Address     string `json:"address" binding:"max=255"`
}

// UpdateStoreRequest represents a request to update a store profile
type UpdateStoreRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Phone       string `json:"phone" binding:"max=20"`
	Address     string `json:"address" binding:"max=255"`
}

// StoreListFilter represents filter options for the store list
type StoreListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active suspended"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// StoreResponse represents a store in API responses
type StoreResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	LogoURL      string    `json:"logo_url"`
	Status       string    `json:"status"`
	ProductCount *int64    `json:"product_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToStoreResponse converts a domain Store to StoreResponse
func ToStoreResponse(s *marketplace.Store) *StoreResponse {
	return &StoreResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Slug:        s.Slug,
		Description: s.Description,
		Phone:       s.Phone,
		Address:     s.Address,
		LogoURL:     s.LogoURL,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
