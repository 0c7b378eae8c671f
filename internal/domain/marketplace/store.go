package marketplace

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// StoreStatus represents the status of a store
type StoreStatus string

const (
	StoreStatusActive    StoreStatus = "active"
	StoreStatusSuspended StoreStatus = "suspended"
)

// Store is an alumni-run shop in the marketplace
type Store struct {
	shared.BaseAggregateRoot
	OwnerID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	Name        string      `gorm:"type:varchar(100);not null"`
	Slug        string      `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description string      `gorm:"type:text"`
	Phone       string      `gorm:"type:varchar(20)"`
	Address     string      `gorm:"type:varchar(255)"`
	LogoURL     string      `gorm:"type:varchar(500)"`
	Status      StoreStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Store) TableName() string {
	return "marketplace_stores"
}

// NewStore creates a new store owned by a verified alumni
func NewStore(ownerID uuid.UUID, name, description, phone, address string) (*Store, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Store name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Store name cannot exceed 100 characters")
	}

	return &Store{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		Name:              name,
		Slug:              shared.Slugify(name),
		Description:       description,
		Phone:             phone,
		Address:           address,
		Status:            StoreStatusActive,
	}, nil
}

// Update updates the store's profile
func (s *Store) Update(name, description, phone, address string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Store name cannot be empty")
	}

	s.Name = name
	s.Slug = shared.Slugify(name)
	s.Description = description
	s.Phone = phone
	s.Address = address
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetLogo updates the store logo URL
func (s *Store) SetLogo(url string) {
	s.LogoURL = url
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Suspend takes the store offline
func (s *Store) Suspend() error {
	if s.Status == StoreStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Store is already suspended")
	}
	s.Status = StoreStatusSuspended
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Reactivate puts a suspended store back online
func (s *Store) Reactivate() error {
	if s.Status == StoreStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Store is already active")
	}
	s.Status = StoreStatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// IsActive returns true when the store is open for business
func (s *Store) IsActive() bool {
	return s.Status == StoreStatusActive
}
