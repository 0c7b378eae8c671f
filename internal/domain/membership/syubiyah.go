package membership

import (
	"strings"
	"time"

	"github.com/ikada/backend/internal/domain/shared"
)

// Syubiyah is a regional chapter of the association.
// Alumni are grouped by syubiyah based on where they live.
type Syubiyah struct {
	shared.BaseAggregateRoot
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Region   string `gorm:"type:varchar(100)"`
	City     string `gorm:"type:varchar(100)"`
	Address  string `gorm:"type:varchar(255)"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Syubiyah) TableName() string {
	return "syubiyah"
}

// NewSyubiyah creates a new regional chapter
func NewSyubiyah(name, region, city, address string) (*Syubiyah, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Syubiyah name cannot be empty")
	}

	return &Syubiyah{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Region:            region,
		City:              city,
		Address:           address,
		IsActive:          true,
	}, nil
}

// Update updates the chapter's details
func (s *Syubiyah) Update(name, region, city, address string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Syubiyah name cannot be empty")
	}

	s.Name = name
	s.Region = region
	s.City = city
	s.Address = address
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetActive toggles the chapter's active flag
func (s *Syubiyah) SetActive(active bool) {
	s.IsActive = active
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
