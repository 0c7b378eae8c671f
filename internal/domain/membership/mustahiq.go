package membership

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
)

// MustahiqCategory classifies the kind of need a mustahiq record covers
type MustahiqCategory string

const (
	MustahiqCategoryFakir    MustahiqCategory = "fakir"
	MustahiqCategoryMiskin   MustahiqCategory = "miskin"
	MustahiqCategoryYatim    MustahiqCategory = "yatim"
	MustahiqCategoryGharimin MustahiqCategory = "gharimin"
	MustahiqCategoryOther    MustahiqCategory = "other"
)

// Mustahiq is an aid-recipient record kept by the association for
// distributing collected donations within a syubiyah.
type Mustahiq struct {
	shared.BaseAggregateRoot
	FullName   string           `gorm:"type:varchar(100);not null"`
	Category   MustahiqCategory `gorm:"type:varchar(20);not null"`
	SyubiyahID *uuid.UUID       `gorm:"type:uuid;index"`
	Address    string           `gorm:"type:varchar(255)"`
	Notes      string           `gorm:"type:text"`
	IsActive   bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Mustahiq) TableName() string {
	return "mustahiq"
}

// NewMustahiq creates a new aid-recipient record
func NewMustahiq(fullName string, category MustahiqCategory, syubiyahID *uuid.UUID, address, notes string) (*Mustahiq, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Mustahiq name cannot be empty")
	}
	if !category.valid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown mustahiq category")
	}

	return &Mustahiq{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FullName:          fullName,
		Category:          category,
		SyubiyahID:        syubiyahID,
		Address:           address,
		Notes:             notes,
		IsActive:          true,
	}, nil
}

// Update updates the record's details
func (m *Mustahiq) Update(fullName string, category MustahiqCategory, syubiyahID *uuid.UUID, address, notes string) error {
	if strings.TrimSpace(fullName) == "" {
		return shared.NewDomainError("INVALID_NAME", "Mustahiq name cannot be empty")
	}
	if !category.valid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown mustahiq category")
	}

	m.FullName = fullName
	m.Category = category
	m.SyubiyahID = syubiyahID
	m.Address = address
	m.Notes = notes
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// SetActive toggles the record's active flag
func (m *Mustahiq) SetActive(active bool) {
	m.IsActive = active
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

func (c MustahiqCategory) valid() bool {
	switch c {
	case MustahiqCategoryFakir, MustahiqCategoryMiskin, MustahiqCategoryYatim,
		MustahiqCategoryGharimin, MustahiqCategoryOther:
		return true
	}
	return false
}
