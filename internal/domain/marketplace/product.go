package marketplace

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ikada/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the availability of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Product is an item sold through an alumni store.
// Every product references exactly one category.
type Product struct {
	shared.BaseAggregateRoot
	StoreID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(150);not null"`
	Slug        string          `gorm:"type:varchar(170);not null;index"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	ImageURL    string          `gorm:"type:varchar(500)"`
	Status      ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "marketplace_products"
}

// NewProduct creates a new product in a store
func NewProduct(storeID, categoryID uuid.UUID, name, description string, price decimal.Decimal, stock int) (*Product, error) {
	if err := validateProduct(name, price, stock); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreID:           storeID,
		CategoryID:        categoryID,
		Name:              name,
		Slug:              shared.Slugify(name),
		Description:       description,
		Price:             price,
		Stock:             stock,
		Status:            ProductStatusActive,
	}, nil
}

// Update updates the product's details
func (p *Product) Update(categoryID uuid.UUID, name, description string, price decimal.Decimal, stock int) error {
	if err := validateProduct(name, price, stock); err != nil {
		return err
	}

	p.CategoryID = categoryID
	p.Name = name
	p.Slug = shared.Slugify(name)
	p.Description = description
	p.Price = price
	p.Stock = stock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetImage updates the product image URL
func (p *Product) SetImage(url string) {
	p.ImageURL = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate makes the product visible
func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate hides the product from listings
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func validateProduct(name string, price decimal.Decimal, stock int) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 150 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 150 characters")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Product stock cannot be negative")
	}
	return nil
}
