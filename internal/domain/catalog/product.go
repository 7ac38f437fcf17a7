package catalog

import (
	"strings"
	"time"

	"github.com/facturacion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Product represents a sellable item in the catalog. It carries no intrinsic
// price: cost and sale price (PVP) live on the product's purchase batches and
// everything the UI shows is derived from them.
type Product struct {
	shared.BaseEntity
	shared.Lifecycle
	Code        string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string    `gorm:"type:varchar(200);not null;index"`
	Description string    `gorm:"type:varchar(1000)"`
	Unit        string    `gorm:"type:varchar(20);not null;default:'unit'"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	VATRateID   uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product. The code is the immutable business
// key (SKU) and is stored upper-cased.
func NewProduct(code, name, description, unit string, categoryID, vatRateID uuid.UUID) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Product category is required")
	}
	if vatRateID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VAT_RATE", "Product VAT rate is required")
	}
	if unit == "" {
		unit = "unit"
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Lifecycle:   shared.NewLifecycle(),
		Code:        strings.ToUpper(code),
		Name:        name,
		Description: description,
		Unit:        unit,
		CategoryID:  categoryID,
		VATRateID:   vatRateID,
	}, nil
}

// Update changes the product's mutable fields. The code never changes after
// creation.
func (p *Product) Update(name, description, unit string, categoryID, vatRateID uuid.UUID) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATEGORY", "Product category is required")
	}
	if vatRateID == uuid.Nil {
		return shared.NewDomainError("INVALID_VAT_RATE", "Product VAT rate is required")
	}

	p.Name = name
	p.Description = description
	if unit != "" {
		p.Unit = unit
	}
	p.CategoryID = categoryID
	p.VATRateID = vatRateID
	p.UpdatedAt = time.Now()
	return nil
}

// validateProductCode validates the product code (SKU)
func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Product code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
