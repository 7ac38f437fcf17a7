package catalog

import (
	"github.com/facturacion/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// VATRate is one entry of the tax-rate catalog (IVA 0%, 12%, 15%). Rates are
// seeded by migration and referenced by products; the service never mutates
// them.
type VATRate struct {
	shared.BaseEntity
	Code        string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	Percentage  decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Description string          `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (VATRate) TableName() string {
	return "vat_rates"
}

// NewVATRate creates a new VAT rate entry
func NewVATRate(code string, percentage decimal.Decimal, description string) (*VATRate, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "VAT rate code cannot be empty")
	}
	if percentage.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PERCENTAGE", "VAT percentage cannot be negative")
	}
	return &VATRate{
		BaseEntity:  shared.NewBaseEntity(),
		Code:        code,
		Percentage:  percentage,
		Description: description,
	}, nil
}

// AmountOn returns the VAT amount for the given net price
func (v *VATRate) AmountOn(price decimal.Decimal) decimal.Decimal {
	return price.Mul(v.Percentage).Div(decimal.NewFromInt(100))
}

// GrossOn returns the VAT-inclusive price for the given net price
func (v *VATRate) GrossOn(price decimal.Decimal) decimal.Decimal {
	return price.Add(v.AmountOn(price))
}
