package inventory

import (
	"time"

	"github.com/facturacion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batch represents one purchase intake (lote) of a product with its own cost,
// sale price and optional expiration date. The owning product and the purchase
// date are fixed at creation; stock only moves through AvailableQuantity.
type Batch struct {
	shared.BaseEntity
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	PurchaseDate      time.Time       `gorm:"type:date;not null"`
	ExpirationDate    *time.Time      `gorm:"type:date"` // nil = never expires
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ListPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null"` // PVP, the unit sale price
	InitialQuantity   int             `gorm:"not null"`
	AvailableQuantity int             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Batch) TableName() string {
	return "batches"
}

// NewBatch creates a new batch with available quantity initialized to the
// initial quantity.
func NewBatch(
	productID uuid.UUID,
	purchaseDate time.Time,
	expirationDate *time.Time,
	unitCost, listPrice decimal.Decimal,
	initialQuantity int,
) (*Batch, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Batch product is required")
	}
	if !unitCost.IsPositive() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost must be greater than 0")
	}
	if !listPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "List price must be greater than 0")
	}
	if initialQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Initial quantity cannot be negative")
	}
	if err := validateExpiration(purchaseDate, expirationDate); err != nil {
		return nil, err
	}

	return &Batch{
		BaseEntity:        shared.NewBaseEntity(),
		ProductID:         productID,
		PurchaseDate:      dateOnly(purchaseDate),
		ExpirationDate:    normalizeDate(expirationDate),
		UnitCost:          unitCost,
		ListPrice:         listPrice,
		InitialQuantity:   initialQuantity,
		AvailableQuantity: initialQuantity,
	}, nil
}

// UpdateDetails changes the batch's mutable fields. ProductID and
// PurchaseDate never change after creation.
func (b *Batch) UpdateDetails(
	expirationDate *time.Time,
	unitCost, listPrice decimal.Decimal,
	availableQuantity int,
) error {
	if !unitCost.IsPositive() {
		return shared.NewDomainError("INVALID_COST", "Unit cost must be greater than 0")
	}
	if !listPrice.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "List price must be greater than 0")
	}
	if availableQuantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Available quantity cannot be negative")
	}
	if availableQuantity > b.InitialQuantity {
		return shared.NewDomainError("INVALID_QUANTITY", "Available quantity cannot exceed the initial quantity")
	}
	if err := validateExpiration(b.PurchaseDate, expirationDate); err != nil {
		return err
	}

	b.ExpirationDate = normalizeDate(expirationDate)
	b.UnitCost = unitCost
	b.ListPrice = listPrice
	b.AvailableQuantity = availableQuantity
	b.UpdatedAt = time.Now()
	return nil
}

// SetListPrice overwrites the sale price, used when a price change on a
// sibling batch is propagated.
func (b *Batch) SetListPrice(price decimal.Decimal) {
	b.ListPrice = price
	b.UpdatedAt = time.Now()
}

// HasStock returns true if the batch has available quantity
func (b *Batch) HasStock() bool {
	return b.AvailableQuantity > 0
}

// Value returns the stock value of this batch (unit cost times available quantity)
func (b *Batch) Value() decimal.Decimal {
	return b.UnitCost.Mul(decimal.NewFromInt(int64(b.AvailableQuantity)))
}

// IsExpired returns true if the batch's expiration date has passed
func (b *Batch) IsExpired(now time.Time) bool {
	if b.ExpirationDate == nil {
		return false
	}
	return b.ExpirationDate.Before(dateOnly(now))
}

// validateExpiration checks that the expiration date, when present, does not
// precede the purchase date. The comparison is date-only; expiring on the
// purchase date itself is allowed.
func validateExpiration(purchaseDate time.Time, expirationDate *time.Time) error {
	if expirationDate == nil {
		return nil
	}
	if dateOnly(*expirationDate).Before(dateOnly(purchaseDate)) {
		return shared.NewDomainError(shared.CodeInvalidDate, "The expiration date cannot be earlier than the purchase date")
	}
	return nil
}

// dateOnly truncates a timestamp to its calendar date in UTC
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dateOnly(*t)
	return &d
}
