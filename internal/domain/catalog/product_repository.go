package catalog

import (
	"context"

	"github.com/facturacion/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByCode finds a product by its unique code (SKU)
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindActive finds all active products matching the filter
	FindActive(ctx context.Context, filter shared.Filter) ([]Product, error)

	// SearchByCodeOrName finds products whose code or name contains the term
	SearchByCodeOrName(ctx context.Context, term string, filter shared.Filter) ([]Product, error)

	// ExistsByCode reports whether a product with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountActive counts active products matching the filter
	CountActive(ctx context.Context, filter shared.Filter) (int64, error)
}

// CategoryRepository defines read access to the category catalog
type CategoryRepository interface {
	// FindByID finds a category by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll returns the full category catalog
	FindAll(ctx context.Context) ([]Category, error)
}

// VATRateRepository defines read access to the VAT rate catalog
type VATRateRepository interface {
	// FindByID finds a VAT rate by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*VATRate, error)

	// FindAll returns the full VAT rate catalog
	FindAll(ctx context.Context) ([]VATRate, error)
}
