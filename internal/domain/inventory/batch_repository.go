package inventory

import (
	"context"

	"github.com/facturacion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchRepository defines the interface for batch persistence
type BatchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Batch, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Batch, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, batch *Batch) error
	Delete(ctx context.Context, id uuid.UUID) error

	// BulkSetListPrice sets the list price on every batch of the product except
	// the one identified by excludeID. A nil excludeID updates all of them.
	BulkSetListPrice(ctx context.Context, productID uuid.UUID, price decimal.Decimal, excludeID *uuid.UUID) error
}
