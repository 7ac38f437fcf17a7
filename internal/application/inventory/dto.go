package inventory

import (
	"time"

	"github.com/facturacion/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchResponse represents a batch in API responses
type BatchResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	ProductCode       string          `json:"product_code,omitempty"`
	ProductName       string          `json:"product_name,omitempty"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	ExpirationDate    *time.Time      `json:"expiration_date"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	ListPrice         decimal.Decimal `json:"list_price"`
	InitialQuantity   int             `json:"initial_quantity"`
	AvailableQuantity int             `json:"available_quantity"`
	HasStock          bool            `json:"has_stock"`
	Value             decimal.Decimal `json:"value"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreateBatchRequest represents a request to register a purchase batch
type CreateBatchRequest struct {
	ProductID        uuid.UUID       `json:"product_id" binding:"required"`
	PurchaseDate     time.Time       `json:"purchase_date" binding:"required"`
	ExpirationDate   *time.Time      `json:"expiration_date"`
	UnitCost         decimal.Decimal `json:"unit_cost" binding:"required"`
	ListPrice        decimal.Decimal `json:"list_price" binding:"required"`
	InitialQuantity  int             `json:"initial_quantity" binding:"min=0"`
	ForcePriceUpdate bool            `json:"force_price_update"`
}

// UpdateBatchRequest represents a request to update a batch's mutable fields
type UpdateBatchRequest struct {
	ExpirationDate    *time.Time      `json:"expiration_date"`
	UnitCost          decimal.Decimal `json:"unit_cost" binding:"required"`
	ListPrice         decimal.Decimal `json:"list_price" binding:"required"`
	AvailableQuantity int             `json:"available_quantity" binding:"min=0"`
	ForcePriceUpdate  bool            `json:"force_price_update"`
}

// BatchListFilter represents filter options for batch listing
type BatchListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToBatchResponse converts a batch entity to a response DTO
func ToBatchResponse(b *inventory.Batch) BatchResponse {
	return BatchResponse{
		ID:                b.ID,
		ProductID:         b.ProductID,
		PurchaseDate:      b.PurchaseDate,
		ExpirationDate:    b.ExpirationDate,
		UnitCost:          b.UnitCost,
		ListPrice:         b.ListPrice,
		InitialQuantity:   b.InitialQuantity,
		AvailableQuantity: b.AvailableQuantity,
		HasStock:          b.HasStock(),
		Value:             b.Value(),
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// ToBatchResponses converts a slice of batches to response DTOs
func ToBatchResponses(batches []inventory.Batch) []BatchResponse {
	responses := make([]BatchResponse, len(batches))
	for i := range batches {
		responses[i] = ToBatchResponse(&batches[i])
	}
	return responses
}
