package catalog

import (
	"time"

	"github.com/facturacion/backend/internal/domain/catalog"
	"github.com/facturacion/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductResponse represents a product with its derived sale presentation.
// Monetary presentation fields are null when the product has no stock.
type ProductResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Unit         string    `json:"unit"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	VATRateID    uuid.UUID `json:"vat_rate_id"`
	VATCode      string    `json:"vat_code,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	PrioritizedBatchID  *uuid.UUID       `json:"prioritized_batch_id"`
	TotalStock          int              `json:"total_stock"`
	HasStock            bool             `json:"has_stock"`
	ListPrice           *decimal.Decimal `json:"list_price"`
	VATAmount           *decimal.Decimal `json:"vat_amount"`
	PriceWithVAT        *decimal.Decimal `json:"price_with_vat"`
	WeightedAverageCost *decimal.Decimal `json:"weighted_average_cost"`
	InventoryValue      *decimal.Decimal `json:"inventory_value"`
	CostVariance        bool             `json:"cost_variance"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Code        string    `json:"code" binding:"required,max=50,product_code"`
	Name        string    `json:"name" binding:"required,max=200"`
	Description string    `json:"description"`
	Unit        string    `json:"unit"`
	CategoryID  uuid.UUID `json:"category_id" binding:"required"`
	VATRateID   uuid.UUID `json:"vat_rate_id" binding:"required"`
}

// UpdateProductRequest represents a request to update a product. The code is
// immutable and absent here.
type UpdateProductRequest struct {
	Name        string    `json:"name" binding:"required,max=200"`
	Description string    `json:"description"`
	Unit        string    `json:"unit"`
	CategoryID  uuid.UUID `json:"category_id" binding:"required"`
	VATRateID   uuid.UUID `json:"vat_rate_id" binding:"required"`
}

// ProductListFilter represents filter options for product listing
type ProductListFilter struct {
	Search          string `form:"search"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page" binding:"omitempty,min=1"`
	PageSize        int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy         string `form:"order_by"`
	OrderDir        string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// VATRateResponse represents a VAT rate in API responses
type VATRateResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Percentage  decimal.Decimal `json:"percentage"`
	Description string          `json:"description"`
}

// ToProductResponse builds the response for a product, folding in the derived
// presentation and the resolved category and VAT names when available.
func ToProductResponse(product *catalog.Product, category *catalog.Category, vatRate *catalog.VATRate, presentation inventory.Presentation) ProductResponse {
	if product == nil {
		panic("catalog: ToProductResponse called with nil product")
	}
	resp := ProductResponse{
		ID:          product.ID,
		Code:        product.Code,
		Name:        product.Name,
		Description: product.Description,
		Unit:        product.Unit,
		CategoryID:  product.CategoryID,
		VATRateID:   product.VATRateID,
		Active:      product.IsActive(),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,

		PrioritizedBatchID:  presentation.PrioritizedBatchID,
		TotalStock:          presentation.TotalStock,
		HasStock:            presentation.HasStock,
		ListPrice:           presentation.ListPrice,
		VATAmount:           presentation.VATAmount,
		PriceWithVAT:        presentation.PriceWithVAT,
		WeightedAverageCost: presentation.WeightedAverageCost,
		InventoryValue:      presentation.InventoryValue,
		CostVariance:        presentation.CostVariance,
	}
	if category != nil {
		resp.CategoryName = category.Name
	}
	if vatRate != nil {
		resp.VATCode = vatRate.Code
	}
	return resp
}

// ToCategoryResponses converts categories to response DTOs
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
	}
	return responses
}

// ToVATRateResponses converts VAT rates to response DTOs
func ToVATRateResponses(rates []catalog.VATRate) []VATRateResponse {
	responses := make([]VATRateResponse, len(rates))
	for i, r := range rates {
		responses[i] = VATRateResponse{ID: r.ID, Code: r.Code, Percentage: r.Percentage, Description: r.Description}
	}
	return responses
}
