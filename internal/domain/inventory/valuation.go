package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Presentation is the derived sale and valuation view of a product's batch
// set. It is recomputed on every read and never persisted. Monetary fields
// are nil when the product has no stock, which is distinct from a zero value.
type Presentation struct {
	PrioritizedBatchID  *uuid.UUID
	TotalStock          int
	HasStock            bool
	ListPrice           *decimal.Decimal
	VATAmount           *decimal.Decimal
	PriceWithVAT        *decimal.Decimal
	WeightedAverageCost *decimal.Decimal
	InventoryValue      *decimal.Decimal
	CostVariance        bool
}

// ComputePresentation derives the presentation from a product's batches.
// The prioritized batch supplies the sale price; cost figures are weighted
// averages over all batches with stock. vatPercent may be nil when the
// product's VAT rate could not be resolved, in which case the VAT-derived
// fields stay nil.
func ComputePresentation(vatPercent *decimal.Decimal, batches []Batch) Presentation {
	p := Presentation{}

	totalStock := 0
	totalValue := decimal.Zero
	var distinctCosts []decimal.Decimal
	for i := range batches {
		b := &batches[i]
		if !b.HasStock() {
			continue
		}
		totalStock += b.AvailableQuantity
		totalValue = totalValue.Add(b.Value())
		if !containsDecimal(distinctCosts, b.UnitCost) {
			distinctCosts = append(distinctCosts, b.UnitCost)
		}
	}

	p.TotalStock = totalStock
	p.HasStock = totalStock > 0
	if !p.HasStock {
		return p
	}

	prioritized := PrioritizedBatch(batches)
	id := prioritized.ID
	p.PrioritizedBatchID = &id

	listPrice := prioritized.ListPrice
	p.ListPrice = &listPrice
	if vatPercent != nil {
		vat := listPrice.Mul(*vatPercent).Div(decimal.NewFromInt(100))
		gross := listPrice.Add(vat)
		p.VATAmount = &vat
		p.PriceWithVAT = &gross
	}

	avgCost := totalValue.Div(decimal.NewFromInt(int64(totalStock)))
	p.WeightedAverageCost = &avgCost
	p.InventoryValue = &totalValue
	p.CostVariance = len(distinctCosts) > 1

	return p
}

func containsDecimal(values []decimal.Decimal, v decimal.Decimal) bool {
	for _, existing := range values {
		if existing.Equal(v) {
			return true
		}
	}
	return false
}
