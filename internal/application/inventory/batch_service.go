package inventory

import (
	"context"
	"fmt"

	"github.com/facturacion/backend/internal/domain/catalog"
	"github.com/facturacion/backend/internal/domain/inventory"
	"github.com/facturacion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BatchService handles purchase batch lifecycle operations. Writes for the
// same product are serialized so the price variance decision and its
// propagation see a stable batch set.
type BatchService struct {
	batchRepo   inventory.BatchRepository
	productRepo catalog.ProductRepository
	locks       *productLocks
	logger      *zap.Logger
}

// NewBatchService creates a new BatchService
func NewBatchService(batchRepo inventory.BatchRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *BatchService {
	return &BatchService{
		batchRepo:   batchRepo,
		productRepo: productRepo,
		locks:       newProductLocks(),
		logger:      logger,
	}
}

// Create registers a new purchase batch. When the requested list price differs
// from any sibling batch's price the request is rejected, unless the caller
// set ForcePriceUpdate, in which case the new price is propagated to every
// sibling after the batch is persisted.
func (s *BatchService) Create(ctx context.Context, req CreateBatchRequest) (*BatchResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive() {
		return nil, shared.NewDomainError(shared.CodeNotFound, "Product not found")
	}

	unlock := s.locks.Lock(req.ProductID)
	defer unlock()

	batch, err := inventory.NewBatch(
		req.ProductID,
		req.PurchaseDate,
		req.ExpirationDate,
		req.UnitCost,
		req.ListPrice,
		req.InitialQuantity,
	)
	if err != nil {
		return nil, err
	}

	siblings, err := s.batchRepo.FindByProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	variance := priceVariance(siblings, req.ListPrice, nil)
	if variance && !req.ForcePriceUpdate {
		return nil, priceVarianceError()
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}
	if variance {
		if err := s.batchRepo.BulkSetListPrice(ctx, req.ProductID, req.ListPrice, &batch.ID); err != nil {
			return nil, err
		}
		s.logger.Info("propagated list price to sibling batches",
			zap.String("product_id", req.ProductID.String()),
			zap.String("batch_id", batch.ID.String()),
			zap.String("list_price", req.ListPrice.String()))
	}

	response := s.toResponse(batch, product)
	return &response, nil
}

// Update changes a batch's mutable fields with the same price variance
// semantics as Create, comparing against the product's other batches.
func (s *BatchService) Update(ctx context.Context, batchID uuid.UUID, req UpdateBatchRequest) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(batch.ProductID)
	defer unlock()

	if err := batch.UpdateDetails(req.ExpirationDate, req.UnitCost, req.ListPrice, req.AvailableQuantity); err != nil {
		return nil, err
	}

	siblings, err := s.batchRepo.FindByProduct(ctx, batch.ProductID)
	if err != nil {
		return nil, err
	}
	variance := priceVariance(siblings, req.ListPrice, &batchID)
	if variance && !req.ForcePriceUpdate {
		return nil, priceVarianceError()
	}

	if err := s.batchRepo.Save(ctx, batch); err != nil {
		return nil, err
	}
	if variance {
		if err := s.batchRepo.BulkSetListPrice(ctx, batch.ProductID, req.ListPrice, &batchID); err != nil {
			return nil, err
		}
		s.logger.Info("propagated list price to sibling batches",
			zap.String("product_id", batch.ProductID.String()),
			zap.String("batch_id", batchID.String()),
			zap.String("list_price", req.ListPrice.String()))
	}

	response := s.resolveResponse(ctx, batch)
	return &response, nil
}

// Delete removes a batch. Batches holding stock cannot be deleted.
func (s *BatchService) Delete(ctx context.Context, batchID uuid.UUID) error {
	batch, err := s.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(batch.ProductID)
	defer unlock()

	if batch.HasStock() {
		return shared.NewDomainError(shared.CodeHasStock,
			fmt.Sprintf("The batch cannot be deleted because it still has %d units in stock", batch.AvailableQuantity))
	}
	return s.batchRepo.Delete(ctx, batchID)
}

// GetByID retrieves a batch with its product context resolved
func (s *BatchService) GetByID(ctx context.Context, batchID uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	response := s.resolveResponse(ctx, batch)
	return &response, nil
}

// List retrieves batches with pagination
func (s *BatchService) List(ctx context.Context, filter BatchListFilter) ([]BatchResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	batches, err := s.batchRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.batchRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToBatchResponses(batches), total, nil
}

// ListByProduct retrieves all batches of a product
func (s *BatchService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]BatchResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	batches, err := s.batchRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToBatchResponses(batches), nil
}

// GetPrioritized returns the batch the next sale should consume, or a
// NOT_FOUND error when the product has no stock at all.
func (s *BatchService) GetPrioritized(ctx context.Context, productID uuid.UUID) (*BatchResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	batches, err := s.batchRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	prioritized := inventory.PrioritizedBatch(batches)
	if prioritized == nil {
		return nil, shared.NewDomainError(shared.CodeNotFound, "The product has no batches with available stock")
	}
	response := s.toResponse(prioritized, product)
	return &response, nil
}

// priceVariance reports whether any batch other than excludeID carries a list
// price different from price. Exact decimal equality, no tolerance.
func priceVariance(batches []inventory.Batch, price decimal.Decimal, excludeID *uuid.UUID) bool {
	for i := range batches {
		if excludeID != nil && batches[i].ID == *excludeID {
			continue
		}
		if !batches[i].ListPrice.Equal(price) {
			return true
		}
	}
	return false
}

func priceVarianceError() error {
	return shared.NewDomainError(shared.CodePriceVariance,
		"The list price differs from the product's other batches; resubmit with force_price_update to apply it to all of them")
}

func (s *BatchService) toResponse(batch *inventory.Batch, product *catalog.Product) BatchResponse {
	response := ToBatchResponse(batch)
	if product != nil {
		response.ProductCode = product.Code
		response.ProductName = product.Name
	}
	return response
}

// resolveResponse attaches product context when the product can still be
// loaded. The batch itself is always returned.
func (s *BatchService) resolveResponse(ctx context.Context, batch *inventory.Batch) BatchResponse {
	product, err := s.productRepo.FindByID(ctx, batch.ProductID)
	if err != nil {
		s.logger.Warn("batch product could not be resolved",
			zap.String("batch_id", batch.ID.String()),
			zap.String("product_id", batch.ProductID.String()),
			zap.Error(err))
		return ToBatchResponse(batch)
	}
	return s.toResponse(batch, product)
}
