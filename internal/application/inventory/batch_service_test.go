package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/facturacion/backend/internal/domain/catalog"
	"github.com/facturacion/backend/internal/domain/inventory"
	"github.com/facturacion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockBatchRepository is a mock implementation of inventory.BatchRepository
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.Batch, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Batch, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Batch), args.Error(1)
}

func (m *MockBatchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBatchRepository) Save(ctx context.Context, batch *inventory.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBatchRepository) BulkSetListPrice(ctx context.Context, productID uuid.UUID, price decimal.Decimal, excludeID *uuid.UUID) error {
	args := m.Called(ctx, productID, price, excludeID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) SearchByCodeOrName(ctx context.Context, term string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, term, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountActive(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(t *testing.T) (*BatchService, *MockBatchRepository, *MockProductRepository) {
	t.Helper()
	batchRepo := new(MockBatchRepository)
	productRepo := new(MockProductRepository)
	return NewBatchService(batchRepo, productRepo, zap.NewNop()), batchRepo, productRepo
}

func testProduct(t *testing.T) *catalog.Product {
	t.Helper()
	categoryID := uuid.New()
	vatRateID := uuid.New()
	product, err := catalog.NewProduct("SKU-1", "Paracetamol 500mg", "", "unit", categoryID, vatRateID)
	require.NoError(t, err)
	return product
}

func siblingBatch(t *testing.T, productID uuid.UUID, price string, available int) inventory.Batch {
	t.Helper()
	b, err := inventory.NewBatch(productID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil,
		decimal.NewFromInt(10), decimal.RequireFromString(price), available)
	require.NoError(t, err)
	return *b
}

func TestBatchService_Create(t *testing.T) {
	ctx := context.Background()
	purchase := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	baseRequest := func(productID uuid.UUID) CreateBatchRequest {
		return CreateBatchRequest{
			ProductID:       productID,
			PurchaseDate:    purchase,
			UnitCost:        decimal.NewFromInt(10),
			ListPrice:       decimal.NewFromInt(25),
			InitialQuantity: 20,
		}
	}

	t.Run("first batch of a product", func(t *testing.T) {
		service, batchRepo, productRepo := newTestService(t)
		product := testProduct(t)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		batchRepo.On("FindByProduct", ctx, product.ID).Return([]inventory.Batch{}, nil)
		batchRepo.On("Save", ctx, mock.AnythingOfType("*inventory.Batch")).Return(nil)

		resp, err := service.Create(ctx, baseRequest(product.ID))
		require.NoError(t, err)
		assert.Equal(t, product.ID, resp.ProductID)
		assert.Equal(t, "SKU-1", resp.ProductCode)
		assert.Equal(t, 20, resp.AvailableQuantity)
		batchRepo.AssertNotCalled(t, "BulkSetListPrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("matching price needs no force flag", func(t *testing.T) {
		service, batchRepo, productRepo := newTestService(t)
		product := testProduct(t)
		sibling := siblingBatch(t, product.ID, "25", 5)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		batchRepo.On("FindByProduct", ctx, product.ID).Return([]inventory.Batch{sibling}, nil)
		batchRepo.On("Save", ctx, mock.AnythingOfType("*inventory.Batch")).Return(nil)

		_, err := service.Create(ctx, baseRequest(product.ID))
		require.NoError(t, err)
		batchRepo.AssertNotCalled(t, "BulkSetListPrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("price variance without force performs no write", func(t *testing.T) {
		service, batchRepo, productRepo := newTestService(t)
		product := testProduct(t)
		sibling := siblingBatch(t, product.ID, "30", 5)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		batchRepo.On("FindByProduct", ctx, product.ID).Return([]inventory.Batch{sibling}, nil)

		_, err := service.Create(ctx, baseRequest(product.ID))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodePriceVariance, domainErr.Code)
		batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		batchRepo.AssertNotCalled(t, "BulkSetListPrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("sub-cent difference still counts as variance", func(t *testing.T) {
		service, batchRepo, productRepo := newTestService(t)
		product := testProduct(t)
		sibling := siblingBatch(t, product.ID, "25.0001", 5)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		batchRepo.On("FindByProduct", ctx, product.ID).Return([]inventory.Batch{sibling}, nil)

		_, err := service.Create(ctx, baseRequest(product.ID))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodePriceVariance, domainErr.Code)
	})

	t.Run("force flag persists and propagates to siblings", func(t *testing.T) {
		service, batchRepo, productRepo := newTestService(t)
		product := testProduct(t)
		sibling := siblingBatch(t, product.ID, "30", 5)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		batchRepo.On("FindByProduct", ctx, product.ID).Return([]inventory.Batch{sibling}, nil)
		var savedID uuid.UUID
		batchRepo.On("Save", ctx, mock.AnythingOfType("*inventory.Batch")).Run(func(args mock.Arguments) {
			savedID = args.Get(1).(*inventory.Batch).ID
		}).Return(nil)
		batchRepo.On("BulkSetListPrice", ctx, product.ID, decimal.NewFromInt(25), mock.AnythingOfType("*uuid.UUID")).Return(nil)

		req := baseRequest(product.ID)
		req.ForcePriceUpdate = true
		resp, err := service.Create(ctx, req)
		require.NoError(t, err)

		batchRepo.AssertCalled(t, "BulkSetListPrice", ctx, product.ID, decimal.NewFromInt(25), mock.AnythingOfType("*uuid.UUID"))
		excludeID := batchRepo.Calls[len(batchRepo.Calls)-1].Arguments.Get(3).(*uuid.UUID)
		assert.Equal(t, savedID, *excludeID)
		assert.Equal(t, resp.ID, savedID)
	})

	t.Run("unknown product", func(t *testing.T) {
		service, _, productRepo := newTestService(t)
		productID := uuid.New()
		productRepo.On("FindByID", ctx, productID).
			Return(nil, shared.NewDomainError(shared.CodeNotFound, "Product not found"))

		_, err := service.Create(ctx, baseRequest(productID))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeNotFound, domainErr.Code)
	})

	t.Run("inactive product", func(t *testing.T) {
		service, _, productRepo := newTestService(t)
		product := testProduct(t)
		product.Deactivate()
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.Create(ctx, baseRequest(product.ID))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeNotFound, domainErr.Code)
	})

	t.Run("expiration before purchase date", func(t *testing.T) {
		service, batchRepo, productRepo := newTestService(t)
		product := testProduct(t)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		req := baseRequest(product.ID)
		expiry := purchase.AddDate(0, 0, -1)
		req.ExpirationDate = &expiry
		_, err := service.Create(ctx, req)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidDate, domainErr.Code)
		batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("expiration equal to purchase date succeeds", func(t *testing.T) {
		service, batchRepo, productRepo := newTestService(t)
		product := testProduct(t)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		batchRepo.On("FindByProduct", ctx, product.ID).Return([]inventory.Batch{}, nil)
		batchRepo.On("Save", ctx, mock.AnythingOfType("*inventory.Batch")).Return(nil)

		req := baseRequest(product.ID)
		expiry := purchase
		req.ExpirationDate = &expiry
		_, err := service.Create(ctx, req)
		assert.NoError(t, err)
	})
}

func TestBatchService_Update(t *testing.T) {
	ctx := context.Background()

	baseRequest := UpdateBatchRequest{
		UnitCost:          decimal.NewFromInt(12),
		ListPrice:         decimal.NewFromInt(25),
		AvailableQuantity: 10,
	}

	t.Run("updates without variance", func(t *testing.T) {
		service, batchRepo, productRepo := newTestService(t)
		product := testProduct(t)
		target := siblingBatch(t, product.ID, "25", 15)
		other := siblingBatch(t, product.ID, "25", 5)

		batchRepo.On("FindByID", ctx, target.ID).Return(&target, nil)
		batchRepo.On("FindByProduct", ctx, product.ID).Return([]inventory.Batch{target, other}, nil)
		batchRepo.On("Save", ctx, &target).Return(nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		resp, err := service.Update(ctx, target.ID, baseRequest)
		require.NoError(t, err)
		assert.Equal(t, 10, resp.AvailableQuantity)
		assert.Equal(t, "SKU-1", resp.ProductCode)
		batchRepo.AssertNotCalled(t, "BulkSetListPrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("the batch's own old price never triggers variance", func(t *testing.T) {
		service, batchRepo, productRepo := newTestService(t)
		product := testProduct(t)
		target := siblingBatch(t, product.ID, "20", 15)

		batchRepo.On("FindByID", ctx, target.ID).Return(&target, nil)
		// sibling set as loaded from storage still carries the old price
		stale := target
		stale.ListPrice = decimal.NewFromInt(20)
		batchRepo.On("FindByProduct", ctx, product.ID).Return([]inventory.Batch{stale}, nil)
		batchRepo.On("Save", ctx, &target).Return(nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.Update(ctx, target.ID, baseRequest)
		assert.NoError(t, err)
	})

	t.Run("variance against sibling requires force", func(t *testing.T) {
		service, batchRepo, _ := newTestService(t)
		product := testProduct(t)
		target := siblingBatch(t, product.ID, "25", 15)
		other := siblingBatch(t, product.ID, "30", 5)

		batchRepo.On("FindByID", ctx, target.ID).Return(&target, nil)
		batchRepo.On("FindByProduct", ctx, product.ID).Return([]inventory.Batch{target, other}, nil)

		_, err := service.Update(ctx, target.ID, baseRequest)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodePriceVariance, domainErr.Code)
		batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("force propagates excluding the updated batch", func(t *testing.T) {
		service, batchRepo, productRepo := newTestService(t)
		product := testProduct(t)
		target := siblingBatch(t, product.ID, "25", 15)
		other := siblingBatch(t, product.ID, "30", 5)

		batchRepo.On("FindByID", ctx, target.ID).Return(&target, nil)
		batchRepo.On("FindByProduct", ctx, product.ID).Return([]inventory.Batch{target, other}, nil)
		batchRepo.On("Save", ctx, &target).Return(nil)
		batchRepo.On("BulkSetListPrice", ctx, product.ID, decimal.NewFromInt(25), &target.ID).Return(nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		req := baseRequest
		req.ForcePriceUpdate = true
		_, err := service.Update(ctx, target.ID, req)
		require.NoError(t, err)
		batchRepo.AssertCalled(t, "BulkSetListPrice", ctx, product.ID, decimal.NewFromInt(25), &target.ID)
	})

	t.Run("invalid date change is rejected before any write", func(t *testing.T) {
		service, batchRepo, _ := newTestService(t)
		product := testProduct(t)
		target := siblingBatch(t, product.ID, "25", 15)

		batchRepo.On("FindByID", ctx, target.ID).Return(&target, nil)

		req := baseRequest
		expiry := target.PurchaseDate.AddDate(0, 0, -1)
		req.ExpirationDate = &expiry
		_, err := service.Update(ctx, target.ID, req)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeInvalidDate, domainErr.Code)
		batchRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestBatchService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("batch with stock cannot be deleted", func(t *testing.T) {
		service, batchRepo, _ := newTestService(t)
		target := siblingBatch(t, uuid.New(), "25", 7)

		batchRepo.On("FindByID", ctx, target.ID).Return(&target, nil)

		err := service.Delete(ctx, target.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeHasStock, domainErr.Code)
		assert.Contains(t, domainErr.Message, "7")
		batchRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("empty batch is deleted", func(t *testing.T) {
		service, batchRepo, _ := newTestService(t)
		target := siblingBatch(t, uuid.New(), "25", 0)

		batchRepo.On("FindByID", ctx, target.ID).Return(&target, nil)
		batchRepo.On("Delete", ctx, target.ID).Return(nil)

		err := service.Delete(ctx, target.ID)
		require.NoError(t, err)
		batchRepo.AssertCalled(t, "Delete", ctx, target.ID)
	})
}

func TestBatchService_GetPrioritized(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the earliest expiring batch", func(t *testing.T) {
		service, batchRepo, productRepo := newTestService(t)
		product := testProduct(t)
		soon := siblingBatch(t, product.ID, "25", 5)
		exp := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		soon.ExpirationDate = &exp
		later := siblingBatch(t, product.ID, "25", 5)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		batchRepo.On("FindByProduct", ctx, product.ID).Return([]inventory.Batch{later, soon}, nil)

		resp, err := service.GetPrioritized(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, soon.ID, resp.ID)
	})

	t.Run("no stock yields not found", func(t *testing.T) {
		service, batchRepo, productRepo := newTestService(t)
		product := testProduct(t)
		empty := siblingBatch(t, product.ID, "25", 0)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		batchRepo.On("FindByProduct", ctx, product.ID).Return([]inventory.Batch{empty}, nil)

		_, err := service.GetPrioritized(ctx, product.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeNotFound, domainErr.Code)
	})
}
