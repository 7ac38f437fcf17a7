package catalog

import (
	"context"
	"errors"
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

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Category), args.Error(1)
}

// MockVATRateRepository is a mock implementation of catalog.VATRateRepository
type MockVATRateRepository struct {
	mock.Mock
}

func (m *MockVATRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.VATRate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.VATRate), args.Error(1)
}

func (m *MockVATRateRepository) FindAll(ctx context.Context) ([]catalog.VATRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.VATRate), args.Error(1)
}

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

type serviceMocks struct {
	products   *MockProductRepository
	categories *MockCategoryRepository
	vatRates   *MockVATRateRepository
	batches    *MockBatchRepository
}

func newTestService(t *testing.T) (*ProductService, serviceMocks) {
	t.Helper()
	mocks := serviceMocks{
		products:   new(MockProductRepository),
		categories: new(MockCategoryRepository),
		vatRates:   new(MockVATRateRepository),
		batches:    new(MockBatchRepository),
	}
	service := NewProductService(mocks.products, mocks.categories, mocks.vatRates, mocks.batches, zap.NewNop())
	return service, mocks
}

func testCategory(t *testing.T) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory("Medicines", "")
	require.NoError(t, err)
	return c
}

func testVATRate(t *testing.T, percentage int64) *catalog.VATRate {
	t.Helper()
	v, err := catalog.NewVATRate("IVA_15", decimal.NewFromInt(percentage), "Standard rate")
	require.NoError(t, err)
	return v
}

func testProduct(t *testing.T, categoryID, vatRateID uuid.UUID) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("SKU-1", "Paracetamol 500mg", "", "unit", categoryID, vatRateID)
	require.NoError(t, err)
	return p
}

func stockBatch(t *testing.T, productID uuid.UUID, cost, price string, available int) inventory.Batch {
	t.Helper()
	b, err := inventory.NewBatch(productID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), nil,
		decimal.RequireFromString(cost), decimal.RequireFromString(price), available)
	require.NoError(t, err)
	return *b
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a product with a unique code", func(t *testing.T) {
		service, mocks := newTestService(t)
		category := testCategory(t)
		vatRate := testVATRate(t, 15)

		req := CreateProductRequest{
			Code:       "sku-9",
			Name:       "Ibuprofen 400mg",
			Unit:       "box",
			CategoryID: category.ID,
			VATRateID:  vatRate.ID,
		}

		mocks.products.On("ExistsByCode", ctx, "SKU-9").Return(false, nil)
		mocks.categories.On("FindByID", ctx, category.ID).Return(category, nil)
		mocks.vatRates.On("FindByID", ctx, vatRate.ID).Return(vatRate, nil)
		mocks.products.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
		mocks.batches.On("FindByProduct", ctx, mock.AnythingOfType("uuid.UUID")).Return([]inventory.Batch{}, nil)

		resp, err := service.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "SKU-9", resp.Code)
		assert.False(t, resp.HasStock)
		assert.Nil(t, resp.ListPrice)
	})

	t.Run("duplicate code", func(t *testing.T) {
		service, mocks := newTestService(t)
		category := testCategory(t)
		vatRate := testVATRate(t, 15)

		mocks.products.On("ExistsByCode", ctx, "SKU-9").Return(true, nil)

		_, err := service.Create(ctx, CreateProductRequest{
			Code: "SKU-9", Name: "Ibuprofen", CategoryID: category.ID, VATRateID: vatRate.ID,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeAlreadyExists, domainErr.Code)
		mocks.products.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("presentation fields from batches", func(t *testing.T) {
		service, mocks := newTestService(t)
		category := testCategory(t)
		vatRate := testVATRate(t, 15)
		product := testProduct(t, category.ID, vatRate.ID)
		batches := []inventory.Batch{
			stockBatch(t, product.ID, "10", "25", 2),
			stockBatch(t, product.ID, "20", "25", 2),
		}

		mocks.products.On("FindByID", ctx, product.ID).Return(product, nil)
		mocks.batches.On("FindByProduct", ctx, product.ID).Return(batches, nil)
		mocks.categories.On("FindByID", ctx, category.ID).Return(category, nil)
		mocks.vatRates.On("FindByID", ctx, vatRate.ID).Return(vatRate, nil)

		resp, err := service.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, resp.HasStock)
		assert.Equal(t, 4, resp.TotalStock)
		require.NotNil(t, resp.WeightedAverageCost)
		assert.True(t, resp.WeightedAverageCost.Equal(decimal.NewFromInt(15)))
		require.NotNil(t, resp.InventoryValue)
		assert.True(t, resp.InventoryValue.Equal(decimal.NewFromInt(60)))
		require.NotNil(t, resp.PriceWithVAT)
		assert.True(t, resp.PriceWithVAT.Equal(decimal.RequireFromString("28.75")))
		assert.True(t, resp.CostVariance)
		assert.Equal(t, "Medicines", resp.CategoryName)
		assert.Equal(t, "IVA_15", resp.VATCode)
	})

	t.Run("unresolved vat rate leaves vat fields unknown", func(t *testing.T) {
		service, mocks := newTestService(t)
		category := testCategory(t)
		product := testProduct(t, category.ID, uuid.New())
		batches := []inventory.Batch{stockBatch(t, product.ID, "10", "25", 2)}

		mocks.products.On("FindByID", ctx, product.ID).Return(product, nil)
		mocks.batches.On("FindByProduct", ctx, product.ID).Return(batches, nil)
		mocks.categories.On("FindByID", ctx, category.ID).Return(category, nil)
		mocks.vatRates.On("FindByID", ctx, product.VATRateID).
			Return(nil, shared.NewDomainError(shared.CodeNotFound, "VAT rate not found"))

		resp, err := service.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, resp.ListPrice)
		assert.Nil(t, resp.VATAmount)
		assert.Nil(t, resp.PriceWithVAT)
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("a broken product never aborts the listing", func(t *testing.T) {
		service, mocks := newTestService(t)
		category := testCategory(t)
		vatRate := testVATRate(t, 15)
		good := testProduct(t, category.ID, vatRate.ID)
		bad, err := catalog.NewProduct("SKU-2", "Broken", "", "unit", category.ID, vatRate.ID)
		require.NoError(t, err)

		mocks.products.On("FindActive", ctx, mock.AnythingOfType("shared.Filter")).
			Return([]catalog.Product{*good, *bad}, nil)
		mocks.products.On("CountActive", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(2), nil)
		mocks.batches.On("FindByProduct", ctx, good.ID).
			Return([]inventory.Batch{stockBatch(t, good.ID, "10", "25", 3)}, nil)
		mocks.batches.On("FindByProduct", ctx, bad.ID).
			Return(nil, errors.New("storage corrupted"))
		mocks.categories.On("FindByID", ctx, category.ID).Return(category, nil)
		mocks.vatRates.On("FindByID", ctx, vatRate.ID).Return(vatRate, nil)

		responses, total, err := service.List(ctx, ProductListFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		// the batch load failure degrades to an empty presentation, not an abort
		require.Len(t, responses, 2)
		assert.True(t, responses[0].HasStock)
		assert.False(t, responses[1].HasStock)
	})

	t.Run("inactive products excluded by default", func(t *testing.T) {
		service, mocks := newTestService(t)

		mocks.products.On("FindActive", ctx, mock.AnythingOfType("shared.Filter")).
			Return([]catalog.Product{}, nil)
		mocks.products.On("CountActive", ctx, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)

		_, _, err := service.List(ctx, ProductListFilter{})
		require.NoError(t, err)
		mocks.products.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
	})

	t.Run("total matches the active-only listing", func(t *testing.T) {
		service, mocks := newTestService(t)
		category := testCategory(t)
		vatRate := testVATRate(t, 15)
		active := testProduct(t, category.ID, vatRate.ID)

		// One of two products is deactivated; the total must ignore it
		// just like the rows do.
		mocks.products.On("FindActive", ctx, mock.AnythingOfType("shared.Filter")).
			Return([]catalog.Product{*active}, nil)
		mocks.products.On("CountActive", ctx, mock.AnythingOfType("shared.Filter")).
			Return(int64(1), nil)
		mocks.batches.On("FindByProduct", ctx, active.ID).Return([]inventory.Batch{}, nil)
		mocks.categories.On("FindByID", ctx, category.ID).Return(category, nil)
		mocks.vatRates.On("FindByID", ctx, vatRate.ID).Return(vatRate, nil)

		responses, total, err := service.List(ctx, ProductListFilter{})
		require.NoError(t, err)
		assert.Len(t, responses, 1)
		assert.Equal(t, int64(1), total)
		mocks.products.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
	})
}

func TestProductService_Deactivate(t *testing.T) {
	ctx := context.Background()
	service, mocks := newTestService(t)
	product := testProduct(t, uuid.New(), uuid.New())

	mocks.products.On("FindByID", ctx, product.ID).Return(product, nil)
	mocks.products.On("Save", ctx, product).Return(nil)

	require.NoError(t, service.Deactivate(ctx, product.ID))
	assert.False(t, product.IsActive())

	require.NoError(t, service.Reactivate(ctx, product.ID))
	assert.True(t, product.IsActive())
}
