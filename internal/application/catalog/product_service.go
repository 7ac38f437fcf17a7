package catalog

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

// ProductService handles product catalog operations and assembles the sale
// presentation (price, stock, valuation) for read paths.
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	vatRateRepo  catalog.VATRateRepository
	batchRepo    inventory.BatchRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	vatRateRepo catalog.VATRateRepository,
	batchRepo inventory.BatchRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		vatRateRepo:  vatRateRepo,
		batchRepo:    batchRepo,
		logger:       logger,
	}
}

// Create registers a new product. The code must be unique across the catalog.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Code, req.Name, req.Description, req.Unit, req.CategoryID, req.VATRateID)
	if err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsByCode(ctx, product.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists,
			fmt.Sprintf("A product with code %s already exists", product.Code))
	}

	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if _, err := s.vatRateRepo.FindByID(ctx, req.VATRateID); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := s.assemble(ctx, product)
	return &response, nil
}

// GetByID retrieves a product with its presentation
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := s.assemble(ctx, product)
	return &response, nil
}

// GetByCode retrieves a product by its code with its presentation
func (s *ProductService) GetByCode(ctx context.Context, code string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := s.assemble(ctx, product)
	return &response, nil
}

// Update changes a product's editable fields. The code never changes.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}
	if _, err := s.vatRateRepo.FindByID(ctx, req.VATRateID); err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description, req.Unit, req.CategoryID, req.VATRateID); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := s.assemble(ctx, product)
	return &response, nil
}

// Deactivate soft-deletes a product. Its batches are untouched.
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Deactivate()
	return s.productRepo.Save(ctx, product)
}

// Reactivate restores a deactivated product
func (s *ProductService) Reactivate(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	product.Reactivate()
	return s.productRepo.Save(ctx, product)
}

// List retrieves products with their presentations and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	domainFilter := s.toDomainFilter(filter)

	// The count must use the same visibility as the row query or the
	// pagination metadata drifts from what the listing can return.
	var (
		products []catalog.Product
		total    int64
		err      error
	)
	if filter.IncludeInactive {
		products, err = s.productRepo.FindAll(ctx, domainFilter)
		if err != nil {
			return nil, 0, err
		}
		total, err = s.productRepo.Count(ctx, domainFilter)
	} else {
		products, err = s.productRepo.FindActive(ctx, domainFilter)
		if err != nil {
			return nil, 0, err
		}
		total, err = s.productRepo.CountActive(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	return s.assembleAll(ctx, products), total, nil
}

// Search finds products whose code or name matches the term
func (s *ProductService) Search(ctx context.Context, term string, filter ProductListFilter) ([]ProductResponse, error) {
	products, err := s.productRepo.SearchByCodeOrName(ctx, term, s.toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return s.assembleAll(ctx, products), nil
}

func (s *ProductService) toDomainFilter(filter ProductListFilter) shared.Filter {
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
	return domainFilter
}

// assemble builds the presentation for one product. Lookup failures on
// batches, category or VAT rate degrade the presentation instead of failing
// the read.
func (s *ProductService) assemble(ctx context.Context, product *catalog.Product) ProductResponse {
	batches, err := s.batchRepo.FindByProduct(ctx, product.ID)
	if err != nil {
		s.logger.Warn("batches could not be loaded for presentation",
			zap.String("product_id", product.ID.String()),
			zap.Error(err))
		batches = nil
	}

	var category *catalog.Category
	if c, err := s.categoryRepo.FindByID(ctx, product.CategoryID); err == nil {
		category = c
	}

	var (
		vatRate    *catalog.VATRate
		vatPercent *decimal.Decimal
	)
	if v, err := s.vatRateRepo.FindByID(ctx, product.VATRateID); err == nil {
		vatRate = v
		vatPercent = &v.Percentage
	} else {
		s.logger.Warn("vat rate could not be resolved for presentation",
			zap.String("product_id", product.ID.String()),
			zap.String("vat_rate_id", product.VATRateID.String()),
			zap.Error(err))
	}

	presentation := inventory.ComputePresentation(vatPercent, batches)
	return ToProductResponse(product, category, vatRate, presentation)
}

// assembleAll assembles every product in the list. A product whose
// presentation cannot be assembled is logged and skipped; one bad record
// never aborts the listing.
func (s *ProductService) assembleAll(ctx context.Context, products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		response, err := s.assembleSafe(ctx, &products[i])
		if err != nil {
			s.logger.Error("skipping product with broken presentation",
				zap.String("product_id", products[i].ID.String()),
				zap.String("product_code", products[i].Code),
				zap.Error(err))
			continue
		}
		responses = append(responses, response)
	}
	return responses
}

func (s *ProductService) assembleSafe(ctx context.Context, product *catalog.Product) (response ProductResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("presentation assembly panicked: %v", r)
		}
	}()
	response = s.assemble(ctx, product)
	return response, nil
}
