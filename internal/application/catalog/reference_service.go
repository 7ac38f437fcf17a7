package catalog

import (
	"context"

	"github.com/facturacion/backend/internal/domain/catalog"
)

// ReferenceService serves the read-only reference catalogs (categories and
// VAT rates). Both are managed outside this service and seeded by migration.
type ReferenceService struct {
	categoryRepo catalog.CategoryRepository
	vatRateRepo  catalog.VATRateRepository
}

// NewReferenceService creates a new ReferenceService
func NewReferenceService(categoryRepo catalog.CategoryRepository, vatRateRepo catalog.VATRateRepository) *ReferenceService {
	return &ReferenceService{
		categoryRepo: categoryRepo,
		vatRateRepo:  vatRateRepo,
	}
}

// ListCategories returns every category
func (s *ReferenceService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

// ListVATRates returns every VAT rate
func (s *ReferenceService) ListVATRates(ctx context.Context) ([]VATRateResponse, error) {
	rates, err := s.vatRateRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToVATRateResponses(rates), nil
}
