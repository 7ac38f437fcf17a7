package persistence

import (
	"context"
	"errors"

	"github.com/facturacion/backend/internal/domain/catalog"
	"github.com/facturacion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Category not found")
		}
		return nil, err
	}
	return &category, nil
}

// FindAll returns the full category catalog
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GormVATRateRepository implements catalog.VATRateRepository using GORM
type GormVATRateRepository struct {
	db *gorm.DB
}

// NewGormVATRateRepository creates a new GormVATRateRepository
func NewGormVATRateRepository(db *gorm.DB) *GormVATRateRepository {
	return &GormVATRateRepository{db: db}
}

// FindByID finds a VAT rate by its ID
func (r *GormVATRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.VATRate, error) {
	var rate catalog.VATRate
	if err := r.db.WithContext(ctx).First(&rate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "VAT rate not found")
		}
		return nil, err
	}
	return &rate, nil
}

// FindAll returns the full VAT rate catalog
func (r *GormVATRateRepository) FindAll(ctx context.Context) ([]catalog.VATRate, error) {
	var rates []catalog.VATRate
	if err := r.db.WithContext(ctx).Order("percentage ASC").Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

var (
	_ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
	_ catalog.VATRateRepository  = (*GormVATRateRepository)(nil)
)
