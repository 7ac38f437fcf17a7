package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/facturacion/backend/internal/domain/catalog"
	"github.com/facturacion/backend/internal/domain/inventory"
	"github.com/facturacion/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormBatchRepository implements inventory.BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	var batch inventory.Batch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "Batch not found")
		}
		return nil, err
	}
	return &batch, nil
}

// FindByProduct finds all batches of a product, oldest expiration first
func (r *GormBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.Batch, error) {
	var batches []inventory.Batch
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("expiration_date ASC NULLS LAST, id ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindAll finds batches matching the filter
func (r *GormBatchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Batch, error) {
	var batches []inventory.Batch
	query := applyFilter(r.searchQuery(ctx, filter), filter, batchOrderColumns)
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// Count counts batches matching the filter
func (r *GormBatchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.searchQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *inventory.Batch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// Delete removes a batch
func (r *GormBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Batch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError(shared.CodeNotFound, "Batch not found")
	}
	return nil
}

// BulkSetListPrice sets the list price on every batch of the product except
// the one identified by excludeID
func (r *GormBatchRepository) BulkSetListPrice(ctx context.Context, productID uuid.UUID, price decimal.Decimal, excludeID *uuid.UUID) error {
	query := r.db.WithContext(ctx).Model(&inventory.Batch{}).
		Where("product_id = ?", productID)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	return query.Updates(map[string]interface{}{
		"list_price": price,
		"updated_at": time.Now(),
	}).Error
}

// searchQuery matches batches whose product code or name contains the search
// term
func (r *GormBatchRepository) searchQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&inventory.Batch{})
	if filter.Search != "" {
		pattern := "%" + strings.ToUpper(filter.Search) + "%"
		query = query.Where("product_id IN (?)",
			r.db.Model(&catalog.Product{}).Select("id").
				Where("UPPER(code) LIKE ? OR UPPER(name) LIKE ?", pattern, pattern))
	}
	return query
}

var _ inventory.BatchRepository = (*GormBatchRepository)(nil)
