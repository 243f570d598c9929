package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/skubridge/backend/internal/domain/catalog"
	"github.com/skubridge/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCajaRepository implements catalog.CajaCodeRepository using GORM
type GormCajaRepository struct {
	db *gorm.DB
}

// NewGormCajaRepository creates a new GORM-based caja code repository
func NewGormCajaRepository(db *gorm.DB) *GormCajaRepository {
	return &GormCajaRepository{db: db}
}

// FindByID finds a caja code by its ID
func (r *GormCajaRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.CajaCode, error) {
	var code catalog.CajaCode
	if err := r.db.WithContext(ctx).First(&code, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &code, nil
}

// FindByCaseSKU finds a caja code by its exact case SKU
func (r *GormCajaRepository) FindByCaseSKU(ctx context.Context, caseSKU string) (*catalog.CajaCode, error) {
	var code catalog.CajaCode
	if err := r.db.WithContext(ctx).First(&code, "case_sku = ?", strings.ToUpper(caseSKU)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &code, nil
}

// FindActive finds all active caja codes
func (r *GormCajaRepository) FindActive(ctx context.Context) ([]catalog.CajaCode, error) {
	var codes []catalog.CajaCode
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("case_sku ASC").
		Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// FindAll finds all caja codes matching the filter
func (r *GormCajaRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.CajaCode, error) {
	var codes []catalog.CajaCode
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.CajaCode{}), filter)

	if err := query.Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// Count counts caja codes matching the filter
func (r *GormCajaRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.CajaCode{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a caja code
func (r *GormCajaRepository) Save(ctx context.Context, code *catalog.CajaCode) error {
	return r.db.WithContext(ctx).Save(code).Error
}

// Delete deletes a caja code
func (r *GormCajaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.CajaCode{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCajaRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CajaSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormCajaRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("case_sku ILIKE ? OR base_sku ILIKE ? OR description ILIKE ?", searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		case "base_sku":
			query = query.Where("base_sku = ?", value)
		}
	}

	return query
}

// Ensure GormCajaRepository implements CajaCodeRepository
var _ catalog.CajaCodeRepository = (*GormCajaRepository)(nil)
