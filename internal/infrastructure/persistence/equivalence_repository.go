package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/skubridge/backend/internal/domain/catalog"
	"github.com/skubridge/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormEquivalenceRepository implements catalog.EquivalenceRepository using GORM
type GormEquivalenceRepository struct {
	db *gorm.DB
}

// NewGormEquivalenceRepository creates a new GORM-based equivalence mapping repository
func NewGormEquivalenceRepository(db *gorm.DB) *GormEquivalenceRepository {
	return &GormEquivalenceRepository{db: db}
}

// FindByID finds a mapping by its ID
func (r *GormEquivalenceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.EquivalenceMapping, error) {
	var mapping catalog.EquivalenceMapping
	if err := r.db.WithContext(ctx).First(&mapping, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

// FindByChannelSKU finds all mappings for a (channel, channel_sku) pair
func (r *GormEquivalenceRepository) FindByChannelSKU(ctx context.Context, channel catalog.Channel, channelSKU string) ([]catalog.EquivalenceMapping, error) {
	var mappings []catalog.EquivalenceMapping
	if err := r.db.WithContext(ctx).
		Where("channel = ? AND channel_sku = ?", channel, channelSKU).
		Order("priority DESC, updated_at DESC").
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// FindActive finds all active mappings
func (r *GormEquivalenceRepository) FindActive(ctx context.Context) ([]catalog.EquivalenceMapping, error) {
	var mappings []catalog.EquivalenceMapping
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("channel ASC, channel_sku ASC").
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// FindAll finds all mappings matching the filter
func (r *GormEquivalenceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.EquivalenceMapping, error) {
	var mappings []catalog.EquivalenceMapping
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.EquivalenceMapping{}), filter)

	if err := query.Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// Count counts mappings matching the filter
func (r *GormEquivalenceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.EquivalenceMapping{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a mapping
func (r *GormEquivalenceRepository) Save(ctx context.Context, mapping *catalog.EquivalenceMapping) error {
	return r.db.WithContext(ctx).Save(mapping).Error
}

// Delete deletes a mapping
func (r *GormEquivalenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.EquivalenceMapping{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormEquivalenceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, MappingSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormEquivalenceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("channel_sku ILIKE ? OR canonical_sku ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		case "channel":
			query = query.Where("channel = ?", value)
		case "canonical_sku":
			query = query.Where("canonical_sku = ?", value)
		}
	}

	return query
}

// Ensure GormEquivalenceRepository implements EquivalenceRepository
var _ catalog.EquivalenceRepository = (*GormEquivalenceRepository)(nil)
