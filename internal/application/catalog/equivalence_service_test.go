package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/skubridge/backend/internal/domain/catalog"
	"github.com/skubridge/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEquivalenceRepository is a mock implementation of EquivalenceRepository
type MockEquivalenceRepository struct {
	mock.Mock
}

func (m *MockEquivalenceRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.EquivalenceMapping, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.EquivalenceMapping), args.Error(1)
}

func (m *MockEquivalenceRepository) FindByChannelSKU(ctx context.Context, channel catalog.Channel, channelSKU string) ([]catalog.EquivalenceMapping, error) {
	args := m.Called(ctx, channel, channelSKU)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.EquivalenceMapping), args.Error(1)
}

func (m *MockEquivalenceRepository) FindActive(ctx context.Context) ([]catalog.EquivalenceMapping, error) {
	args := m.Called(ctx)
	return args.Get(0).([]catalog.EquivalenceMapping), args.Error(1)
}

func (m *MockEquivalenceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.EquivalenceMapping, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.EquivalenceMapping), args.Error(1)
}

func (m *MockEquivalenceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEquivalenceRepository) Save(ctx context.Context, mapping *catalog.EquivalenceMapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

func (m *MockEquivalenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newCatalogProduct(t *testing.T) *catalog.CanonicalProduct {
	t.Helper()
	p, err := catalog.NewCanonicalProduct("BAKC_U04010", "Barra", "BAKC", catalog.PackageTypeUnit, 1)
	require.NoError(t, err)
	return p
}

func TestEquivalenceServiceCreate(t *testing.T) {
	t.Run("creates a mapping", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindBySKU", mock.Anything, "BAKC_U04010").Return(newCatalogProduct(t), nil)

		equivRepo := new(MockEquivalenceRepository)
		equivRepo.On("FindByChannelSKU", mock.Anything, catalog.ChannelMarketplace, "MLM-778811").
			Return([]catalog.EquivalenceMapping{}, nil)
		equivRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.EquivalenceMapping")).Return(nil)

		svc := NewEquivalenceService(equivRepo, productRepo)
		result, err := svc.Create(context.Background(), CreateEquivalenceRequest{
			Channel:      "marketplace",
			ChannelSKU:   "MLM-778811",
			CanonicalSKU: "BAKC_U04010",
			Priority:     10,
		})
		require.NoError(t, err)
		assert.Equal(t, "BAKC_U04010", result.Mapping.CanonicalSKU)
		assert.Empty(t, result.Warnings)
	})

	t.Run("rejects unknown canonical SKU", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindBySKU", mock.Anything, "NOPE").Return(nil, shared.ErrNotFound)

		svc := NewEquivalenceService(new(MockEquivalenceRepository), productRepo)
		_, err := svc.Create(context.Background(), CreateEquivalenceRequest{
			Channel:      "billing",
			ChannelSKU:   "FB-1",
			CanonicalSKU: "NOPE",
		})
		require.Error(t, err)
		derr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "UNKNOWN_CANONICAL_SKU", derr.Code)
	})

	t.Run("warns about duplicate active mappings", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		productRepo.On("FindBySKU", mock.Anything, "BAKC_U04010").Return(newCatalogProduct(t), nil)

		dup, err := catalog.NewEquivalenceMapping(catalog.ChannelMarketplace, "MLM-778811", "BAKC_U04010", 1)
		require.NoError(t, err)

		equivRepo := new(MockEquivalenceRepository)
		equivRepo.On("FindByChannelSKU", mock.Anything, catalog.ChannelMarketplace, "MLM-778811").
			Return([]catalog.EquivalenceMapping{*dup}, nil)
		equivRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.EquivalenceMapping")).Return(nil)

		svc := NewEquivalenceService(equivRepo, productRepo)
		result, err := svc.Create(context.Background(), CreateEquivalenceRequest{
			Channel:      "marketplace",
			ChannelSKU:   "MLM-778811",
			CanonicalSKU: "BAKC_U04010",
			Priority:     5,
		})
		require.NoError(t, err)
		require.Len(t, result.Warnings, 1)
	})
}

func TestEquivalenceServiceSetPriority(t *testing.T) {
	mapping, err := catalog.NewEquivalenceMapping(catalog.ChannelBilling, "FB-1", "BAKC_U04010", 1)
	require.NoError(t, err)

	equivRepo := new(MockEquivalenceRepository)
	equivRepo.On("FindByID", mock.Anything, mapping.ID).Return(mapping, nil)
	equivRepo.On("Save", mock.Anything, mapping).Return(nil)

	svc := NewEquivalenceService(equivRepo, new(MockProductRepository))
	resp, err := svc.SetPriority(context.Background(), mapping.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, resp.Priority)
}

func TestEquivalenceServiceDeactivate(t *testing.T) {
	mapping, err := catalog.NewEquivalenceMapping(catalog.ChannelBilling, "FB-1", "BAKC_U04010", 1)
	require.NoError(t, err)

	equivRepo := new(MockEquivalenceRepository)
	equivRepo.On("FindByID", mock.Anything, mapping.ID).Return(mapping, nil)
	equivRepo.On("Save", mock.Anything, mapping).Return(nil)

	svc := NewEquivalenceService(equivRepo, new(MockProductRepository))
	require.NoError(t, svc.Deactivate(context.Background(), mapping.ID))
	assert.False(t, mapping.Active)
}
