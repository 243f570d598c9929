package resolution

import (
	"context"

	"github.com/skubridge/backend/internal/domain/catalog"
	"github.com/skubridge/backend/internal/domain/resolution"
)

// ReferenceData is the raw reference rows a snapshot is built from.
// Keeping it as plain slices makes it trivially serializable for the
// cache layer.
type ReferenceData struct {
	Products  []catalog.CanonicalProduct   `json:"products"`
	Mappings  []catalog.EquivalenceMapping `json:"mappings"`
	CajaCodes []catalog.CajaCode           `json:"caja_codes"`
}

// ReferenceSource loads reference data for snapshot construction.
// Implementations may cache; the service treats every call as a fresh,
// consistent view.
type ReferenceSource interface {
	// Load returns the current active reference data
	Load(ctx context.Context) (*ReferenceData, error)

	// Invalidate drops any cached reference data
	Invalidate(ctx context.Context) error
}

// RepositoryReferenceSource loads reference data straight from the
// repositories. It is the uncached fallback and the loader behind the
// cache layer.
type RepositoryReferenceSource struct {
	products     catalog.ProductReader
	equivalences catalog.EquivalenceReader
	cajaCodes    catalog.CajaCodeReader
}

// NewRepositoryReferenceSource creates a repository-backed source
func NewRepositoryReferenceSource(
	products catalog.ProductReader,
	equivalences catalog.EquivalenceReader,
	cajaCodes catalog.CajaCodeReader,
) *RepositoryReferenceSource {
	return &RepositoryReferenceSource{
		products:     products,
		equivalences: equivalences,
		cajaCodes:    cajaCodes,
	}
}

// Load reads all active reference rows
func (s *RepositoryReferenceSource) Load(ctx context.Context) (*ReferenceData, error) {
	products, err := s.products.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	mappings, err := s.equivalences.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	cajaCodes, err := s.cajaCodes.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return &ReferenceData{Products: products, Mappings: mappings, CajaCodes: cajaCodes}, nil
}

// Invalidate is a no-op for the uncached source
func (s *RepositoryReferenceSource) Invalidate(ctx context.Context) error {
	return nil
}

// BuildSnapshot constructs a resolution snapshot from reference data
func BuildSnapshot(data *ReferenceData) *resolution.Snapshot {
	return resolution.NewSnapshot(data.Products, data.Mappings, data.CajaCodes)
}
