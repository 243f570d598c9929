package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/skubridge/backend/internal/domain/catalog"
	"github.com/skubridge/backend/internal/domain/shared"
)

// EquivalenceService handles channel-SKU override mappings
type EquivalenceService struct {
	equivalenceRepo catalog.EquivalenceRepository
	productRepo     catalog.ProductRepository
}

// NewEquivalenceService creates a new EquivalenceService
func NewEquivalenceService(
	equivalenceRepo catalog.EquivalenceRepository,
	productRepo catalog.ProductRepository,
) *EquivalenceService {
	return &EquivalenceService{
		equivalenceRepo: equivalenceRepo,
		productRepo:     productRepo,
	}
}

// CreateResult is a created mapping plus any non-fatal warnings
type CreateResult struct {
	Mapping  *EquivalenceResponse `json:"mapping"`
	Warnings []string             `json:"warnings,omitempty"`
}

// Create registers a new mapping. The canonical SKU must exist in the
// catalog. Creating a second active mapping for the same (channel,
// channel_sku) is allowed but reported as a warning; the resolution
// engine deterministically picks one.
func (s *EquivalenceService) Create(ctx context.Context, req CreateEquivalenceRequest) (*CreateResult, error) {
	if _, err := s.productRepo.FindBySKU(ctx, req.CanonicalSKU); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNKNOWN_CANONICAL_SKU", "Canonical SKU is not in the catalog")
		}
		return nil, err
	}

	mapping, err := catalog.NewEquivalenceMapping(catalog.Channel(req.Channel),
		req.ChannelSKU, req.CanonicalSKU, req.Priority)
	if err != nil {
		return nil, err
	}

	result := &CreateResult{}
	existing, err := s.equivalenceRepo.FindByChannelSKU(ctx, mapping.Channel, mapping.ChannelSKU)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	for i := range existing {
		if existing[i].Active {
			result.Warnings = append(result.Warnings,
				"an active mapping for this channel SKU already exists; the higher priority one will win")
			break
		}
	}

	if err := s.equivalenceRepo.Save(ctx, mapping); err != nil {
		return nil, err
	}
	result.Mapping = ToEquivalenceResponse(mapping)
	return result, nil
}

// GetByID retrieves a mapping by ID
func (s *EquivalenceService) GetByID(ctx context.Context, id uuid.UUID) (*EquivalenceResponse, error) {
	mapping, err := s.equivalenceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToEquivalenceResponse(mapping), nil
}

// List retrieves mappings matching the filter
func (s *EquivalenceService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[EquivalenceResponse], error) {
	mappings, err := s.equivalenceRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[EquivalenceResponse]{}, err
	}
	total, err := s.equivalenceRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[EquivalenceResponse]{}, err
	}

	items := make([]EquivalenceResponse, 0, len(mappings))
	for i := range mappings {
		items = append(items, *ToEquivalenceResponse(&mappings[i]))
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// SetPriority changes a mapping's duplicate tie-break priority
func (s *EquivalenceService) SetPriority(ctx context.Context, id uuid.UUID, priority int) (*EquivalenceResponse, error) {
	mapping, err := s.equivalenceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	mapping.SetPriority(priority)
	if err := s.equivalenceRepo.Save(ctx, mapping); err != nil {
		return nil, err
	}
	return ToEquivalenceResponse(mapping), nil
}

// Deactivate retires a mapping without deleting it
func (s *EquivalenceService) Deactivate(ctx context.Context, id uuid.UUID) error {
	mapping, err := s.equivalenceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	mapping.Deactivate()
	return s.equivalenceRepo.Save(ctx, mapping)
}
