package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/skubridge/backend/internal/domain/catalog"
	"github.com/skubridge/backend/internal/domain/shared"
)

// CajaService handles caja (master case) code registration
type CajaService struct {
	cajaRepo    catalog.CajaCodeRepository
	productRepo catalog.ProductRepository
}

// NewCajaService creates a new CajaService
func NewCajaService(cajaRepo catalog.CajaCodeRepository, productRepo catalog.ProductRepository) *CajaService {
	return &CajaService{cajaRepo: cajaRepo, productRepo: productRepo}
}

// Create registers a new caja code. The base SKU must exist in the
// catalog and the case SKU must not already be registered.
func (s *CajaService) Create(ctx context.Context, req CreateCajaRequest) (*CajaResponse, error) {
	if _, err := s.productRepo.FindBySKU(ctx, req.BaseSKU); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNKNOWN_BASE_SKU", "Base SKU is not in the catalog")
		}
		return nil, err
	}

	existing, err := s.cajaRepo.FindByCaseSKU(ctx, req.CaseSKU)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Caja code with this case SKU already exists")
	}

	code, err := catalog.NewCajaCode(req.CaseSKU, req.BaseSKU, req.UnitsPerCase, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.cajaRepo.Save(ctx, code); err != nil {
		return nil, err
	}
	return ToCajaResponse(code), nil
}

// GetByID retrieves a caja code by ID
func (s *CajaService) GetByID(ctx context.Context, id uuid.UUID) (*CajaResponse, error) {
	code, err := s.cajaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCajaResponse(code), nil
}

// List retrieves caja codes matching the filter
func (s *CajaService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[CajaResponse], error) {
	codes, err := s.cajaRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[CajaResponse]{}, err
	}
	total, err := s.cajaRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[CajaResponse]{}, err
	}

	items := make([]CajaResponse, 0, len(codes))
	for i := range codes {
		items = append(items, *ToCajaResponse(&codes[i]))
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// UpdateDescription changes the description used for fuzzy matching
func (s *CajaService) UpdateDescription(ctx context.Context, id uuid.UUID, description string) (*CajaResponse, error) {
	code, err := s.cajaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	code.UpdateDescription(description)
	if err := s.cajaRepo.Save(ctx, code); err != nil {
		return nil, err
	}
	return ToCajaResponse(code), nil
}

// Deactivate retires a caja code without deleting it
func (s *CajaService) Deactivate(ctx context.Context, id uuid.UUID) error {
	code, err := s.cajaRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	code.Deactivate()
	return s.cajaRepo.Save(ctx, code)
}
