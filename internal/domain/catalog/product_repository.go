package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/skubridge/backend/internal/domain/shared"
)

// ProductReader defines read operations on canonical products.
// The resolution engine only needs this narrow interface.
type ProductReader interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CanonicalProduct, error)

	// FindBySKU finds a product by its canonical SKU
	FindBySKU(ctx context.Context, sku string) (*CanonicalProduct, error)

	// FindByBaseCode finds the active product registered for a base code
	FindByBaseCode(ctx context.Context, baseCode string) (*CanonicalProduct, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]CanonicalProduct, error)

	// FindActive finds all active products
	FindActive(ctx context.Context) ([]CanonicalProduct, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ProductWriter defines write operations on canonical products
type ProductWriter interface {
	// Save creates or updates a product
	Save(ctx context.Context, product *CanonicalProduct) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines the full interface for product persistence
type ProductRepository interface {
	ProductReader
	ProductWriter
}
