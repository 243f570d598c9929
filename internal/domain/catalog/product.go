package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skubridge/backend/internal/domain/shared"
)

// PackageType describes how a canonical product is packaged for sale
type PackageType string

const (
	PackageTypeUnit    PackageType = "unit"    // single retail unit
	PackageTypeDisplay PackageType = "display" // retail display pack of N units
	PackageTypeMaster  PackageType = "master"  // wholesale master case
)

// IsValid returns true if the package type is a known value
func (t PackageType) IsValid() bool {
	switch t {
	case PackageTypeUnit, PackageTypeDisplay, PackageTypeMaster:
		return true
	default:
		return false
	}
}

// CanonicalProduct is the single authoritative product record that every
// channel-specific SKU ultimately resolves to. It is the aggregate root
// for catalog operations and is treated as immutable reference data by
// the resolution engine within one batch.
type CanonicalProduct struct {
	shared.BaseAggregateRoot
	SKU             string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Category        string          `gorm:"type:varchar(100);index"`
	BaseCode        string          `gorm:"type:varchar(20);not null;index"` // product family root, e.g. 4-letter prefix
	PackageType     PackageType     `gorm:"type:varchar(20);not null;default:'unit'"`
	UnitsPerDisplay int             `gorm:"not null;default:1"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active          bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CanonicalProduct) TableName() string {
	return "canonical_products"
}

// NewCanonicalProduct creates a new canonical product
func NewCanonicalProduct(sku, name, baseCode string, packageType PackageType, unitsPerDisplay int) (*CanonicalProduct, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if baseCode == "" {
		return nil, shared.NewDomainError("INVALID_BASE_CODE", "Base code cannot be empty")
	}
	if !packageType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PACKAGE_TYPE", "Unknown package type")
	}
	if unitsPerDisplay < 1 {
		return nil, shared.NewDomainError("INVALID_UNITS_PER_DISPLAY", "Units per display must be at least 1")
	}

	return &CanonicalProduct{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(sku),
		Name:              name,
		BaseCode:          strings.ToUpper(baseCode),
		PackageType:       packageType,
		UnitsPerDisplay:   unitsPerDisplay,
		UnitPrice:         decimal.Zero,
		Active:            true,
	}, nil
}

// Update updates the product's descriptive fields
func (p *CanonicalProduct) Update(name, category string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Category = category
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetUnitsPerDisplay sets the pack multiplier for display packs.
// The catalog value is authoritative for conversion arithmetic; a SKU
// suffix that disagrees never overrides it.
func (p *CanonicalProduct) SetUnitsPerDisplay(units int) error {
	if units < 1 {
		return shared.NewDomainError("INVALID_UNITS_PER_DISPLAY", "Units per display must be at least 1")
	}
	p.UnitsPerDisplay = units
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetUnitPrice sets the base-unit selling price
func (p *CanonicalProduct) SetUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	p.UnitPrice = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Activate marks the product as active
func (p *CanonicalProduct) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Deactivate marks the product as inactive. Inactive products stay in
// the catalog so historical resolutions remain reproducible.
func (p *CanonicalProduct) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// validateSKU validates a canonical SKU string
func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
