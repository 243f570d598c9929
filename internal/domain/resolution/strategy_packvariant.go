package resolution

import (
	"fmt"

	"github.com/skubridge/backend/internal/domain/shared"
)

// PackVariantStrategy resolves display-pack SKUs structurally: the
// parsed base code must exist in the catalog and the SKU must carry an
// explicit pack marker. The pack multiplier is always read from the
// catalog's units_per_display; the size embedded in the SKU text is
// recorded but never trusted.
type PackVariantStrategy struct{}

// Name returns the strategy identifier
func (PackVariantStrategy) Name() string { return StrategyPackVariant }

// Attempt parses the SKU and matches its base code against the catalog
func (PackVariantStrategy) Attempt(record RawChannelRecord, snap *Snapshot) StepOutcome {
	parsed := ParseSKU(record.RawSKU)

	if !parsed.Parsed {
		return StepOutcome{Details: PackVariantDetails{Parsed: parsed, Reason: "sku not parseable"}}
	}
	if !parsed.HasPackMarker() {
		return StepOutcome{Details: PackVariantDetails{Parsed: parsed, Reason: "no pack marker"}}
	}

	product, ok := snap.ProductByBaseCode(parsed.BaseCode)
	if !ok {
		// CatalogMiss is a non-match, not an error
		return StepOutcome{Details: PackVariantDetails{Parsed: parsed, Reason: "base code not in catalog"}}
	}

	if product.UnitsPerDisplay < 1 {
		return StepOutcome{Err: shared.NewDomainError(shared.ErrCodeInvalidConversionFactor,
			fmt.Sprintf("Catalog units_per_display for %s is %d", product.SKU, product.UnitsPerDisplay))}
	}

	return StepOutcome{
		Matched: true,
		Match: &Match{
			CanonicalSKU:     product.SKU,
			Type:             MatchTypePackVariant,
			Multiplier:       int64(product.UnitsPerDisplay),
			ConversionFactor: 1,
		},
		Details: PackVariantDetails{
			Parsed:         parsed,
			BaseCodeFound:  true,
			CatalogSKU:     product.SKU,
			CatalogUnits:   product.UnitsPerDisplay,
			SuffixUnits:    parsed.PackSize,
			SuffixMismatch: parsed.PackSize != 0 && parsed.PackSize != product.UnitsPerDisplay,
		},
	}
}
