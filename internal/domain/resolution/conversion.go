package resolution

import (
	"fmt"

	"github.com/skubridge/backend/internal/domain/shared"
)

// Conversion is the computed unit arithmetic for one record
type Conversion struct {
	Multiplier       int64
	ConversionFactor int64
	Quantity         int64
	TotalUnits       int64
	Formula          string
}

// Convert derives the base-unit total from integer factors. All
// factors must be >= 1; anything else is reference-data corruption and
// fails the record rather than being coerced. No rounding occurs
// anywhere in this path.
func Convert(quantity, multiplier, conversionFactor int64) (Conversion, error) {
	if quantity < 1 {
		return Conversion{}, shared.NewDomainError("INVALID_QUANTITY",
			fmt.Sprintf("Quantity must be at least 1, got %d", quantity))
	}
	if multiplier < 1 {
		return Conversion{}, shared.NewDomainError(shared.ErrCodeInvalidConversionFactor,
			fmt.Sprintf("Multiplier must be at least 1, got %d", multiplier))
	}
	if conversionFactor < 1 {
		return Conversion{}, shared.NewDomainError(shared.ErrCodeInvalidConversionFactor,
			fmt.Sprintf("Conversion factor must be at least 1, got %d", conversionFactor))
	}

	total := quantity * multiplier * conversionFactor

	return Conversion{
		Multiplier:       multiplier,
		ConversionFactor: conversionFactor,
		Quantity:         quantity,
		TotalUnits:       total,
		Formula: fmt.Sprintf("%d qty × %d units/pack × %d packs/case = %d units",
			quantity, multiplier, conversionFactor, total),
	}, nil
}
