package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/skubridge/backend/internal/domain/shared"
)

// CajaCode registers a wholesale master-case SKU ("caja master") and
// maps it to a base SKU times a case multiplier. UnitsPerCase is stored
// as a decimal because ERP imports occasionally carry fractional
// values; the resolution engine rejects non-integer multipliers at
// match time rather than silently rounding.
type CajaCode struct {
	shared.BaseAggregateRoot
	CaseSKU      string          `gorm:"type:varchar(100);not null;uniqueIndex"`
	BaseSKU      string          `gorm:"type:varchar(50);not null;index"`
	UnitsPerCase decimal.Decimal `gorm:"type:decimal(10,4);not null"`
	Description  string          `gorm:"type:varchar(200)"` // case description used by fuzzy name matching
	Active       bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CajaCode) TableName() string {
	return "caja_codes"
}

// NewCajaCode creates a new caja code entry
func NewCajaCode(caseSKU, baseSKU string, unitsPerCase decimal.Decimal, description string) (*CajaCode, error) {
	if caseSKU == "" {
		return nil, shared.NewDomainError("INVALID_CASE_SKU", "Case SKU cannot be empty")
	}
	if err := validateSKU(baseSKU); err != nil {
		return nil, err
	}
	if unitsPerCase.LessThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_UNITS_PER_CASE", "Units per case must be at least 1")
	}

	return &CajaCode{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CaseSKU:           strings.ToUpper(strings.TrimSpace(caseSKU)),
		BaseSKU:           strings.ToUpper(baseSKU),
		UnitsPerCase:      unitsPerCase,
		Description:       description,
		Active:            true,
	}, nil
}

// IntegerUnitsPerCase returns the case multiplier as an integer, or an
// InvalidConversionFactor error if the stored value is fractional or
// below one. No rounding ever happens here.
func (c *CajaCode) IntegerUnitsPerCase() (int64, error) {
	if !c.UnitsPerCase.IsInteger() {
		return 0, shared.NewDomainError(shared.ErrCodeInvalidConversionFactor,
			"Units per case must be a whole number, got "+c.UnitsPerCase.String())
	}
	units := c.UnitsPerCase.IntPart()
	if units < 1 {
		return 0, shared.NewDomainError(shared.ErrCodeInvalidConversionFactor,
			"Units per case must be at least 1, got "+c.UnitsPerCase.String())
	}
	return units, nil
}

// UpdateDescription updates the case description used for fuzzy matching
func (c *CajaCode) UpdateDescription(description string) {
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Deactivate deactivates the caja code
func (c *CajaCode) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// CajaCodeReader defines read operations on caja codes
type CajaCodeReader interface {
	// FindByID finds a caja code by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CajaCode, error)

	// FindByCaseSKU finds a caja code by its exact case SKU
	FindByCaseSKU(ctx context.Context, caseSKU string) (*CajaCode, error)

	// FindActive finds all active caja codes
	FindActive(ctx context.Context) ([]CajaCode, error)

	// FindAll finds all caja codes matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]CajaCode, error)

	// Count counts caja codes matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CajaCodeWriter defines write operations on caja codes
type CajaCodeWriter interface {
	// Save creates or updates a caja code
	Save(ctx context.Context, code *CajaCode) error

	// Delete deletes a caja code
	Delete(ctx context.Context, id uuid.UUID) error
}

// CajaCodeRepository defines the full interface for caja code persistence
type CajaCodeRepository interface {
	CajaCodeReader
	CajaCodeWriter
}
