package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageType(t *testing.T) {
	t.Run("IsValid returns true for known types", func(t *testing.T) {
		assert.True(t, PackageTypeUnit.IsValid())
		assert.True(t, PackageTypeDisplay.IsValid())
		assert.True(t, PackageTypeMaster.IsValid())
	})

	t.Run("IsValid returns false for unknown type", func(t *testing.T) {
		assert.False(t, PackageType("pallet").IsValid())
	})
}

func TestNewCanonicalProduct(t *testing.T) {
	t.Run("creates product with normalized SKU", func(t *testing.T) {
		p, err := NewCanonicalProduct("bakc_u04010", "Barra de avena", "bakc", PackageTypeUnit, 1)
		require.NoError(t, err)
		assert.Equal(t, "BAKC_U04010", p.SKU)
		assert.Equal(t, "BAKC", p.BaseCode)
		assert.True(t, p.Active)
		assert.True(t, p.UnitPrice.IsZero())
		assert.NotEqual(t, p.ID.String(), "00000000-0000-0000-0000-000000000000")
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		cases := []struct {
			name string
			fn   func() error
		}{
			{"empty sku", func() error {
				_, err := NewCanonicalProduct("", "n", "b", PackageTypeUnit, 1)
				return err
			}},
			{"sku with spaces", func() error {
				_, err := NewCanonicalProduct("BAD SKU", "n", "b", PackageTypeUnit, 1)
				return err
			}},
			{"empty name", func() error {
				_, err := NewCanonicalProduct("SKU1", "", "b", PackageTypeUnit, 1)
				return err
			}},
			{"empty base code", func() error {
				_, err := NewCanonicalProduct("SKU1", "n", "", PackageTypeUnit, 1)
				return err
			}},
			{"bad package type", func() error {
				_, err := NewCanonicalProduct("SKU1", "n", "b", PackageType("pallet"), 1)
				return err
			}},
			{"zero units per display", func() error {
				_, err := NewCanonicalProduct("SKU1", "n", "b", PackageTypeDisplay, 0)
				return err
			}},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				assert.Error(t, c.fn())
			})
		}
	})
}

func TestCanonicalProductMutations(t *testing.T) {
	newProduct := func(t *testing.T) *CanonicalProduct {
		p, err := NewCanonicalProduct("BAKC_CAJA16", "Display avena", "BAKC", PackageTypeDisplay, 16)
		require.NoError(t, err)
		return p
	}

	t.Run("Update changes descriptive fields and bumps version", func(t *testing.T) {
		p := newProduct(t)
		v := p.Version
		require.NoError(t, p.Update("Display avena coco", "snacks"))
		assert.Equal(t, "Display avena coco", p.Name)
		assert.Equal(t, "snacks", p.Category)
		assert.Equal(t, v+1, p.Version)
	})

	t.Run("Update rejects empty name", func(t *testing.T) {
		p := newProduct(t)
		assert.Error(t, p.Update("", "snacks"))
	})

	t.Run("SetUnitsPerDisplay enforces minimum of one", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.SetUnitsPerDisplay(24))
		assert.Equal(t, 24, p.UnitsPerDisplay)
		assert.Error(t, p.SetUnitsPerDisplay(0))
	})

	t.Run("SetUnitPrice rejects negatives", func(t *testing.T) {
		p := newProduct(t)
		require.NoError(t, p.SetUnitPrice(decimal.RequireFromString("12.50")))
		assert.Error(t, p.SetUnitPrice(decimal.RequireFromString("-1")))
	})

	t.Run("Deactivate and Activate toggle the flag", func(t *testing.T) {
		p := newProduct(t)
		p.Deactivate()
		assert.False(t, p.Active)
		p.Activate()
		assert.True(t, p.Active)
	})
}
