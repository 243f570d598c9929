package resolution

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/skubridge/backend/internal/domain/catalog"
	"github.com/skubridge/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(t *testing.T, sku, name, baseCode string, packageType catalog.PackageType, unitsPerDisplay int) catalog.CanonicalProduct {
	t.Helper()
	p, err := catalog.NewCanonicalProduct(sku, name, baseCode, packageType, unitsPerDisplay)
	require.NoError(t, err)
	return *p
}

func testMapping(t *testing.T, channel catalog.Channel, channelSKU, canonicalSKU string, priority int) catalog.EquivalenceMapping {
	t.Helper()
	m, err := catalog.NewEquivalenceMapping(channel, channelSKU, canonicalSKU, priority)
	require.NoError(t, err)
	return *m
}

func testCaja(t *testing.T, caseSKU, baseSKU string, unitsPerCase int64, description string) catalog.CajaCode {
	t.Helper()
	c, err := catalog.NewCajaCode(caseSKU, baseSKU, decimal.NewFromInt(unitsPerCase), description)
	require.NoError(t, err)
	return *c
}

func testSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	products := []catalog.CanonicalProduct{
		testProduct(t, "BAKC_U04010", "Barra de avena coco", "BAKC", catalog.PackageTypeUnit, 1),
		testProduct(t, "BAKC_CAJA16", "Barra avena coco display 16", "BAKC", catalog.PackageTypeDisplay, 16),
		testProduct(t, "GRNL_U01", "Granola natural 350g", "GRNL", catalog.PackageTypeUnit, 1),
	}
	mappings := []catalog.EquivalenceMapping{
		testMapping(t, catalog.ChannelMarketplace, "MLM-778811", "BAKC_U04010", 10),
	}
	cajas := []catalog.CajaCode{
		testCaja(t, "CAJA-GRANOLA-MASTER", "GRNL_U01", 24, "Caja Granola Master 24"),
	}
	return NewSnapshot(products, mappings, cajas)
}

func record(channel catalog.Channel, sku, name string, qty int64) RawChannelRecord {
	return RawChannelRecord{
		Channel:  channel,
		RawSKU:   sku,
		RawName:  name,
		Quantity: qty,
		Revenue:  decimal.NewFromInt(qty * 10),
	}
}

func TestResolverChain(t *testing.T) {
	snap := testSnapshot(t)
	resolver := NewResolver(Options{})

	t.Run("canonical SKU resolves exact in one step", func(t *testing.T) {
		result, err := resolver.Resolve(record(catalog.ChannelBilling, "BAKC_U04010", "Barra de avena", 1), snap)
		require.NoError(t, err)
		require.NotNil(t, result.CanonicalSKU)
		assert.Equal(t, "BAKC_U04010", *result.CanonicalSKU)
		assert.Equal(t, MatchTypeExact, result.MatchType)
		assert.Equal(t, int64(1), result.Multiplier)
		assert.Equal(t, int64(1), result.ConversionFactor)
		assert.Equal(t, int64(1), result.TotalUnits)
		assert.Equal(t, ConfidenceCertain, result.Confidence)
		assert.False(t, result.NeedsManualReview)
		require.Len(t, result.Trace, 1)
		assert.Equal(t, StrategyEquivalence, result.Trace[0].Action)
		assert.True(t, result.Trace[0].Matched)
	})

	t.Run("equivalence mapping wins before any parsing", func(t *testing.T) {
		result, err := resolver.Resolve(record(catalog.ChannelMarketplace, "MLM-778811", "whatever", 2), snap)
		require.NoError(t, err)
		require.NotNil(t, result.CanonicalSKU)
		assert.Equal(t, "BAKC_U04010", *result.CanonicalSKU)
		assert.Equal(t, MatchTypeExact, result.MatchType)
		assert.Equal(t, int64(2), result.TotalUnits)
		require.Len(t, result.Trace, 1)
	})

	t.Run("display-pack SKU resolves as pack variant even when listed in the catalog", func(t *testing.T) {
		result, err := resolver.Resolve(record(catalog.ChannelStorefront, "BAKC_CAJA16", "Display avena", 2), snap)
		require.NoError(t, err)
		require.NotNil(t, result.CanonicalSKU)
		assert.Equal(t, "BAKC_CAJA16", *result.CanonicalSKU)
		assert.Equal(t, MatchTypePackVariant, result.MatchType)
		assert.Equal(t, int64(16), result.Multiplier)
		assert.Equal(t, int64(32), result.TotalUnits)
	})

	t.Run("pack variant resolves through catalog units per display", func(t *testing.T) {
		result, err := resolver.Resolve(record(catalog.ChannelStorefront, "BAKC_CAJA12", "Display avena", 3), snap)
		require.NoError(t, err)
		require.NotNil(t, result.CanonicalSKU)
		assert.Equal(t, "BAKC_CAJA16", *result.CanonicalSKU)
		assert.Equal(t, MatchTypePackVariant, result.MatchType)
		assert.Equal(t, int64(16), result.Multiplier, "catalog beats the suffix size")
		assert.Equal(t, int64(1), result.ConversionFactor)
		assert.Equal(t, int64(48), result.TotalUnits)
		assert.Equal(t, ConfidenceCertain, result.Confidence)
		require.Len(t, result.Trace, 2)
		details, ok := result.Trace[1].Details.(PackVariantDetails)
		require.True(t, ok)
		assert.True(t, details.SuffixMismatch)
	})

	t.Run("registered caja master resolves with case factor", func(t *testing.T) {
		result, err := resolver.Resolve(record(catalog.ChannelBilling, "CAJA-GRANOLA-MASTER", "Caja Granola", 2), snap)
		require.NoError(t, err)
		require.NotNil(t, result.CanonicalSKU)
		assert.Equal(t, "GRNL_U01", *result.CanonicalSKU)
		assert.Equal(t, MatchTypeCajaMaster, result.MatchType)
		assert.Equal(t, int64(1), result.Multiplier)
		assert.Equal(t, int64(24), result.ConversionFactor)
		assert.Equal(t, int64(48), result.TotalUnits)
		assert.Equal(t, ConfidenceCertain, result.Confidence)
		assert.False(t, result.NeedsManualReview)
		require.Len(t, result.Trace, 3)
	})

	t.Run("fuzzy name match lands in the review queue", func(t *testing.T) {
		result, err := resolver.Resolve(record(catalog.ChannelMarketplace, "UNKNOWN-1", "granola master caja 24", 1), snap)
		require.NoError(t, err)
		require.NotNil(t, result.CanonicalSKU)
		assert.Equal(t, "GRNL_U01", *result.CanonicalSKU)
		assert.Equal(t, MatchTypeCajaFuzzy, result.MatchType)
		assert.Equal(t, ConfidenceReview, result.Confidence)
		assert.True(t, result.NeedsManualReview)
		require.Len(t, result.Trace, 4)
		details, ok := result.Trace[3].Details.(CajaFuzzyDetails)
		require.True(t, ok)
		assert.True(t, details.Accepted)
		assert.GreaterOrEqual(t, details.BestScore, DefaultFuzzyThreshold)
	})

	t.Run("word-style case SKU without a name fuzzy-matches on the SKU text", func(t *testing.T) {
		// No exact caja entry for this SKU; the registered description
		// "Caja Granola Master 24" is close enough to the SKU words.
		result, err := resolver.Resolve(record(catalog.ChannelBilling, "CAJA-GRANOLA-MASTER-24", "", 1), snap)
		require.NoError(t, err)
		require.NotNil(t, result.CanonicalSKU)
		assert.Equal(t, "GRNL_U01", *result.CanonicalSKU)
		assert.Equal(t, MatchTypeCajaFuzzy, result.MatchType)
		assert.Equal(t, ConfidenceReview, result.Confidence)
		assert.True(t, result.NeedsManualReview)
	})

	t.Run("unknown SKU exhausts the chain as no_match", func(t *testing.T) {
		result, err := resolver.Resolve(record(catalog.ChannelStorefront, "XYZ-999", "Producto misterioso", 5), snap)
		require.NoError(t, err)
		assert.Nil(t, result.CanonicalSKU)
		assert.Equal(t, MatchTypeNoMatch, result.MatchType)
		assert.Equal(t, ConfidenceNone, result.Confidence)
		assert.True(t, result.NeedsManualReview)
		assert.Equal(t, int64(5), result.TotalUnits)
		assert.Equal(t, "5 qty × 1 units/pack × 1 packs/case = 5 units", result.Formula)
		require.Len(t, result.Trace, 4)
		for _, step := range result.Trace {
			assert.False(t, step.Matched)
		}
	})

	t.Run("invariant holds for every result", func(t *testing.T) {
		records := []RawChannelRecord{
			record(catalog.ChannelBilling, "BAKC_U04010", "", 3),
			record(catalog.ChannelStorefront, "BAKC_CAJA16", "", 2),
			record(catalog.ChannelBilling, "CAJA-GRANOLA-MASTER", "", 4),
			record(catalog.ChannelMarketplace, "NOPE-1", "", 7),
		}
		for _, r := range records {
			result, err := resolver.Resolve(r, snap)
			require.NoError(t, err)
			assert.Equal(t, result.Quantity*result.Multiplier*result.ConversionFactor, result.TotalUnits, r.RawSKU)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		r := record(catalog.ChannelMarketplace, "UNKNOWN-1", "granola master caja 24", 3)
		first, err := resolver.Resolve(r, snap)
		require.NoError(t, err)
		second, err := resolver.Resolve(r, snap)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		_, err := resolver.Resolve(record("phone", "BAKC_U04010", "", 1), snap)
		require.Error(t, err)
		_, err = resolver.Resolve(record(catalog.ChannelBilling, "BAKC_U04010", "", 0), snap)
		require.Error(t, err)
	})

	t.Run("classifies service and legacy records while resolving", func(t *testing.T) {
		result, err := resolver.Resolve(record(catalog.ChannelBilling, "FLETE-NORTE", "Flete foraneo", 1), snap)
		require.NoError(t, err)
		assert.True(t, result.IsServiceItem)

		result, err = resolver.Resolve(record(catalog.ChannelBilling, "104010", "Barra avena legacy", 1), snap)
		require.NoError(t, err)
		assert.True(t, result.IsLegacyCode)
	})
}

func TestResolverFractionalCaseFactor(t *testing.T) {
	products := []catalog.CanonicalProduct{
		testProduct(t, "GRNL_U01", "Granola natural 350g", "GRNL", catalog.PackageTypeUnit, 1),
	}
	caja := testCaja(t, "CAJA-BAD", "GRNL_U01", 1, "Caja corrupta")
	caja.UnitsPerCase = decimal.RequireFromString("12.5")
	snap := NewSnapshot(products, nil, []catalog.CajaCode{caja})
	resolver := NewResolver(Options{})

	_, err := resolver.Resolve(record(catalog.ChannelBilling, "CAJA-BAD", "", 1), snap)
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, shared.ErrCodeInvalidConversionFactor, derr.Code)
}

func TestResolverCajaDisplayBase(t *testing.T) {
	// A caja whose base SKU is itself a display pack stacks both factors.
	products := []catalog.CanonicalProduct{
		testProduct(t, "BAKC_CAJA16", "Barra avena display 16", "BAKC", catalog.PackageTypeDisplay, 16),
	}
	cajas := []catalog.CajaCode{
		testCaja(t, "CAJA-AVENA-MASTER", "BAKC_CAJA16", 4, "Caja master avena"),
	}
	snap := NewSnapshot(products, nil, cajas)
	resolver := NewResolver(Options{})

	result, err := resolver.Resolve(record(catalog.ChannelBilling, "CAJA-AVENA-MASTER", "", 2), snap)
	require.NoError(t, err)
	assert.Equal(t, MatchTypeCajaMaster, result.MatchType)
	assert.Equal(t, int64(16), result.Multiplier)
	assert.Equal(t, int64(4), result.ConversionFactor)
	assert.Equal(t, int64(128), result.TotalUnits)
}

func TestResolverFuzzyTieBreak(t *testing.T) {
	// Identical descriptions score identically; the winner must be the
	// smallest canonical SKU even when its case SKU sorts last.
	cajas := []catalog.CajaCode{
		testCaja(t, "AAAA-CASE", "ZZZZ_U01", 12, "Caja Granola Master 24"),
		testCaja(t, "ZZZZ-CASE", "AAAA_U01", 12, "Caja Granola Master 24"),
	}
	snap := NewSnapshot(nil, nil, cajas)
	resolver := NewResolver(Options{})

	result, err := resolver.Resolve(record(catalog.ChannelStorefront, "CAJA-GRANOLA-MASTER", "Caja Granola Master", 1), snap)
	require.NoError(t, err)
	assert.Equal(t, MatchTypeCajaFuzzy, result.MatchType)
	require.NotNil(t, result.CanonicalSKU)
	assert.Equal(t, "AAAA_U01", *result.CanonicalSKU)
}

func TestRescaleForQuantity(t *testing.T) {
	snap := testSnapshot(t)
	resolver := NewResolver(Options{})

	base := record(catalog.ChannelStorefront, "BAKC_CAJA16", "Display avena", 1)
	cached, err := resolver.Resolve(base, snap)
	require.NoError(t, err)

	again := base
	again.Quantity = 5
	again.Revenue = decimal.NewFromInt(500)
	rescaled := RescaleForQuantity(cached, again)

	assert.Equal(t, int64(5), rescaled.Quantity)
	assert.Equal(t, int64(80), rescaled.TotalUnits)
	assert.Equal(t, cached.MatchType, rescaled.MatchType)
	assert.Equal(t, cached.CanonicalSKU, rescaled.CanonicalSKU)
	assert.True(t, rescaled.Revenue.Equal(decimal.NewFromInt(500)))

	direct, err := resolver.Resolve(again, snap)
	require.NoError(t, err)
	assert.Equal(t, direct.TotalUnits, rescaled.TotalUnits)
	assert.Equal(t, direct.Formula, rescaled.Formula)

	t.Run("rescales unmapped records too", func(t *testing.T) {
		miss := record(catalog.ChannelStorefront, "XYZ-999", "Producto misterioso", 1)
		cachedMiss, err := resolver.Resolve(miss, snap)
		require.NoError(t, err)

		miss.Quantity = 3
		rescaledMiss := RescaleForQuantity(cachedMiss, miss)
		assert.Equal(t, int64(3), rescaledMiss.TotalUnits)
		assert.Equal(t, "3 qty × 1 units/pack × 1 packs/case = 3 units", rescaledMiss.Formula)
	})
}
