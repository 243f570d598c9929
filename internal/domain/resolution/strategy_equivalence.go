package resolution

// EquivalenceStrategy resolves exact identities: first the explicit
// channel-SKU override table, then a direct canonical-SKU hit in the
// catalog. The override table is the only place channel identifiers
// that look nothing like canonical SKUs can be mapped, so this
// strategy runs first.
type EquivalenceStrategy struct{}

// Name returns the strategy identifier
func (EquivalenceStrategy) Name() string { return StrategyEquivalence }

// Attempt looks up (channel, raw_sku) in the equivalence table, then
// the raw SKU itself in the catalog
func (EquivalenceStrategy) Attempt(record RawChannelRecord, snap *Snapshot) StepOutcome {
	sku := record.NormalizedSKU()

	if mapping, duplicates, ok := snap.Equivalence(record.Channel, sku); ok {
		return StepOutcome{
			Matched: true,
			Match: &Match{
				CanonicalSKU:     mapping.CanonicalSKU,
				Type:             MatchTypeExact,
				Multiplier:       1,
				ConversionFactor: 1,
			},
			Details: EquivalenceDetails{
				ChannelSKU:     sku,
				Found:          true,
				Source:         "mapping",
				CanonicalSKU:   mapping.CanonicalSKU,
				Priority:       mapping.Priority,
				DuplicateCount: duplicates,
			},
		}
	}

	// The channel may already speak canonical: a raw SKU that is itself
	// a catalog entry needs no mapping. SKUs carrying a pack marker are
	// left for the pack-variant stage, which owns the multiplier.
	if product, ok := snap.ProductBySKU(sku); ok && !ParseSKU(sku).HasPackMarker() {
		return StepOutcome{
			Matched: true,
			Match: &Match{
				CanonicalSKU:     product.SKU,
				Type:             MatchTypeExact,
				Multiplier:       1,
				ConversionFactor: 1,
			},
			Details: EquivalenceDetails{
				ChannelSKU:   sku,
				Found:        true,
				Source:       "catalog",
				CanonicalSKU: product.SKU,
			},
		}
	}

	return StepOutcome{Details: EquivalenceDetails{ChannelSKU: sku}}
}
