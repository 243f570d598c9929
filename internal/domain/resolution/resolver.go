package resolution

import (
	"fmt"

	"github.com/skubridge/backend/internal/domain/shared"
)

// Options tunes resolver behavior per batch
type Options struct {
	// FuzzyThreshold overrides DefaultFuzzyThreshold when > 0
	FuzzyThreshold float64
}

// Resolver runs the fixed strategy chain against a snapshot. It holds
// no mutable state, so one resolver is safely shared by concurrent
// workers.
type Resolver struct {
	strategies []Strategy
}

// NewResolver builds the standard four-strategy chain
func NewResolver(opts Options) *Resolver {
	return &Resolver{
		strategies: []Strategy{
			EquivalenceStrategy{},
			PackVariantStrategy{},
			CajaExactStrategy{},
			CajaFuzzyStrategy{Threshold: opts.FuzzyThreshold},
		},
	}
}

// Resolve runs the chain for one record. Strategies are attempted in
// priority order, each recording exactly one trace step; the first
// match wins. A record that exhausts the chain resolves as no_match
// with zero confidence rather than failing. Only invalid input or
// corrupt reference data (a non-integer case multiplier) returns an
// error.
func (r *Resolver) Resolve(record RawChannelRecord, snap *Snapshot) (*ResolutionResult, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}

	recorder := NewTraceRecorder()

	var winner *Match
	for _, strategy := range r.strategies {
		outcome := strategy.Attempt(record, snap)
		recorder.Record(strategy.Name(), outcome.Matched, outcome.Details)
		if outcome.Err != nil {
			return nil, outcome.Err
		}
		if outcome.Matched {
			winner = outcome.Match
			break
		}
	}

	result := &ResolutionResult{
		Channel:       record.Channel,
		RawSKU:        record.RawSKU,
		RawName:       record.RawName,
		SourceOrderID: record.SourceOrderID,
		Quantity:      record.Quantity,
		Revenue:       record.Revenue,
		IsServiceItem: IsServiceItem(record.RawSKU, record.RawName),
		IsLegacyCode:  IsLegacyCode(record.RawSKU),
		Trace:         recorder.Steps(),
	}

	if winner == nil {
		result.MatchType = MatchTypeNoMatch
		result.Multiplier = 1
		result.ConversionFactor = 1
		result.TotalUnits = record.Quantity
		result.Confidence = ConfidenceNone
		result.NeedsManualReview = true
		result.Formula = noMatchFormula(record.Quantity)
		return result, nil
	}

	conv, err := Convert(record.Quantity, winner.Multiplier, winner.ConversionFactor)
	if err != nil {
		if de, ok := err.(*shared.DomainError); ok {
			return nil, de
		}
		return nil, err
	}

	canonical := winner.CanonicalSKU
	result.CanonicalSKU = &canonical
	result.MatchType = winner.Type
	result.Multiplier = conv.Multiplier
	result.ConversionFactor = conv.ConversionFactor
	result.TotalUnits = conv.TotalUnits
	result.Confidence = winner.Type.Confidence()
	result.NeedsManualReview = winner.Type.NeedsManualReview()
	result.Formula = conv.Formula

	return result, nil
}

// noMatchFormula renders the pass-through arithmetic of an unmapped
// record in the same shape Convert uses for matched ones.
func noMatchFormula(quantity int64) string {
	return fmt.Sprintf("%d qty × 1 units/pack × 1 packs/case = %d units", quantity, quantity)
}

// RescaleForQuantity derives a result for the same SKU at a different
// quantity. Batch memoization uses this: the strategy chain is a pure
// function of (channel, sku, name), so only the arithmetic changes
// between occurrences.
func RescaleForQuantity(cached *ResolutionResult, record RawChannelRecord) *ResolutionResult {
	out := *cached
	out.RawSKU = record.RawSKU
	out.RawName = record.RawName
	out.SourceOrderID = record.SourceOrderID
	out.Quantity = record.Quantity
	out.Revenue = record.Revenue
	out.TotalUnits = record.Quantity * cached.Multiplier * cached.ConversionFactor

	if cached.Matched() {
		conv, err := Convert(record.Quantity, cached.Multiplier, cached.ConversionFactor)
		if err == nil {
			out.Formula = conv.Formula
			out.TotalUnits = conv.TotalUnits
		}
	} else {
		out.Formula = noMatchFormula(record.Quantity)
	}
	return &out
}
