package resolution

import (
	"strings"

	"github.com/skubridge/backend/internal/domain/catalog"
	"github.com/skubridge/backend/internal/domain/shared"
)

// cajaMatch converts a caja code into a Match. The case multiplier is
// the conversion factor; when the caja's base SKU is itself a display
// pack the catalog pack multiplier applies on top, otherwise the
// multiplier is 1.
func cajaMatch(code *catalog.CajaCode, matchType MatchType, snap *Snapshot) (*Match, *shared.DomainError) {
	unitsPerCase, err := code.IntegerUnitsPerCase()
	if err != nil {
		var domainErr *shared.DomainError
		if de, ok := err.(*shared.DomainError); ok {
			domainErr = de
		} else {
			domainErr = shared.NewDomainError(shared.ErrCodeInvalidConversionFactor, err.Error())
		}
		return nil, domainErr
	}

	multiplier := int64(1)
	if product, ok := snap.ProductBySKU(code.BaseSKU); ok {
		if product.PackageType == catalog.PackageTypeDisplay && product.UnitsPerDisplay >= 1 {
			multiplier = int64(product.UnitsPerDisplay)
		}
	}

	return &Match{
		CanonicalSKU:     code.BaseSKU,
		Type:             matchType,
		Multiplier:       multiplier,
		ConversionFactor: unitsPerCase,
	}, nil
}

// CajaExactStrategy resolves wholesale master-case SKUs through the
// registered caja code table by exact case SKU.
type CajaExactStrategy struct{}

// Name returns the strategy identifier
func (CajaExactStrategy) Name() string { return StrategyCajaMasterExact }

// Attempt looks up the raw SKU in the caja code table
func (CajaExactStrategy) Attempt(record RawChannelRecord, snap *Snapshot) StepOutcome {
	sku := record.NormalizedSKU()

	code, ok := snap.CajaByCaseSKU(sku)
	if !ok {
		return StepOutcome{Details: CajaExactDetails{CaseSKU: sku}}
	}

	match, derr := cajaMatch(code, MatchTypeCajaMaster, snap)
	if derr != nil {
		return StepOutcome{Err: derr}
	}

	return StepOutcome{
		Matched: true,
		Match:   match,
		Details: CajaExactDetails{
			CaseSKU:      sku,
			Found:        true,
			BaseSKU:      code.BaseSKU,
			UnitsPerCase: code.UnitsPerCase.String(),
		},
	}
}

// CajaFuzzyStrategy is the last resort before no_match: it scores the
// record's raw product name against every active caja description and
// accepts the best candidate above the threshold. Ties break on the
// lexicographically smallest canonical SKU so reruns always pick the
// same winner.
type CajaFuzzyStrategy struct {
	Threshold float64
}

// Name returns the strategy identifier
func (CajaFuzzyStrategy) Name() string { return StrategyCajaMasterFuzzy }

// Attempt fuzzy-matches the record's name against caja descriptions
func (s CajaFuzzyStrategy) Attempt(record RawChannelRecord, snap *Snapshot) StepOutcome {
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}

	// Some channels omit the product name entirely; the raw SKU text is
	// the next best thing to score (word-style case SKUs often read like
	// a description).
	name := record.RawName
	if strings.TrimSpace(name) == "" {
		name = record.RawSKU
	}

	candidates := snap.CajaCandidates()
	details := CajaFuzzyDetails{
		Name:           name,
		CandidateCount: len(candidates),
		Threshold:      threshold,
	}

	if NormalizeName(name) == "" || len(candidates) == 0 {
		return StepOutcome{Details: details}
	}

	var best *catalog.CajaCode
	var bestScore float64
	for _, c := range candidates {
		score := NameSimilarity(name, c.Description)
		switch {
		case best == nil || score > bestScore:
			best, bestScore = c, score
		case score == bestScore && c.BaseSKU < best.BaseSKU:
			// Equal scores resolve to the smallest canonical SKU
			best = c
		}
	}

	details.BestCaseSKU = best.CaseSKU
	details.BestScore = bestScore

	if bestScore < threshold {
		return StepOutcome{Details: details}
	}

	match, derr := cajaMatch(best, MatchTypeCajaFuzzy, snap)
	if derr != nil {
		return StepOutcome{Err: derr}
	}

	details.Accepted = true
	return StepOutcome{Matched: true, Match: match, Details: details}
}
