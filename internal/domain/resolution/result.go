package resolution

import (
	"github.com/shopspring/decimal"
	"github.com/skubridge/backend/internal/domain/catalog"
)

// MatchType classifies how a record was resolved
type MatchType string

const (
	MatchTypeExact       MatchType = "exact"
	MatchTypePackVariant MatchType = "pack_variant"
	MatchTypeCajaMaster  MatchType = "caja_master"
	MatchTypeCajaFuzzy   MatchType = "caja_fuzzy"
	MatchTypeNoMatch     MatchType = "no_match"
)

// AllMatchTypes returns match types in their fixed reporting order
func AllMatchTypes() []MatchType {
	return []MatchType{
		MatchTypeExact,
		MatchTypePackVariant,
		MatchTypeCajaMaster,
		MatchTypeCajaFuzzy,
		MatchTypeNoMatch,
	}
}

// Confidence is the discrete trust score of a match. Only the three
// enumerated values ever appear; there is no interpolation.
type Confidence int

const (
	ConfidenceNone    Confidence = 0   // no_match
	ConfidenceReview  Confidence = 70  // fuzzy match, routed to manual review
	ConfidenceCertain Confidence = 100 // exact, pack variant or registered caja
)

// Confidence returns the fixed confidence score for the match type
func (m MatchType) Confidence() Confidence {
	switch m {
	case MatchTypeExact, MatchTypePackVariant, MatchTypeCajaMaster:
		return ConfidenceCertain
	case MatchTypeCajaFuzzy:
		return ConfidenceReview
	default:
		return ConfidenceNone
	}
}

// NeedsManualReview returns true when the match type always routes the
// record to a human verification queue.
func (m MatchType) NeedsManualReview() bool {
	return m == MatchTypeCajaFuzzy || m == MatchTypeNoMatch
}

// ResolutionResult is the immutable outcome of resolving one record.
// The arithmetic invariant always holds:
//
//	TotalUnits == Quantity * Multiplier * ConversionFactor
type ResolutionResult struct {
	Channel           catalog.Channel `json:"channel"`
	RawSKU            string          `json:"raw_sku"`
	RawName           string          `json:"raw_name,omitempty"`
	SourceOrderID     string          `json:"source_order_id,omitempty"`
	CanonicalSKU      *string         `json:"canonical_sku"` // nil for no_match
	MatchType         MatchType       `json:"match_type"`
	Multiplier        int64           `json:"multiplier"`        // units per sold pack, per catalog
	ConversionFactor  int64           `json:"conversion_factor"` // case-level multiplier on top of the pack multiplier
	Quantity          int64           `json:"quantity"`
	TotalUnits        int64           `json:"total_units"`
	Confidence        Confidence      `json:"confidence"`
	NeedsManualReview bool            `json:"needs_manual_review"`
	Formula           string          `json:"formula"`
	IsServiceItem     bool            `json:"is_service_item"`
	IsLegacyCode      bool            `json:"is_legacy_code"`
	Revenue           decimal.Decimal `json:"revenue"`
	Trace             Trace           `json:"trace"`
}

// Matched reports whether the record resolved to a canonical identity
func (r *ResolutionResult) Matched() bool {
	return r.MatchType != MatchTypeNoMatch
}
