package resolution

import (
	"fmt"
	"strings"
)

// StepDetails is the typed diagnostic payload attached to a resolution
// step. Each strategy has its own concrete detail type so traces stay
// strongly typed while remaining printable.
type StepDetails interface {
	// Kind identifies the detail payload type
	Kind() string
	fmt.Stringer
}

// ResolutionStep records one strategy attempt. Steps are append-only
// and never mutated after creation.
type ResolutionStep struct {
	StepNumber int         `json:"step_number"`
	Action     string      `json:"action"`
	Matched    bool        `json:"matched"`
	Details    StepDetails `json:"details"`
}

// Trace is the ordered list of steps taken while resolving one record
type Trace []ResolutionStep

// LastMatched returns the last step with Matched=true, or nil
func (t Trace) LastMatched() *ResolutionStep {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Matched {
			return &t[i]
		}
	}
	return nil
}

// String renders the trace for diagnostics, one step per line
func (t Trace) String() string {
	var b strings.Builder
	for _, s := range t {
		fmt.Fprintf(&b, "%d. %s matched=%t %s\n", s.StepNumber, s.Action, s.Matched, s.Details)
	}
	return b.String()
}

// TraceRecorder accumulates steps in the order strategies were
// attempted. Exactly one step is recorded per strategy invocation.
type TraceRecorder struct {
	steps Trace
}

// NewTraceRecorder creates an empty trace recorder
func NewTraceRecorder() *TraceRecorder {
	return &TraceRecorder{}
}

// Record appends a step for one strategy attempt
func (r *TraceRecorder) Record(action string, matched bool, details StepDetails) {
	r.steps = append(r.steps, ResolutionStep{
		StepNumber: len(r.steps) + 1,
		Action:     action,
		Matched:    matched,
		Details:    details,
	})
}

// Steps returns the recorded trace
func (r *TraceRecorder) Steps() Trace {
	return r.steps
}

// ---------------------------------------------------------------------------
// Per-strategy detail payloads
// ---------------------------------------------------------------------------

// EquivalenceDetails documents an equivalence-table lookup
type EquivalenceDetails struct {
	ChannelSKU     string `json:"channel_sku"`
	Found          bool   `json:"found"`
	Source         string `json:"source,omitempty"` // "mapping" or "catalog"
	CanonicalSKU   string `json:"canonical_sku,omitempty"`
	Priority       int    `json:"priority,omitempty"`
	DuplicateCount int    `json:"duplicate_count,omitempty"` // active duplicates collapsed at snapshot build
}

func (d EquivalenceDetails) Kind() string { return "equivalence" }

func (d EquivalenceDetails) String() string {
	if !d.Found {
		return fmt.Sprintf("channel_sku=%s no mapping", d.ChannelSKU)
	}
	return fmt.Sprintf("channel_sku=%s -> %s via %s priority=%d duplicates=%d",
		d.ChannelSKU, d.CanonicalSKU, d.Source, d.Priority, d.DuplicateCount)
}

// PackVariantDetails documents a structural parse and base-code lookup
type PackVariantDetails struct {
	Parsed         ParsedSKU `json:"parsed"`
	BaseCodeFound  bool      `json:"base_code_found"`
	CatalogSKU     string    `json:"catalog_sku,omitempty"`
	CatalogUnits   int       `json:"catalog_units,omitempty"`
	SuffixUnits    int       `json:"suffix_units,omitempty"`
	SuffixMismatch bool      `json:"suffix_mismatch,omitempty"` // parsed suffix disagreed with catalog; catalog wins
	Reason         string    `json:"reason,omitempty"`
}

func (d PackVariantDetails) Kind() string { return "pack_variant" }

func (d PackVariantDetails) String() string {
	if d.Reason != "" {
		return fmt.Sprintf("base_code=%s %s", d.Parsed.BaseCode, d.Reason)
	}
	s := fmt.Sprintf("base_code=%s -> %s units=%d", d.Parsed.BaseCode, d.CatalogSKU, d.CatalogUnits)
	if d.SuffixMismatch {
		s += fmt.Sprintf(" (suffix says %d, catalog is authoritative)", d.SuffixUnits)
	}
	return s
}

// CajaExactDetails documents an exact caja-code table lookup
type CajaExactDetails struct {
	CaseSKU      string `json:"case_sku"`
	Found        bool   `json:"found"`
	BaseSKU      string `json:"base_sku,omitempty"`
	UnitsPerCase string `json:"units_per_case,omitempty"`
}

func (d CajaExactDetails) Kind() string { return "caja_master_exact" }

func (d CajaExactDetails) String() string {
	if !d.Found {
		return fmt.Sprintf("case_sku=%s no caja entry", d.CaseSKU)
	}
	return fmt.Sprintf("case_sku=%s -> %s x%s", d.CaseSKU, d.BaseSKU, d.UnitsPerCase)
}

// CajaFuzzyDetails documents a fuzzy name match against caja descriptions
type CajaFuzzyDetails struct {
	Name           string  `json:"name"`
	CandidateCount int     `json:"candidate_count"`
	BestCaseSKU    string  `json:"best_case_sku,omitempty"`
	BestScore      float64 `json:"best_score"`
	Threshold      float64 `json:"threshold"`
	Accepted       bool    `json:"accepted"`
}

func (d CajaFuzzyDetails) Kind() string { return "caja_master_fuzzy" }

func (d CajaFuzzyDetails) String() string {
	return fmt.Sprintf("name=%q best=%s score=%.3f threshold=%.3f accepted=%t",
		d.Name, d.BestCaseSKU, d.BestScore, d.Threshold, d.Accepted)
}
