package resolution

import "github.com/skubridge/backend/internal/domain/shared"

// Strategy names, in chain priority order
const (
	StrategyEquivalence     = "equivalence"
	StrategyPackVariant     = "pack_variant"
	StrategyCajaMasterExact = "caja_master_exact"
	StrategyCajaMasterFuzzy = "caja_master_fuzzy"
)

// Match is a successful strategy outcome before conversion arithmetic
type Match struct {
	CanonicalSKU     string
	Type             MatchType
	Multiplier       int64
	ConversionFactor int64
}

// StepOutcome is the result of one strategy attempt. Exactly one of
// the following holds: Matched with a Match, a record-level Err, or a
// plain miss (chain falls through to the next strategy).
type StepOutcome struct {
	Matched bool
	Match   *Match
	Details StepDetails
	Err     *shared.DomainError
}

// Strategy is one resolution approach consulted by the chain. Attempt
// must be pure: same record and snapshot, same outcome.
type Strategy interface {
	// Name returns the strategy's stable identifier used in traces
	Name() string

	// Attempt tries to resolve the record against the snapshot
	Attempt(record RawChannelRecord, snap *Snapshot) StepOutcome
}
