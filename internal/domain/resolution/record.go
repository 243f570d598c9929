package resolution

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/skubridge/backend/internal/domain/catalog"
	"github.com/skubridge/backend/internal/domain/shared"
)

// RawChannelRecord is one sold line item as reported by a channel.
// It is transient input; the engine never persists it.
type RawChannelRecord struct {
	Channel       catalog.Channel `json:"channel"`
	RawSKU        string          `json:"raw_sku"`
	RawName       string          `json:"raw_name"`
	Quantity      int64           `json:"quantity"`
	Revenue       decimal.Decimal `json:"revenue"` // line revenue, used for coverage and impact reporting
	SourceOrderID string          `json:"source_order_id"`
}

// Validate checks the record is resolvable at all. A malformed SKU is
// not a validation error (it falls through to no_match); only inputs
// the arithmetic invariant cannot hold for are rejected.
func (r RawChannelRecord) Validate() error {
	if !r.Channel.IsValid() {
		return shared.NewDomainError("INVALID_CHANNEL", "Unknown channel: "+string(r.Channel))
	}
	if r.Quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if r.Revenue.IsNegative() {
		return shared.NewDomainError("INVALID_REVENUE", "Revenue cannot be negative")
	}
	return nil
}

// NormalizedSKU returns the raw SKU upper-cased and trimmed, the form
// all lookup tables are keyed by.
func (r RawChannelRecord) NormalizedSKU() string {
	return strings.ToUpper(strings.TrimSpace(r.RawSKU))
}

// MemoKey identifies this record within a batch memo cache. The name
// participates because the fuzzy stage scores it; records sharing a key
// resolve identically apart from quantity scaling.
func (r RawChannelRecord) MemoKey() string {
	return string(r.Channel) + "\x1f" + r.NormalizedSKU() + "\x1f" + NormalizeName(r.RawName)
}
