package resolution

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/skubridge/backend/internal/domain/catalog"
	"github.com/skubridge/backend/internal/domain/resolution"
)

// ResolveRequest represents a single-record resolution request
type ResolveRequest struct {
	Channel       string          `json:"channel" binding:"required,oneof=storefront marketplace billing"`
	RawSKU        string          `json:"raw_sku" binding:"required,min=1,max=100"`
	RawName       string          `json:"raw_name" binding:"max=200"`
	Quantity      int64           `json:"quantity" binding:"required,min=1"`
	Revenue       decimal.Decimal `json:"revenue"`
	SourceOrderID string          `json:"source_order_id" binding:"max=100"`
}

// ToRecord converts the request into a domain record
func (r ResolveRequest) ToRecord() resolution.RawChannelRecord {
	return resolution.RawChannelRecord{
		Channel:       catalog.Channel(r.Channel),
		RawSKU:        r.RawSKU,
		RawName:       r.RawName,
		Quantity:      r.Quantity,
		Revenue:       r.Revenue,
		SourceOrderID: r.SourceOrderID,
	}
}

// BatchResolveRequest represents a batch resolution request
type BatchResolveRequest struct {
	Records []ResolveRequest `json:"records" binding:"required,min=1,dive"`
}

// RecordError reports a per-record failure inside a batch
type RecordError struct {
	Index   int    `json:"index"`
	RawSKU  string `json:"raw_sku"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchResolveResponse carries per-record results plus the batch rollup
type BatchResolveResponse struct {
	Results  []*resolution.ResolutionResult `json:"results"`
	Errors   []RecordError                  `json:"errors,omitempty"`
	Report   *resolution.AggregateReport    `json:"report"`
	Warnings []resolution.SnapshotWarning   `json:"warnings,omitempty"`
}

// ReviewItem is one entry in the manual-review queue
type ReviewItem struct {
	QueuedAt time.Time                    `json:"queued_at"`
	Result   *resolution.ResolutionResult `json:"result"`
}
