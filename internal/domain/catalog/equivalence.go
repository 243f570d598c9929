package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skubridge/backend/internal/domain/shared"
)

// Channel identifies the sales channel a raw record originated from
type Channel string

const (
	ChannelStorefront  Channel = "storefront"  // e-commerce storefront platform
	ChannelMarketplace Channel = "marketplace" // marketplace platform
	ChannelBilling     Channel = "billing"     // billing/ERP platform
)

// IsValid returns true if the channel is a known value
func (c Channel) IsValid() bool {
	switch c {
	case ChannelStorefront, ChannelMarketplace, ChannelBilling:
		return true
	default:
		return false
	}
}

// EquivalenceMapping is an explicit channel-SKU to canonical-SKU
// override. It is the highest-priority resolution source and the only
// one allowed to map channel identifiers that look nothing like
// canonical SKUs (e.g. marketplace-issued numeric IDs).
//
// At most one active mapping should exist per (channel, channel_sku);
// when duplicates slip in, the highest priority wins, then the most
// recently created, and a warning is recorded.
type EquivalenceMapping struct {
	shared.BaseAggregateRoot
	Channel      Channel `gorm:"type:varchar(20);not null;uniqueIndex:idx_equivalence_channel_sku,priority:1"`
	ChannelSKU   string  `gorm:"type:varchar(100);not null;uniqueIndex:idx_equivalence_channel_sku,priority:2"`
	CanonicalSKU string  `gorm:"type:varchar(50);not null;index"`
	Priority     int     `gorm:"not null;default:0"`
	Active       bool    `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (EquivalenceMapping) TableName() string {
	return "equivalence_mappings"
}

// NewEquivalenceMapping creates a new equivalence mapping
func NewEquivalenceMapping(channel Channel, channelSKU, canonicalSKU string, priority int) (*EquivalenceMapping, error) {
	if !channel.IsValid() {
		return nil, shared.NewDomainError("INVALID_CHANNEL", "Unknown channel")
	}
	if channelSKU == "" {
		return nil, shared.NewDomainError("INVALID_CHANNEL_SKU", "Channel SKU cannot be empty")
	}
	if err := validateSKU(canonicalSKU); err != nil {
		return nil, err
	}

	return &EquivalenceMapping{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Channel:           channel,
		ChannelSKU:        strings.TrimSpace(channelSKU),
		CanonicalSKU:      strings.ToUpper(canonicalSKU),
		Priority:          priority,
		Active:            true,
	}, nil
}

// SetPriority updates the mapping priority
func (m *EquivalenceMapping) SetPriority(priority int) {
	m.Priority = priority
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// Deactivate deactivates the mapping
func (m *EquivalenceMapping) Deactivate() {
	m.Active = false
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// Activate activates the mapping
func (m *EquivalenceMapping) Activate() {
	m.Active = true
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// Wins reports whether this mapping beats other under the duplicate
// tie-break rule: highest priority first, then most recently created.
func (m *EquivalenceMapping) Wins(other *EquivalenceMapping) bool {
	if m.Priority != other.Priority {
		return m.Priority > other.Priority
	}
	return m.CreatedAt.After(other.CreatedAt)
}

// EquivalenceReader defines read operations on equivalence mappings
type EquivalenceReader interface {
	// FindByID finds a mapping by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*EquivalenceMapping, error)

	// FindByChannelSKU finds all mappings for a (channel, channel_sku)
	// pair, active or not, ordered by priority then recency
	FindByChannelSKU(ctx context.Context, channel Channel, channelSKU string) ([]EquivalenceMapping, error)

	// FindActive finds all active mappings
	FindActive(ctx context.Context) ([]EquivalenceMapping, error)

	// FindAll finds all mappings matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]EquivalenceMapping, error)

	// Count counts mappings matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// EquivalenceWriter defines write operations on equivalence mappings
type EquivalenceWriter interface {
	// Save creates or updates a mapping
	Save(ctx context.Context, mapping *EquivalenceMapping) error

	// Delete deletes a mapping
	Delete(ctx context.Context, id uuid.UUID) error
}

// EquivalenceRepository defines the full interface for mapping persistence
type EquivalenceRepository interface {
	EquivalenceReader
	EquivalenceWriter
}
