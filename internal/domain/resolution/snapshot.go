package resolution

import (
	"fmt"
	"sort"
	"strings"

	"github.com/skubridge/backend/internal/domain/catalog"
	"github.com/skubridge/backend/internal/domain/shared"
)

// SnapshotWarning records a reference-data anomaly found while
// building a snapshot (e.g. duplicate active equivalence mappings).
type SnapshotWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Snapshot is an immutable in-memory view of the catalog, equivalence
// and caja tables, loaded once per batch and shared by all workers.
// It is the batch-scoped context the resolver chain runs against; the
// engine never reaches back to storage mid-resolution.
type Snapshot struct {
	productsBySKU      map[string]*catalog.CanonicalProduct
	productsByBaseCode map[string]*catalog.CanonicalProduct
	equivalences       map[string]*catalog.EquivalenceMapping
	duplicateCounts    map[string]int
	cajaByCaseSKU      map[string]*catalog.CajaCode
	cajaCandidates     []*catalog.CajaCode
	warnings           []SnapshotWarning
}

func equivalenceKey(channel catalog.Channel, channelSKU string) string {
	return string(channel) + "\x1f" + strings.ToUpper(strings.TrimSpace(channelSKU))
}

// NewSnapshot builds a snapshot from raw reference data. Duplicate
// active equivalence mappings for the same (channel, channel_sku) are
// collapsed here: highest priority wins, then most recently created,
// and a warning is recorded for each collision.
func NewSnapshot(
	products []catalog.CanonicalProduct,
	mappings []catalog.EquivalenceMapping,
	cajaCodes []catalog.CajaCode,
) *Snapshot {
	s := &Snapshot{
		productsBySKU:      make(map[string]*catalog.CanonicalProduct, len(products)),
		productsByBaseCode: make(map[string]*catalog.CanonicalProduct),
		equivalences:       make(map[string]*catalog.EquivalenceMapping),
		duplicateCounts:    make(map[string]int),
		cajaByCaseSKU:      make(map[string]*catalog.CajaCode),
	}

	for i := range products {
		p := &products[i]
		s.productsBySKU[p.SKU] = p
	}

	// Index one product per base code deterministically: active display
	// packs take precedence (they carry the authoritative pack
	// multiplier), then lexicographically smallest SKU.
	for i := range products {
		p := &products[i]
		if !p.Active {
			continue
		}
		current, ok := s.productsByBaseCode[p.BaseCode]
		if !ok || baseCodePreferred(p, current) {
			s.productsByBaseCode[p.BaseCode] = p
		}
	}

	for i := range mappings {
		m := &mappings[i]
		if !m.Active {
			continue
		}
		key := equivalenceKey(m.Channel, m.ChannelSKU)
		current, ok := s.equivalences[key]
		if !ok {
			s.equivalences[key] = m
			continue
		}
		s.duplicateCounts[key]++
		s.warnings = append(s.warnings, SnapshotWarning{
			Code: shared.ErrCodeAmbiguousEquivalence,
			Message: fmt.Sprintf("duplicate active mapping for %s/%s: keeping higher priority of %s and %s",
				m.Channel, m.ChannelSKU, current.CanonicalSKU, m.CanonicalSKU),
		})
		if m.Wins(current) {
			s.equivalences[key] = m
		}
	}

	for i := range cajaCodes {
		c := &cajaCodes[i]
		if !c.Active {
			continue
		}
		s.cajaByCaseSKU[c.CaseSKU] = c
		s.cajaCandidates = append(s.cajaCandidates, c)
	}
	// Stable candidate order keeps fuzzy scoring reproducible
	sort.Slice(s.cajaCandidates, func(i, j int) bool {
		return s.cajaCandidates[i].CaseSKU < s.cajaCandidates[j].CaseSKU
	})

	return s
}

// ProductBySKU looks up a canonical product by exact SKU
func (s *Snapshot) ProductBySKU(sku string) (*catalog.CanonicalProduct, bool) {
	p, ok := s.productsBySKU[strings.ToUpper(strings.TrimSpace(sku))]
	return p, ok
}

// ProductByBaseCode looks up the active product indexed for a base code
func (s *Snapshot) ProductByBaseCode(baseCode string) (*catalog.CanonicalProduct, bool) {
	p, ok := s.productsByBaseCode[strings.ToUpper(baseCode)]
	return p, ok
}

// Equivalence looks up the winning active mapping for a channel SKU,
// returning the mapping and the number of duplicates it shadowed.
func (s *Snapshot) Equivalence(channel catalog.Channel, channelSKU string) (*catalog.EquivalenceMapping, int, bool) {
	key := equivalenceKey(channel, channelSKU)
	m, ok := s.equivalences[key]
	if !ok {
		return nil, 0, false
	}
	return m, s.duplicateCounts[key], true
}

// CajaByCaseSKU looks up a caja code by exact case SKU
func (s *Snapshot) CajaByCaseSKU(caseSKU string) (*catalog.CajaCode, bool) {
	c, ok := s.cajaByCaseSKU[strings.ToUpper(strings.TrimSpace(caseSKU))]
	return c, ok
}

// CajaCandidates returns all active caja codes in a stable order for
// fuzzy name matching.
func (s *Snapshot) CajaCandidates() []*catalog.CajaCode {
	return s.cajaCandidates
}

// Warnings returns anomalies recorded while building the snapshot
func (s *Snapshot) Warnings() []SnapshotWarning {
	return s.warnings
}

// baseCodePreferred reports whether p should replace current in the
// base-code index.
func baseCodePreferred(p, current *catalog.CanonicalProduct) bool {
	pDisplay := p.PackageType == catalog.PackageTypeDisplay
	curDisplay := current.PackageType == catalog.PackageTypeDisplay
	if pDisplay != curDisplay {
		return pDisplay
	}
	return p.SKU < current.SKU
}
