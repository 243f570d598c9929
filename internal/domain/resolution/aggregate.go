package resolution

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/skubridge/backend/internal/domain/catalog"
	"github.com/skubridge/backend/internal/domain/shared"
)

// Outcome pairs a record with its resolution result or error. A batch
// produces one outcome per input record, in input order.
type Outcome struct {
	Record RawChannelRecord
	Result *ResolutionResult
	Err    *shared.DomainError
}

// BucketStats accumulates per-match-type totals
type BucketStats struct {
	Records    int64           `json:"records"`
	Quantity   int64           `json:"quantity"`
	TotalUnits int64           `json:"total_units"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// UnmappedImpact quantifies one unresolved SKU's business weight
type UnmappedImpact struct {
	Channel catalog.Channel `json:"channel"`
	RawSKU  string          `json:"raw_sku"`
	RawName string          `json:"raw_name,omitempty"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ChannelCoverage is the per-channel mapped/unmapped revenue split.
// Mapped and Unmapped always sum exactly to Total.
type ChannelCoverage struct {
	Channel         catalog.Channel `json:"channel"`
	MappedRevenue   decimal.Decimal `json:"mapped_revenue"`
	UnmappedRevenue decimal.Decimal `json:"unmapped_revenue"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	CoveragePercent decimal.Decimal `json:"coverage_percent"`
}

// AggregateReport is the roll-up of one resolved batch. Records that
// failed with an error are counted in ErrorRecords and excluded from
// every other figure; service items are excluded from coverage but
// tracked in ServiceItems.
type AggregateReport struct {
	TotalRecords int64                     `json:"total_records"`
	ErrorRecords int64                     `json:"error_records"`
	ServiceItems int64                     `json:"service_items"`
	LegacyCodes  int64                     `json:"legacy_codes"`
	ReviewQueue  int64                     `json:"review_queue"` // records flagged for manual review
	MatchedUnits int64                     `json:"matched_units"`
	UnmatchedQty int64                     `json:"unmatched_quantity"`
	ByMatchType  map[MatchType]BucketStats `json:"by_match_type"`

	// Batch-wide revenue split; MappedRevenue + UnmappedRevenue equals
	// TotalRevenue exactly, CoveragePercent is mapped over total.
	MappedRevenue   decimal.Decimal `json:"mapped_revenue"`
	UnmappedRevenue decimal.Decimal `json:"unmapped_revenue"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	CoveragePercent decimal.Decimal `json:"coverage_percent"`

	Coverage     []ChannelCoverage `json:"coverage"`
	TopUnmapped  []UnmappedImpact  `json:"top_unmapped"`
	ErrorsByCode map[string]int64  `json:"errors_by_code"`
}

// coveragePercent scales mapped/total revenue to a percentage. An
// empty split reports zero coverage instead of dividing by zero.
func coveragePercent(mapped, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return mapped.Div(total).Mul(decimal.NewFromInt(100))
}

// Aggregate rolls a batch of outcomes into an AggregateReport.
// topUnmapped caps the unmapped impact list; <= 0 means unlimited.
func Aggregate(outcomes []Outcome, topUnmapped int) *AggregateReport {
	report := &AggregateReport{
		ByMatchType:     make(map[MatchType]BucketStats),
		ErrorsByCode:    make(map[string]int64),
		MappedRevenue:   decimal.Zero,
		UnmappedRevenue: decimal.Zero,
		TotalRevenue:    decimal.Zero,
		CoveragePercent: decimal.Zero,
	}
	for _, mt := range AllMatchTypes() {
		report.ByMatchType[mt] = BucketStats{Revenue: decimal.Zero}
	}

	coverage := make(map[catalog.Channel]*ChannelCoverage)
	unmapped := make(map[string]*UnmappedImpact)

	for _, o := range outcomes {
		report.TotalRecords++

		if o.Err != nil {
			report.ErrorRecords++
			report.ErrorsByCode[o.Err.Code]++
			continue
		}
		r := o.Result

		bucket := report.ByMatchType[r.MatchType]
		bucket.Records++
		bucket.Quantity += r.Quantity
		bucket.TotalUnits += r.TotalUnits
		bucket.Revenue = bucket.Revenue.Add(r.Revenue)
		report.ByMatchType[r.MatchType] = bucket

		if r.IsServiceItem {
			report.ServiceItems++
		}
		if r.IsLegacyCode {
			report.LegacyCodes++
		}
		if r.NeedsManualReview {
			report.ReviewQueue++
		}

		// Service charges carry no unit semantics and distort coverage,
		// so they stay out of the mapped/unmapped split entirely.
		if r.IsServiceItem {
			continue
		}

		cov, ok := coverage[r.Channel]
		if !ok {
			cov = &ChannelCoverage{
				Channel:         r.Channel,
				MappedRevenue:   decimal.Zero,
				UnmappedRevenue: decimal.Zero,
				TotalRevenue:    decimal.Zero,
			}
			coverage[r.Channel] = cov
		}
		cov.TotalRevenue = cov.TotalRevenue.Add(r.Revenue)

		if r.Matched() {
			report.MatchedUnits += r.TotalUnits
			cov.MappedRevenue = cov.MappedRevenue.Add(r.Revenue)
			continue
		}

		report.UnmatchedQty += r.Quantity
		cov.UnmappedRevenue = cov.UnmappedRevenue.Add(r.Revenue)

		key := string(r.Channel) + "\x1f" + r.RawSKU
		impact, ok := unmapped[key]
		if !ok {
			impact = &UnmappedImpact{
				Channel: r.Channel,
				RawSKU:  r.RawSKU,
				RawName: r.RawName,
				Revenue: decimal.Zero,
			}
			unmapped[key] = impact
		}
		impact.Orders++
		impact.Revenue = impact.Revenue.Add(r.Revenue)
	}

	report.Coverage = make([]ChannelCoverage, 0, len(coverage))
	for _, cov := range coverage {
		cov.CoveragePercent = coveragePercent(cov.MappedRevenue, cov.TotalRevenue)
		report.MappedRevenue = report.MappedRevenue.Add(cov.MappedRevenue)
		report.UnmappedRevenue = report.UnmappedRevenue.Add(cov.UnmappedRevenue)
		report.TotalRevenue = report.TotalRevenue.Add(cov.TotalRevenue)
		report.Coverage = append(report.Coverage, *cov)
	}
	report.CoveragePercent = coveragePercent(report.MappedRevenue, report.TotalRevenue)
	sort.Slice(report.Coverage, func(i, j int) bool {
		return report.Coverage[i].Channel < report.Coverage[j].Channel
	})

	report.TopUnmapped = make([]UnmappedImpact, 0, len(unmapped))
	for _, impact := range unmapped {
		report.TopUnmapped = append(report.TopUnmapped, *impact)
	}
	// Highest revenue first, then most orders, then SKU so equal-weight
	// entries come out in a stable order.
	sort.Slice(report.TopUnmapped, func(i, j int) bool {
		a, b := report.TopUnmapped[i], report.TopUnmapped[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		if a.Orders != b.Orders {
			return a.Orders > b.Orders
		}
		return a.RawSKU < b.RawSKU
	})
	if topUnmapped > 0 && len(report.TopUnmapped) > topUnmapped {
		report.TopUnmapped = report.TopUnmapped[:topUnmapped]
	}

	return report
}
