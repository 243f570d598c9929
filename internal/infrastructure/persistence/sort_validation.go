package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for canonical products
var ProductSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"sku":               true,
	"name":              true,
	"base_code":         true,
	"package_type":      true,
	"units_per_display": true,
}

// MappingSortFields contains allowed sort fields for equivalence mappings
var MappingSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"channel":       true,
	"channel_sku":   true,
	"canonical_sku": true,
	"priority":      true,
}

// CajaSortFields contains allowed sort fields for caja codes
var CajaSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"case_sku":       true,
	"base_sku":       true,
	"units_per_case": true,
}
