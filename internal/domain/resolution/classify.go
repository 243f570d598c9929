package resolution

import (
	"regexp"
	"strings"
)

// Service line items are charges, not products: freight, fees,
// adjustments and discounts in either English or Spanish. They resolve
// like any other record but are excluded from unit coverage math.
var serviceMarkers = []string{
	"FLETE",
	"FREIGHT",
	"SHIPPING",
	"ENVIO",
	"AJUSTE",
	"ADJUSTMENT",
	"DESCUENTO",
	"DISCOUNT",
	"FEE",
	"SERVICIO",
}

// Legacy codes are identifiers from the retired numbering scheme:
// all-digit codes of six or more digits, or the historical LEG-/OLD-
// prefixes.
var legacyNumericRe = regexp.MustCompile(`^\d{6,}$`)

// IsServiceItem reports whether the record describes a service charge
// rather than a physical product. Both the SKU and the name are
// inspected because channels are inconsistent about which field carries
// the marker.
func IsServiceItem(rawSKU, rawName string) bool {
	sku := strings.ToUpper(rawSKU)
	name := strings.ToUpper(NormalizeName(rawName))
	for _, marker := range serviceMarkers {
		if strings.Contains(sku, marker) || strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// IsLegacyCode reports whether the SKU belongs to the retired numbering
// scheme.
func IsLegacyCode(rawSKU string) bool {
	sku := strings.ToUpper(strings.TrimSpace(rawSKU))
	if legacyNumericRe.MatchString(sku) {
		return true
	}
	return strings.HasPrefix(sku, "LEG-") || strings.HasPrefix(sku, "OLD-")
}
