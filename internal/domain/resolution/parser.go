package resolution

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedSKU is the structured token set produced by the SKU parser.
// Parsed is false for malformed input; the zero tokens then let the
// resolver chain fall through to no_match gracefully.
type ParsedSKU struct {
	Raw        string `json:"raw"`
	BaseCode   string `json:"base_code"`
	TypeCode   string `json:"type_code,omitempty"`
	PackSuffix string `json:"pack_suffix,omitempty"`
	PackSize   int    `json:"pack_size,omitempty"` // parsed from the suffix, 0 when the marker carries no size
	IsBase     bool   `json:"is_base"`
	Parsed     bool   `json:"parsed"`
}

// packSuffixRe matches pack-size markers at the end of a SKU:
// an explicit "CAJA16" / "DISPLAY12" / "DSP6" marker (size optional)
// or a times-N marker like "X4" (size required, so a trailing X in a
// type code is not mistaken for a pack marker).
var packSuffixRe = regexp.MustCompile(`(?:(CAJA|DISPLAY|DSP)(\d*)|X(\d+))$`)

// baseCodeRe matches the leading product-family root: a run of at
// least two letters opening the SKU.
var baseCodeRe = regexp.MustCompile(`^[A-Z]{2,8}`)

// ParseSKU decomposes a raw SKU string into structured tokens. It is a
// pure function and never fails hard: malformed input yields a token
// set with Parsed=false.
func ParseSKU(raw string) ParsedSKU {
	sku := strings.ToUpper(strings.TrimSpace(raw))
	out := ParsedSKU{Raw: sku}
	if sku == "" {
		return out
	}

	base := baseCodeRe.FindString(sku)
	if base == "" {
		return out
	}

	rest := strings.TrimLeft(sku[len(base):], "_-")

	var suffix string
	var size int
	if m := packSuffixRe.FindStringSubmatch(sku); m != nil {
		suffix = m[0]
		digits := m[2]
		if digits == "" {
			digits = m[3]
		}
		if digits != "" {
			// digits are bounded by the regex, Atoi cannot fail
			size, _ = strconv.Atoi(digits)
		}
		rest = strings.Trim(strings.TrimSuffix(rest, suffix), "_-")
	}

	out.BaseCode = base
	out.TypeCode = rest
	out.PackSuffix = suffix
	out.PackSize = size
	out.IsBase = suffix == ""
	out.Parsed = true
	return out
}

// HasPackMarker reports whether the SKU carries an explicit pack-size
// or display marker.
func (p ParsedSKU) HasPackMarker() bool {
	return p.Parsed && p.PackSuffix != ""
}
