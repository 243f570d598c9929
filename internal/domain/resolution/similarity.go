package resolution

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultFuzzyThreshold is the acceptance threshold for fuzzy caja
// matches. The value is a tunable constant, not a law of nature: 0.60
// keeps obvious reorderings like "CAJA GRANOLA MASTER" vs "Granola
// Master Case" above the bar while rejecting single shared words.
const DefaultFuzzyThreshold = 0.60

// Weights for combining token-set and edit-distance similarity.
// Token overlap dominates because channel names reorder and pad words
// far more often than they misspell them.
const (
	tokenWeight = 0.7
	editWeight  = 0.3
)

// accentFolder strips combining marks so "Café" and "Cafe" compare
// equal. Spanish-language channel names make this mandatory.
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName lowercases a product name, folds accents and collapses
// all non-alphanumeric runs to single spaces.
func NormalizeName(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := true
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case !lastSpace:
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// TokenizeName splits a normalized name into its tokens
func TokenizeName(s string) []string {
	normalized := NormalizeName(s)
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}

// NameSimilarity scores two product names in [0, 1]. The score blends
// token-set overlap (Sørensen–Dice over unique tokens) with normalized
// Levenshtein distance over the joined normalized strings, so both
// word reordering and small misspellings are tolerated.
func NameSimilarity(a, b string) float64 {
	tokensA := TokenizeName(a)
	tokensB := TokenizeName(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	dice := tokenSetDice(tokensA, tokensB)
	edit := levenshteinNormalized(strings.Join(tokensA, ""), strings.Join(tokensB, ""))

	return tokenWeight*dice + editWeight*edit
}

// tokenSetDice computes the Sørensen–Dice coefficient over unique tokens
func tokenSetDice(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}

	var common int
	for t := range setA {
		if _, ok := setB[t]; ok {
			common++
		}
	}
	return 2 * float64(common) / float64(len(setA)+len(setB))
}

// levenshteinNormalized computes 1 - distance/maxLen in [0, 1]
func levenshteinNormalized(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1 - float64(levenshtein(a, b))/float64(maxLen)
}

// levenshtein computes edit distance with a two-row matrix
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j
		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[i] = min3(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(a)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
