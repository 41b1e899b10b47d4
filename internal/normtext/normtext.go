// Package normtext canonicalizes free-text answers and price strings so
// that every downstream comparison sees the same form. All functions are
// pure and total.
package normtext

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrNotANumber is returned by ParsePrice when the input is empty or does
// not parse as a number after normalization.
var ErrNotANumber = errors.New("not a number")

// ToHalfWidth maps full-width digits (U+FF10–U+FF19), the full-width comma
// and the full-width plus sign to their ASCII forms. All other runes pass
// through unchanged, so applying it twice equals applying it once.
func ToHalfWidth(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '０' && r <= '９':
			return '0' + (r - '０')
		case r == '，':
			return ','
		case r == '＋':
			return '+'
		}
		return r
	}, s)
}

// Canonicalize produces the comparable form of an answer: half-width,
// trimmed, lower-cased, with all remaining whitespace (including the
// ideographic space U+3000) removed.
func Canonicalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(ToHalfWidth(s)))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// currencyGlyphs are stripped from price input before parsing. The yen
// sign appears in both half- and full-width forms in pasted listings.
var currencyGlyphs = []string{",", "円", "¥", "￥"}

// ParsePrice converts a price-like string ("５８，０００円", "58,000")
// into a number. Width is normalized first, then grouping commas and
// currency glyphs are stripped. Returns ErrNotANumber for empty input or
// anything that still isn't numeric.
func ParsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(ToHalfWidth(raw))
	for _, glyph := range currencyGlyphs {
		s = strings.ReplaceAll(s, glyph, "")
	}
	if s == "" {
		return 0, ErrNotANumber
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotANumber
	}
	return v, nil
}
