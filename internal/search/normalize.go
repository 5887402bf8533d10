// Package search provides text normalization for diacritic-insensitive
// product lookups. Normalized names are computed at import time and stored
// alongside the product, so queries only ever compare normalized text.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveDiacritics strips accents, handling Croatian characters that NFD
// decomposition alone does not cover (đ carries no combining mark).
func RemoveDiacritics(s string) string {
	replacer := strings.NewReplacer(
		"č", "c", "Č", "C",
		"ć", "c", "Ć", "C",
		"đ", "dj", "Đ", "Dj",
		"š", "s", "Š", "S",
		"ž", "z", "Ž", "Z",
	)
	s = replacer.Replace(s)

	// General NFD normalization + strip combining marks
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// NormalizeName produces the canonical searchable form of a product name:
// diacritics removed, lowercased, whitespace collapsed.
func NormalizeName(name string) string {
	text := RemoveDiacritics(name)
	text = strings.ToLower(text)
	return strings.Join(strings.Fields(text), " ")
}
