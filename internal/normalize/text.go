package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Unspecified is the sentinel stored for blank or missing text fields.
const Unspecified = "SIN ESPECIFICAR"

// stripAccents removes combining marks so that CAAGUAZÚ and CAAGUAZU
// produce the same lookup key.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CleanText trims and upper-cases a raw text field. Blank or missing
// input maps to the Unspecified sentinel. The result keeps diacritics:
// it is the form that gets stored.
func CleanText(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Unspecified
	}
	return strings.ToUpper(s)
}

// Key builds the comparison key for dictionary lookups and similarity
// scoring: cleaned, diacritic-stripped, whitespace collapsed. Keys are
// never stored, only compared.
func Key(raw string) string {
	s := CleanText(raw)
	if out, _, err := transform.String(stripAccents, s); err == nil {
		s = out
	}
	return strings.Join(strings.Fields(s), " ")
}

// IsUnspecified reports whether a cleaned value is the blank sentinel.
func IsUnspecified(s string) bool {
	return s == "" || s == Unspecified
}
