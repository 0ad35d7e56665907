package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics removes combining marks, so "aprovação" becomes "aprovacao".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// FoldToken lowercases, trims and strips diacritics, joining words with
// underscores: " Ideia em Aprovação " -> "ideia_em_aprovacao".
func FoldToken(s string) string {
	s = strings.ToLower(StripDiacritics(strings.TrimSpace(s)))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_'
	})
	return strings.Join(fields, "_")
}

// FoldKey reduces a key to lowercase letters and digits only, so that
// "data_aprovacao", "dataAprovacao" and "Data Aprovação" compare equal.
func FoldKey(s string) string {
	s = strings.ToLower(StripDiacritics(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
