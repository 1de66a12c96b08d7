package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes runes and drops combining marks so "Dončić" and
// "Doncic" normalize identically.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Generational suffixes dropped during normalization. The suffix is only
// dropped when at least one other token remains.
var suffixTokens = map[string]struct{}{
	"jr":  {},
	"sr":  {},
	"ii":  {},
	"iii": {},
	"iv":  {},
}

// Normalize reduces a raw name to its matching key: diacritics transliterated,
// case folded, punctuation stripped, generational suffixes dropped, whitespace
// collapsed. An empty result means the input carries no resolvable name.
func Normalize(raw string) string {
	folded, _, err := transform.String(stripMarks, raw)
	if err != nil {
		folded = raw
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	for len(fields) > 1 {
		if _, ok := suffixTokens[fields[len(fields)-1]]; !ok {
			break
		}
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

// DisplayName collapses whitespace without altering spelling, producing the
// canonical display form for a first sighting.
func DisplayName(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
