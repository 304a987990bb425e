package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases text and strips combining diacritical marks, so that
// accented and plain spellings compare equal ("Röntgen" and "rontgen" fold to
// the same string). It is applied to document text and to rule keywords alike;
// display text is never normalized.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(chain, lowered)
	if err != nil {
		// The chain only fails on malformed UTF-8; matching on the lowered
		// form is still better than dropping the text.
		return lowered
	}
	return folded
}
