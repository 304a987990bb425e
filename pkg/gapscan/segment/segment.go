package segment

import (
	"strings"
	"unicode"
)

// Split breaks document text into candidate match units: it splits on line
// breaks and on runs of sentence-terminal punctuation (.!?) followed by
// whitespace. Units are trimmed and empty units are dropped; input order is
// preserved. The boundaries are heuristic, not linguistic — a punctuation run
// with no trailing whitespace (as in "v1.2") does not split.
func Split(text string) []string {
	var units []string
	var current strings.Builder

	flush := func() {
		unit := strings.TrimSpace(current.String())
		if unit != "" {
			units = append(units, unit)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' || r == '\r' {
			flush()
			continue
		}

		if isTerminal(r) {
			j := i
			for j < len(runes) && isTerminal(runes[j]) {
				j++
			}
			if j < len(runes) && unicode.IsSpace(runes[j]) {
				// Boundary: the punctuation run and one whitespace rune are consumed.
				flush()
				i = j
				continue
			}
			// Not a boundary: keep the whole run.
			for ; i < j; i++ {
				current.WriteRune(runes[i])
			}
			i--
			continue
		}

		current.WriteRune(r)
	}
	flush()

	return units
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
