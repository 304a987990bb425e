package excerpt

import (
	"strings"
	"unicode/utf8"
)

// Options controls the context window recovered around a matched snippet.
// Window sizes and the prefix cut are byte offsets into the original text;
// window edges snap outward/inward to rune boundaries.
type Options struct {
	// PrefixLen caps how much of the snippet is searched for. Searching a
	// bounded prefix instead of the whole snippet tolerates normalization
	// drift between the stored snippet and the original text.
	PrefixLen    int
	WindowBefore int
	WindowAfter  int
}

// DefaultOptions returns the standard window sizes.
func DefaultOptions() Options {
	return Options{PrefixLen: 40, WindowBefore: 400, WindowAfter: 800}
}

// Locate recovers a readable context window around the first case-insensitive
// occurrence of the snippet's prefix in the original text. The stored snippet
// came from normalized text while the caller wants original formatting, so
// this is a best-effort relocation: when the prefix is not found, Locate
// returns the snippet itself (or the whole original text when the snippet is
// empty) instead of failing.
func Locate(originalText, snippet string, opts Options) string {
	if snippet == "" {
		return originalText
	}
	if originalText == "" {
		return snippet
	}

	prefix := snippet
	if opts.PrefixLen > 0 && len(prefix) > opts.PrefixLen {
		cut := opts.PrefixLen
		for cut > 0 && !utf8.RuneStart(prefix[cut]) {
			cut--
		}
		prefix = prefix[:cut]
	}

	idx := strings.Index(strings.ToLower(originalText), strings.ToLower(prefix))
	if idx < 0 {
		return snippet
	}

	start := idx - opts.WindowBefore
	if start < 0 {
		start = 0
	}
	for start > 0 && !utf8.RuneStart(originalText[start]) {
		start--
	}

	end := idx + opts.WindowAfter
	if end > len(originalText) {
		end = len(originalText)
	}
	for end < len(originalText) && !utf8.RuneStart(originalText[end]) {
		end++
	}

	return originalText[start:end]
}
