package aggregate

import (
	"github.com/gapscan/gapscan/pkg/gapscan/normalize"
	"github.com/gapscan/gapscan/pkg/gapscan/segment"
	"github.com/gapscan/gapscan/pkg/gapscan/taxonomy"
)

// Source is one document's text with its attribution. DocumentID and Company
// may be empty when the text has no identifiable origin.
type Source struct {
	DocumentID string
	Company    string
	Text       string
}

// Evidence is one matched line attributed to a source. Snippet keeps the
// original casing of the line, trimmed.
type Evidence struct {
	Snippet    string
	DocumentID string
	Company    string
}

// CategoryAggregate accumulates the hits for one category across a source
// set. Count always equals len(Entries).
type CategoryAggregate struct {
	Count   int
	Entries []Evidence
}

// Aggregate segments each source in order, matches every line against the
// taxonomy, and folds the hits into per-category aggregates keyed by category
// name. Categories without hits are absent from the map. Evidence order is
// source order, then line order within a source, so repeated runs over the
// same input produce identical output.
//
// Lines are cut from the raw text and normalized individually: case folding
// and mark stripping never add or remove newlines or sentence punctuation, so
// the boundaries match segmenting the normalized text, and the snippet can
// keep its original casing.
func Aggregate(sources []Source, tax *taxonomy.Taxonomy) map[string]*CategoryAggregate {
	result := make(map[string]*CategoryAggregate)

	for _, src := range sources {
		if src.Text == "" {
			continue
		}
		for _, line := range segment.Split(src.Text) {
			normalized := normalize.Normalize(line)
			for _, cat := range tax.Match(normalized) {
				agg := result[cat.Name]
				if agg == nil {
					agg = &CategoryAggregate{}
					result[cat.Name] = agg
				}
				agg.Count++
				agg.Entries = append(agg.Entries, Evidence{
					Snippet:    line,
					DocumentID: src.DocumentID,
					Company:    src.Company,
				})
			}
		}
	}

	return result
}
