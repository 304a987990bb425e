package taxonomy

import (
	"fmt"
	"strings"

	"github.com/gapscan/gapscan/pkg/gapscan/internalerr"
	"github.com/gapscan/gapscan/pkg/gapscan/normalize"
)

// Category is one named coverage topic. Ordinal is its position in the
// taxonomy's declared order and drives all reporting order downstream.
type Category struct {
	Name    string
	Ordinal int
}

// Rule maps a set of keywords or phrases to one category. Several rules may
// target the same category (synonym expansion).
type Rule struct {
	Keywords []string
	Category string
}

type compiledRule struct {
	keywords []string // normalized
	ordinal  int
}

// Taxonomy is a fixed, ordered catalog of categories plus the keyword rules
// that map text to them. Instances are immutable after New.
type Taxonomy struct {
	name       string
	categories []Category
	rules      []compiledRule
}

// New builds a taxonomy from an ordered category list and a rule set. Category
// names must be unique, every rule must reference a declared category, and
// every rule needs at least one non-empty keyword; violations fail fast.
func New(name string, categories []string, rules []Rule) (*Taxonomy, error) {
	t := &Taxonomy{
		name:       name,
		categories: make([]Category, 0, len(categories)),
	}

	ordinals := make(map[string]int, len(categories))
	for i, catName := range categories {
		catName = strings.TrimSpace(catName)
		if catName == "" {
			return nil, fmt.Errorf("taxonomy %s: empty category name: %w", name, internalerr.ErrInvalidConfig)
		}
		if _, exists := ordinals[catName]; exists {
			return nil, fmt.Errorf("taxonomy %s: duplicate category %q: %w", name, catName, internalerr.ErrDuplicate)
		}
		ordinals[catName] = i
		t.categories = append(t.categories, Category{Name: catName, Ordinal: i})
	}

	for _, rule := range rules {
		ordinal, ok := ordinals[strings.TrimSpace(rule.Category)]
		if !ok {
			return nil, fmt.Errorf("taxonomy %s: rule references unknown category %q: %w", name, rule.Category, internalerr.ErrInvalidConfig)
		}

		var keywords []string
		for _, kw := range rule.Keywords {
			kw = normalize.Normalize(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			keywords = append(keywords, kw)
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("taxonomy %s: rule for %q has no keywords: %w", name, rule.Category, internalerr.ErrInvalidConfig)
		}

		t.rules = append(t.rules, compiledRule{keywords: keywords, ordinal: ordinal})
	}

	return t, nil
}

// Name returns the taxonomy name.
func (t *Taxonomy) Name() string { return t.name }

// Categories returns the categories in declared order.
func (t *Taxonomy) Categories() []Category {
	out := make([]Category, len(t.categories))
	copy(out, t.categories)
	return out
}

// Len returns the number of categories.
func (t *Taxonomy) Len() int { return len(t.categories) }

// Match returns every category with a keyword hit in the given normalized
// line, in declared category order. Matching is plain substring containment:
// no word boundaries, no stemming. Short keywords embedded in unrelated longer
// words do match; the taxonomy trades precision for recall on purpose.
func (t *Taxonomy) Match(normalizedLine string) []Category {
	if normalizedLine == "" {
		return nil
	}

	hit := make(map[int]struct{})
	for _, rule := range t.rules {
		if _, done := hit[rule.ordinal]; done {
			continue
		}
		for _, kw := range rule.keywords {
			if strings.Contains(normalizedLine, kw) {
				hit[rule.ordinal] = struct{}{}
				break
			}
		}
	}

	if len(hit) == 0 {
		return nil
	}
	matched := make([]Category, 0, len(hit))
	for _, cat := range t.categories {
		if _, ok := hit[cat.Ordinal]; ok {
			matched = append(matched, cat)
		}
	}
	return matched
}
