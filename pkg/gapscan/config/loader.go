package config

import (
	"fmt"

	"github.com/gapscan/gapscan/pkg/gapscan/taxonomy"
)

// Loader loads taxonomy definition files and constructs taxonomies
type Loader struct {
	Paths []string
}

// Load reads every configured file and returns the taxonomies in path order.
// Validation (duplicate categories, empty keyword sets) fails the whole load.
func (l *Loader) Load() ([]*taxonomy.Taxonomy, error) {
	taxonomies := make([]*taxonomy.Taxonomy, 0, len(l.Paths))

	for _, path := range l.Paths {
		f, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load taxonomy %s: %w", path, err)
		}

		tax, err := Build(f)
		if err != nil {
			return nil, fmt.Errorf("build taxonomy %s: %w", path, err)
		}
		taxonomies = append(taxonomies, tax)
	}

	return taxonomies, nil
}

// Build constructs a taxonomy from a parsed definition. Each category's
// keyword list becomes one rule targeting that category.
func Build(f *File) (*taxonomy.Taxonomy, error) {
	categories := make([]string, len(f.Categories))
	rules := make([]taxonomy.Rule, len(f.Categories))
	for i, cat := range f.Categories {
		categories[i] = cat.Name
		rules[i] = taxonomy.Rule{Keywords: cat.Keywords, Category: cat.Name}
	}
	return taxonomy.New(f.Name, categories, rules)
}
