package compare

import (
	"github.com/gapscan/gapscan/pkg/gapscan/aggregate"
	"github.com/gapscan/gapscan/pkg/gapscan/taxonomy"
)

// CoveredCategory is a category with at least one aggregated hit.
type CoveredCategory struct {
	taxonomy.Category
	Aggregate aggregate.CategoryAggregate
}

// Result partitions a taxonomy's categories into covered and gaps. Both lists
// preserve the taxonomy's declared order, and together they hold every
// category exactly once.
type Result struct {
	Covered []CoveredCategory
	Gaps    []taxonomy.Category
}

// Compare walks the taxonomy's categories in declared order and sorts each
// into covered (present in the aggregate map) or gaps (absent). Declared
// order, not hit count, decides the output order: callers render a stable
// checklist against the baseline.
func Compare(aggregates map[string]*aggregate.CategoryAggregate, tax *taxonomy.Taxonomy) Result {
	var result Result

	for _, cat := range tax.Categories() {
		agg, ok := aggregates[cat.Name]
		if !ok || agg == nil {
			result.Gaps = append(result.Gaps, cat)
			continue
		}
		result.Covered = append(result.Covered, CoveredCategory{
			Category:  cat,
			Aggregate: *agg,
		})
	}

	return result
}
