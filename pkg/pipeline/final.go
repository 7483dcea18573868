package pipeline

import (
	"strconv"

	"github.com/tributary-data/tributary/pkg/reconcile"
	"github.com/tributary-data/tributary/pkg/tabular"
)

// eligibleAge is the exclusive lower bound for the final layer.
const eligibleAge = 18

// projectFinal filters the merged set to rows whose derived age is strictly
// greater than 18 (null ages are excluded) and projects the fixed final
// schema with the run timestamp stamped on every row.
func projectFinal(merged *tabular.Table, loadTimestamp string) *tabular.Table {
	eligible := tabular.New(merged.Columns()...)
	for i := 0; i < merged.Len(); i++ {
		row := merged.Row(i)
		age := row.Get(reconcile.ColumnAge)
		if age.IsNull() {
			continue
		}
		n, err := strconv.Atoi(age.Str())
		if err != nil || n <= eligibleAge {
			continue
		}
		cells := make([]tabular.Value, 0, len(merged.Columns()))
		for _, c := range merged.Columns() {
			cells = append(cells, row.Get(c))
		}
		eligible.Append(cells...)
	}

	eligible.AddColumn(LoadTimestampColumn, tabular.String(loadTimestamp))
	return eligible.Project(FinalColumns...)
}
