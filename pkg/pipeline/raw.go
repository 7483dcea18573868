package pipeline

import (
	"strconv"
	"time"

	"github.com/tributary-data/tributary/pkg/normalize"
	"github.com/tributary-data/tributary/pkg/reconcile"
	"github.com/tributary-data/tributary/pkg/tabular"
)

// buildRaw unions the two normalized sources by stacking rows, then applies
// gender and date-of-birth normalization to the unioned set so both sources
// get identical mapping behavior. No rows are dropped and duplicate
// identifiers are preserved. Every row is stamped with the run timestamp.
func buildRaw(a, b *tabular.Table, processing time.Time, loadTimestamp string) *tabular.Table {
	union := tabular.Stack(a, b)

	union.AddColumn(reconcile.ColumnGender, tabular.Null())
	union.AddColumn(reconcile.ColumnDOB, tabular.Null())
	union.AddColumn(reconcile.ColumnAge, tabular.Null())
	union.AddColumn(LoadTimestampColumn, tabular.String(loadTimestamp))

	for i := 0; i < union.Len(); i++ {
		row := union.Row(i)

		row.Set(reconcile.ColumnGender, tabular.String(normalize.Gender(row.Get(reconcile.ColumnGender))))

		if dob, ok := normalize.ParseDOB(row.Get(reconcile.ColumnDOB)); ok {
			row.Set(reconcile.ColumnDOB, tabular.String(normalize.FormatDOB(dob)))
			row.Set(reconcile.ColumnAge, tabular.String(strconv.Itoa(normalize.AgeAt(dob, processing))))
		} else {
			row.Set(reconcile.ColumnDOB, tabular.Null())
			row.Set(reconcile.ColumnAge, tabular.Null())
		}
	}

	return union.Project(RawColumns...)
}
