// Package pipeline orchestrates one full-refresh run: ingest both sources,
// build the raw union layer, reconcile, project the eligible final layer,
// and hand both materialized tables to the warehouse loader. A run owns its
// working set exclusively; callers must serialize concurrent runs against
// the same destination tables, since those are replaced wholesale.
package pipeline

import (
	"context"

	"github.com/tributary-data/tributary/pkg/tabular"
)

// LoadTimestampColumn stamps every row with the run's single timestamp.
const LoadTimestampColumn = "LOAD_TIMESTAMP"

// LoadTimestampLayout is the storage representation of the run timestamp.
const LoadTimestampLayout = "2006-01-02 15:04:05"

// RawColumns is the fixed schema of the raw union layer.
var RawColumns = []string{
	"USER_ID", "NAME", "GENDER", "DOB", "CITY", "EMAIL", "COUNTRY", "AGE", LoadTimestampColumn,
}

// FinalColumns is the fixed schema of the reconciled final layer.
var FinalColumns = []string{
	"USER_ID", "NAME", "EMAIL", "GENDER", "DOB", "AGE", LoadTimestampColumn,
}

// Source provides one snapshot of an input dataset. Implementations own all
// file I/O; the pipeline only sees tables.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string

	// Fetch reads the source into a table. The header is raw; the pipeline
	// applies schema normalization itself.
	Fetch(ctx context.Context) (*tabular.Table, error)
}

// Loader persists the two fully-materialized layer tables, replacing the
// destination tables, and reports the row counts written.
type Loader interface {
	Load(ctx context.Context, raw, final *tabular.Table) (rawRows, finalRows int, err error)
}
