// Package sources implements the file-backed inputs of the pipeline: a
// delimited file for source A and a spreadsheet export for source B. Both
// produce tabular snapshots with raw headers; schema normalization happens
// in the pipeline.
package sources

import (
	"github.com/tributary-data/tributary/pkg/tabular"
)

// cell converts one raw spreadsheet/CSV field to a table cell. Empty fields
// are missing values, not empty strings.
func cell(s string) tabular.Value {
	if s == "" {
		return tabular.Null()
	}
	return tabular.String(s)
}

// fromRecords builds a table from a header record and data records. Ragged
// data rows are padded with nulls by the table itself.
func fromRecords(header []string, records [][]string) *tabular.Table {
	table := tabular.New(header...)
	for _, rec := range records {
		cells := make([]tabular.Value, len(rec))
		for i, field := range rec {
			cells[i] = cell(field)
		}
		table.Append(cells...)
	}
	return table
}
