package warehouse

import (
	"strings"

	"github.com/tributary-data/tributary/pkg/pipeline"
	"github.com/tributary-data/tributary/pkg/reconcile"
)

// columnDef pairs a destination column with its Snowflake type.
type columnDef struct {
	Name string
	Type string
}

var columnTypes = map[string]string{
	reconcile.ColumnUserID:       "NUMBER",
	"NAME":                       "VARCHAR",
	"GENDER":                     "VARCHAR",
	"DOB":                        "VARCHAR",
	"CITY":                       "VARCHAR",
	"EMAIL":                      "VARCHAR",
	"COUNTRY":                    "VARCHAR",
	"AGE":                        "NUMBER",
	pipeline.LoadTimestampColumn: "TIMESTAMP_NTZ",
}

// defs resolves the pipeline's destination columns to typed definitions.
// Columns without a known type fall back to VARCHAR.
func defs(columns []string) []columnDef {
	out := make([]columnDef, 0, len(columns))
	for _, name := range columns {
		typ, ok := columnTypes[name]
		if !ok {
			typ = "VARCHAR"
		}
		out = append(out, columnDef{Name: name, Type: typ})
	}
	return out
}

// createTableSQL renders the CREATE OR REPLACE statement for a destination
// table. Replacing rather than truncating keeps each run's output complete
// even when the schema evolves between runs.
func createTableSQL(table string, columns []columnDef) string {
	var b strings.Builder
	b.WriteString("CREATE OR REPLACE TABLE ")
	b.WriteString(table)
	b.WriteString(" (\n")
	for i, col := range columns {
		b.WriteString("    ")
		b.WriteString(col.Name)
		b.WriteString(" ")
		b.WriteString(col.Type)
		if i < len(columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}

// insertSQL renders a multi-row INSERT with one placeholder group per row.
func insertSQL(table string, columns []string, rows int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES ")
	group := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(group)
	}
	return b.String()
}
