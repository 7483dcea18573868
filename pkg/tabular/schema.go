package tabular

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tributary-data/tributary/pkg/errors"
)

// upper is the language-neutral caser used to canonicalize column names.
var upper = cases.Upper(language.Und)

// CanonicalName strips leading/trailing whitespace from a column name and
// converts it to uppercase. Idempotent.
func CanonicalName(name string) string {
	return upper.String(strings.TrimSpace(name))
}

// NormalizeHeader canonicalizes every column name in place, preserving
// order. Returns ErrIngest when the table has no columns, since a source
// without a header cannot be treated as tabular data.
func (t *Table) NormalizeHeader() error {
	if len(t.columns) == 0 {
		return fmt.Errorf("%w: table has no columns", errors.ErrIngest)
	}
	index := make(map[string]int, len(t.columns))
	for i, c := range t.columns {
		canonical := CanonicalName(c)
		t.columns[i] = canonical
		index[canonical] = i
	}
	t.index = index
	return nil
}

// RequireColumn returns a SchemaError when the named column is absent.
func (t *Table) RequireColumn(name string) error {
	if !t.HasColumn(name) {
		return errors.NewSchemaError(name, nil, "required column not found")
	}
	return nil
}
