// Package tabular provides the in-memory table model shared by every stage
// of the pipeline: an ordered column list with rows of nullable string cells.
// Transformations return new tables rather than mutating their inputs.
package tabular

// Value is a single nullable cell. The zero value is null.
type Value struct {
	str   string
	valid bool
}

// String creates a non-null cell holding s.
func String(s string) Value {
	return Value{str: s, valid: true}
}

// Null returns a null cell.
func Null() Value {
	return Value{}
}

// IsNull reports whether the cell holds no value.
func (v Value) IsNull() bool {
	return !v.valid
}

// Str returns the cell's string, or "" when null.
func (v Value) Str() string {
	return v.str
}

// Table is an ordered set of named columns with rows of cells.
// Column order is significant and preserved by every operation.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New creates an empty table with the given columns, in order.
func New(columns ...string) *Table {
	t := &Table{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range t.columns {
		t.index[c] = i
	}
	return t
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Append adds a row. Cells beyond the column count are dropped; missing
// trailing cells are null.
func (t *Table) Append(cells ...Value) {
	row := make([]Value, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Row provides named access to one row of a table.
type Row struct {
	t *Table
	i int
}

// Row returns an accessor for row i. Panics if i is out of range.
func (t *Table) Row(i int) Row {
	if i < 0 || i >= len(t.rows) {
		panic("tabular: row index out of range")
	}
	return Row{t: t, i: i}
}

// Get returns the cell in the named column, or a null cell when the table
// has no such column.
func (r Row) Get(name string) Value {
	idx, ok := r.t.index[name]
	if !ok {
		return Null()
	}
	return r.t.rows[r.i][idx]
}

// Set stores a cell in the named column. A no-op when the column is absent.
func (r Row) Set(name string, v Value) {
	if idx, ok := r.t.index[name]; ok {
		r.t.rows[r.i][idx] = v
	}
}

// AddColumn appends a column filled with the given value for existing rows.
// A no-op when the column already exists.
func (t *Table) AddColumn(name string, fill Value) {
	if t.HasColumn(name) {
		return
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], fill)
	}
}

// Project returns a new table containing exactly the named columns, in the
// given order. Requesting a column the table lacks yields null cells.
func (t *Table) Project(columns ...string) *Table {
	out := New(columns...)
	for i := range t.rows {
		cells := make([]Value, len(columns))
		for j, c := range columns {
			cells[j] = t.Row(i).Get(c)
		}
		out.Append(cells...)
	}
	return out
}

// Stack unions two tables by stacking rows. The result's columns are a's
// columns followed by b's columns not present in a; cells for columns a row's
// table lacks are null. No rows are dropped and no deduplication occurs.
func Stack(a, b *Table) *Table {
	columns := a.Columns()
	for _, c := range b.columns {
		if !a.HasColumn(c) {
			columns = append(columns, c)
		}
	}

	out := New(columns...)
	appendAll := func(src *Table) {
		for i := 0; i < src.Len(); i++ {
			cells := make([]Value, len(columns))
			for j, c := range columns {
				cells[j] = src.Row(i).Get(c)
			}
			out.Append(cells...)
		}
	}
	appendAll(a)
	appendAll(b)
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := New(t.columns...)
	for _, row := range t.rows {
		out.Append(append([]Value(nil), row...)...)
	}
	return out
}
