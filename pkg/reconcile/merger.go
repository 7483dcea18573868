package reconcile

import (
	"strconv"
	"time"

	"github.com/tributary-data/tributary/pkg/errors"
	"github.com/tributary-data/tributary/pkg/normalize"
	"github.com/tributary-data/tributary/pkg/tabular"
)

// Canonical column names the merger resolves or derives.
const (
	ColumnUserID = "USER_ID"
	ColumnName   = "NAME"
	ColumnGender = "GENDER"
	ColumnDOB    = "DOB"
	ColumnAge    = "AGE"
)

// Merger performs the inner join of the two sources on USER_ID and resolves
// conflicting fields with source A as the authority.
type Merger struct {
	processing      time.Time
	trackProvenance bool
}

// NewMerger creates a merger that derives ages as of the given processing
// date. The same date is used for every row of a run.
func NewMerger(processing time.Time) *Merger {
	return &Merger{processing: processing}
}

// WithProvenance enables tracking of which source won each resolved field.
func (m *Merger) WithProvenance(enabled bool) *Merger {
	m.trackProvenance = enabled
	return m
}

// joined is the intermediate inner-join result. Attributes supplied by both
// sources carry _SRC_A/_SRC_B suffixed columns; single-source attributes
// keep their bare name and remember their origin.
type joined struct {
	table  *tabular.Table
	attrs  []string
	shared map[string]bool
	origin map[string]SourceName
}

// Merge inner-joins a and b on USER_ID and resolves every attribute with
// first-wins null-coalescing (A before B). GENDER is normalized, DOB is
// reformatted to DD-MM-YYYY, and AGE is derived from the resolved DOB.
// A NAME column absent from both sources is a fatal data-contract violation.
func (m *Merger) Merge(a, b *tabular.Table) (*tabular.Table, ProvenanceMap, error) {
	if err := a.RequireColumn(ColumnUserID); err != nil {
		return nil, nil, err
	}
	if err := b.RequireColumn(ColumnUserID); err != nil {
		return nil, nil, err
	}
	if !a.HasColumn(ColumnName) && !b.HasColumn(ColumnName) {
		return nil, nil, errors.NewSchemaError(ColumnName,
			[]string{string(SourceA), string(SourceB)}, "no source supplies a name")
	}

	j := join(a, b)

	var prov ProvenanceMap
	if m.trackProvenance {
		prov = make(ProvenanceMap)
	}

	outColumns := append([]string{ColumnUserID}, j.attrs...)
	outColumns = append(outColumns, ColumnAge)
	out := tabular.New(outColumns...)

	for i := 0; i < j.table.Len(); i++ {
		row := j.table.Row(i)
		id := row.Get(ColumnUserID)

		cells := make([]tabular.Value, 0, len(outColumns))
		cells = append(cells, id)

		var resolvedDOB tabular.Value
		for _, attr := range j.attrs {
			value, source := Coalesce(j.candidates(row, attr)...)

			switch attr {
			case ColumnGender:
				value = tabular.String(normalize.Gender(value))
			case ColumnDOB:
				resolvedDOB = value
				if dob, ok := normalize.ParseDOB(value); ok {
					value = tabular.String(normalize.FormatDOB(dob))
				} else {
					value = tabular.Null()
				}
			}

			prov.track(id.Str(), attr, source)
			cells = append(cells, value)
		}

		// AGE derives from the resolved DOB; unparsable dates yield null.
		age := tabular.Null()
		if dob, ok := normalize.ParseDOB(resolvedDOB); ok {
			age = tabular.String(strconv.Itoa(normalize.AgeAt(dob, m.processing)))
		}
		cells = append(cells, age)

		out.Append(cells...)
	}

	return out, prov, nil
}

// join builds the suffixed inner-join table. Row order follows source A;
// identifiers are matched against the first occurrence in source B.
func join(a, b *tabular.Table) *joined {
	j := &joined{
		shared: make(map[string]bool),
		origin: make(map[string]SourceName),
	}

	for _, c := range a.Columns() {
		if c == ColumnUserID || c == ColumnAge {
			continue
		}
		j.attrs = append(j.attrs, c)
		if b.HasColumn(c) {
			j.shared[c] = true
		} else {
			j.origin[c] = SourceA
		}
	}
	for _, c := range b.Columns() {
		if c == ColumnUserID || c == ColumnAge || a.HasColumn(c) {
			continue
		}
		j.attrs = append(j.attrs, c)
		j.origin[c] = SourceB
	}

	// GENDER is always resolved so the normalizer's default applies even
	// when neither source carries the column.
	if !a.HasColumn(ColumnGender) && !b.HasColumn(ColumnGender) {
		j.attrs = append(j.attrs, ColumnGender)
		j.origin[ColumnGender] = SourceA
	}

	columns := []string{ColumnUserID}
	for _, attr := range j.attrs {
		if j.shared[attr] {
			columns = append(columns, attr+SuffixA, attr+SuffixB)
		} else {
			columns = append(columns, attr)
		}
	}
	j.table = tabular.New(columns...)

	bByID := make(map[string]int, b.Len())
	for i := 0; i < b.Len(); i++ {
		id := b.Row(i).Get(ColumnUserID)
		if id.IsNull() {
			continue
		}
		if _, ok := bByID[id.Str()]; !ok {
			bByID[id.Str()] = i
		}
	}

	for i := 0; i < a.Len(); i++ {
		aRow := a.Row(i)
		id := aRow.Get(ColumnUserID)
		if id.IsNull() {
			continue
		}
		bIdx, ok := bByID[id.Str()]
		if !ok {
			continue
		}
		bRow := b.Row(bIdx)

		cells := []tabular.Value{id}
		for _, attr := range j.attrs {
			if j.shared[attr] {
				cells = append(cells, aRow.Get(attr), bRow.Get(attr))
			} else if j.origin[attr] == SourceA {
				cells = append(cells, aRow.Get(attr))
			} else {
				cells = append(cells, bRow.Get(attr))
			}
		}
		j.table.Append(cells...)
	}

	return j
}

// candidates builds the prioritized resolution list for one attribute,
// consulting only the columns that actually exist.
func (j *joined) candidates(row tabular.Row, attr string) []Candidate {
	if j.shared[attr] {
		return []Candidate{
			{Source: SourceA, Value: row.Get(attr + SuffixA)},
			{Source: SourceB, Value: row.Get(attr + SuffixB)},
		}
	}
	return []Candidate{{Source: j.origin[attr], Value: row.Get(attr)}}
}
