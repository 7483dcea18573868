// Package reconcile merges the two customer sources into a single record
// set: an inner join on the shared identifier with field-level conflict
// resolution. Source A is authoritative; source B supplements. The resolver
// is a first-wins null-coalesce over a prioritized candidate list, used
// uniformly for every attribute instead of per-field conditional chains.
package reconcile

import (
	"github.com/tributary-data/tributary/pkg/tabular"
)

// SourceName identifies one of the reconciled sources.
type SourceName string

// The two sources, in authority order.
const (
	SourceA SourceName = "source-a"
	SourceB SourceName = "source-b"
)

// Suffixes disambiguate attribute names supplied by both sources before
// resolution.
const (
	SuffixA = "_SRC_A"
	SuffixB = "_SRC_B"
)

// Candidate is one prioritized value offered to the resolver.
type Candidate struct {
	Source SourceName
	Value  tabular.Value
}

// Coalesce returns the first non-null candidate value and the source that
// supplied it. When every candidate is null it returns a null value and an
// empty source name.
func Coalesce(candidates ...Candidate) (tabular.Value, SourceName) {
	for _, c := range candidates {
		if !c.Value.IsNull() {
			return c.Value, c.Source
		}
	}
	return tabular.Null(), ""
}
