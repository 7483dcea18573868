// Package normalize provides the pure field normalizers applied to customer
// records: gender categorization, permissive date-of-birth parsing, and
// calendar-exact age derivation. Every function is total: malformed input
// maps to a defined default, never an error.
package normalize

import (
	"strings"

	"github.com/tributary-data/tributary/pkg/tabular"
)

// Gender categories.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// Gender maps a raw gender value to exactly one of M, F, or O.
// Null and empty values, unrecognized strings, and numeric codes all map
// to O. Idempotent on its own output.
func Gender(v tabular.Value) string {
	if v.IsNull() {
		return GenderOther
	}
	switch strings.ToLower(strings.TrimSpace(v.Str())) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	default:
		return GenderOther
	}
}
