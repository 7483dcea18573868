package normalize

import (
	"strings"
	"time"

	"github.com/tributary-data/tributary/pkg/tabular"
)

// DOBLayout is the storage representation for dates of birth.
const DOBLayout = "02-01-2006"

// dobLayouts are tried in order; the first successful parse wins.
// ISO forms are preferred, then day-first numeric forms (matching the
// storage representation), then month-first as a fallback, then textual
// months. Two-digit years are not accepted.
var dobLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
	"01-02-2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2 January 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// ParseDOB parses a raw date-of-birth value permissively. The second return
// is false when the value is null, empty, or matches no known layout.
// Unparsable dates are a row-level quality issue, never an error.
func ParseDOB(v tabular.Value) (time.Time, bool) {
	if v.IsNull() {
		return time.Time{}, false
	}
	raw := strings.TrimSpace(v.Str())
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDOB renders a date of birth in the DD-MM-YYYY storage form.
func FormatDOB(t time.Time) string {
	return t.Format(DOBLayout)
}

// AgeAt computes exact calendar age at the processing date: the year
// difference, decremented by one when the processing month/day falls before
// the birth month/day.
func AgeAt(dob, processing time.Time) int {
	age := processing.Year() - dob.Year()
	if processing.Month() < dob.Month() ||
		(processing.Month() == dob.Month() && processing.Day() < dob.Day()) {
		age--
	}
	return age
}
