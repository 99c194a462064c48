// models/dataset.go
package models

import "time"

// DateRange is the inclusive time coverage computed from a table's
// Year/Month/Day columns.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Sentinel bounds returned when no row in scope yields a valid date. The
// inverted pair (start after end) marks the period as unknown, matching the
// HDX convention of default_enddate / default_date.
var (
	DefaultEndDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	DefaultDate    = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
)

// UnknownDateRange returns the sentinel pair used when a table carries no
// resolvable dates.
func UnknownDateRange() DateRange {
	return DateRange{Start: DefaultEndDate, End: DefaultDate}
}

// IsUnknown reports whether the range is the sentinel pair.
func (r DateRange) IsUnknown() bool {
	return r.Start.Equal(DefaultEndDate) && r.End.Equal(DefaultDate)
}
