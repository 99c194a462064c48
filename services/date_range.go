// services/date_range.go
package services

import (
	"time"

	"github.com/OCHA-DAP/hdx-scraper-awsd/models"
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// GetDateRange computes the inclusive [min, max] date span of a table from
// its Year/Month/Day columns. Missing parts default to 1; out-of-range
// months and days are clamped to the calendar bounds, which shifts bad
// values to the nearest boundary instead of dropping the row. Rows whose
// clamped parts still do not form a real date (day 31 in a 30-day month) are
// left out of the span. When no row qualifies, the unknown sentinel range is
// returned rather than an error.
func GetDateRange(table *models.IncidentTable) models.DateRange {
	var minDate, maxDate time.Time
	found := false

	for _, inc := range table.Incidents {
		year := 1
		if inc.Year.Valid {
			year = inc.Year.Value
		}
		month := 1
		if inc.Month.Valid {
			month = clampInt(inc.Month.Value, 1, 12)
		}
		day := 1
		if inc.Day.Valid {
			day = clampInt(inc.Day.Value, 1, 31)
		}

		if year < 1 || year > 9999 {
			continue
		}
		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes impossible dates (Apr 31 -> May 1); a
		// round-trip mismatch means the row has no real calendar date.
		if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
			continue
		}

		if !found || d.Before(minDate) {
			minDate = d
		}
		if !found || d.After(maxDate) {
			maxDate = d
		}
		found = true
	}

	if !found {
		return models.UnknownDateRange()
	}
	return models.DateRange{Start: minDate, End: maxDate}
}
