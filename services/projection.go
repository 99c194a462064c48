// services/projection.go
package services

import (
	"github.com/OCHA-DAP/hdx-scraper-awsd/models"
)

// Columns withheld for the occupied Palestinian territory. The per-country
// projection drops them outright; the global projection keeps the columns
// but blanks the values on matching rows so the global export stays uniform
// in shape. The rule is keyed on these specific codes, not derived.
var sensitiveLocationColumns = []string{"Latitude", "Longitude", "City"}

const (
	palestineISO2 = "PS"
	palestineISO3 = "PSE"
)

// ProjectCountry filters the full table to rows whose Country Code equals
// iso2 exactly (case-sensitive, no normalization). The second return is
// false when the country has no rows; the caller skips the dataset rather
// than failing the run.
func ProjectCountry(table *models.IncidentTable, iso2, iso3 string) (*models.IncidentTable, bool) {
	proj := &models.IncidentTable{
		Columns: append([]string(nil), table.Columns...),
	}
	for i, inc := range table.Incidents {
		if inc.CountryCode != iso2 {
			continue
		}
		proj.Incidents = append(proj.Incidents, inc)
		proj.Rows = append(proj.Rows, append([]string(nil), table.Rows[i]...))
	}
	if proj.IsEmpty() {
		return nil, false
	}
	if iso3 == palestineISO3 {
		proj.DropColumns(sensitiveLocationColumns...)
	}
	return proj, true
}

// ProjectGlobal copies the full table and blanks the sensitive location
// values on Palestinian rows. The input table is left untouched.
func ProjectGlobal(table *models.IncidentTable) *models.IncidentTable {
	proj := table.Copy()
	for _, name := range sensitiveLocationColumns {
		col := proj.ColumnIndex(name)
		if col < 0 {
			continue
		}
		for i, inc := range proj.Incidents {
			if inc.CountryCode == palestineISO2 {
				proj.Rows[i][col] = ""
			}
		}
	}
	return proj
}
