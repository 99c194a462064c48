// models/incident.go
package models

import (
	"strconv"
	"strings"
)

// NullInt is an integer CSV cell that may be blank or non-numeric.
// Blank and unparseable values decode as null rather than zero so that
// an unknown year stays distinguishable from year zero.
type NullInt struct {
	Value int
	Valid bool
}

// UnmarshalText implements encoding.TextUnmarshaler for csvutil. Cells like
// "Unknown" are stored as null, not treated as a decode error.
func (n *NullInt) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*n = NullInt{}
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		*n = NullInt{}
		return nil
	}
	*n = NullInt{Value: v, Valid: true}
	return nil
}

// MarshalText renders null as an empty cell.
func (n NullInt) MarshalText() ([]byte, error) {
	if !n.Valid {
		return nil, nil
	}
	return []byte(strconv.Itoa(n.Value)), nil
}

// Incident holds the typed columns of one AWSD row. The export's full column
// set is decided by the source at fetch time, so the raw record is kept
// alongside on the table; this struct maps only the columns the pipeline
// itself reads.
type Incident struct {
	CountryCode string  `csv:"Country Code"`
	Country     string  `csv:"Country"`
	Year        NullInt `csv:"Year"`
	Month       NullInt `csv:"Month"`
	Day         NullInt `csv:"Day"`
	Latitude    string  `csv:"Latitude"`
	Longitude   string  `csv:"Longitude"`
	City        string  `csv:"City"`
}

// IncidentTable is the AWSD export as loaded: column order as served, raw
// string rows, and a parallel slice of typed incidents (len(Rows) ==
// len(Incidents)). The table built from a fetch is treated as read-only for
// the rest of the run; projections work on copies.
type IncidentTable struct {
	Columns   []string
	Rows      [][]string
	Incidents []Incident
}

// ColumnIndex returns the position of the named column, or -1 if the export
// does not carry it.
func (t *IncidentTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the table has no data rows.
func (t *IncidentTable) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Copy returns a deep copy whose rows can be mutated without touching the
// original.
func (t *IncidentTable) Copy() *IncidentTable {
	cp := &IncidentTable{
		Columns:   append([]string(nil), t.Columns...),
		Rows:      make([][]string, len(t.Rows)),
		Incidents: append([]Incident(nil), t.Incidents...),
	}
	for i, row := range t.Rows {
		cp.Rows[i] = append([]string(nil), row...)
	}
	return cp
}

// DropColumns removes the named columns from the table in place. Names the
// table does not carry are ignored.
func (t *IncidentTable) DropColumns(names ...string) {
	drop := make(map[int]bool, len(names))
	for _, name := range names {
		if i := t.ColumnIndex(name); i >= 0 {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return
	}
	kept := make([]string, 0, len(t.Columns)-len(drop))
	for i, c := range t.Columns {
		if !drop[i] {
			kept = append(kept, c)
		}
	}
	t.Columns = kept
	for ri, row := range t.Rows {
		newRow := make([]string, 0, len(row)-len(drop))
		for i, v := range row {
			if !drop[i] {
				newRow = append(newRow, v)
			}
		}
		t.Rows[ri] = newRow
	}
}
