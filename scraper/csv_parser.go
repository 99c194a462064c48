// scraper/csv_parser.go
package scraper

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/OCHA-DAP/hdx-scraper-awsd/models"
	"github.com/jszwec/csvutil"
)

// ErrParse marks CSV payloads that cannot be decoded as tabular data, e.g. a
// row whose field count does not match the header.
var ErrParse = errors.New("csv parse error")

// hxlSkipReader drops the record at index 1. The AWSD export carries an
// HXL-style tag row directly under the header which is metadata, not data.
type hxlSkipReader struct {
	r     *csv.Reader
	reads int
}

func (h *hxlSkipReader) Read() ([]string, error) {
	rec, err := h.r.Read()
	if err != nil {
		return rec, err
	}
	h.reads++
	if h.reads == 2 {
		// This was the HXL tag row; hand back the next record instead.
		return h.r.Read()
	}
	return rec, nil
}

// ParseIncidentsCsv takes an io.Reader containing the AWSD CSV export and
// returns the loaded incident table. The header row defines the column set;
// csvutil maps the columns the pipeline reads onto models.Incident via its
// csv tags, and the raw record is kept in full for serialization later.
func ParseIncidentsCsv(reader io.Reader) (*models.IncidentTable, error) {
	decoder, err := csvutil.NewDecoder(&hxlSkipReader{r: csv.NewReader(reader)})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV header: %v", ErrParse, err)
	}

	table := &models.IncidentTable{
		Columns: append([]string(nil), decoder.Header()...),
	}
	for {
		var incident models.Incident
		err := decoder.Decode(&incident)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decode incident row %d: %v", ErrParse, len(table.Rows)+1, err)
		}
		table.Incidents = append(table.Incidents, incident)
		table.Rows = append(table.Rows, append([]string(nil), decoder.Record()...))
	}

	log.Printf("Scraper: Parsed %d incident rows from CSV.\n", len(table.Rows))
	return table, nil
}
