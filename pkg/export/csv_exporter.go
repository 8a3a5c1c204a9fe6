package export

import (
	"fmt"

	"github.com/gocarina/gocsv"
)

// CSVExporter renders timetable rows into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the timetable.
func (e *CSVExporter) Render(rows []TimetableRow) ([]byte, error) {
	payload, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("render timetable csv: %w", err)
	}
	return payload, nil
}
