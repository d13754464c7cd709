package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset. Meta lines have no CSV
// representation and are skipped; footer rows follow the body.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}

	writeRows := func(rows []map[string]string) error {
		record := make([]string, len(data.Headers))
		for _, row := range rows {
			for i, header := range data.Headers {
				record[i] = row[header]
			}
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
		return nil
	}
	if err := writeRows(data.Rows); err != nil {
		return nil, err
	}
	if err := writeRows(data.Footer); err != nil {
		return nil, err
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
