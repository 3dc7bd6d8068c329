package scorecard

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVParser parses comma separated scorecards.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// Parse reads the whole file and hands the grid to the shared card reader.
func (p *CSVParser) Parse(data []byte) (*Card, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}
	return parseGrid(records)
}
