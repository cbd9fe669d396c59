package utils

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ParseCSV reads every row. Rows may differ in length, lines starting with # are skipped
// and leading spaces in a field are dropped.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return records, nil
}
