package ingest

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// ParseCSV reads a spreadsheet export with one team per row
func ParseCSV(data string) (*Report, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	c := newCollector()
	if len(records) == 0 {
		return c.report(), nil
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff") // Remove BOM
	}

	rows := make([][]string, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 2 {
			c.skip(0, i+1, "", "incomplete record")
			continue
		}
		for j := range record {
			record[j] = strings.TrimSpace(record[j])
		}
		rows = append(rows, record)
	}

	if !c.addTable(0, headers, rows) {
		return nil, fmt.Errorf("no team column found in headers %v", headers)
	}
	return c.report(), nil
}
