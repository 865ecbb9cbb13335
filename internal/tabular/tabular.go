// Package tabular converts uploaded spreadsheet files into normalized rows.
// It owns file formats so the import pipeline never has to.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"calltime-backend/internal/normalize"

	"github.com/xuri/excelize/v2"
)

// ParseFile dispatches on the file extension. XLSX and CSV are supported.
func ParseFile(filename string, r io.Reader) ([]normalize.Row, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return ParseXLSX(r)
	case ".csv", ".txt":
		return ParseCSV(r)
	default:
		return nil, fmt.Errorf("unsupported file type %q, expected .xlsx or .csv", filepath.Ext(filename))
	}
}

// ParseXLSX reads the first sheet of a workbook. The first row is the header;
// every following row becomes a normalize.Row keyed by those headers.
func ParseXLSX(r io.Reader) ([]normalize.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rowsFromRecords(raw), nil
}

// ParseCSV reads comma-separated data with a header row. Ragged rows are
// tolerated: short rows leave trailing columns empty.
func ParseCSV(r io.Reader) ([]normalize.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rowsFromRecords(records), nil
}

// rowsFromRecords zips the header row with each data row. Rows with no
// non-empty cell are dropped here rather than counted as import errors.
func rowsFromRecords(records [][]string) []normalize.Row {
	if len(records) < 2 {
		return nil
	}
	header := records[0]

	rows := make([]normalize.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		fields := make(map[string]string, len(header))
		empty := true
		for i, label := range header {
			var value string
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			if value != "" {
				empty = false
			}
			fields[label] = value
		}
		if empty {
			continue
		}
		rows = append(rows, normalize.NewRow(fields))
	}
	return rows
}
