// Package spreadsheet reads uploaded tabular files into typed import rows.
package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/telemark/telemark-server/internal/model"
)

// Column names the importer understands. The first four are required.
const (
	columnName      = "name"
	columnNumber    = "number"
	columnEmail     = "email"
	columnLocation  = "location"
	columnBirthDate = "birth_date"
	columnGender    = "gender"
)

var requiredColumns = []string{columnName, columnNumber, columnEmail, columnLocation}

// Parse reads the spreadsheet into import rows. The format is chosen by
// the file extension: .xlsx or .csv. The header row must contain every
// required column; rows are returned in file order.
func Parse(filename string, reader io.Reader) ([]model.ImportRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return parseXLSX(reader)
	case ".csv":
		return parseCSV(reader)
	default:
		return nil, fmt.Errorf("unsupported spreadsheet format %q", filepath.Ext(filename))
	}
}

func parseXLSX(reader io.Reader) ([]model.ImportRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return recordsToRows(records)
}

func parseCSV(reader io.Reader) ([]model.ImportRow, error) {
	r := csv.NewReader(reader)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return recordsToRows(records)
}

func recordsToRows(records [][]string) ([]model.ImportRow, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	columns, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	rows := make([]model.ImportRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, model.ImportRow{
			Name:      cell(record, columns[columnName]),
			Number:    cell(record, columns[columnNumber]),
			Email:     cell(record, columns[columnEmail]),
			Location:  cell(record, columns[columnLocation]),
			BirthDate: cell(record, columns[columnBirthDate]),
			Gender:    cell(record, columns[columnGender]),
		})
	}

	return rows, nil
}

// mapColumns resolves header names to indexes, failing fast when a
// required column is absent rather than trusting ambient key lookups.
func mapColumns(header []string) (map[string]int, error) {
	columns := map[string]int{
		columnName:      -1,
		columnNumber:    -1,
		columnEmail:     -1,
		columnLocation:  -1,
		columnBirthDate: -1,
		columnGender:    -1,
	}

	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, known := columns[key]; known {
			columns[key] = i
		}
	}

	for _, required := range requiredColumns {
		if columns[required] < 0 {
			return nil, model.NewValidationError(0, required)
		}
	}

	return columns, nil
}

func cell(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}
