// Package importer maps fixed-column CSV and spreadsheet layouts into domain
// records. Row 1 is always a header.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format, expected .csv or .xlsx")

// RowError describes a data row that was present but could not be imported.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Result is the outcome of an import run.
type Result[T any] struct {
	Records   []T        `json:"-"`
	Errors    []RowError `json:"errors"`
	Processed int        `json:"processed"`
	Total     float64    `json:"total"`
}

func (r *Result[T]) add(rec T, amount float64) {
	r.Records = append(r.Records, rec)
	r.Processed++
	r.Total += amount
}

func (r *Result[T]) fail(line int, format string, args ...any) {
	r.Errors = append(r.Errors, RowError{Line: line, Reason: fmt.Sprintf(format, args...)})
}

// ReadRows decodes an uploaded file into rows of cells, choosing the reader by
// file extension. Unknown extensions are read as CSV when the content is
// not a zip archive.
func ReadRows(filename string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return readXLSX(data)
	case ".csv", ".txt", "":
		return readCSV(data)
	case ".xls":
		return nil, ErrUnsupportedFormat
	default:
		if bytes.HasPrefix(data, []byte("PK")) {
			return readXLSX(data)
		}
		return readCSV(data)
	}
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	// Raw values keep date cells as serial day numbers instead of the
	// locale-formatted text of their number format.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// cell returns the trimmed value at column i, or "" when the row is short.
func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// dataRows drops the header row and pairs each remaining row with its
// 1-based line number in the source file.
func dataRows(rows [][]string, fn func(line int, row []string)) {
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		fn(i+1, rows[i])
	}
}
