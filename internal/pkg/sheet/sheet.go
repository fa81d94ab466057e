// Package sheet reads and writes the spreadsheets used for bulk import and
// export. XLSX files go through excelize; CSV files through encoding/csv.
package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Row maps a column header to the cell value in that column
type Row map[string]string

// Table is the first worksheet of a spreadsheet: a header row plus data rows
type Table struct {
	Columns []string
	Rows    []Row
}

// ErrUnsupportedFormat is returned for extensions other than .xlsx and .csv
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Format returns "xlsx" or "csv" for a path
func Format(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return "xlsx", nil
	case ".csv":
		return "csv", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

// Read loads the first worksheet of an xlsx or csv file
func Read(path string) (*Table, error) {
	format, err := Format(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304 -- Path is from command line argument
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if format == "csv" {
		return ReadCSV(f)
	}
	return ReadXLSX(f)
}

// ReadXLSX loads the first worksheet of an xlsx stream. Cell values are
// read raw, so date cells arrive as spreadsheet serial numbers.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return buildTable(rows), nil
}

// ReadCSV loads a csv stream, ignoring a leading UTF-8 byte order mark
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return buildTable(rows), nil
}

// buildTable turns raw rows into a header plus keyed rows. Blank rows are dropped.
func buildTable(rows [][]string) *Table {
	t := &Table{}
	if len(rows) == 0 {
		return t
	}
	for _, h := range rows[0] {
		t.Columns = append(t.Columns, strings.TrimSpace(h))
	}
	for _, raw := range rows[1:] {
		row := make(Row, len(t.Columns))
		blank := true
		for i, col := range t.Columns {
			if col == "" {
				continue
			}
			var v string
			if i < len(raw) {
				v = strings.TrimSpace(raw[i])
			}
			if v != "" {
				blank = false
			}
			row[col] = v
		}
		if !blank {
			t.Rows = append(t.Rows, row)
		}
	}
	return t
}

// HasColumn reports whether the header contains name
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// NormalizeDate converts a spreadsheet serial date to yyyy-mm-dd.
// Values that are not numbers are returned trimmed and otherwise unchanged.
func NormalizeDate(v string) string {
	v = strings.TrimSpace(v)
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil || serial <= 0 {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return v
	}
	return t.Format(time.DateOnly)
}

// Write saves columns and rows to path as xlsx or csv depending on the extension
func Write(path string, columns []string, rows [][]string) error {
	format, err := Format(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if format == "csv" {
		return writeCSV(path, columns, rows)
	}
	return writeXLSX(path, columns, rows)
}

const sheetName = "Sheet1"

func writeXLSX(path string, columns []string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	rtl := true
	if err := f.SetSheetView(sheetName, -1, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return fmt.Errorf("failed to set sheet view: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheetName, cell, &r); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func writeCSV(path string, columns []string, rows [][]string) error {
	// #nosec G304 -- Path is from command line flag
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	// Excel needs the BOM to detect UTF-8 Arabic text
	if _, err := f.Write(utf8BOM); err != nil {
		_ = f.Close()
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return f.Close()
}
