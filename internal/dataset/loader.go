// Package dataset loads tables from delimited-text and spreadsheet sources
// and serializes result tables back out for download. It is the only
// package that touches file formats; everything past the Load boundary
// works on core.Table values.
package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/VIJENDRA1981/truck-lookup/internal/core"
)

// UnsupportedFormatError reports a file extension the loader does not
// recognize. Unknown formats are rejected outright rather than attempting
// a lossy parse.
type UnsupportedFormatError struct {
	Filename string
	Ext      string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q (%s): upload CSV or Excel", e.Ext, e.Filename)
}

// Extensions accepted by Load, by parser family.
var (
	delimitedExts   = map[string]bool{".csv": true, ".txt": true}
	spreadsheetExts = map[string]bool{".xlsx": true, ".xlsm": true, ".xls": true}
)

// Load reads a table from r, choosing the parser from filename's extension.
// .csv/.txt are parsed as comma-delimited text, .xlsx/.xlsm/.xls as a
// workbook (first sheet). Any other extension returns UnsupportedFormatError.
//
// The first row is the header; header names are whitespace-trimmed and
// blank or duplicate names get positional fallbacks so every cell stays
// addressable. Ragged data rows are tolerated: missing trailing cells are
// simply absent from the row.
func Load(filename string, r io.Reader) (core.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case delimitedExts[ext]:
		return loadDelimited(filename, r)
	case spreadsheetExts[ext]:
		return loadSpreadsheet(filename, r)
	default:
		return core.Table{}, &UnsupportedFormatError{Filename: filename, Ext: ext}
	}
}

// loadDelimited parses comma-separated text. Quoting is lax and the field
// count may vary per record, matching what field staff actually export.
func loadDelimited(filename string, r io.Reader) (core.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Table{}, fmt.Errorf("read %s: %w", filename, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return core.Table{}, fmt.Errorf("empty file: %s", filename)
	}

	cr := csv.NewReader(bytes.NewReader(sanitizeUTF8(data)))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return core.Table{}, fmt.Errorf("parse csv %s: %w", filename, err)
	}
	return tableFromRecords(filename, records)
}

// loadSpreadsheet parses an OOXML workbook via excelize, reading the first
// sheet with formatted cell values. Legacy BIFF .xls files are accepted by
// extension for parity with the original tool but will fail to open unless
// they are actually OOXML; the error is surfaced as a spreadsheet error.
func loadSpreadsheet(filename string, r io.Reader) (core.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return core.Table{}, fmt.Errorf("open workbook %s: %w", filename, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return core.Table{}, fmt.Errorf("empty file: %s has no sheets", filename)
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return core.Table{}, fmt.Errorf("read sheet %q in %s: %w", sheets[0], filename, err)
	}
	return tableFromRecords(filename, records)
}

// tableFromRecords builds a Table from raw records: first record is the
// header, the rest are data rows keyed by the cleaned header names.
func tableFromRecords(filename string, records [][]string) (core.Table, error) {
	if len(records) == 0 {
		return core.Table{}, fmt.Errorf("empty file: %s", filename)
	}

	columns := headerNames(records[0])
	t := core.Table{Columns: columns}

	for _, rec := range records[1:] {
		if isEmptyRecord(rec) {
			continue
		}
		row := make(core.Row, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		t.Rows = append(t.Rows, row)
	}

	if len(t.Rows) == 0 {
		return core.Table{}, fmt.Errorf("no data rows after header in %s", filename)
	}
	return core.CleanColumns(t), nil
}

// headerNames trims header cells and disambiguates blanks and duplicates
// with positional fallbacks ("Column 3", "Name (2)").
func headerNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s (%d)", name, n+1)
		}
		if _, dup := seen[name]; !dup {
			seen[name] = 1
		}
		names[i] = name
	}
	return names
}

func isEmptyRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// sanitizeUTF8 replaces invalid byte sequences with the Unicode replacement
// character so the CSV reader never chokes on stray Windows-1252 bytes.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
