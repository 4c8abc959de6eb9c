package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is a single scalar value in a table: a string, a float64, or nil
// when the source had no value for that column.
type Cell any

// Row maps column names to cell values. Columns missing from a ragged
// source row are simply absent from the map.
type Row map[string]Cell

// Table is an ordered set of rows under a fixed, ordered set of column names.
// Tables are treated as values: transformations return a new Table and never
// mutate the receiver's rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether name is one of the table's columns.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ColumnIndex returns the position of name in the column list, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// CleanColumns returns a copy of t with leading/trailing whitespace removed
// from every column name, rekeying rows to the cleaned names. Uploaded files
// routinely carry padded headers ("Truck No. "), and all downstream matching
// assumes trimmed names.
func CleanColumns(t Table) Table {
	cleaned := make([]string, len(t.Columns))
	renamed := false
	for i, c := range t.Columns {
		cleaned[i] = strings.TrimSpace(c)
		if cleaned[i] != c {
			renamed = true
		}
	}

	out := Table{Columns: cleaned, Rows: t.Rows}
	if !renamed {
		return out
	}

	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		nr := make(Row, len(row))
		for j, c := range t.Columns {
			if v, ok := row[c]; ok {
				nr[cleaned[j]] = v
			}
		}
		out.Rows[i] = nr
	}
	return out
}

// CellString coerces a cell to its string representation. This is the single
// coercion point for all matching and export: nil/absent becomes the empty
// string, numbers become their canonical decimal form.
func CellString(c Cell) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
