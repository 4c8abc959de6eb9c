package dataset

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/VIJENDRA1981/truck-lookup/internal/core"
)

// DBTX is the interface for read-only database access.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// FromPostgres runs query against db and builds a table from the result
// set: column names from the row description, cells coerced to the same
// scalar set the file loaders produce. This is the optional "live data"
// source; it is only reachable when a DSN is configured.
func FromPostgres(ctx context.Context, db DBTX, query string) (core.Table, error) {
	rows, err := db.Query(ctx, query)
	if err != nil {
		return core.Table{}, fmt.Errorf("query data source: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	t := core.Table{Columns: make([]string, len(fields))}
	for i, fd := range fields {
		t.Columns[i] = fd.Name
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return core.Table{}, fmt.Errorf("read row: %w", err)
		}
		row := make(core.Row, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(values) {
				row[col] = cellFromDB(values[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return core.Table{}, fmt.Errorf("iterate rows: %w", err)
	}

	if len(t.Rows) == 0 {
		return core.Table{}, fmt.Errorf("no data rows returned by data source query")
	}
	return core.CleanColumns(t), nil
}

// cellFromDB narrows a driver value to the table's scalar set.
func cellFromDB(v any) core.Cell {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return val
	case []byte:
		return string(val)
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int16:
		return float64(val)
	case int32:
		return float64(val)
	case int64:
		return float64(val)
	case bool:
		return core.CellString(val)
	default:
		// Dates, numerics, UUIDs: compare and export as text.
		return fmt.Sprint(val)
	}
}
