package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/VIJENDRA1981/truck-lookup/internal/core"
	"github.com/VIJENDRA1981/truck-lookup/internal/dataset"
	"github.com/VIJENDRA1981/truck-lookup/internal/logging"
	"github.com/VIJENDRA1981/truck-lookup/internal/web/templates"
)

// roleParam returns the query/form parameter name carrying the column
// override for a role.
func roleParam(role core.Role) string {
	switch role {
	case core.RoleIdentifier:
		return "truck"
	case core.RoleCounterpartyName:
		return "broker"
	case core.RoleEntityName:
		return "pan_name"
	case core.RoleEntityID:
		return "pan_no"
	default:
		return ""
	}
}

// handleUpload loads an uploaded CSV/Excel file into a new session.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, fmt.Errorf("file too large or invalid form: %w", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, fmt.Errorf("no file provided: %w", err), http.StatusBadRequest)
		return
	}
	defer file.Close()

	table, err := dataset.Load(header.Filename, file)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	s.startSession(w, r, table, header.Filename)
}

// handleExample loads the built-in example dataset into a new session.
func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	s.startSession(w, r, core.ExampleTable(), "example data")
}

// handleDBLoad loads the configured live query into a new session.
// Returns 404 when no data source is configured.
func (s *Server) handleDBLoad(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeError(w, http.StatusNotFound, "live data source is not configured")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Database.QueryTimeout)
	defer cancel()

	table, err := dataset.FromPostgres(ctx, s.db, s.cfg.Database.Query)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}

	s.startSession(w, r, table, "live data")
}

// startSession stores a loaded table and answers with the new session.
// HTMX clients are redirected to the lookup page; API clients get JSON.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, table core.Table, name string) {
	sessionID, err := s.store.Put(table, name)
	if err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}

	logging.FromContext(r.Context()).Info("table loaded",
		"session_id", sessionID,
		"source", name,
		"columns", len(table.Columns),
		"rows", len(table.Rows),
	)

	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/session/"+sessionID)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, map[string]any{
		"session_id": sessionID,
		"source":     name,
		"columns":    table.Columns,
		"rows":       len(table.Rows),
		"guesses":    guessParams(table),
	})
}

// handleColumns returns the session's column names and the resolver's
// guessed role mapping. Roles the resolver could not match are omitted so
// the client can tell "no match" apart from "matched the first column".
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	table, err := s.store.Get(sessionID)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	writeJSON(w, map[string]any{
		"columns": table.Columns,
		"guesses": guessParams(table),
		"rows":    len(table.Rows),
	})
}

// resolveMapping builds the effective role→column mapping for a request:
// explicit override parameter first, then the resolver's guess, then the
// first column as a last-resort default. The fallback lives here, in the
// caller, so the core resolver keeps reporting honest misses.
func resolveMapping(table core.Table, r *http.Request) core.Mapping {
	guesses := core.Resolve(table.Columns, core.DefaultKeywords())

	m := make(core.Mapping, 4)
	for _, role := range core.Roles() {
		if v := r.URL.Query().Get(roleParam(role)); v != "" {
			m[role] = v
			continue
		}
		if col, ok := guesses[role]; ok {
			m[role] = col
			continue
		}
		if len(table.Columns) > 0 {
			m[role] = table.Columns[0]
		}
	}
	return m
}

// handleSearch applies the role mapping and the query to the session's
// table and returns the filtered four-column result.
//
// Query parameters: q (query string), exact (bool), and one optional
// column override per role (truck, broker, pan_name, pan_no).
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	result, err := s.lookup(r)
	if err != nil {
		s.respondError(w, r, err, lookupStatus(err))
		return
	}

	if isHTMX(r) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		templates.ResultsPartial(result.view()).Render(r.Context(), w)
		return
	}

	writeJSON(w, map[string]any{
		"columns":  result.Table.Columns,
		"rows":     result.rowStrings(),
		"count":    len(result.Table.Rows),
		"total":    result.Total,
		"filtered": result.Filtered,
	})
}

// handleExport streams the filtered result as a CSV or XLSX download,
// applying the same parameters as handleSearch plus format=csv|xlsx.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	result, err := s.lookup(r)
	if err != nil {
		s.respondError(w, r, err, lookupStatus(err))
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "csv":
		data, err := dataset.ExportCSV(result.Table)
		if err != nil {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="truck_lookup_results.csv"`)
		w.Write(data)

	case "xlsx":
		data, err := dataset.ExportXLSX(result.Table)
		if err != nil {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="truck_lookup_results.xlsx"`)
		w.Write(data)

	default:
		writeError(w, http.StatusBadRequest, "unknown export format: "+format)
	}
}

// handleDeleteSession drops a session and its table.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	s.store.Delete(sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// lookupResult is the outcome of one projection+filter pass.
type lookupResult struct {
	Table    core.Table
	Total    int  // row count before filtering
	Filtered bool // false when the query was empty ("show everything")
	Query    string
	Exact    bool
}

// lookup runs the full pipeline for search/export requests: session fetch,
// mapping resolution, projection to the four output columns, filtering.
func (s *Server) lookup(r *http.Request) (lookupResult, error) {
	sessionID := chi.URLParam(r, "sessionID")

	table, err := s.store.Get(sessionID)
	if err != nil {
		return lookupResult{}, err
	}

	mapping := resolveMapping(table, r)

	projected, err := core.Project(table, mapping)
	if err != nil {
		return lookupResult{}, err
	}

	query := r.URL.Query().Get("q")
	exact, _ := strconv.ParseBool(r.URL.Query().Get("exact"))

	filtered, err := core.Filter(projected, core.RoleIdentifier.OutputLabel(), query, exact)
	if err != nil {
		return lookupResult{}, err
	}

	return lookupResult{
		Table: filtered,
		Total: len(projected.Rows),
		// A blank query means "show everything"; an empty result under a
		// real query is a distinct, reportable outcome.
		Filtered: strings.TrimSpace(query) != "",
		Query:    query,
		Exact:    exact,
	}, nil
}

// lookupStatus picks the HTTP status for a lookup pipeline error.
func lookupStatus(err error) int {
	switch {
	case err == core.ErrSessionNotFound:
		return http.StatusNotFound
	case core.IsInvalidColumn(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// rowStrings renders the result rows as display strings in column order.
func (lr lookupResult) rowStrings() [][]string {
	rows := make([][]string, len(lr.Table.Rows))
	for i, row := range lr.Table.Rows {
		cells := make([]string, len(lr.Table.Columns))
		for j, col := range lr.Table.Columns {
			cells[j] = core.CellString(row[col])
		}
		rows[i] = cells
	}
	return rows
}

// view converts the result to its template form.
func (lr lookupResult) view() templates.ResultView {
	return templates.ResultView{
		Columns:  lr.Table.Columns,
		Rows:     lr.rowStrings(),
		Count:    len(lr.Table.Rows),
		Total:    lr.Total,
		Filtered: lr.Filtered,
		Query:    lr.Query,
	}
}
