package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/VIJENDRA1981/truck-lookup/internal/core"
	"github.com/VIJENDRA1981/truck-lookup/internal/web/templates"
)

// handleIndex renders the landing page: upload form, example-data toggle,
// and the database loader button when a live source is configured.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	templates.IndexPage(s.db != nil).Render(r.Context(), w)
}

// handleSessionPage renders the lookup page for a loaded table: mapping
// selectors pre-set to the effective columns, the search box, and the
// current result set. Search is a plain GET form back to this page, so the
// URL always reproduces the view.
func (s *Server) handleSessionPage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	table, err := s.store.Get(sessionID)
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	view := templates.SessionView{
		SessionID: sessionID,
		Source:    s.store.Name(sessionID),
		Columns:   table.Columns,
		Selected:  paramNames(resolveMapping(table, r)),
		Guessed:   paramNames(core.Resolve(table.Columns, core.DefaultKeywords())),
		RowCount:  len(table.Rows),
		Query:     r.URL.Query().Get("q"),
		Exact:     r.URL.Query().Get("exact") == "true",
	}

	result, err := s.lookup(r)
	if err != nil {
		// Keep the page usable: show the selectors plus the mapped error.
		msg := core.MapError(err)
		view.Error = &templates.ErrorView{Message: msg.Message, Action: msg.Action, Code: msg.Code}
		templates.SessionPage(view, templates.ResultView{}).Render(r.Context(), w)
		return
	}

	templates.SessionPage(view, result.view()).Render(r.Context(), w)
}

// paramNames rekeys a role mapping by query-parameter name for the
// templates. Roles absent from the mapping stay absent.
func paramNames(m core.Mapping) map[string]string {
	out := make(map[string]string, len(m))
	for role, col := range m {
		out[roleParam(role)] = col
	}
	return out
}

// guessParams returns the resolver's guesses keyed by parameter name, for
// API clients. Roles with no guess are omitted so "no match" stays
// distinguishable from "matched the first column".
func guessParams(t core.Table) map[string]string {
	return paramNames(core.Resolve(t.Columns, core.DefaultKeywords()))
}
