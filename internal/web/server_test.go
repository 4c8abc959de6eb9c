package web

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/VIJENDRA1981/truck-lookup/internal/config"
	"github.com/VIJENDRA1981/truck-lookup/internal/core"
)

// newTestServer builds a server with a fresh session store and no database.
func newTestServer(t *testing.T) (*Server, *core.SessionStore) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 10 * time.Second
	cfg.Upload.MaxFileSize = 1 << 20
	cfg.Session.TTL = time.Minute
	cfg.Rate.Enabled = false

	store := core.NewSessionStore(time.Minute, time.Minute, 10)
	t.Cleanup(store.Close)

	return NewServer(store, cfg, nil), store
}

func doRequest(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

// newExampleSession loads the example dataset through the API and returns
// the new session ID.
func newExampleSession(t *testing.T, s *Server) string {
	t.Helper()

	rec := doRequest(t, s, httptest.NewRequest(http.MethodPost, "/api/example", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /api/example status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("response has no session_id")
	}
	return resp.SessionID
}

func TestExampleFlow(t *testing.T) {
	s, _ := newTestServer(t)
	id := newExampleSession(t, s)

	// Columns and guesses
	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/session/"+id+"/columns", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("columns status = %d: %s", rec.Code, rec.Body.String())
	}
	var cols struct {
		Columns []string          `json:"columns"`
		Guesses map[string]string `json:"guesses"`
		Rows    int               `json:"rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &cols); err != nil {
		t.Fatalf("decode columns: %v", err)
	}
	if cols.Rows != 6 {
		t.Errorf("rows = %d, want 6", cols.Rows)
	}
	if cols.Guesses["truck"] != "Truck No." {
		t.Errorf("truck guess = %q, want %q", cols.Guesses["truck"], "Truck No.")
	}
	if cols.Guesses["pan_no"] != "PAN No." {
		t.Errorf("pan_no guess = %q, want %q", cols.Guesses["pan_no"], "PAN No.")
	}

	// Exact search for one truck
	rec = doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/session/"+id+"/search?q=GJ06BX1706&exact=true", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("search status = %d: %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Columns  []string   `json:"columns"`
		Rows     [][]string `json:"rows"`
		Count    int        `json:"count"`
		Total    int        `json:"total"`
		Filtered bool       `json:"filtered"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode search: %v", err)
	}
	wantCols := []string{"Truck No.", "Broker Name", "PAN Name", "PAN No."}
	if len(result.Columns) != 4 {
		t.Fatalf("columns = %v, want %v", result.Columns, wantCols)
	}
	for i, c := range wantCols {
		if result.Columns[i] != c {
			t.Errorf("columns[%d] = %q, want %q", i, result.Columns[i], c)
		}
	}
	if result.Count != 1 || result.Total != 6 || !result.Filtered {
		t.Errorf("count/total/filtered = %d/%d/%v, want 1/6/true", result.Count, result.Total, result.Filtered)
	}
	if result.Rows[0][0] != "GJ06BX1706" {
		t.Errorf("rows[0][0] = %q, want %q", result.Rows[0][0], "GJ06BX1706")
	}
	if result.Rows[0][3] != "AAGCS6114G" {
		t.Errorf("rows[0][3] = %q, want %q", result.Rows[0][3], "AAGCS6114G")
	}

	// Partial search
	rec = doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/session/"+id+"/search?q=gj06b", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode partial search: %v", err)
	}
	if result.Count != 5 {
		t.Errorf("partial count = %d, want 5", result.Count)
	}

	// Empty query returns everything unfiltered
	rec = doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/session/"+id+"/search", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode unfiltered search: %v", err)
	}
	if result.Count != 6 || result.Filtered {
		t.Errorf("count/filtered = %d/%v, want 6/false", result.Count, result.Filtered)
	}

	// Delete ends the session
	rec = doRequest(t, s, httptest.NewRequest(http.MethodDelete, "/api/session/"+id, nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	rec = doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/session/"+id+"/search", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("search after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestUpload_CSV(t *testing.T) {
	s, _ := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "fleet.csv")
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(fw, "Truck No.,Broker Name,Pan Name,Pan No.\nGJ06ZZ1406,SRPL COMPANY VEHICLE,SRPL,AAGCS6114G\n")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := doRequest(t, s, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		SessionID string   `json:"session_id"`
		Source    string   `json:"source"`
		Columns   []string `json:"columns"`
		Rows      int      `json:"rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Source != "fleet.csv" {
		t.Errorf("source = %q, want %q", resp.Source, "fleet.csv")
	}
	if resp.Rows != 1 || len(resp.Columns) != 4 {
		t.Errorf("rows/columns = %d/%d, want 1/4", resp.Rows, len(resp.Columns))
	}
}

func TestUpload_UnsupportedType(t *testing.T) {
	s, _ := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "report.pdf")
	io.WriteString(fw, "%PDF-1.4")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := doRequest(t, s, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("upload status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != "FILE001" {
		t.Errorf("code = %q, want %q", resp.Code, "FILE001")
	}
}

func TestUpload_NoFile(t *testing.T) {
	s, _ := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("note", "forgot the file")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := doRequest(t, s, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("upload status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != "FILE004" {
		t.Errorf("code = %q, want %q", resp.Code, "FILE004")
	}
}

func TestDBLoad_NotConfigured(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, httptest.NewRequest(http.MethodPost, "/api/db-load", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("db-load status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSearch_UnknownSession(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/session/nope/search", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("search status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != "SES001" {
		t.Errorf("code = %q, want %q", resp.Code, "SES001")
	}
}

func TestSearch_InvalidOverride(t *testing.T) {
	s, _ := newTestServer(t)
	id := newExampleSession(t, s)

	q := url.Values{"truck": {"No Such Column"}}
	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/session/"+id+"/search?"+q.Encode(), nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("search status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != "DATA002" {
		t.Errorf("code = %q, want %q", resp.Code, "DATA002")
	}
}

func TestSearch_HTMXPartial(t *testing.T) {
	s, _ := newTestServer(t)
	id := newExampleSession(t, s)

	req := httptest.NewRequest(http.MethodGet, "/api/session/"+id+"/search?q=GJ06BT9034", nil)
	req.Header.Set("HX-Request", "true")

	rec := doRequest(t, s, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("search status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "GJ06BT9034") {
		t.Error("partial does not contain the matched truck")
	}
	if !strings.Contains(rec.Body.String(), "1 record(s) found") {
		t.Errorf("partial missing count banner: %s", rec.Body.String())
	}
}

func TestExport_CSV(t *testing.T) {
	s, _ := newTestServer(t)
	id := newExampleSession(t, s)

	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/session/"+id+"/export?q=GJ06BV8677", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d: %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "truck_lookup_results.csv") {
		t.Errorf("Content-Disposition = %q, want csv filename", cd)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("csv lines = %d, want 2: %q", len(lines), rec.Body.String())
	}
	if lines[0] != "Truck No.,Broker Name,PAN Name,PAN No." {
		t.Errorf("csv header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "GJ06BV8677,") {
		t.Errorf("csv row = %q", lines[1])
	}
}

func TestExport_XLSX(t *testing.T) {
	s, _ := newTestServer(t)
	id := newExampleSession(t, s)

	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/session/"+id+"/export?format=xlsx", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d: %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "truck_lookup_results.xlsx") {
		t.Errorf("Content-Disposition = %q, want xlsx filename", cd)
	}
	// XLSX files are zip archives
	if body := rec.Body.Bytes(); len(body) < 4 || body[0] != 'P' || body[1] != 'K' {
		t.Error("export body is not a zip archive")
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	s, _ := newTestServer(t)
	id := newExampleSession(t, s)

	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/api/session/"+id+"/export?format=doc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("export status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestStartSession_HTMXRedirect(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/example", nil)
	req.Header.Set("HX-Request", "true")

	rec := doRequest(t, s, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if loc := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(loc, "/session/") {
		t.Errorf("HX-Redirect = %q, want /session/{id}", loc)
	}
}

func TestIndexPage(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<form") || !strings.Contains(body, "/api/upload") {
		t.Error("index page missing upload form")
	}
	// No database configured, so the live load form is absent
	if strings.Contains(body, "/api/db-load") {
		t.Error("index page offers db-load without a configured source")
	}
}

func TestSessionPage(t *testing.T) {
	s, _ := newTestServer(t)
	id := newExampleSession(t, s)

	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/session/"+id, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "GJ06ZZ1406") {
		t.Error("session page missing result rows")
	}

	rec = doRequest(t, s, httptest.NewRequest(http.MethodGet, "/session/unknown", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown session status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSecurityHeaders(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doRequest(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter(2, time.Minute)

	if !rl.allow("1.2.3.4") || !rl.allow("1.2.3.4") {
		t.Fatal("first two requests should be allowed")
	}
	if rl.allow("1.2.3.4") {
		t.Error("third request within the window should be rejected")
	}
	// Other IPs have their own bucket
	if !rl.allow("5.6.7.8") {
		t.Error("different IP should be allowed")
	}
}
