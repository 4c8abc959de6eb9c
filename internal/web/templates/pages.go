package templates

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// esc escapes a string for safe HTML interpolation.
func esc(s string) string {
	return html.EscapeString(s)
}

// layout wraps body in the common page shell.
func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<style>
body{font-family:system-ui,sans-serif;margin:0;background:#f5f6f8;color:#1c2733}
main{max-width:960px;margin:2rem auto;padding:0 1rem}
h1{font-size:1.5rem}
.card{background:#fff;border:1px solid #dde2e8;border-radius:8px;padding:1.25rem;margin-bottom:1.25rem}
.card h2{font-size:1.05rem;margin-top:0}
label{display:block;font-size:.85rem;margin-bottom:.25rem;color:#46525e}
input[type=text],select{padding:.45rem;border:1px solid #c6ccd4;border-radius:6px;width:100%%;box-sizing:border-box}
button{padding:.5rem 1rem;border:0;border-radius:6px;background:#2563eb;color:#fff;cursor:pointer}
button.secondary{background:#64748b}
table{border-collapse:collapse;width:100%%}
th,td{border:1px solid #dde2e8;padding:.45rem .6rem;text-align:left;font-size:.9rem}
th{background:#eef1f5}
.grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(180px,1fr));gap:.75rem}
.muted{color:#64748b;font-size:.85rem}
.alert{background:#fef2f2;border:1px solid #fecaca;color:#991b1b;border-radius:6px;padding:.75rem 1rem;margin-bottom:1rem}
.ok{background:#f0fdf4;border:1px solid #bbf7d0;color:#166534;border-radius:6px;padding:.6rem 1rem;margin-bottom:1rem}
.actions{display:flex;gap:.75rem;align-items:center;flex-wrap:wrap}
a.download{font-size:.9rem}
</style>
</head>
<body>
<main>
<h1>Truck Lookup — Broker &amp; PAN Details</h1>
`, esc(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</main>\n</body>\n</html>\n")
		return err
	})
}

// IndexPage is the landing page with the data source choices.
func IndexPage(hasDB bool) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="card">
<h2>Upload your data</h2>
<p class="muted">CSV or Excel (.xlsx) with one row per challan. Column names are guessed automatically and can be re-mapped after loading.</p>
<form method="post" action="/api/upload" enctype="multipart/form-data">
<label for="file">Data file</label>
<input type="file" id="file" name="file" accept=".csv,.txt,.xlsx,.xlsm,.xls">
<p><button type="submit">Upload</button></p>
</form>
</div>
<div class="card">
<h2>No file handy?</h2>
<form method="post" action="/api/example">
<button type="submit" class="secondary">Use example data</button>
</form>
</div>
`); err != nil {
			return err
		}
		if hasDB {
			if _, err := io.WriteString(w, `<div class="card">
<h2>Live data</h2>
<p class="muted">Load the configured database query.</p>
<form method="post" action="/api/db-load">
<button type="submit" class="secondary">Load from database</button>
</form>
</div>
`); err != nil {
				return err
			}
		}
		return nil
	})
	return layout("Truck Lookup", body)
}

// SessionPage is the lookup page for a loaded table: column mapping,
// search controls, and the current results.
func SessionPage(v SessionView, res ResultView) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<p class="muted">Source: %s &middot; %d record(s) &middot; <a href="/">load different data</a></p>
`, esc(v.Source), v.RowCount)

		if v.Error != nil {
			if err := ErrorAlert(v.Error.Message, v.Error.Action, v.Error.Code).Render(ctx, w); err != nil {
				return err
			}
		}

		// Mapping + search form; everything round-trips through the URL.
		fmt.Fprintf(w, `<form method="get" action="/session/%s">
<div class="card">
<h2>Map columns (if needed)</h2>
<div class="grid">
`, esc(v.SessionID))
		for _, field := range RoleFields() {
			fmt.Fprintf(w, `<div><label for="%s">%s</label><select id="%s" name="%s">`,
				esc(field.Param), esc(field.Label), esc(field.Param), esc(field.Param))
			selected := v.Selected[field.Param]
			for _, col := range v.Columns {
				sel := ""
				if col == selected {
					sel = " selected"
				}
				fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, esc(col), sel, esc(col))
			}
			io.WriteString(w, "</select>")
			if _, guessed := v.Guessed[field.Param]; !guessed {
				io.WriteString(w, `<span class="muted">no match found, defaulted to first column</span>`)
			}
			io.WriteString(w, "</div>\n")
		}
		io.WriteString(w, `</div>
</div>
<div class="card">
<h2>Search truck</h2>
<div class="grid">
`)
		fmt.Fprintf(w, `<div><label for="q">Truck No. (exact or partial)</label>
<input type="text" id="q" name="q" value="%s" placeholder="e.g., GJ06BX1706 or GJ06B"></div>
`, esc(v.Query))
		exactChecked := ""
		if v.Exact {
			exactChecked = " checked"
		}
		fmt.Fprintf(w, `<div><label for="exact">Exact match only</label>
<input type="checkbox" id="exact" name="exact" value="true"%s></div>
`, exactChecked)
		io.WriteString(w, `</div>
<p class="actions"><button type="submit">Search</button></p>
</div>
</form>
`)

		if err := ResultsPartial(res).Render(ctx, w); err != nil {
			return err
		}

		// Download links reproduce the current view server-side.
		params := url.Values{}
		if v.Query != "" {
			params.Set("q", v.Query)
		}
		if v.Exact {
			params.Set("exact", "true")
		}
		for param, col := range v.Selected {
			params.Set(param, col)
		}
		base := "/api/session/" + url.PathEscape(v.SessionID) + "/export?" + params.Encode()
		fmt.Fprintf(w, `<p class="actions">
<a class="download" href="%s&format=csv">&#11015; Download CSV</a>
<a class="download" href="%s&format=xlsx">&#11015; Download Excel</a>
</p>
`, esc(base), esc(base))
		return nil
	})
	return layout("Truck Lookup — "+v.Source, body)
}

// ResultsPartial renders the result count banner and table.
func ResultsPartial(res ResultView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(res.Columns) == 0 {
			return nil
		}

		if res.Filtered {
			fmt.Fprintf(w, `<div class="ok">%d record(s) found.</div>
`, res.Count)
		} else {
			fmt.Fprintf(w, `<div class="ok">Showing all %d record(s). Use search to filter.</div>
`, res.Count)
		}

		io.WriteString(w, `<div class="card"><table><thead><tr>`)
		for _, col := range res.Columns {
			fmt.Fprintf(w, "<th>%s</th>", esc(col))
		}
		io.WriteString(w, "</tr></thead>\n<tbody>")
		for _, row := range res.Rows {
			io.WriteString(w, "<tr>")
			for _, cell := range row {
				fmt.Fprintf(w, "<td>%s</td>", esc(cell))
			}
			io.WriteString(w, "</tr>\n")
		}
		io.WriteString(w, "</tbody></table></div>\n")
		return nil
	})
}

// ErrorAlert renders a user-facing error with its support code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="alert"><strong>%s</strong> (Code: %s)<br>%s</div>
`, esc(message), esc(code), esc(action))
		return err
	})
}
