// Package templates renders the application's pages and fragments as templ
// components. The view layer is small enough that components are built
// directly with templ.ComponentFunc rather than generated files.
package templates

// SessionView carries everything the lookup page needs besides the results.
type SessionView struct {
	SessionID string
	Source    string            // file name or source label shown in the header
	Columns   []string          // all columns, for the mapping selectors
	Selected  map[string]string // effective column per role parameter
	Guessed   map[string]string // resolver guesses per role parameter (no fallback)
	RowCount  int
	Query     string
	Exact     bool
	Error     *ErrorView
}

// ResultView is a filtered result table rendered as display strings.
type ResultView struct {
	Columns  []string
	Rows     [][]string
	Count    int
	Total    int
	Filtered bool // false when no query was entered
	Query    string
}

// ErrorView is a user-facing error with its support code.
type ErrorView struct {
	Message string
	Action  string
	Code    string
}

// RoleField describes one mapping selector on the lookup page.
type RoleField struct {
	Param string // query parameter name
	Label string // display label
}

// RoleFields lists the four mapping selectors in display order.
func RoleFields() []RoleField {
	return []RoleField{
		{Param: "truck", Label: "Truck No. column"},
		{Param: "broker", Label: "Broker Name column"},
		{Param: "pan_name", Label: "PAN Name column"},
		{Param: "pan_no", Label: "PAN No. column"},
	}
}
