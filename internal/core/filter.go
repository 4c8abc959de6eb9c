package core

import "strings"

// Project returns the four-column lookup view of t: one column per role,
// renamed to the fixed output labels, rows in original order. Every role in
// m must name an existing column.
func Project(t Table, m Mapping) (Table, error) {
	if err := m.Validate(t); err != nil {
		return Table{}, err
	}

	roles := Roles()
	out := Table{Columns: make([]string, 0, len(roles))}
	type pick struct {
		src   string
		label string
	}
	var picks []pick
	for _, role := range roles {
		src, ok := m[role]
		if !ok {
			return Table{}, &InvalidColumnError{Column: "", Role: role}
		}
		out.Columns = append(out.Columns, role.OutputLabel())
		picks = append(picks, pick{src: src, label: role.OutputLabel()})
	}

	out.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		nr := make(Row, len(picks))
		for _, p := range picks {
			if v, ok := row[p.src]; ok {
				nr[p.label] = v
			}
		}
		out.Rows[i] = nr
	}
	return out, nil
}

// Filter returns the rows of t whose value in identifierColumn matches
// query. Matching is case-insensitive; exact requires full equality with
// the trimmed query, otherwise the trimmed query may occur anywhere in the
// value. An empty or whitespace-only query means "no filtering" and returns
// t unchanged. Rows with an absent value never match a non-empty query.
//
// Row order is preserved and rows are never deduplicated, so filtering
// with the same query is idempotent.
func Filter(t Table, identifierColumn, query string, exact bool) (Table, error) {
	if !t.HasColumn(identifierColumn) {
		return Table{}, &InvalidColumnError{Column: identifierColumn, Role: RoleIdentifier}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return t, nil
	}

	out := Table{Columns: t.Columns}
	lowerQuery := strings.ToLower(query)
	for _, row := range t.Rows {
		val := CellString(row[identifierColumn])
		var match bool
		if exact {
			match = strings.EqualFold(val, query)
		} else {
			match = strings.Contains(strings.ToLower(val), lowerQuery)
		}
		if match {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}
