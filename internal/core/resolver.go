package core

import "strings"

// Role identifies one of the four semantic column purposes every lookup
// depends on.
type Role int

const (
	// RoleIdentifier is the column holding the truck/vehicle number used
	// as the search key.
	RoleIdentifier Role = iota
	// RoleCounterpartyName is the broker or transport party column.
	RoleCounterpartyName
	// RoleEntityName is the PAN holder name column.
	RoleEntityName
	// RoleEntityID is the PAN number column.
	RoleEntityID
)

// Roles returns all roles in their fixed application order. The order
// matters: a column name can satisfy more than one role's keyword set
// ("PAN Name" contains both "name" and "pan"), and earlier roles claim
// their guess first.
func Roles() []Role {
	return []Role{RoleIdentifier, RoleCounterpartyName, RoleEntityName, RoleEntityID}
}

// String returns the role's internal name.
func (r Role) String() string {
	switch r {
	case RoleIdentifier:
		return "identifier"
	case RoleCounterpartyName:
		return "counterparty_name"
	case RoleEntityName:
		return "entity_name"
	case RoleEntityID:
		return "entity_id"
	default:
		return "unknown"
	}
}

// OutputLabel returns the fixed column header used for this role in result
// tables and exports.
func (r Role) OutputLabel() string {
	switch r {
	case RoleIdentifier:
		return "Truck No."
	case RoleCounterpartyName:
		return "Broker Name"
	case RoleEntityName:
		return "PAN Name"
	case RoleEntityID:
		return "PAN No."
	default:
		return ""
	}
}

// DefaultKeywords returns the keyword sets used to guess which column holds
// each role. Keywords are lowercase substrings tested against lowercased
// column names.
func DefaultKeywords() map[Role][]string {
	return map[Role][]string{
		RoleIdentifier:       {"truck", "vehicle", "veh"},
		RoleCounterpartyName: {"broker", "party", "vendor", "company"},
		RoleEntityName:       {"pan name", "panname", "name"},
		RoleEntityID:         {"pan no", "pan", "panno", "pan number"},
	}
}

// Mapping assigns a column name to each resolved role. A role absent from
// the map means no column was matched; whether to fall back to some default
// column is the caller's policy, never this package's.
type Mapping map[Role]string

// Validate checks that every mapped column exists in t's schema.
// It fails fast with an InvalidColumnError so that a stale override or a
// bad guess is surfaced instead of silently matching nothing.
func (m Mapping) Validate(t Table) error {
	for _, role := range Roles() {
		col, ok := m[role]
		if !ok {
			continue
		}
		if !t.HasColumn(col) {
			return &InvalidColumnError{Column: col, Role: role}
		}
	}
	return nil
}

// Resolve guesses which column holds each role by scanning columns in their
// original order and returning the first column whose lowercased name
// contains any of the role's keywords. Roles with no matching column are
// left out of the result.
//
// Resolve is pure: it never invents a column name and never falls back to
// column 0, so an explicit "no match" stays distinguishable from "matched
// the first column".
func Resolve(columns []string, keywords map[Role][]string) Mapping {
	lowered := make([]string, len(columns))
	for i, c := range columns {
		lowered[i] = strings.ToLower(c)
	}

	m := make(Mapping, len(keywords))
	for _, role := range Roles() {
		kws, ok := keywords[role]
		if !ok {
			continue
		}
	scan:
		for i, lc := range lowered {
			for _, kw := range kws {
				if strings.Contains(lc, kw) {
					m[role] = columns[i]
					break scan
				}
			}
		}
	}
	return m
}
