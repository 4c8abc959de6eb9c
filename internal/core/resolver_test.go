package core

import "testing"

func TestResolve_DefaultKeywords(t *testing.T) {
	columns := []string{"SR NO.", "Date", "Challan No.", "Broker Name", "Truck No.", "PAN Name", "PAN No."}
	m := Resolve(columns, DefaultKeywords())

	tests := []struct {
		role Role
		want string
	}{
		{RoleIdentifier, "Truck No."},
		{RoleCounterpartyName, "Broker Name"},
		{RoleEntityName, "PAN Name"},
		{RoleEntityID, "PAN No."},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			got, ok := m[tt.role]
			if !ok {
				t.Fatalf("Resolve() has no column for %s", tt.role)
			}
			if got != tt.want {
				t.Errorf("Resolve()[%s] = %q, want %q", tt.role, got, tt.want)
			}
		})
	}
}

// Both "PAN Name" and "PAN No." contain "pan"; role order must keep them
// from swapping.
func TestResolve_PanNameVsPanNo(t *testing.T) {
	columns := []string{"PAN No.", "PAN Name"}
	m := Resolve(columns, DefaultKeywords())

	if got := m[RoleEntityName]; got != "PAN Name" {
		t.Errorf("entity name column = %q, want %q", got, "PAN Name")
	}
	if got := m[RoleEntityID]; got != "PAN No." {
		t.Errorf("entity id column = %q, want %q", got, "PAN No.")
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	columns := []string{"Vehicle", "Truck No."}
	m := Resolve(columns, DefaultKeywords())

	if got := m[RoleIdentifier]; got != "Vehicle" {
		t.Errorf("identifier column = %q, want %q (first match in column order)", got, "Vehicle")
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	columns := []string{"TRUCK NUMBER", "BROKER"}
	m := Resolve(columns, DefaultKeywords())

	if got := m[RoleIdentifier]; got != "TRUCK NUMBER" {
		t.Errorf("identifier column = %q, want %q", got, "TRUCK NUMBER")
	}
	if got := m[RoleCounterpartyName]; got != "BROKER" {
		t.Errorf("counterparty column = %q, want %q", got, "BROKER")
	}
}

// An unmatched role must be absent, never defaulted to column 0.
func TestResolve_NoMatchOmitsRole(t *testing.T) {
	columns := []string{"Alpha", "Beta"}
	m := Resolve(columns, DefaultKeywords())

	for _, role := range []Role{RoleIdentifier, RoleCounterpartyName, RoleEntityID} {
		if col, ok := m[role]; ok {
			t.Errorf("Resolve()[%s] = %q, want no entry", role, col)
		}
	}
	// "Alpha"/"Beta" contain no keyword for entity name either
	if col, ok := m[RoleEntityName]; ok {
		t.Errorf("Resolve()[%s] = %q, want no entry", RoleEntityName, col)
	}
}

// Resolve must only return names that are actually in the column list.
func TestResolve_ReturnsOnlyRealColumns(t *testing.T) {
	columns := []string{"truck id", "company", "name", "pan"}
	m := Resolve(columns, DefaultKeywords())

	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[c] = true
	}
	for role, col := range m {
		if !set[col] {
			t.Errorf("Resolve()[%s] = %q, not a column of the table", role, col)
		}
	}
}

func TestMapping_Validate(t *testing.T) {
	table := Table{Columns: []string{"Truck No.", "Broker Name"}}

	ok := Mapping{RoleIdentifier: "Truck No.", RoleCounterpartyName: "Broker Name"}
	if err := ok.Validate(table); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	bad := Mapping{RoleIdentifier: "Lorry No."}
	err := bad.Validate(table)
	if err == nil {
		t.Fatal("Validate() expected error for unknown column")
	}
	if !IsInvalidColumn(err) {
		t.Errorf("Validate() error = %v, want InvalidColumnError", err)
	}
}
