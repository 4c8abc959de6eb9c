package core

// ExampleTable returns the built-in example dataset: six challans for one
// broker, usable when no file has been uploaded. The column set mirrors the
// daily dispatch sheets this tool is normally fed.
func ExampleTable() Table {
	columns := []string{"SR NO.", "Date", "Challan No.", "Broker Name", "Truck No.", "PAN Name", "PAN No."}
	trucks := []string{"GJ06ZZ1406", "GJ06BX1706", "GJ06BV8677", "GJ06BV8938", "GJ06BX1823", "GJ06BT9034"}

	t := Table{Columns: columns}
	for i, truck := range trucks {
		t.Rows = append(t.Rows, Row{
			"SR NO.":      float64(i + 1),
			"Date":        "16-08-2025",
			"Challan No.": CellString(float64(101 + i)),
			"Broker Name": "SRPL COMPANY VEHICLE",
			"Truck No.":   truck,
			"PAN Name":    "SRPL",
			"PAN No.":     "AAGCS6114G",
		})
	}
	return t
}
