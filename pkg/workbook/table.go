package workbook

import "strings"

// Table is one sheet of a workbook: the first row is the header, Rows holds
// everything below it in sheet order.
type Table struct {
	Name   string
	Header []Cell
	Rows   [][]Cell
}

// SheetRow converts a zero-based data row index into the 1-based row number a
// person sees in the spreadsheet (header is row 1).
func SheetRow(i int) int { return i + 2 }

// GetTable finds a table by exact name first, then by a case and whitespace
// insensitive comparison. Missing tables are reported with ok=false.
func GetTable(tables []Table, name string) (Table, bool) {
	for _, t := range tables {
		if t.Name == name {
			return t, true
		}
	}
	want := foldTableName(name)
	for _, t := range tables {
		if foldTableName(t.Name) == want {
			return t, true
		}
	}
	return Table{}, false
}

func foldTableName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
