package workbook_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/camp-sdk/pkg/workbook"
	"github.com/iota-uz/camp-sdk/pkg/workbook/xlsxtest"
)

func TestRead_PreservesOrderAndRawValues(t *testing.T) {
	path := xlsxtest.Write(t,
		xlsxtest.Sheet{Name: "Roster", Rows: [][]any{
			{"Confirmed", "WhatsApp", "Name", "Email"},
			{"yes", nil, "Jane Doe", "jane@example.com"},
			{nil, nil, "John Roe", nil},
		}},
		xlsxtest.Sheet{Name: "Payments", Rows: [][]any{
			{"Date", "Name", "Email", "Amount"},
			{time.Date(2025, 8, 24, 0, 0, 0, 0, time.UTC), "Jane Doe", nil, 120.5},
		}},
	)

	tables, err := workbook.Read(path)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	require.Equal(t, "Roster", tables[0].Name)
	require.Equal(t, "Payments", tables[1].Name)

	roster := tables[0]
	require.Equal(t, "Name", roster.Header[2].Text())
	require.Len(t, roster.Rows, 2)
	require.Equal(t, "Jane Doe", workbook.At(roster.Rows[0], 2).Text())
	require.Equal(t, "John Roe", workbook.At(roster.Rows[1], 2).Text())
	require.True(t, workbook.At(roster.Rows[1], 3).IsEmpty())
	require.True(t, workbook.At(roster.Rows[1], 40).IsEmpty())

	payment := tables[1].Rows[0]
	date := workbook.At(payment, 0)
	require.Equal(t, workbook.CellNumber, date.Kind)
	require.InDelta(t, 45893, date.Num, 0.0001)
	amount := workbook.At(payment, 3)
	require.Equal(t, workbook.CellNumber, amount.Kind)
	require.InDelta(t, 120.5, amount.Num, 0.0001)
	require.Equal(t, workbook.CellString, workbook.At(payment, 1).Kind)
}

func TestRead_RejectsNonWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,email\nJane,jane@example.com\n"), 0o644))

	_, err := workbook.Read(path)
	require.ErrorIs(t, err, workbook.ErrNotWorkbook)
}

func TestGetTable(t *testing.T) {
	tables := []workbook.Table{
		{Name: " Build  Crew "},
		{Name: "Roster"},
		{Name: "roster"},
	}

	got, ok := workbook.GetTable(tables, "roster")
	require.True(t, ok)
	require.Equal(t, "roster", got.Name, "exact match wins over folded match")

	got, ok = workbook.GetTable(tables, "Build Crew")
	require.True(t, ok)
	require.Equal(t, " Build  Crew ", got.Name)

	_, ok = workbook.GetTable(tables, "Tickets")
	require.False(t, ok)
}

func TestCellText(t *testing.T) {
	require.Equal(t, "42", workbook.Number(42).Text())
	require.Equal(t, "12.5", workbook.Number(12.5).Text())
	require.Equal(t, "Jane", workbook.String("  Jane ").Text())
	require.True(t, workbook.String("   ").IsEmpty())
	require.Equal(t, "2025-08-24", workbook.Date(time.Date(2025, 8, 24, 0, 0, 0, 0, time.UTC)).Text())
	require.True(t, workbook.IsBlankRow([]workbook.Cell{{}, workbook.String(" ")}))
}
