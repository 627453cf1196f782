package importers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

func TestParseDayHeader(t *testing.T) {
	cases := []struct {
		in   string
		day  string
		date string
		ok   bool
	}{
		{"Monday", "Monday", "", true},
		{"Tues 8/19", "Tuesday", "2025-08-19", true},
		{"WED", "Wednesday", "", true},
		{"thurs. (8/21)", "Thursday", "2025-08-21", true},
		{"Sat Singh", "", "", false},
		{"Jane Doe", "", "", false},
		{"Friday 8/22 morning", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := parseDayHeader(tc.in, 2025)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.day, got.day)
			if tc.date == "" {
				require.Nil(t, got.date)
				return
			}
			require.NotNil(t, got.date)
			require.Equal(t, tc.date, got.date.Format(time.DateOnly))
		})
	}
}

func TestParseCount(t *testing.T) {
	n, ok := parseCount(parseTicketRow(nil).quantity)
	require.False(t, ok)
	require.Zero(t, n)

	for in, want := range map[string]int{"3": 3, "x2": 2, " 4.0 ": 4} {
		row := parseTicketRow([]workbook.Cell{{}, {}, {}, workbook.String(in)})
		n, ok := parseCount(row.quantity)
		require.True(t, ok, in)
		require.Equal(t, want, n, in)
	}
}
