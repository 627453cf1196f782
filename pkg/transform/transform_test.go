package transform_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/camp-sdk/pkg/transform"
	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		name string
		in   workbook.Cell
		want int64
	}{
		{"formatted dollars", workbook.String("$1,200.00"), 120000},
		{"empty", workbook.String(""), 0},
		{"not available", workbook.String("NA"), 0},
		{"plain number cell", workbook.Number(120.5), 12050},
		{"float noise", workbook.Number(19.999999999), 2000},
		{"accounting negative", workbook.String("(12.50)"), -1250},
		{"minus sign", workbook.String("-5"), -500},
		{"spaces and symbol", workbook.String(" € 75 "), 7500},
		{"garbage punctuation", workbook.String("12-15"), 0},
		{"empty cell", workbook.Empty(), 0},
		{"date cell", workbook.Date(time.Now()), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, transform.ToMinorUnits(tc.in))
		})
	}
}

func TestFormatMinorUnits(t *testing.T) {
	require.Equal(t, "$620.50", transform.FormatMinorUnits(62050, "USD"))
	require.Equal(t, "$1.00", transform.FormatMinorUnits(100, "not-a-currency"))
	require.True(t, transform.KnownCurrency("eur"))
	require.False(t, transform.KnownCurrency("XYZ1"))
}

func TestParseDate_EquivalentForms(t *testing.T) {
	want := time.Date(2025, 8, 24, 0, 0, 0, 0, time.UTC)

	for _, c := range []workbook.Cell{
		workbook.Number(45893),
		workbook.Number(45893.75),
		workbook.String("45893"),
		workbook.String("2025-08-24"),
		workbook.String("08/24/2025"),
		workbook.String("8/24/2025"),
		workbook.String("8/24/25"),
		workbook.String("Aug 24, 2025"),
		workbook.Date(time.Date(2025, 8, 24, 17, 30, 0, 0, time.UTC)),
	} {
		got, ok := transform.ParseDate(c)
		require.True(t, ok, "cell %q", c.Text())
		require.True(t, want.Equal(got), "cell %q parsed as %s", c.Text(), got)
	}
}

func TestParseDate_Rejects(t *testing.T) {
	for _, c := range []workbook.Cell{
		workbook.Empty(),
		workbook.String("TBD"),
		workbook.String("sometime in august"),
		workbook.Number(0),
		workbook.Number(-3),
		workbook.Number(1e9),
		workbook.String("2025"),
		workbook.String("12"),
	} {
		_, ok := transform.ParseDate(c)
		assert.False(t, ok, "cell %q", c.Text())
	}
}

func TestParseDateWithYear(t *testing.T) {
	got, ok := transform.ParseDateWithYear("8/19", 2025)
	require.True(t, ok)
	require.Equal(t, time.Date(2025, 8, 19, 0, 0, 0, 0, time.UTC), got)

	got, ok = transform.ParseDateWithYear("2024-08-19", 2025)
	require.True(t, ok)
	require.Equal(t, 2024, got.Year())

	_, ok = transform.ParseDateWithYear("13/40", 2025)
	require.False(t, ok)

	_, ok = transform.ParseDateWithYear("2025", 2025)
	require.False(t, ok)
}

func TestNames(t *testing.T) {
	require.Equal(t, "jane doe", transform.NormalizeName("  Jane   DOE "))
	require.Equal(t, "zoë smith", transform.NormalizeName("Zoë Smith"))
	require.Equal(t, "maryjaneoneil", transform.SquashName("Mary-Jane O'Neil"))
	require.Equal(t, "mary", transform.FirstName(" Mary  Jane "))
	require.Equal(t, "", transform.FirstName("   "))

	require.Equal(t, "jane@example.com", transform.NormalizeEmail(" Jane@Example.COM "))
	require.True(t, transform.IsEmail("jane@example.com"))
	require.False(t, transform.IsEmail("jane at example"))
	require.False(t, transform.IsEmail(""))
}

func TestPlaceholderEmail(t *testing.T) {
	require.Equal(t, "zoe.smith@placeholder.invalid", transform.PlaceholderEmail("Zoë  Smith", "placeholder.invalid"))
	require.Equal(t, "zoe.smith@placeholder.invalid", transform.PlaceholderEmail("zoe smith", "Placeholder.Invalid"))
	require.Equal(t, "unknown@placeholder.invalid", transform.PlaceholderEmail("???", "placeholder.invalid"))
	require.True(t, transform.IsPlaceholderEmail("zoe.smith@placeholder.invalid", "placeholder.invalid"))
	require.False(t, transform.IsPlaceholderEmail("zoe@example.com", "placeholder.invalid"))
}

func TestPlaceholderEmail_NonLatinNames(t *testing.T) {
	ali := transform.PlaceholderEmail("علی رضایی", "placeholder.invalid")
	maryam := transform.PlaceholderEmail("مریم احمدی", "placeholder.invalid")
	require.Regexp(t, `^member\.[0-9a-f]{12}@placeholder\.invalid$`, ali)
	require.NotEqual(t, ali, maryam)
	require.Equal(t, ali, transform.PlaceholderEmail("  علی   رضایی ", "placeholder.invalid"))
	require.True(t, transform.IsEmail(ali))

	li := transform.PlaceholderEmail("José 李", "placeholder.invalid")
	wang := transform.PlaceholderEmail("José 王", "placeholder.invalid")
	require.Regexp(t, `^jose\.[0-9a-f]{12}@placeholder\.invalid$`, li)
	require.NotEqual(t, li, wang)
}

func TestYesNo(t *testing.T) {
	for _, in := range []string{"yes", "Y", "x", "TRUE", "Yes please", "paid in full", "✓"} {
		assert.True(t, transform.ParseYesNo(in), in)
	}
	for _, in := range []string{"", "no", "not paid", "unpaid", "maybe", "N/A"} {
		assert.False(t, transform.ParseYesNo(in), in)
	}
	require.True(t, transform.YesNo(workbook.Number(1)))
	require.False(t, transform.YesNo(workbook.Number(0)))
}

type color string

func TestVocabulary_OrderedRules(t *testing.T) {
	v := transform.NewVocabulary[color]("color", "OTHER",
		map[string]color{"Navy": "BLUE"},
		transform.Rule[color]{Match: transform.Contains("dark red"), Result: "MAROON"},
		transform.Rule[color]{Match: transform.Contains("red"), Result: "RED"},
		transform.Rule[color]{Match: transform.Word("rv"), Result: "RV"},
	)

	require.Equal(t, "color", v.Name())
	require.Equal(t, color("BLUE"), v.Normalize("  NAVY "))
	require.Equal(t, color("MAROON"), v.Normalize("Dark  Red"))
	require.Equal(t, color("RED"), v.Normalize("reddish"))
	require.Equal(t, color("RV"), v.Normalize("big RV / trailer"))
	require.Equal(t, color("OTHER"), v.Normalize("served"))

	got, ok := v.Lookup("green")
	require.False(t, ok)
	require.Equal(t, color("OTHER"), got)
}
