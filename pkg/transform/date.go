package transform

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

// Spreadsheet serial day 0. Using 1899-12-30 absorbs the 1900 leap-year bug
// for every date after February 1900.
var spreadsheetEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

const (
	maxSerial     = 2958465 // 9999-12-31
	// Numeric text below this is a year or a count, not a date (1954-10-03).
	minTextSerial = 20000
)

var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"1/2/2006 15:04",
	"1-2-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",
	"Mon Jan 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2 2006",
}

// ParseDate converts a raw cell into a calendar date (UTC midnight). It accepts
// native dates, spreadsheet serial numbers, ISO "YYYY-MM-DD", "MM/DD/YYYY" and
// a handful of generic layouts. ok is false when nothing matches.
func ParseDate(c workbook.Cell) (time.Time, bool) {
	switch c.Kind {
	case workbook.CellDate:
		return dateOnly(c.Time), true
	case workbook.CellNumber:
		return fromSerial(c.Num)
	case workbook.CellString:
		return parseDateString(c.Str)
	default:
		return time.Time{}, false
	}
}

func parseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if n < minTextSerial {
			return time.Time{}, false
		}
		return fromSerial(n)
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("1/2/2006", s, time.UTC); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("1/2/06", s, time.UTC); err == nil {
		return t, true
	}
	for _, layout := range genericLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return dateOnly(t), true
		}
	}
	return time.Time{}, false
}

// ParseDateWithYear parses month/day fragments such as "8/19" found in day
// headers, completing them with year.
func ParseDateWithYear(s string, year int) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, ok := parseDateString(s); ok {
		return t, true
	}
	t, err := time.ParseInLocation("1/2", s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// fromSerial interprets a spreadsheet serial number; the fractional time of
// day is dropped.
func fromSerial(serial float64) (time.Time, bool) {
	if math.IsNaN(serial) || serial < 1 || serial > maxSerial {
		return time.Time{}, false
	}
	return spreadsheetEpoch.AddDate(0, 0, int(math.Floor(serial))), true
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
