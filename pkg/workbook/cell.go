package workbook

import (
	"strconv"
	"strings"
	"time"
)

type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
	CellDate
)

func (k CellKind) String() string {
	switch k {
	case CellString:
		return "string"
	case CellNumber:
		return "number"
	case CellDate:
		return "date"
	default:
		return "empty"
	}
}

// Cell is a raw, unconverted spreadsheet value.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Time time.Time
}

func Empty() Cell { return Cell{} }

func String(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{Kind: CellString, Str: s}
}

func Number(n float64) Cell {
	return Cell{Kind: CellNumber, Num: n}
}

func Date(t time.Time) Cell {
	if t.IsZero() {
		return Cell{}
	}
	return Cell{Kind: CellDate, Time: t}
}

func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// Text renders the cell as trimmed text. Numbers are printed without a
// trailing ".0" so "42" in a name column stays "42".
func (c Cell) Text() string {
	switch c.Kind {
	case CellString:
		return strings.TrimSpace(c.Str)
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellDate:
		return c.Time.Format("2006-01-02")
	default:
		return ""
	}
}

// At returns the cell at column i, or an empty cell when the row is shorter.
func At(row []Cell, i int) Cell {
	if i < 0 || i >= len(row) {
		return Cell{}
	}
	return row[i]
}

// IsBlankRow reports whether every cell of the row is empty.
func IsBlankRow(row []Cell) bool {
	for _, c := range row {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
