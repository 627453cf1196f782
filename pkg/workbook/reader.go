package workbook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"
)

var ErrNotWorkbook = errors.New("file is not an xlsx workbook")

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeZip  = "application/zip"
)

// Read opens the workbook at path and returns every sheet as a Table with raw
// cell values. It never interprets the data.
func Read(path string) ([]Table, error) {
	if err := sniff(path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	tables := make([]Table, 0, len(sheets))
	for _, sheet := range sheets {
		t, err := readSheet(f, sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func sniff(path string) error {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("detect workbook type: %w", err)
	}
	// xlsx is a zip container; some writers order entries so that only the
	// zip parent is detected.
	for m := mt; m != nil; m = m.Parent() {
		if m.Is(mimeXLSX) || m.Is(mimeZip) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s (%s)", ErrNotWorkbook, path, mt.String())
}

func readSheet(f *excelize.File, sheet string) (Table, error) {
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, err
	}

	t := Table{Name: sheet}
	for r, values := range raw {
		row := make([]Cell, len(values))
		for c, v := range values {
			if v == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return Table{}, err
			}
			typ, err := f.GetCellType(sheet, axis)
			if err != nil {
				return Table{}, err
			}
			row[c] = classify(typ, v)
		}
		if r == 0 {
			t.Header = row
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

var isoDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func classify(typ excelize.CellType, v string) Cell {
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeBool,
		excelize.CellTypeError:
		return String(v)
	case excelize.CellTypeDate:
		for _, layout := range isoDateLayouts {
			if ts, err := time.Parse(layout, v); err == nil {
				return Date(ts.UTC())
			}
		}
		return String(v)
	}
	// numeric cells carry no type attribute; formula results may be either.
	if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
		return Number(n)
	}
	return String(v)
}
