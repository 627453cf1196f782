package transform

import "github.com/iota-uz/camp-sdk/pkg/workbook"

var yesNo = NewVocabulary("yes/no", false,
	map[string]bool{
		"yes": true, "y": true, "true": true, "x": true, "1": true, "✓": true, "✔": true,
		"confirmed": true, "paid": true, "done": true,
		"no": false, "n": false, "false": false, "0": false, "-": false, "n/a": false, "na": false,
	},
	Rule[bool]{Match: HasPrefix("no", "not ", "un"), Result: false},
	Rule[bool]{Match: HasPrefix("yes", "yep", "yeah", "y "), Result: true},
	Rule[bool]{Match: Contains("confirmed", "paid"), Result: true},
)

// YesNo reads a checkbox-like cell. Non-zero numbers and dates count as yes;
// anything unrecognized is no.
func YesNo(c workbook.Cell) bool {
	switch c.Kind {
	case workbook.CellNumber:
		return c.Num != 0
	case workbook.CellDate:
		return true
	case workbook.CellString:
		return yesNo.Normalize(c.Str)
	default:
		return false
	}
}

// ParseYesNo is YesNo for plain strings.
func ParseYesNo(s string) bool {
	return yesNo.Normalize(s)
}
