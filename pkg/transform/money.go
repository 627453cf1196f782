package transform

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/iota-uz/camp-sdk/pkg/workbook"
)

// ToMinorUnits converts a currency cell into integer minor units (cents).
// Anything that is not a number yields 0.
func ToMinorUnits(c workbook.Cell) int64 {
	switch c.Kind {
	case workbook.CellNumber:
		return toMinor(decimal.NewFromFloat(c.Num))
	case workbook.CellString:
		return ParseMinorUnits(c.Str)
	default:
		return 0
	}
}

// ParseMinorUnits parses strings like "$1,200.00", "(12.50)" or "75" into
// minor units. Empty or non-numeric input yields 0.
func ParseMinorUnits(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
			b.WriteRune(r)
		case r == '.' || r == '-':
			b.WriteRune(r)
		}
	}
	if digits == 0 {
		return 0
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return 0
	}
	if negative {
		d = d.Neg()
	}
	return toMinor(d)
}

func toMinor(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// FormatMinorUnits renders minor units for humans, e.g. 62050 → "$620.50".
func FormatMinorUnits(amount int64, currency string) string {
	return money.New(amount, currencyCode(currency)).Display()
}

// KnownCurrency reports whether code is an ISO currency go-money can render.
func KnownCurrency(code string) bool {
	return money.GetCurrency(strings.ToUpper(strings.TrimSpace(code))) != nil
}

func currencyCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || money.GetCurrency(code) == nil {
		return money.USD
	}
	return code
}
