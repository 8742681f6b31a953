package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// All pricing arithmetic in this codebase is integer pence. Decimal
// conversion exists only for presentation and for ingesting legacy
// pound-denominated data; nothing downstream of these helpers may do
// money math in floats.

var hundred = decimal.NewFromInt(100)

// Pence converts a decimal pound amount into integer pence, rounding
// half away from zero.
func Pence(pounds decimal.Decimal) int64 {
	return pounds.Mul(hundred).Round(0).IntPart()
}

// PenceFromString parses a pound-denominated string ("12.50") into pence.
func PenceFromString(value string) (int64, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", value, err)
	}
	return Pence(d), nil
}

// Pounds converts integer pence back to a decimal pound amount.
func Pounds(pence int64) decimal.Decimal {
	return decimal.NewFromInt(pence).Div(hundred)
}

// FormatGBP renders pence as a display string ("£12.50").
func FormatGBP(pence int64) string {
	return "£" + Pounds(pence).StringFixed(2)
}
