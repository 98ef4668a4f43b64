package cli

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// minor-unit values go-money can format; MinInt64 is excluded because its
// absolute value overflows.
var (
	maxMinor = decimal.NewFromInt(math.MaxInt64)
	minMinor = decimal.NewFromInt(-math.MaxInt64)
)

// FormatMoney renders amount in the currency's local notation, e.g. "$1,234.50".
// Amounts are rounded to the currency's minor unit. Unknown codes, and amounts
// too large for the minor-unit range, fall back to "1234.50 XYZ".
func FormatMoney(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	if !inMinorRange(minor) {
		return amount.StringFixed(int32(cur.Fraction)) + " " + cur.Code
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}

// ValidAmount reports whether amount is expressible in whole minor units of
// the currency and fits the minor-unit range. Unknown codes use two decimals.
func ValidAmount(amount decimal.Decimal, code string) bool {
	fraction := 2
	if cur := money.GetCurrency(code); cur != nil {
		fraction = cur.Fraction
	}
	minor := amount.Shift(int32(fraction))
	return minor.Equal(minor.Truncate(0)) && inMinorRange(minor)
}

func inMinorRange(minor decimal.Decimal) bool {
	return minor.Cmp(minMinor) >= 0 && minor.Cmp(maxMinor) <= 0
}
