// Package money holds the fixed-point helpers shared by the catalog and
// the pricing engine. Amounts are shopspring decimals with two
// fractional digits, matching the decimal(12,2) columns.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits stored for every amount.
const Scale = 2

// ColumnType is the SQL type used for money columns.
const ColumnType = "decimal(12,2)"

// Zero is the zero amount.
var Zero = decimal.Zero

// Parse reads a decimal amount such as "30000", "-5000" or "12.50".
// More than two significant fractional digits is an error.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !HasScale(d) {
		return decimal.Zero, fmt.Errorf("invalid amount %q: at most %d fractional digits", s, Scale)
	}
	return d, nil
}

// MustParse is Parse for literals; it panics on bad input.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// HasScale reports whether d fits in two fractional digits.
func HasScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(Scale))
}

// Wire renders an amount the way it is serialized: fixed two digits.
func Wire(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

// Format renders an amount for operators, e.g. "Rp 30.000" or
// "Rp 12.500,50". Negative amounts carry a leading '-'.
func Format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole := d.Truncate(0)
	frac := d.Sub(whole).Shift(Scale).Round(0).IntPart()

	out := sign + "Rp " + groupThousands(whole.String())
	if frac != 0 {
		out += fmt.Sprintf(",%02d", frac)
	}
	return out
}

// FormatDelta renders a price delta: "No extra cost", "+Rp 8.000" or
// "-Rp 5.000".
func FormatDelta(d decimal.Decimal) string {
	switch {
	case d.IsZero():
		return "No extra cost"
	case d.IsPositive():
		return "+" + Format(d)
	default:
		return Format(d)
	}
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
