package util

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseAmountToCents converts a user-entered amount like "150.00" into
// centavos. The decimal parse avoids float drift on values like 0.29.
// Fractions beyond two places are rejected rather than silently rounded.
func ParseAmountToCents(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	cents := d.Mul(hundred)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
	}
	return cents.IntPart(), nil
}

// FormatCents renders centavos as a two-decimal string, e.g. 15000 -> "150.00".
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
