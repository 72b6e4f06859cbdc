package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DecimalPlaces is the precision kept for weight/volume sectors.
const DecimalPlaces = 3

// NormalizeProductName trims surrounding whitespace. Case is preserved for display;
// identity comparisons go through NameKey.
func NormalizeProductName(raw string) string {
	return strings.TrimSpace(raw)
}

// NameKey is the case-insensitive identity of a product name.
func NameKey(name string) string {
	return strings.ToLower(NormalizeProductName(name))
}

// ParseIntegerQuantity reads a unit count typed by the user. Both "," and "." are
// accepted as decimal separator; the value is rounded to the nearest integer.
// Anything that is not a finite, strictly positive number yields zero.
func ParseIntegerQuantity(raw string) decimal.Decimal {
	v, ok := parsePositive(raw)
	if !ok {
		return decimal.Zero
	}
	return v.Round(0)
}

// ParseDecimalQuantity is ParseIntegerQuantity for weight/volume sectors:
// the value is rounded to three fraction digits instead.
func ParseDecimalQuantity(raw string) decimal.Decimal {
	v, ok := parsePositive(raw)
	if !ok {
		return decimal.Zero
	}
	return v.Round(DecimalPlaces)
}

// ParseQuantity parses raw with the rule of the given sector.
func ParseQuantity(s Sector, raw string) decimal.Decimal {
	if s.Decimal {
		return ParseDecimalQuantity(raw)
	}
	return ParseIntegerQuantity(raw)
}

// FormatQuantity renders a stored quantity the way the sector tables show it.
func FormatQuantity(s Sector, q decimal.Decimal) string {
	if s.Decimal {
		return q.StringFixed(DecimalPlaces)
	}
	return q.Round(0).StringFixed(0)
}

// FormInputValue renders a quantity for pre-filling a form field. Zero leaves the
// field empty.
func FormInputValue(s Sector, q decimal.Decimal) string {
	if !q.IsPositive() {
		return ""
	}
	if s.Decimal {
		return q.Round(DecimalPlaces).String()
	}
	return q.Round(0).String()
}

func parsePositive(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.Replace(s, ",", ".", 1)

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}
