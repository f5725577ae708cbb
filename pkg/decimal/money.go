package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	thousandsSep = "."
	decimalSep   = ","
	euroSuffix   = " €"
)

// Money represents a euro amount with full decimal precision. Rounding only
// happens for display.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds to cents, half away from zero.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two decimals in plain notation.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount the German way, e.g. "1.234,56 €".
func (m Money) Format() string {
	return GermanNumber(m.Decimal, 2) + euroSuffix
}

// FormatEuro is shorthand for NewMoneyFromDecimal(d).Format().
func FormatEuro(d decimal.Decimal) string {
	return NewMoneyFromDecimal(d).Format()
}

// FormatPercent renders a fraction as a German percentage, e.g. 0.2637 as
// "26,37 %".
func FormatPercent(fraction decimal.Decimal) string {
	return GermanNumber(fraction.Mul(decimal.NewFromInt(100)), 2) + " %"
}

// GermanNumber formats d with the given number of decimals, "." as the
// thousands separator and "," as the decimal separator.
func GermanNumber(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i+1:]
	}
	if sign != "" && strings.Trim(intPart+frac, "0") == "" {
		sign = ""
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(thousandsSep)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(decimalSep)
		b.WriteString(frac)
	}
	return b.String()
}
