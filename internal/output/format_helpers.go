package output

import (
	"strconv"

	money "github.com/fondsvergleich/vergleichsrechner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as euros, e.g. "1.234,56 €".
func FormatCurrency(amount decimal.Decimal) string { return money.FormatEuro(amount) }

// FormatPercentage formats a fraction as a percentage, e.g. "8,00 %".
func FormatPercentage(fraction decimal.Decimal) string { return money.FormatPercent(fraction) }

// formatPercentPoints formats a value that is already in percent.
func formatPercentPoints(pct decimal.Decimal) string { return money.GermanNumber(pct, 2) + " %" }

// cell renders a ledger amount for CSV: full precision rounded to cents,
// plain notation.
func cell(d decimal.Decimal) string { return d.StringFixed(2) }

// rateCell keeps rates unrounded.
func rateCell(d decimal.Decimal) string { return d.String() }

func intToString(i int) string { return strconv.Itoa(i) }

// boolToString renders a trigger flag the way the ledgers show it: 1 or 0.
func boolToString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
