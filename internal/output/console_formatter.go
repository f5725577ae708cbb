package output

import (
	"bytes"
	"fmt"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
)

// ConsoleFormatter prints the three headline figures and the recommendation.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	var buf bytes.Buffer
	s := result.Summary
	fmt.Fprintln(&buf, "VERGLEICH FONDSPOLICE / FONDSSPARPLAN")
	fmt.Fprintln(&buf, "=====================================")
	fmt.Fprintf(&buf, "Laufzeit: %d Jahre\n", result.Horizon+1)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Fondspolice Rentenkapital: %s\n", FormatCurrency(s.PolicyGross))
	fmt.Fprintf(&buf, "Fondspolice:               %s\n", FormatCurrency(s.PolicyFinalNet))
	fmt.Fprintf(&buf, "Fondssparplan:             %s\n", FormatCurrency(s.DepotFinalNet))

	rec := AnalyzeComparison(result)
	fmt.Fprintln(&buf)
	if rec.Tie {
		fmt.Fprintln(&buf, "Beide Varianten sind gleichwertig.")
	} else {
		fmt.Fprintf(&buf, "Vorteil: %s (+%s / %s)\n", rec.Product, FormatCurrency(rec.Advantage), formatPercentPoints(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}
