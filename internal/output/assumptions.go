package output

import (
	"fmt"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"github.com/shopspring/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// GenerateAssumptions lists the key parameters of a run in German.
func GenerateAssumptions(in domain.RunInput) []string {
	p, d := in.Policy, in.Depot
	lines := []string{
		fmt.Sprintf("Laufzeit: %d Jahre", in.Years()),
		fmt.Sprintf("Fondspolice: Einmalbeitrag %s, Rendite %s / %s / %s (Aktien / Misch / Renten)",
			FormatCurrency(p.InitialContribution), FormatPercentage(p.YieldEquity), FormatPercentage(p.YieldMixed), FormatPercentage(p.YieldBond)),
		fmt.Sprintf("Fondspolice: Effektivkosten %s p.a., Teilfreistellung %s, Steuersatz %s (Halbeinkünfteverfahren)",
			FormatPercentage(p.CostRate), FormatPercentage(p.ExemptionRate), FormatPercentage(p.PayoutTaxRate)),
		fmt.Sprintf("Fondssparplan: Einmalbeitrag %s, Rendite %s / %s / %s (Aktien / Misch / Renten)",
			FormatCurrency(d.InitialContribution), FormatPercentage(d.YieldEquity), FormatPercentage(d.YieldMixed), FormatPercentage(d.YieldBond)),
		fmt.Sprintf("Fondssparplan: Effektivkosten %s p.a., Basiszins %s, Abgeltungsteuer %s, Freistellungsauftrag %s",
			FormatPercentage(d.CostRate), FormatPercentage(d.BaseRate), FormatPercentage(d.WithholdingRate), FormatCurrency(d.Allowance)),
		fmt.Sprintf("Fondssparplan: Teilfreistellung %s / %s / %s (Aktien / Misch / Renten)",
			FormatPercentage(d.ExemptionEquity), FormatPercentage(d.ExemptionMixed), FormatPercentage(d.ExemptionBond)),
	}
	if len(in.Events) == 0 {
		return append(lines, "Keine Umschichtungen")
	}
	for _, ev := range in.Events {
		line := fmt.Sprintf("Umschichtung in Jahr %d: %s", ev.Year+1, FormatPercentage(ev.Fraction))
		if ev.Target != nil {
			line += " in " + ev.Target.GermanName()
		}
		lines = append(lines, line)
	}
	return lines
}
