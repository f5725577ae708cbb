package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	money "github.com/fondsvergleich/vergleichsrechner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter prints the assumptions, both ledgers and the
// payout taxation.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func num(d decimal.Decimal) string { return money.GermanNumber(d, 2) }

func (c ConsoleVerboseFormatter) Format(result *domain.ComparisonResult) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 80)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "VERGLEICHSRECHNER EINMALANLAGE: FONDSPOLICE VS. FONDSSPARPLAN")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "ANNAHMEN")
	for _, a := range GenerateAssumptions(result.Input) {
		fmt.Fprintf(&buf, "  • %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "FONDSPOLICE")
	fmt.Fprintln(&buf, strings.Repeat("-", 80))
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Jahr\tFonds\tJahresbeginn\tWertsteigerung\tKosten\tJahresende n. K.\tUmschichten/Auszahlen\t")
	for _, r := range result.PolicyLedger {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Year+1, r.Category.GermanName(), num(r.Opening), num(r.Growth), num(r.Cost), num(r.ClosingAfterCost), num(r.ReallocatedOrPaid))
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	fmt.Fprintln(&buf)

	p := result.Summary.PolicyPayout
	fmt.Fprintln(&buf, "Auszahlung Fondspolice (Halbeinkünfteverfahren)")
	fmt.Fprintf(&buf, "  Auszahlung:            %s\n", FormatCurrency(p.Payout))
	fmt.Fprintf(&buf, "  Summe Beiträge:        %s\n", FormatCurrency(p.Contributions))
	fmt.Fprintf(&buf, "  Erträge:               %s\n", FormatCurrency(p.Gain))
	fmt.Fprintf(&buf, "  Teilfreistellung:      %s\n", FormatCurrency(p.ExemptedGain))
	fmt.Fprintf(&buf, "  zu besteuern:          %s\n", FormatCurrency(p.TaxableGain))
	fmt.Fprintf(&buf, "  davon Hälfte:          %s\n", FormatCurrency(p.HalfIncomeBase))
	fmt.Fprintf(&buf, "  Steuerlast:            %s\n", FormatCurrency(p.TaxDue))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "FONDSSPARPLAN")
	fmt.Fprintln(&buf, strings.Repeat("-", 80))
	tw = tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Jahr\tFonds\tJahresbeginn\tWertsteigerung\tVorabpauschale\tSteuer lfd.\tJahresende n. K.\tUmschichten\tSteuer Umschicht.\tKapital n. St.\t")
	for _, r := range result.DepotLedger {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Year+1, r.Category.GermanName(), num(r.Opening), num(r.Growth), num(r.AdvanceTax), num(r.InterimWithholdingTax),
			num(r.ClosingAfterCost), num(r.Reallocated), num(r.FinalWithholdingTax), num(r.NetCapitalAfterTax))
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	fmt.Fprintln(&buf)

	summary, err := ConsoleFormatter{}.Format(result)
	if err != nil {
		return nil, err
	}
	buf.Write(summary)
	return buf.Bytes(), nil
}
