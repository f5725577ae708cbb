package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
)

// PolicyCSVHeader lists the Fondspolice ledger columns.
var PolicyCSVHeader = []string{
	"Jahr", "Fonds", "Jahresbeginn", "Rendite", "Wertsteigerung", "Jahresende",
	"Kosten Fondsguthaben", "Jahresende nach Kosten", "Einzahlung", "UmschichtungJN",
	"Umschichtung", "Umschichten oder Auszahlen", "Summe Beiträge", "Erträge",
	"Teilfreistellung", "zu besteuern", "Hälfte", "Steuerlast",
}

// DepotCSVHeader lists the Fondssparplan ledger columns. Duplicate German
// labels of the spreadsheet carry a suffix.
var DepotCSVHeader = []string{
	"Jahr", "Fonds", "Jahresbeginn", "Rendite", "Wertsteigerung", "Jahresende",
	"Kosten auf Fondsguthaben", "Basisertrag", "Vorabpauschale", "Vorabpauschale laufend",
	"Teilfreistellung Vorabpauschale", "zu besteuern Vorabpauschale", "Freistellungsauftrag",
	"Freistellung übrig", "danach zu besteuern", "Steuerlast", "Jahresende nach Kosten",
	"Einzahlung", "UmschichtungJN", "Umschichtung", "Umschichten", "Erträge laufend",
	"Erträge", "minus Vorabpauschale", "Teilfreistellung Umschichtung",
	"zu besteuern Umschichtung", "nach Freistellungsauftrag", "Steuerlast Umschichtung",
	"Kapital abzüglich Steuer",
}

// PolicyCSVExporter writes the Fondspolice ledger, one row per year.
type PolicyCSVExporter struct{}

func (c PolicyCSVExporter) Name() string { return "policy-csv" }

func (c PolicyCSVExporter) Format(result *domain.ComparisonResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(PolicyCSVHeader); err != nil {
		return nil, err
	}
	for _, r := range result.PolicyLedger {
		row := []string{
			intToString(r.Year + 1),
			r.Category.GermanName(),
			cell(r.Opening),
			rateCell(r.ReturnRate),
			cell(r.Growth),
			cell(r.ClosingBeforeCost),
			cell(r.Cost),
			cell(r.ClosingAfterCost),
			cell(r.Contribution),
			boolToString(r.Triggered),
			rateCell(r.Fraction),
			cell(r.ReallocatedOrPaid),
			cell(r.TotalContributions),
			cell(r.Gain),
			cell(r.ExemptedGain),
			cell(r.TaxableGain),
			cell(r.HalfIncomeBase),
			cell(r.TaxDue),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// DepotCSVExporter writes the Fondssparplan ledger, one row per year.
type DepotCSVExporter struct{}

func (c DepotCSVExporter) Name() string { return "depot-csv" }

func (c DepotCSVExporter) Format(result *domain.ComparisonResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(DepotCSVHeader); err != nil {
		return nil, err
	}
	for _, r := range result.DepotLedger {
		row := []string{
			intToString(r.Year + 1),
			r.Category.GermanName(),
			cell(r.Opening),
			rateCell(r.ReturnRate),
			cell(r.Growth),
			cell(r.ClosingBeforeCost),
			cell(r.Cost),
			cell(r.BasisYield),
			cell(r.AdvanceTax),
			cell(r.CumulativeAdvanceTax),
			cell(r.AdvanceTaxExemption),
			cell(r.TaxableAdvanceTax),
			cell(r.Allowance),
			cell(r.RemainingAllowance),
			cell(r.PostAllowanceAdvanceTax),
			cell(r.InterimWithholdingTax),
			cell(r.ClosingAfterCost),
			cell(r.Contribution),
			boolToString(r.Triggered),
			rateCell(r.Fraction),
			cell(r.Reallocated),
			cell(r.CumulativeUnrealizedGain),
			cell(r.RealizedGain),
			cell(r.GainNetOfAdvanceTax),
			cell(r.RealizedGainExemption),
			cell(r.TaxableRealizedGain),
			cell(r.PostAllowanceRealized),
			cell(r.FinalWithholdingTax),
			cell(r.NetCapitalAfterTax),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
