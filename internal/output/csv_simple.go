package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
)

// CSVSummarizer writes the headline figures, one row per figure.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(result *domain.ComparisonResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	s := result.Summary
	p := s.PolicyPayout
	rows := [][]string{
		{"Kennzahl", "Wert"},
		{"Laufzeit", intToString(result.Horizon + 1)},
		{"Fondspolice Rentenkapital", cell(s.PolicyGross)},
		{"Fondspolice", cell(s.PolicyFinalNet)},
		{"Fondssparplan", cell(s.DepotFinalNet)},
		{"Differenz", cell(s.Advantage())},
		{"Erträge Fondspolice", cell(p.Gain)},
		{"Steuerlast Fondspolice", cell(p.TaxDue)},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
