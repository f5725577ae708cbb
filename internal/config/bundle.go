package config

import (
	"fmt"
	"strings"

	"github.com/fondsvergleich/vergleichsrechner/internal/calculation"
	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Reallocation is one persisted Umschichtung. Jahr is the 0-based year index
// and Anteil a fraction, not a percentage.
type Reallocation struct {
	Year     int     `json:"jahr" yaml:"jahr"`
	Fraction float64 `json:"anteil" yaml:"anteil"`
	Fund     string  `json:"fonds,omitempty" yaml:"fonds,omitempty"`
}

// AutoReallocation asks for Count evenly spaced reallocations plus a final
// full payout. Only used when no explicit reallocations are given.
type AutoReallocation struct {
	Count    int     `json:"anzahl" yaml:"anzahl"`
	Fraction float64 `json:"anteil" yaml:"anteil"`
	Fund     string  `json:"fonds,omitempty" yaml:"fonds,omitempty"`
}

// ParameterBundle is the flat, percent-scaled parameter file.
type ParameterBundle struct {
	PolicyContribution float64 `json:"einmalbeitrag_police" yaml:"einmalbeitrag_police"`
	PolicyYieldEquity  float64 `json:"rendite_aktienfonds_police" yaml:"rendite_aktienfonds_police"`
	PolicyYieldMixed   float64 `json:"rendite_mischfonds_police" yaml:"rendite_mischfonds_police"`
	PolicyYieldBond    float64 `json:"rendite_rentenfonds_police" yaml:"rendite_rentenfonds_police"`
	PolicyExemption    float64 `json:"teilfreistellung_police" yaml:"teilfreistellung_police"`
	PolicyCost         float64 `json:"effektivkosten_police" yaml:"effektivkosten_police"`
	PolicyTaxRate      float64 `json:"steuersatz_police" yaml:"steuersatz_police"`

	DepotContribution      float64 `json:"einmalbeitrag_sparplan" yaml:"einmalbeitrag_sparplan"`
	DepotYieldEquity       float64 `json:"rendite_aktienfonds_sparplan" yaml:"rendite_aktienfonds_sparplan"`
	DepotYieldMixed        float64 `json:"rendite_mischfonds_sparplan" yaml:"rendite_mischfonds_sparplan"`
	DepotYieldBond         float64 `json:"rendite_rentenfonds_sparplan" yaml:"rendite_rentenfonds_sparplan"`
	DepotAllowance         float64 `json:"freistellungsauftrag_sparplan" yaml:"freistellungsauftrag_sparplan"`
	DepotExemptionEquity   float64 `json:"teilfreistellung_aktienfonds_sparplan" yaml:"teilfreistellung_aktienfonds_sparplan"`
	DepotExemptionMixed    float64 `json:"teilfreistellung_mischfonds_sparplan" yaml:"teilfreistellung_mischfonds_sparplan"`
	DepotExemptionBond     float64 `json:"teilfreistellung_rentenfonds_sparplan" yaml:"teilfreistellung_rentenfonds_sparplan"`
	DepotBaseRate          float64 `json:"basiszins_sparplan" yaml:"basiszins_sparplan"`
	DepotCost              float64 `json:"effektivkosten_sparplan" yaml:"effektivkosten_sparplan"`
	DepotFrontLoad         float64 `json:"ausgabeaufschlag_sparplan" yaml:"ausgabeaufschlag_sparplan"`
	DepotWithholding       float64 `json:"steuerlast_sparplan" yaml:"steuerlast_sparplan"`
	DepotPayoutWithholding float64 `json:"steuerlast_auszahlung_sparplan" yaml:"steuerlast_auszahlung_sparplan"`

	Term          int               `json:"laufzeit" yaml:"laufzeit"` // years, horizon + 1
	Reallocations []Reallocation    `json:"umschichtungen" yaml:"umschichtungen"`
	Auto          *AutoReallocation `json:"auto_umschichtung,omitempty" yaml:"auto_umschichtung,omitempty"`
}

func percent(p float64) decimal.Decimal {
	return decimal.NewFromFloat(p).Div(hundred)
}

func toPercent(d decimal.Decimal) float64 {
	return d.Mul(hundred).InexactFloat64()
}

func parseFund(name string) (*domain.FundCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	c, err := domain.ParseFundCategory(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBundle, err)
	}
	return &c, nil
}

// ToRunInput converts the bundle into fractions and 0-based events.
func (b ParameterBundle) ToRunInput() (domain.RunInput, error) {
	horizon := b.Term - 1
	input := domain.RunInput{
		Horizon: horizon,
		Policy: domain.PolicyParameters{
			InitialContribution: decimal.NewFromFloat(b.PolicyContribution),
			YieldEquity:         percent(b.PolicyYieldEquity),
			YieldMixed:          percent(b.PolicyYieldMixed),
			YieldBond:           percent(b.PolicyYieldBond),
			ExemptionRate:       percent(b.PolicyExemption),
			CostRate:            percent(b.PolicyCost),
			PayoutTaxRate:       percent(b.PolicyTaxRate),
		},
		Depot: domain.DepotParameters{
			InitialContribution:   decimal.NewFromFloat(b.DepotContribution),
			YieldEquity:           percent(b.DepotYieldEquity),
			YieldMixed:            percent(b.DepotYieldMixed),
			YieldBond:             percent(b.DepotYieldBond),
			ExemptionEquity:       percent(b.DepotExemptionEquity),
			ExemptionMixed:        percent(b.DepotExemptionMixed),
			ExemptionBond:         percent(b.DepotExemptionBond),
			CostRate:              percent(b.DepotCost),
			Allowance:             decimal.NewFromFloat(b.DepotAllowance),
			WithholdingRate:       percent(b.DepotWithholding),
			BaseRate:              percent(b.DepotBaseRate),
			FrontLoadRate:         percent(b.DepotFrontLoad),
			PayoutWithholdingRate: percent(b.DepotPayoutWithholding),
		},
	}

	if len(b.Reallocations) == 0 && b.Auto != nil {
		target, err := parseFund(b.Auto.Fund)
		if err != nil {
			return domain.RunInput{}, fmt.Errorf("auto_umschichtung: %w", err)
		}
		input.Events = calculation.DistributeReallocations(horizon, b.Auto.Count, decimal.NewFromFloat(b.Auto.Fraction), target)
		return input, nil
	}

	input.Events = make([]domain.ReallocationEvent, 0, len(b.Reallocations))
	for i, r := range b.Reallocations {
		target, err := parseFund(r.Fund)
		if err != nil {
			return domain.RunInput{}, fmt.Errorf("umschichtungen[%d]: %w", i, err)
		}
		input.Events = append(input.Events, domain.ReallocationEvent{
			Year:     r.Year,
			Fraction: decimal.NewFromFloat(r.Fraction),
			Target:   target,
		})
	}
	return input, nil
}

// BundleFromRunInput converts a run input back into its persisted form.
func BundleFromRunInput(in domain.RunInput) ParameterBundle {
	b := ParameterBundle{
		PolicyContribution: in.Policy.InitialContribution.InexactFloat64(),
		PolicyYieldEquity:  toPercent(in.Policy.YieldEquity),
		PolicyYieldMixed:   toPercent(in.Policy.YieldMixed),
		PolicyYieldBond:    toPercent(in.Policy.YieldBond),
		PolicyExemption:    toPercent(in.Policy.ExemptionRate),
		PolicyCost:         toPercent(in.Policy.CostRate),
		PolicyTaxRate:      toPercent(in.Policy.PayoutTaxRate),

		DepotContribution:      in.Depot.InitialContribution.InexactFloat64(),
		DepotYieldEquity:       toPercent(in.Depot.YieldEquity),
		DepotYieldMixed:        toPercent(in.Depot.YieldMixed),
		DepotYieldBond:         toPercent(in.Depot.YieldBond),
		DepotAllowance:         in.Depot.Allowance.InexactFloat64(),
		DepotExemptionEquity:   toPercent(in.Depot.ExemptionEquity),
		DepotExemptionMixed:    toPercent(in.Depot.ExemptionMixed),
		DepotExemptionBond:     toPercent(in.Depot.ExemptionBond),
		DepotBaseRate:          toPercent(in.Depot.BaseRate),
		DepotCost:              toPercent(in.Depot.CostRate),
		DepotFrontLoad:         toPercent(in.Depot.FrontLoadRate),
		DepotWithholding:       toPercent(in.Depot.WithholdingRate),
		DepotPayoutWithholding: toPercent(in.Depot.PayoutWithholdingRate),

		Term:          in.Horizon + 1,
		Reallocations: make([]Reallocation, 0, len(in.Events)),
	}
	for _, ev := range in.Events {
		r := Reallocation{Year: ev.Year, Fraction: ev.Fraction.InexactFloat64()}
		if ev.Target != nil {
			r.Fund = ev.Target.GermanName()
		}
		b.Reallocations = append(b.Reallocations, r)
	}
	return b
}
