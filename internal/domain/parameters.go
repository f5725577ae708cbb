package domain

import "github.com/shopspring/decimal"

// PolicyParameters describes the insurance-wrapped product (Fondspolice).
// All rates are fractions, not percentages.
type PolicyParameters struct {
	InitialContribution decimal.Decimal `json:"initial_contribution"`
	YieldEquity         decimal.Decimal `json:"yield_equity"`
	YieldMixed          decimal.Decimal `json:"yield_mixed"`
	YieldBond           decimal.Decimal `json:"yield_bond"`
	ExemptionRate       decimal.Decimal `json:"exemption_rate"`  // Teilfreistellung
	CostRate            decimal.Decimal `json:"cost_rate"`       // Effektivkosten p.a.
	PayoutTaxRate       decimal.Decimal `json:"payout_tax_rate"` // personal rate at payout
}

// Yield returns the annual return for the given fund category.
func (p PolicyParameters) Yield(c FundCategory) decimal.Decimal {
	switch c {
	case Mixed:
		return p.YieldMixed
	case Bond:
		return p.YieldBond
	default:
		return p.YieldEquity
	}
}

// DepotParameters describes the direct fund savings plan (Fondssparplan).
type DepotParameters struct {
	InitialContribution decimal.Decimal `json:"initial_contribution"`
	YieldEquity         decimal.Decimal `json:"yield_equity"`
	YieldMixed          decimal.Decimal `json:"yield_mixed"`
	YieldBond           decimal.Decimal `json:"yield_bond"`
	ExemptionEquity     decimal.Decimal `json:"exemption_equity"`
	ExemptionMixed      decimal.Decimal `json:"exemption_mixed"`
	ExemptionBond       decimal.Decimal `json:"exemption_bond"`
	CostRate            decimal.Decimal `json:"cost_rate"`
	Allowance           decimal.Decimal `json:"allowance"`        // Freistellungsauftrag in EUR
	WithholdingRate     decimal.Decimal `json:"withholding_rate"` // Abgeltungsteuer incl. Soli
	BaseRate            decimal.Decimal `json:"base_rate"`        // Basiszins

	// Carried for persistence only; no formula reads them.
	FrontLoadRate         decimal.Decimal `json:"front_load_rate"`
	PayoutWithholdingRate decimal.Decimal `json:"payout_withholding_rate"`
}

// Yield returns the annual return for the given fund category.
func (p DepotParameters) Yield(c FundCategory) decimal.Decimal {
	switch c {
	case Mixed:
		return p.YieldMixed
	case Bond:
		return p.YieldBond
	default:
		return p.YieldEquity
	}
}

// Exemption returns the Teilfreistellung rate for the given fund category.
func (p DepotParameters) Exemption(c FundCategory) decimal.Decimal {
	switch c {
	case Mixed:
		return p.ExemptionMixed
	case Bond:
		return p.ExemptionBond
	default:
		return p.ExemptionEquity
	}
}

// ReallocationEvent is a single Umschichtung. Year is the 0-based index into
// the projection; Target is nil when the event does not switch fund category.
type ReallocationEvent struct {
	Year     int             `json:"year"`
	Fraction decimal.Decimal `json:"fraction"`
	Target   *FundCategory   `json:"target,omitempty"`
}

// RunInput is everything a projection run consumes.
type RunInput struct {
	Horizon int                 `json:"horizon"` // last year index, N >= 0
	Policy  PolicyParameters    `json:"policy"`
	Depot   DepotParameters     `json:"depot"`
	Events  []ReallocationEvent `json:"events"`
}

// Years returns the number of ledger rows a run produces.
func (r RunInput) Years() int {
	return r.Horizon + 1
}
