package domain

import "github.com/shopspring/decimal"

// PolicyRow is one year of the Fondspolice ledger.
type PolicyRow struct {
	Year     int          `json:"year"`
	Category FundCategory `json:"category"`

	Opening           decimal.Decimal `json:"opening"`
	ReturnRate        decimal.Decimal `json:"return_rate"`
	Growth            decimal.Decimal `json:"growth"`
	ClosingBeforeCost decimal.Decimal `json:"closing_before_cost"`
	Cost              decimal.Decimal `json:"cost"`
	ClosingAfterCost  decimal.Decimal `json:"closing_after_cost"`
	Contribution      decimal.Decimal `json:"contribution"`

	Triggered         bool            `json:"triggered"`
	Fraction          decimal.Decimal `json:"fraction"`
	ReallocatedOrPaid decimal.Decimal `json:"reallocated_or_paid"`

	// Populated on the terminal row only.
	Terminal           bool            `json:"terminal"`
	TotalContributions decimal.Decimal `json:"total_contributions"`
	Gain               decimal.Decimal `json:"gain"`
	ExemptedGain       decimal.Decimal `json:"exempted_gain"`
	TaxableGain        decimal.Decimal `json:"taxable_gain"`
	HalfIncomeBase     decimal.Decimal `json:"half_income_base"`
	TaxDue             decimal.Decimal `json:"tax_due"`
}

// DepotRow is one year of the Fondssparplan ledger.
type DepotRow struct {
	Year     int          `json:"year"`
	Category FundCategory `json:"category"`

	Opening           decimal.Decimal `json:"opening"`
	ReturnRate        decimal.Decimal `json:"return_rate"`
	Growth            decimal.Decimal `json:"growth"`
	ClosingBeforeCost decimal.Decimal `json:"closing_before_cost"`
	Cost              decimal.Decimal `json:"cost"`

	// Vorabpauschale flow
	BasisYield              decimal.Decimal `json:"basis_yield"`
	AdvanceTax              decimal.Decimal `json:"advance_tax"`
	CumulativeAdvanceTax    decimal.Decimal `json:"cumulative_advance_tax"`
	AdvanceTaxExemption     decimal.Decimal `json:"advance_tax_exemption"`
	TaxableAdvanceTax       decimal.Decimal `json:"taxable_advance_tax"`
	Allowance               decimal.Decimal `json:"allowance"`
	RemainingAllowance      decimal.Decimal `json:"remaining_allowance"`
	PostAllowanceAdvanceTax decimal.Decimal `json:"post_allowance_advance_tax"`
	InterimWithholdingTax   decimal.Decimal `json:"interim_withholding_tax"`
	ClosingAfterCost        decimal.Decimal `json:"closing_after_cost"`
	Contribution            decimal.Decimal `json:"contribution"`

	// Umschichtung flow
	Triggered                bool            `json:"triggered"`
	Fraction                 decimal.Decimal `json:"fraction"`
	Reallocated              decimal.Decimal `json:"reallocated"`
	CumulativeUnrealizedGain decimal.Decimal `json:"cumulative_unrealized_gain"`
	RealizedGain             decimal.Decimal `json:"realized_gain"`
	GainNetOfAdvanceTax      decimal.Decimal `json:"gain_net_of_advance_tax"`
	RealizedGainExemption    decimal.Decimal `json:"realized_gain_exemption"`
	TaxableRealizedGain      decimal.Decimal `json:"taxable_realized_gain"`
	PostAllowanceRealized    decimal.Decimal `json:"post_allowance_realized"`
	FinalWithholdingTax      decimal.Decimal `json:"final_withholding_tax"`
	NetCapitalAfterTax       decimal.Decimal `json:"net_capital_after_tax"`
}

// PayoutBreakdown is the Halbeinkünfteverfahren computation on the policy's
// final balance.
type PayoutBreakdown struct {
	Payout         decimal.Decimal `json:"payout"`
	Contributions  decimal.Decimal `json:"contributions"`
	Gain           decimal.Decimal `json:"gain"`
	ExemptedGain   decimal.Decimal `json:"exempted_gain"`
	TaxableGain    decimal.Decimal `json:"taxable_gain"`
	HalfIncomeBase decimal.Decimal `json:"half_income_base"`
	TaxDue         decimal.Decimal `json:"tax_due"`
	Net            decimal.Decimal `json:"net"`
}

// Summary holds the headline figures of a run.
type Summary struct {
	PolicyGross    decimal.Decimal `json:"policy_gross"`     // Fondspolice Rentenkapital
	PolicyFinalNet decimal.Decimal `json:"policy_final_net"` // Fondspolice
	DepotFinalNet  decimal.Decimal `json:"depot_final_net"`  // Fondssparplan
	PolicyPayout   PayoutBreakdown `json:"policy_payout"`
}

// Advantage returns policy net minus depot net; positive favours the policy.
func (s Summary) Advantage() decimal.Decimal {
	return s.PolicyFinalNet.Sub(s.DepotFinalNet)
}

// ComparisonResult is the complete output of a run.
type ComparisonResult struct {
	Horizon      int         `json:"horizon"`
	Input        RunInput    `json:"input"`
	PolicyLedger []PolicyRow `json:"policy_ledger"`
	DepotLedger  []DepotRow  `json:"depot_ledger"`
	Summary      Summary     `json:"summary"`
}
