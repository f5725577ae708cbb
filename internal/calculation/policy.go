package calculation

import (
	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"github.com/shopspring/decimal"
)

// PolicyProjector computes the Fondspolice ledger.
type PolicyProjector struct {
	Params domain.PolicyParameters
	Payout *PayoutTaxCalculator
}

// NewPolicyProjector creates a projector for the given parameters.
func NewPolicyProjector(params domain.PolicyParameters) *PolicyProjector {
	return &PolicyProjector{
		Params: params,
		Payout: NewPayoutTaxCalculator(),
	}
}

// Project returns one row per year 0..N. The final row is the payout row:
// the full balance after cost is paid out and taxed under the
// Halbeinkünfteverfahren. With N = 0 the first row is also the payout row.
func (pp *PolicyProjector) Project(schedule Schedule, categories []domain.FundCategory) []domain.PolicyRow {
	horizon := schedule.Horizon()
	if horizon < 0 {
		return nil
	}
	rows := make([]domain.PolicyRow, horizon+1)
	for i := range rows {
		category := categories[i]
		row := domain.PolicyRow{
			Year:         i,
			Category:     category,
			ReturnRate:   pp.Params.Yield(category),
			Contribution: decimal.Zero,
		}
		if i == 0 {
			row.Opening = pp.Params.InitialContribution
			row.Contribution = pp.Params.InitialContribution
		} else {
			row.Opening = rows[i-1].ClosingAfterCost
		}

		row.Growth = row.Opening.Mul(row.ReturnRate)
		row.ClosingBeforeCost = row.Opening.Add(row.Growth)
		row.Cost = row.ClosingBeforeCost.Mul(pp.Params.CostRate)
		row.ClosingAfterCost = row.ClosingBeforeCost.Sub(row.Cost)

		entry := schedule[i]
		row.Triggered = entry.Triggered
		if i == horizon {
			row.Fraction = decimal.NewFromInt(1)
		} else {
			row.Fraction = entry.Multiplier()
		}
		row.ReallocatedOrPaid = row.ClosingAfterCost.Mul(row.Fraction)

		if i == horizon {
			pp.applyPayoutTax(&row)
		}
		rows[i] = row
	}
	return rows
}

func (pp *PolicyProjector) applyPayoutTax(row *domain.PolicyRow) {
	b := pp.Payout.Policy(row.ReallocatedOrPaid, pp.Params.InitialContribution, pp.Params)
	row.Terminal = true
	row.TotalContributions = b.Contributions
	row.Gain = b.Gain
	row.ExemptedGain = b.ExemptedGain
	row.TaxableGain = b.TaxableGain
	row.HalfIncomeBase = b.HalfIncomeBase
	row.TaxDue = b.TaxDue
}
