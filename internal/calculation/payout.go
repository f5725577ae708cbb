package calculation

import (
	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"github.com/shopspring/decimal"
)

// halfIncomeDivisor implements the Halbeinkünfteverfahren: half the taxable
// gain is subject to the personal rate.
var halfIncomeDivisor = decimal.NewFromInt(2)

// PayoutTaxCalculator derives the net payout figures of both products.
type PayoutTaxCalculator struct{}

// NewPayoutTaxCalculator creates a payout tax calculator.
func NewPayoutTaxCalculator() *PayoutTaxCalculator {
	return &PayoutTaxCalculator{}
}

// Policy taxes a policy payout. Gains may be negative, in which case the
// exemption and tax come out negative as well.
func (c *PayoutTaxCalculator) Policy(payout, contributions decimal.Decimal, params domain.PolicyParameters) domain.PayoutBreakdown {
	gain := payout.Sub(contributions)
	exempted := gain.Mul(params.ExemptionRate)
	taxable := gain.Sub(exempted)
	base := taxable.Div(halfIncomeDivisor)
	tax := base.Mul(params.PayoutTaxRate)
	return domain.PayoutBreakdown{
		Payout:         payout,
		Contributions:  contributions,
		Gain:           gain,
		ExemptedGain:   exempted,
		TaxableGain:    taxable,
		HalfIncomeBase: base,
		TaxDue:         tax,
		Net:            payout.Sub(tax),
	}
}

// Depot returns the net capital after tax of the final depot row. The
// projector has already folded the payout tax into the ledger.
func (c *PayoutTaxCalculator) Depot(ledger []domain.DepotRow) decimal.Decimal {
	if len(ledger) == 0 {
		return decimal.Zero
	}
	return ledger[len(ledger)-1].NetCapitalAfterTax
}

// Summarize builds the headline figures from both ledgers.
func (c *PayoutTaxCalculator) Summarize(policy []domain.PolicyRow, depot []domain.DepotRow, params domain.PolicyParameters) domain.Summary {
	gross := decimal.Zero
	if len(policy) > 0 {
		gross = policy[len(policy)-1].ClosingAfterCost
	}
	breakdown := c.Policy(gross, params.InitialContribution, params)
	return domain.Summary{
		PolicyGross:    gross,
		PolicyFinalNet: breakdown.Net,
		DepotFinalNet:  c.Depot(depot),
		PolicyPayout:   breakdown,
	}
}
