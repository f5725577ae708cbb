package calculation

import (
	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"github.com/shopspring/decimal"
)

// basisYieldShare is the statutory 70 % of the Basiszins used for the
// Basisertrag.
var basisYieldShare = decimal.NewFromFloat(0.7)

// DepotProjector computes the Fondssparplan ledger including the annual
// Vorabpauschale and the taxation of each Umschichtung.
type DepotProjector struct {
	Params domain.DepotParameters
}

// NewDepotProjector creates a projector for the given parameters.
func NewDepotProjector(params domain.DepotParameters) *DepotProjector {
	return &DepotProjector{Params: params}
}

// BasisYield returns opening × 0.7 × base rate.
func BasisYield(opening, baseRate decimal.Decimal) decimal.Decimal {
	return opening.Mul(basisYieldShare).Mul(baseRate)
}

// AdvanceTax returns the Vorabpauschale for a year: zero while growth lies
// within [0, basisYield] (both bounds inclusive), otherwise the basis yield.
func AdvanceTax(growth, basisYield decimal.Decimal) decimal.Decimal {
	if growth.GreaterThanOrEqual(decimal.Zero) && growth.LessThanOrEqual(basisYield) {
		return decimal.Zero
	}
	return basisYield
}

// ApplyAllowance offsets taxable against the annual Freistellungsauftrag and
// returns the unused allowance and the amount still taxable.
func ApplyAllowance(taxable, allowance decimal.Decimal) (remaining, postAllowance decimal.Decimal) {
	if taxable.GreaterThanOrEqual(allowance) {
		remaining = decimal.Zero
	} else {
		remaining = allowance.Sub(taxable)
	}
	if allowance.GreaterThanOrEqual(taxable) {
		postAllowance = decimal.Zero
	} else {
		postAllowance = taxable.Sub(allowance)
	}
	return remaining, postAllowance
}

// Project returns one row per year 0..N. The last year always realizes the
// full balance.
//
// Year 0 gates the realized gain on the bare trigger flag while later years
// use the reallocation fraction; the opening balance of year i > 0 subtracts
// the previous year's realization tax on top of the interim withholding
// already deducted from the closing balance.
func (dp *DepotProjector) Project(schedule Schedule, categories []domain.FundCategory) []domain.DepotRow {
	horizon := schedule.Horizon()
	if horizon < 0 {
		return nil
	}
	p := dp.Params
	one := decimal.NewFromInt(1)
	rows := make([]domain.DepotRow, horizon+1)

	for i := range rows {
		category := categories[i]
		exemption := p.Exemption(category)
		entry := schedule[i]

		row := domain.DepotRow{
			Year:         i,
			Category:     category,
			ReturnRate:   p.Yield(category),
			Allowance:    p.Allowance,
			Contribution: decimal.Zero,
			Triggered:    entry.Triggered,
		}

		// resetCarry: no prior year, or the prior year realized its gains
		resetCarry := true
		var prev domain.DepotRow
		if i == 0 {
			row.Opening = p.InitialContribution
			row.Contribution = p.InitialContribution
		} else {
			prev = rows[i-1]
			row.Opening = prev.ClosingAfterCost.Sub(prev.FinalWithholdingTax)
			resetCarry = schedule[i-1].Triggered
		}

		row.Growth = row.Opening.Mul(row.ReturnRate)
		row.ClosingBeforeCost = row.Opening.Add(row.Growth)
		row.Cost = row.ClosingBeforeCost.Mul(p.CostRate)

		// Vorabpauschale
		row.BasisYield = BasisYield(row.Opening, p.BaseRate)
		row.AdvanceTax = AdvanceTax(row.ClosingBeforeCost.Sub(row.Opening), row.BasisYield)
		if resetCarry {
			row.CumulativeAdvanceTax = row.AdvanceTax
		} else {
			row.CumulativeAdvanceTax = prev.CumulativeAdvanceTax.Add(row.AdvanceTax)
		}
		row.AdvanceTaxExemption = row.AdvanceTax.Mul(exemption)
		row.TaxableAdvanceTax = row.AdvanceTax.Sub(row.AdvanceTaxExemption)
		row.RemainingAllowance, row.PostAllowanceAdvanceTax = ApplyAllowance(row.TaxableAdvanceTax, p.Allowance)
		row.InterimWithholdingTax = row.PostAllowanceAdvanceTax.Mul(p.WithholdingRate)
		row.ClosingAfterCost = row.ClosingBeforeCost.Sub(row.Cost).Sub(row.InterimWithholdingTax)

		// Umschichtung
		if i == horizon {
			row.Fraction = one
			row.Reallocated = row.ClosingAfterCost
		} else {
			row.Fraction = entry.Multiplier()
			row.Reallocated = row.ClosingAfterCost.Mul(row.Fraction)
		}
		if resetCarry {
			row.CumulativeUnrealizedGain = row.Growth
		} else {
			row.CumulativeUnrealizedGain = prev.CumulativeUnrealizedGain.Add(row.Growth)
		}

		gate := row.Fraction
		if i == 0 {
			gate = entry.Flag()
		}
		row.RealizedGain = row.CumulativeUnrealizedGain.Mul(gate)
		row.GainNetOfAdvanceTax = row.CumulativeUnrealizedGain.Sub(row.CumulativeAdvanceTax).Mul(gate)
		row.RealizedGainExemption = row.GainNetOfAdvanceTax.Mul(exemption)
		row.TaxableRealizedGain = row.GainNetOfAdvanceTax.Sub(row.RealizedGainExemption)
		if row.RemainingAllowance.GreaterThan(row.TaxableRealizedGain) {
			row.PostAllowanceRealized = decimal.Zero
		} else {
			row.PostAllowanceRealized = row.TaxableRealizedGain.Sub(row.RemainingAllowance)
		}
		row.FinalWithholdingTax = row.PostAllowanceRealized.Mul(p.WithholdingRate)
		row.NetCapitalAfterTax = row.Reallocated.Sub(row.FinalWithholdingTax)

		rows[i] = row
	}
	return rows
}
