package calculation

import (
	"testing"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectPolicy(params domain.PolicyParameters, horizon int, events []domain.ReallocationEvent) []domain.PolicyRow {
	return NewPolicyProjector(params).Project(BuildSchedule(horizon, events), ActiveCategories(horizon, events))
}

// Scenario A: one year, 8 % equity yield, 1 % cost, 15 % exemption, 42 % rate.
func TestPolicyProjector_SingleYear(t *testing.T) {
	rows := projectPolicy(scenarioAPolicy(), 0, nil)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 0, row.Year)
	assert.True(t, row.Terminal, "single row is both initial and terminal")
	assertDecimal(t, "10000", row.Opening)
	assertDecimal(t, "0.08", row.ReturnRate)
	assertDecimal(t, "800", row.Growth)
	assertDecimal(t, "10800", row.ClosingBeforeCost)
	assertDecimal(t, "108", row.Cost)
	assertDecimal(t, "10692", row.ClosingAfterCost)
	assertDecimal(t, "10000", row.Contribution)
	assertDecimal(t, "10692", row.ReallocatedOrPaid)

	assertDecimal(t, "10000", row.TotalContributions)
	assertDecimal(t, "692", row.Gain)
	assertDecimal(t, "103.8", row.ExemptedGain)
	assertDecimal(t, "588.2", row.TaxableGain)
	assertDecimal(t, "294.1", row.HalfIncomeBase)
	assertDecimal(t, "123.522", row.TaxDue)
}

func TestPolicyProjector_MultiYear(t *testing.T) {
	rows := projectPolicy(scenarioAPolicy(), 2, nil)
	require.Len(t, rows, 3)

	for i, row := range rows {
		assert.Equal(t, i, row.Year)
		if i > 0 {
			assert.True(t, row.Opening.Equal(rows[i-1].ClosingAfterCost), "year %d opens with previous closing", i)
			assert.True(t, row.Contribution.IsZero(), "no contribution after year 0")
		}
		assert.Equal(t, i == 2, row.Terminal)
	}

	assertDecimal(t, "11431.8864", rows[1].ClosingAfterCost)
	assertDecimal(t, "0", rows[1].ReallocatedOrPaid)

	last := rows[2]
	assertDecimal(t, "12222.97293888", last.ClosingAfterCost)
	assertDecimal(t, "2222.97293888", last.Gain)
	assertDecimal(t, "1889.526998048", last.TaxableGain)
	assertDecimal(t, "944.763499024", last.HalfIncomeBase)
	assertDecimal(t, "396.80066959008", last.TaxDue)

	// interim rows carry no payout tax fields
	assert.True(t, rows[0].TaxDue.IsZero())
	assert.True(t, rows[1].Gain.IsZero())
}

func TestPolicyProjector_TerminalTaxFormula(t *testing.T) {
	params := scenarioAPolicy()
	rows := projectPolicy(params, 0, nil)
	row := rows[0]

	// ((payout - contributions) × (1 - exemption) / 2) × rate
	one := dec("1")
	want := row.ReallocatedOrPaid.Sub(params.InitialContribution).
		Mul(one.Sub(params.ExemptionRate)).
		Div(dec("2")).
		Mul(params.PayoutTaxRate)
	assert.True(t, want.Equal(row.TaxDue), "want %s got %s", want, row.TaxDue)
}

func TestPolicyProjector_Reallocation(t *testing.T) {
	events := []domain.ReallocationEvent{
		{Year: 1, Fraction: dec("0.5"), Target: category(domain.Bond)},
	}
	rows := projectPolicy(scenarioAPolicy(), 2, events)
	require.Len(t, rows, 3)

	assert.Equal(t, domain.Equity, rows[0].Category)
	assert.Equal(t, domain.Bond, rows[1].Category)
	assert.Equal(t, domain.Bond, rows[2].Category)

	assert.True(t, rows[1].Triggered)
	assertDecimal(t, "0.02", rows[1].ReturnRate)
	assertDecimal(t, "10796.7816", rows[1].ClosingAfterCost)
	assertDecimal(t, "0.5", rows[1].Fraction)
	assertDecimal(t, "5398.3908", rows[1].ReallocatedOrPaid)

	// the policy keeps the whole balance invested across a reallocation
	assert.True(t, rows[2].Opening.Equal(rows[1].ClosingAfterCost))
}

func TestPolicyProjector_FinalYearPaysOutInFull(t *testing.T) {
	events := []domain.ReallocationEvent{{Year: 2, Fraction: dec("0.25")}}
	rows := projectPolicy(scenarioAPolicy(), 2, events)

	last := rows[2]
	assert.True(t, last.Triggered)
	assertDecimal(t, "1", last.Fraction)
	assert.True(t, last.ReallocatedOrPaid.Equal(last.ClosingAfterCost))
}

func TestPolicyProjector_NegativeGain(t *testing.T) {
	params := scenarioAPolicy()
	params.YieldEquity = dec("0")
	params.CostRate = dec("0.02")

	rows := projectPolicy(params, 0, nil)
	row := rows[0]
	assertDecimal(t, "-200", row.Gain)
	assertDecimal(t, "-30", row.ExemptedGain)
	assertDecimal(t, "-170", row.TaxableGain)
	assertDecimal(t, "-35.7", row.TaxDue)
}
