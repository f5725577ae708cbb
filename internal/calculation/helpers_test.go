package calculation

import (
	"fmt"
	"testing"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func category(c domain.FundCategory) *domain.FundCategory {
	return &c
}

// assertDecimal compares by value so that differing exponents (10692 vs
// 10692.0000) do not fail the check.
func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "expected %s, got %s %s", expected, actual.String(), fmt.Sprint(msgAndArgs...))
}

func scenarioAPolicy() domain.PolicyParameters {
	return domain.PolicyParameters{
		InitialContribution: dec("10000"),
		YieldEquity:         dec("0.08"),
		YieldMixed:          dec("0.05"),
		YieldBond:           dec("0.02"),
		ExemptionRate:       dec("0.15"),
		CostRate:            dec("0.01"),
		PayoutTaxRate:       dec("0.42"),
	}
}

func testDepot() domain.DepotParameters {
	return domain.DepotParameters{
		InitialContribution: dec("10000"),
		YieldEquity:         dec("0.05"),
		YieldMixed:          dec("0.03"),
		YieldBond:           dec("0.01"),
		ExemptionEquity:     dec("0"),
		ExemptionMixed:      dec("0"),
		ExemptionBond:       dec("0"),
		CostRate:            dec("0"),
		Allowance:           dec("0"),
		WithholdingRate:     dec("0.25"),
		BaseRate:            dec("0.02"),
	}
}
