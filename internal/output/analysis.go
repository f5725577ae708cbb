package output

import (
	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"github.com/shopspring/decimal"
)

// Product names as shown in reports.
const (
	ProductPolicy = "Fondspolice"
	ProductDepot  = "Fondssparplan"
)

// Recommendation names the product with the higher net capital.
type Recommendation struct {
	Product          string
	NetCapital       decimal.Decimal
	Advantage        decimal.Decimal // absolute lead over the other product
	PercentageChange decimal.Decimal // lead relative to the other product, in percent
	Tie              bool
}

// AnalyzeComparison picks the product with the higher final net capital.
func AnalyzeComparison(result *domain.ComparisonResult) Recommendation {
	s := result.Summary
	advantage := s.Advantage()
	if advantage.IsZero() {
		return Recommendation{NetCapital: s.PolicyFinalNet, Tie: true}
	}

	rec := Recommendation{Product: ProductPolicy, NetCapital: s.PolicyFinalNet, Advantage: advantage}
	other := s.DepotFinalNet
	if advantage.IsNegative() {
		rec = Recommendation{Product: ProductDepot, NetCapital: s.DepotFinalNet, Advantage: advantage.Neg()}
		other = s.PolicyFinalNet
	}
	if !other.IsZero() {
		rec.PercentageChange = rec.Advantage.Div(other.Abs()).Mul(decimalHundred)
	}
	return rec
}
