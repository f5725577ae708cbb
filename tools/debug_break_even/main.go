package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/fondsvergleich/vergleichsrechner/internal/calculation"
	"github.com/fondsvergleich/vergleichsrechner/internal/config"
	"github.com/shopspring/decimal"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <bundle-file>")
		return
	}
	p := config.NewInputParser()
	input, err := p.LoadRunInput(os.Args[1])
	if err != nil {
		panic(err)
	}
	engine := calc.NewCalculationEngine()
	res, err := engine.Run(context.Background(), input)
	if err != nil {
		panic(err)
	}

	// Header
	fmt.Println("Jahr,Fonds,Police_Wert,Police_Umschichtung,Sparplan_Wert,Sparplan_Steuer,Differenz")

	// Iterate years and print both ledgers side by side
	cumTax := decimal.Zero
	for i := range res.PolicyLedger {
		pr := res.PolicyLedger[i]
		dr := res.DepotLedger[i]
		cumTax = cumTax.Add(dr.InterimWithholdingTax).Add(dr.FinalWithholdingTax)
		fmt.Printf("%d,%s,%s,%s,%s,%s,%s\n", pr.Year+1, pr.Category.GermanName(),
			pr.ClosingAfterCost.StringFixed(2), pr.ReallocatedOrPaid.StringFixed(2),
			dr.ClosingAfterCost.StringFixed(2), cumTax.StringFixed(2),
			pr.ClosingAfterCost.Sub(dr.ClosingAfterCost).StringFixed(2))
	}

	fmt.Printf("\nNetto: Police=%s Sparplan=%s Vorteil=%s\n",
		res.Summary.PolicyFinalNet.StringFixed(2), res.Summary.DepotFinalNet.StringFixed(2), res.Summary.Advantage().StringFixed(2))

	be, err := engine.CalculateBreakEvenPolicyCost(context.Background(), input)
	fmt.Printf("\nBreakEven: %+v, err=%v\n", be, err)
}
