package main

import (
	"encoding/json"
	"fmt"

	"github.com/fondsvergleich/vergleichsrechner/internal/calculation"
	"github.com/fondsvergleich/vergleichsrechner/internal/config"
	"github.com/fondsvergleich/vergleichsrechner/internal/output"
	"github.com/spf13/cobra"
)

func newBreakEvenCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "breakeven <bundle>",
		Short: "Find the Fondspolice cost rate at which both products end level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := config.NewInputParser().LoadRunInput(args[0])
			if err != nil {
				return err
			}

			engine := calculation.NewCalculationEngine()
			engine.SetLogger(calculation.NewZapLogger(a.logger))
			res, err := engine.CalculateBreakEvenPolicyCost(cmd.Context(), input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode result: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			fmt.Fprintf(out, "Break-even Effektivkosten Fondspolice: %s\n", output.FormatPercentage(res.CostRate))
			fmt.Fprintf(out, "Aktuelle Effektivkosten:               %s\n", output.FormatPercentage(res.CurrentCost))
			fmt.Fprintf(out, "Spielraum:                             %s\n", output.FormatPercentage(res.Headroom))
			fmt.Fprintf(out, "Netto bei Break-even:                  %s\n", output.FormatCurrency(res.DepotFinal))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}
