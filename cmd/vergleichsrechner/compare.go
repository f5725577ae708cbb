package main

import (
	"fmt"

	"github.com/fondsvergleich/vergleichsrechner/internal/calculation"
	"github.com/fondsvergleich/vergleichsrechner/internal/config"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "compare <bundle>",
		Short: "Run a comparison for a parameter bundle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := config.NewInputParser().LoadRunInput(args[0])
			if err != nil {
				return err
			}

			engine := calculation.NewCalculationEngine()
			engine.SetLogger(calculation.NewZapLogger(a.logger))
			engine.Debug = debug

			result, err := engine.Run(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			return writeResult(cmd, result, a.settings.OutputFormat, a.settings.OutputDir)
		},
	}

	cmd.Flags().String("format", "console", "output format: "+formatHelp())
	cmd.Flags().String("out", "", "write report files into this directory instead of stdout")
	cmd.Flags().BoolVar(&debug, "debug", false, "log the terminal rows of both ledgers")
	a.bind("output_format", cmd.Flags().Lookup("format"))
	a.bind("output_dir", cmd.Flags().Lookup("out"))
	return cmd
}
