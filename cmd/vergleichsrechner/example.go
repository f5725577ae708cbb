package main

import (
	"encoding/json"
	"fmt"

	"github.com/fondsvergleich/vergleichsrechner/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example [file]",
		Short: "Write the default parameter bundle",
		Long:  "Writes the default parameter bundle to file (YAML for .yaml/.yml, JSON otherwise) or prints it as JSON.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			bundle := parser.CreateExampleBundle()

			if len(args) == 0 {
				data, err := json.MarshalIndent(bundle, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode bundle: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			if err := parser.SaveToFile(bundle, args[0]); err != nil {
				return err
			}
			a.logger.Info("example bundle written", zap.String("file", args[0]))
			return nil
		},
	}
}
