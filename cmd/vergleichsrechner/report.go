package main

import (
	"fmt"
	"strings"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"github.com/fondsvergleich/vergleichsrechner/internal/output"
	"github.com/spf13/cobra"
)

// writeResult prints the report to stdout, or writes files when dir is set
// or every format was requested.
func writeResult(cmd *cobra.Command, result *domain.ComparisonResult, format, dir string) error {
	if dir == "" && output.NormalizeFormatName(format) != "all" {
		data, err := output.Render(result, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	if dir == "" {
		dir = "."
	}
	files, err := output.GenerateReport(result, format, dir)
	for _, f := range files {
		fmt.Fprintln(cmd.OutOrStdout(), f)
	}
	return err
}

func formatHelp() string {
	return strings.Join(append(output.AvailableFormatterNames(), "all"), ", ")
}
