package output

import (
	"fmt"
	"strings"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
)

// reportSet is what "all" writes.
var reportSet = []string{"console-verbose", "csv", "policy-csv", "depot-csv", "json", "html"}

// GenerateReport writes the report for format into dir and returns the file
// names. "all" writes every ledger and summary format.
func GenerateReport(result *domain.ComparisonResult, format, dir string) ([]string, error) {
	names := []string{format}
	if NormalizeFormatName(format) == "all" {
		names = reportSet
	}

	files := make([]string, 0, len(names))
	for _, name := range names {
		f, err := Lookup(name)
		if err != nil {
			return files, err
		}
		file, err := WriteFormatted(f, result, dir, Extension(name))
		if err != nil {
			return files, err
		}
		files = append(files, file)
	}
	return files, nil
}

// Lookup is GetFormatterByName with an error that lists the alternatives.
func Lookup(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// Render formats the result in memory.
func Render(result *domain.ComparisonResult, format string) ([]byte, error) {
	f, err := Lookup(format)
	if err != nil {
		return nil, err
	}
	return f.Format(result)
}
