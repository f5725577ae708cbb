package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
)

// ErrUnsupportedFormat is returned for format names no formatter answers to.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(result *domain.ComparisonResult) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.ComparisonResult) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.ComparisonResult) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                      { return ff.ID }

// nowFunc is swapped in tests for stable file names.
var nowFunc = time.Now

// WriteFormatted runs a formatter and writes the output to a timestamped file
// in dir. An empty dir means the working directory.
func WriteFormatted(f Formatter, result *domain.ComparisonResult, dir, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", fmt.Errorf("format %s: %w", f.Name(), err)
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	filename := filepath.Join(dir, fmt.Sprintf("vergleich_%s_%s.%s", f.Name(), nowFunc().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	ConsoleVerboseFormatter{},
	CSVSummarizer{},
	PolicyCSVExporter{},
	DepotCSVExporter{},
	HTMLFormatter{},
	JSONFormatter{},
}

// extensions maps formatter names to file extensions.
var extensions = map[string]string{
	"console":         "txt",
	"console-verbose": "txt",
	"csv":             "csv",
	"policy-csv":      "csv",
	"depot-csv":       "csv",
	"html":            "html",
	"json":            "json",
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// Extension returns the file extension for a formatter name.
func Extension(name string) string {
	if ext, ok := extensions[NormalizeFormatName(name)]; ok {
		return ext
	}
	return "txt"
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":         "console",
	"verbose":      "console-verbose",
	"ledger":       "console-verbose",
	"csv-summary":  "csv",
	"summary-csv":  "csv",
	"police":       "policy-csv",
	"police-csv":   "policy-csv",
	"sparplan":     "depot-csv",
	"sparplan-csv": "depot-csv",
	"html-report":  "html",
	"json-pretty":  "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
