package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrInvalidBundle is wrapped by every validation failure.
var ErrInvalidBundle = errors.New("invalid parameter bundle")

// MaxTerm is the longest supported Laufzeit in years.
const MaxTerm = 100

// InputParser handles parsing of parameter bundle files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a bundle from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*ParameterBundle, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a bundle. JSON input goes through the YAML
// decoder as well.
func (ip *InputParser) Parse(data []byte) (*ParameterBundle, error) {
	var bundle ParameterBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to parse bundle: %w", err)
	}

	if err := ip.ValidateBundle(&bundle); err != nil {
		return nil, fmt.Errorf("bundle validation failed: %w", err)
	}

	return &bundle, nil
}

// SaveToFile writes the bundle as YAML for .yaml/.yml files and as indented
// JSON otherwise.
func (ip *InputParser) SaveToFile(bundle *ParameterBundle, filename string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(bundle)
	default:
		data, err = json.MarshalIndent(bundle, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// ValidateBundle validates a decoded bundle
func (ip *InputParser) ValidateBundle(b *ParameterBundle) error {
	if b.Term < 1 || b.Term > MaxTerm {
		return fmt.Errorf("%w: laufzeit must be between 1 and %d, got %d", ErrInvalidBundle, MaxTerm, b.Term)
	}

	amounts := []struct {
		name  string
		value float64
	}{
		{"einmalbeitrag_police", b.PolicyContribution},
		{"einmalbeitrag_sparplan", b.DepotContribution},
		{"freistellungsauftrag_sparplan", b.DepotAllowance},
	}
	for _, a := range amounts {
		if a.value < 0 {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidBundle, a.name)
		}
	}

	if err := ip.validateRates(b); err != nil {
		return err
	}

	for i, r := range b.Reallocations {
		if err := ip.validateReallocation(r.Fraction, r.Fund); err != nil {
			return fmt.Errorf("umschichtungen[%d]: %w", i, err)
		}
	}

	if b.Auto != nil {
		if b.Auto.Count < 0 {
			return fmt.Errorf("auto_umschichtung: %w: anzahl cannot be negative", ErrInvalidBundle)
		}
		if err := ip.validateReallocation(b.Auto.Fraction, b.Auto.Fund); err != nil {
			return fmt.Errorf("auto_umschichtung: %w", err)
		}
	}

	return nil
}

// validateRates checks that every percentage is non-negative
func (ip *InputParser) validateRates(b *ParameterBundle) error {
	rates := map[string]float64{
		"rendite_aktienfonds_police":            b.PolicyYieldEquity,
		"rendite_mischfonds_police":             b.PolicyYieldMixed,
		"rendite_rentenfonds_police":            b.PolicyYieldBond,
		"teilfreistellung_police":               b.PolicyExemption,
		"effektivkosten_police":                 b.PolicyCost,
		"steuersatz_police":                     b.PolicyTaxRate,
		"rendite_aktienfonds_sparplan":          b.DepotYieldEquity,
		"rendite_mischfonds_sparplan":           b.DepotYieldMixed,
		"rendite_rentenfonds_sparplan":          b.DepotYieldBond,
		"teilfreistellung_aktienfonds_sparplan": b.DepotExemptionEquity,
		"teilfreistellung_mischfonds_sparplan":  b.DepotExemptionMixed,
		"teilfreistellung_rentenfonds_sparplan": b.DepotExemptionBond,
		"basiszins_sparplan":                    b.DepotBaseRate,
		"effektivkosten_sparplan":               b.DepotCost,
		"ausgabeaufschlag_sparplan":             b.DepotFrontLoad,
		"steuerlast_sparplan":                   b.DepotWithholding,
		"steuerlast_auszahlung_sparplan":        b.DepotPayoutWithholding,
	}
	for name, value := range rates {
		if value < 0 {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidBundle, name)
		}
	}
	return nil
}

func (ip *InputParser) validateReallocation(fraction float64, fund string) error {
	if fraction < 0 || fraction > 1 {
		return fmt.Errorf("%w: anteil must be between 0 and 1, got %g", ErrInvalidBundle, fraction)
	}
	if _, err := parseFund(fund); err != nil {
		return err
	}
	return nil
}

// CreateExampleBundle returns the bundle with the default form values
func (ip *InputParser) CreateExampleBundle() *ParameterBundle {
	return &ParameterBundle{
		PolicyContribution: 10000,
		PolicyYieldEquity:  8,
		PolicyYieldMixed:   8,
		PolicyYieldBond:    8,
		PolicyExemption:    15,
		PolicyCost:         1,
		PolicyTaxRate:      42,
		Term:               1,
		Reallocations:      []Reallocation{},
	}
}

// LoadRunInput loads, validates and converts a bundle in one step.
func (ip *InputParser) LoadRunInput(filename string) (domain.RunInput, error) {
	bundle, err := ip.LoadFromFile(filename)
	if err != nil {
		return domain.RunInput{}, err
	}
	return bundle.ToRunInput()
}
