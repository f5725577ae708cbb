package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioABundle = `{
  "einmalbeitrag_police": 10000,
  "rendite_aktienfonds_police": 8,
  "rendite_mischfonds_police": 5,
  "rendite_rentenfonds_police": 2,
  "teilfreistellung_police": 15,
  "effektivkosten_police": 1,
  "steuersatz_police": 42,
  "einmalbeitrag_sparplan": 10000,
  "rendite_aktienfonds_sparplan": 5,
  "rendite_mischfonds_sparplan": 3,
  "rendite_rentenfonds_sparplan": 1,
  "freistellungsauftrag_sparplan": 1000,
  "teilfreistellung_aktienfonds_sparplan": 30,
  "teilfreistellung_mischfonds_sparplan": 15,
  "teilfreistellung_rentenfonds_sparplan": 0,
  "basiszins_sparplan": 2.55,
  "effektivkosten_sparplan": 0.5,
  "ausgabeaufschlag_sparplan": 2.5,
  "steuerlast_sparplan": 26.375,
  "steuerlast_auszahlung_sparplan": 26.375,
  "laufzeit": 1,
  "umschichtungen": []
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := writeFile(t, "bundle.json", scenarioABundle)

	bundle, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 10000.0, bundle.PolicyContribution)
	assert.Equal(t, 8.0, bundle.PolicyYieldEquity)
	assert.Equal(t, 26.375, bundle.DepotWithholding)
	assert.Equal(t, 1, bundle.Term)
	assert.Empty(t, bundle.Reallocations)
	assert.Nil(t, bundle.Auto)
}

func TestLoadFromFile_YAML(t *testing.T) {
	content := "einmalbeitrag_police: 5000\n" +
		"rendite_aktienfonds_police: 6\n" +
		"steuersatz_police: 30\n" +
		"laufzeit: 10\n" +
		"umschichtungen:\n" +
		"  - jahr: 3\n" +
		"    anteil: 0.5\n" +
		"    fonds: Rentenfonds\n" +
		"  - jahr: 6\n" +
		"    anteil: 0.25\n"
	path := writeFile(t, "bundle.yaml", content)

	bundle, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, bundle.Term)
	require.Len(t, bundle.Reallocations, 2)
	assert.Equal(t, Reallocation{Year: 3, Fraction: 0.5, Fund: "Rentenfonds"}, bundle.Reallocations[0])
	assert.Equal(t, "", bundle.Reallocations[1].Fund)
}

func TestLoadFromFile_Errors(t *testing.T) {
	parser := NewInputParser()

	t.Run("missing file", func(t *testing.T) {
		_, err := parser.LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read file")
	})

	t.Run("malformed content", func(t *testing.T) {
		path := writeFile(t, "broken.json", "{ laufzeit: [")
		_, err := parser.LoadFromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse bundle")
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeFile(t, "invalid.json", `{"laufzeit": 0}`)
		_, err := parser.LoadFromFile(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidBundle))
	})
}

func TestValidateBundle(t *testing.T) {
	parser := NewInputParser()

	tests := []struct {
		name    string
		mutate  func(b *ParameterBundle)
		wantErr string
	}{
		{name: "example is valid", mutate: func(b *ParameterBundle) {}},
		{name: "laufzeit zero", mutate: func(b *ParameterBundle) { b.Term = 0 }, wantErr: "laufzeit"},
		{name: "laufzeit too long", mutate: func(b *ParameterBundle) { b.Term = MaxTerm + 1 }, wantErr: "laufzeit"},
		{name: "laufzeit at limit", mutate: func(b *ParameterBundle) { b.Term = MaxTerm }},
		{name: "negative contribution", mutate: func(b *ParameterBundle) { b.PolicyContribution = -1 }, wantErr: "einmalbeitrag_police"},
		{name: "negative allowance", mutate: func(b *ParameterBundle) { b.DepotAllowance = -100 }, wantErr: "freistellungsauftrag_sparplan"},
		{name: "negative rate", mutate: func(b *ParameterBundle) { b.DepotBaseRate = -0.5 }, wantErr: "basiszins_sparplan"},
		{
			name:    "fraction above one",
			mutate:  func(b *ParameterBundle) { b.Reallocations = []Reallocation{{Year: 0, Fraction: 1.5}} },
			wantErr: "anteil",
		},
		{
			name:    "unknown fund",
			mutate:  func(b *ParameterBundle) { b.Reallocations = []Reallocation{{Year: 0, Fraction: 0.5, Fund: "Hedgefonds"}} },
			wantErr: "Hedgefonds",
		},
		{
			name:   "out-of-range year is accepted",
			mutate: func(b *ParameterBundle) { b.Reallocations = []Reallocation{{Year: 50, Fraction: 0.5}} },
		},
		{
			name:    "negative auto count",
			mutate:  func(b *ParameterBundle) { b.Auto = &AutoReallocation{Count: -1, Fraction: 0.5} },
			wantErr: "anzahl",
		},
		{
			name:    "auto fraction out of range",
			mutate:  func(b *ParameterBundle) { b.Auto = &AutoReallocation{Count: 2, Fraction: -0.1} },
			wantErr: "auto_umschichtung",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle := parser.CreateExampleBundle()
			tt.mutate(bundle)
			err := parser.ValidateBundle(bundle)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidBundle), "expected ErrInvalidBundle, got %v", err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	original := parser.CreateExampleBundle()
	original.Term = 12
	original.Reallocations = []Reallocation{{Year: 4, Fraction: 0.3, Fund: "Mischfonds"}}

	for _, name := range []string{"bundle.json", "bundle.yaml", "nested/dir/bundle.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, parser.SaveToFile(original, path))

			loaded, err := parser.LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, original, loaded)
		})
	}
}

func TestSaveToFile_JSONKeys(t *testing.T) {
	parser := NewInputParser()
	path := filepath.Join(t.TempDir(), "bundle.json")
	require.NoError(t, parser.SaveToFile(parser.CreateExampleBundle(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, key := range []string{`"einmalbeitrag_police": 10000`, `"steuersatz_police": 42`, `"laufzeit": 1`, `"umschichtungen": []`} {
		assert.Contains(t, string(data), key)
	}
	assert.NotContains(t, string(data), "auto_umschichtung")
}

func TestCreateExampleBundle(t *testing.T) {
	bundle := NewInputParser().CreateExampleBundle()
	assert.Equal(t, 10000.0, bundle.PolicyContribution)
	assert.Equal(t, 8.0, bundle.PolicyYieldEquity)
	assert.Equal(t, 8.0, bundle.PolicyYieldMixed)
	assert.Equal(t, 8.0, bundle.PolicyYieldBond)
	assert.Equal(t, 15.0, bundle.PolicyExemption)
	assert.Equal(t, 1.0, bundle.PolicyCost)
	assert.Equal(t, 42.0, bundle.PolicyTaxRate)
	assert.Zero(t, bundle.DepotContribution)
	assert.Zero(t, bundle.DepotWithholding)
	assert.Equal(t, 1, bundle.Term)
}

func TestLoadRunInput(t *testing.T) {
	path := writeFile(t, "bundle.json", scenarioABundle)
	input, err := NewInputParser().LoadRunInput(path)
	require.NoError(t, err)
	assert.Equal(t, 0, input.Horizon)
	assert.Equal(t, "0.08", input.Policy.YieldEquity.String())
	assert.Equal(t, "0.26375", input.Depot.WithholdingRate.String())
}
