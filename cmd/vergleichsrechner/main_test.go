package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fondsvergleich/vergleichsrechner/internal/calculation"
	"github.com/fondsvergleich/vergleichsrechner/internal/config"
	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"github.com/fondsvergleich/vergleichsrechner/internal/output"
	"github.com/fondsvergleich/vergleichsrechner/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioABundle = `einmalbeitrag_police: 10000
rendite_aktienfonds_police: 8
rendite_mischfonds_police: 5
rendite_rentenfonds_police: 2
teilfreistellung_police: 15
effektivkosten_police: 1
steuersatz_police: 42
einmalbeitrag_sparplan: 10000
rendite_aktienfonds_sparplan: 5
rendite_mischfonds_sparplan: 3
rendite_rentenfonds_sparplan: 1
freistellungsauftrag_sparplan: 1000
teilfreistellung_aktienfonds_sparplan: 30
teilfreistellung_mischfonds_sparplan: 15
teilfreistellung_rentenfonds_sparplan: 0
basiszins_sparplan: 2.55
effektivkosten_sparplan: 0.5
steuerlast_sparplan: 26.375
laufzeit: 1
umschichtungen: []
`

// execute runs the CLI with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeBundle(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "szenario_a.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioABundle), 0644))
	return path
}

func TestExampleCommand_Stdout(t *testing.T) {
	out, err := execute(t, "example")
	require.NoError(t, err)

	var bundle config.ParameterBundle
	require.NoError(t, json.Unmarshal([]byte(out), &bundle))
	assert.Equal(t, *config.NewInputParser().CreateExampleBundle(), bundle)
}

func TestExampleCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "example.yaml")

	_, err := execute(t, "example", path)
	require.NoError(t, err)

	bundle, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10000.0, bundle.PolicyContribution)
	assert.Equal(t, 1, bundle.Term)
}

func TestCompareCommand_Console(t *testing.T) {
	out, err := execute(t, "compare", writeBundle(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Fondspolice Rentenkapital")
	assert.Contains(t, out, "10.692,00 €")
}

func TestCompareCommand_JSON(t *testing.T) {
	out, err := execute(t, "compare", writeBundle(t), "--format", "json")
	require.NoError(t, err)

	var result domain.ComparisonResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 0, result.Horizon)
	assert.Equal(t, "10692", result.Summary.PolicyGross.String())
}

func TestCompareCommand_AllFormats(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "compare", writeBundle(t), "--format", "all", "--out", dir)
	require.NoError(t, err)

	files := strings.Fields(out)
	assert.Len(t, files, 6)
	for _, f := range files {
		info, err := os.Stat(f)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
		assert.Equal(t, dir, filepath.Dir(f))
	}
}

func TestCompareCommand_Errors(t *testing.T) {
	t.Run("unsupported format", func(t *testing.T) {
		_, err := execute(t, "compare", writeBundle(t), "--format", "pdf")
		require.Error(t, err)
		assert.True(t, errors.Is(err, output.ErrUnsupportedFormat))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "compare", filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid bundle", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("laufzeit: 0\n"), 0644))
		_, err := execute(t, "compare", path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, config.ErrInvalidBundle))
	})

	t.Run("missing argument", func(t *testing.T) {
		_, err := execute(t, "compare")
		assert.Error(t, err)
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, err := execute(t, "--log-level", "loud", "compare", writeBundle(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestCompareCommand_SettingsFile(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("output_format: csv\nlog_format: json\n"), 0644))

	out, err := execute(t, "--config", settings, "compare", writeBundle(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Kennzahl,Wert"), out)

	// an explicit flag beats the settings file
	out, err = execute(t, "--config", settings, "compare", writeBundle(t), "--format", "console")
	require.NoError(t, err)
	assert.Contains(t, out, "Fondspolice Rentenkapital")
}

func TestCompareCommand_EnvOverride(t *testing.T) {
	t.Setenv(config.EnvPrefix+"_OUTPUT_FORMAT", "json")

	out, err := execute(t, "compare", writeBundle(t))
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestBundlesCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "bundles.db")
	bundle := writeBundle(t)

	out, err := execute(t, "--db", db, "bundles", "list")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"), "header only")

	out, err = execute(t, "--db", db, "bundles", "save", bundle, "--name", "Szenario A")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = execute(t, "--db", db, "bundles", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Szenario A")

	out, err = execute(t, "--db", db, "bundles", "show", id)
	require.NoError(t, err)
	var saved store.Bundle
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	assert.Equal(t, "Szenario A", saved.Name)
	assert.Equal(t, 42.0, saved.Params.PolicyTaxRate)

	out, err = execute(t, "--db", db, "bundles", "compare", id, "--format", "json")
	require.NoError(t, err)
	var result domain.ComparisonResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "10692", result.Summary.PolicyGross.String())

	_, err = execute(t, "--db", db, "bundles", "delete", id)
	require.NoError(t, err)

	_, err = execute(t, "--db", db, "bundles", "show", id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrBundleNotFound))
}

func TestBundlesSave_InvalidFile(t *testing.T) {
	db := filepath.Join(t.TempDir(), "bundles.db")
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("laufzeit: 101\n"), 0644))

	_, err := execute(t, "--db", db, "bundles", "save", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalidBundle))
}

func TestBreakEvenCommand(t *testing.T) {
	out, err := execute(t, "breakeven", writeBundle(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Break-even Effektivkosten Fondspolice")
	assert.Contains(t, out, "Aktuelle Effektivkosten:               1,00 %")

	out, err = execute(t, "breakeven", writeBundle(t), "--json")
	require.NoError(t, err)
	var res calculation.BreakEvenResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.CostRate.GreaterThan(res.CurrentCost))
}
