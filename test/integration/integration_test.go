package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fondsvergleich/vergleichsrechner/internal/calculation"
	"github.com/fondsvergleich/vergleichsrechner/internal/config"
	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"github.com/fondsvergleich/vergleichsrechner/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleBundle = "../testdata/example_bundle.yaml"

func runExample(t *testing.T) (*config.ParameterBundle, *domain.ComparisonResult) {
	t.Helper()
	parser := config.NewInputParser()
	bundle, err := parser.LoadFromFile(exampleBundle)
	require.NoError(t, err)

	input, err := bundle.ToRunInput()
	require.NoError(t, err)

	result, err := calculation.NewCalculationEngine().Run(context.Background(), input)
	require.NoError(t, err)
	return bundle, result
}

func TestBasicCalculations(t *testing.T) {
	_, result := runExample(t)

	assert.Equal(t, 11, result.Horizon)
	require.Len(t, result.PolicyLedger, 12)
	require.Len(t, result.DepotLedger, 12)

	s := result.Summary
	assert.True(t, s.PolicyGross.GreaterThan(decimal.NewFromInt(10000)))
	assert.True(t, s.PolicyFinalNet.LessThan(s.PolicyGross), "payout tax reduces the policy")
	assert.True(t, s.DepotFinalNet.GreaterThan(decimal.Zero))
	assert.True(t, s.PolicyGross.Equal(s.PolicyPayout.Payout))
	assert.True(t, s.PolicyFinalNet.Equal(s.PolicyPayout.Net))
}

func TestReallocationsFollowTheBundle(t *testing.T) {
	_, result := runExample(t)

	for _, row := range result.PolicyLedger {
		switch {
		case row.Year < 5:
			assert.Equal(t, domain.Equity, row.Category, "year %d", row.Year)
		case row.Year < 9:
			assert.Equal(t, domain.Mixed, row.Category, "year %d", row.Year)
		default:
			assert.Equal(t, domain.Bond, row.Category, "year %d", row.Year)
		}
	}

	assert.True(t, result.PolicyLedger[5].Triggered)
	assert.True(t, result.PolicyLedger[9].Triggered)
	assert.False(t, result.PolicyLedger[6].Triggered)
	assert.True(t, result.DepotLedger[5].RealizedGain.IsPositive())
	assert.True(t, result.DepotLedger[11].Fraction.Equal(decimal.NewFromInt(1)), "final year pays out")
}

func TestBundleRoundTripThroughDisk(t *testing.T) {
	bundle, result := runExample(t)
	parser := config.NewInputParser()

	for _, name := range []string{"bundle.json", "bundle.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, parser.SaveToFile(bundle, path))

			input, err := parser.LoadRunInput(path)
			require.NoError(t, err)
			again, err := calculation.NewCalculationEngine().Run(context.Background(), input)
			require.NoError(t, err)

			assert.True(t, result.Summary.PolicyFinalNet.Equal(again.Summary.PolicyFinalNet))
			assert.True(t, result.Summary.DepotFinalNet.Equal(again.Summary.DepotFinalNet))
		})
	}
}

func TestOutputGeneration(t *testing.T) {
	_, result := runExample(t)
	dir := t.TempDir()

	for _, format := range []string{"console", "console-verbose", "csv", "policy-csv", "depot-csv", "json", "html"} {
		t.Run(format, func(t *testing.T) {
			files, err := output.GenerateReport(result, format, dir)
			require.NoError(t, err)
			require.Len(t, files, 1)

			data, err := os.ReadFile(files[0])
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}

func TestOutputGeneration_All(t *testing.T) {
	_, result := runExample(t)

	files, err := output.GenerateReport(result, "all", t.TempDir())
	require.NoError(t, err)
	assert.Len(t, files, 6)
}
