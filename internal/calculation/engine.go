package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ErrNegativeHorizon is returned when a run is requested with N < 0.
var ErrNegativeHorizon = errors.New("horizon must not be negative")

// CalculationEngine orchestrates a comparison run: schedule, both
// projectors and the payout taxation.
type CalculationEngine struct {
	Payout *PayoutTaxCalculator
	Debug  bool // log the terminal rows of both ledgers
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Payout: NewPayoutTaxCalculator(),
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Run projects both products for input.Horizon years. The two ledgers are
// independent and computed concurrently.
func (ce *CalculationEngine) Run(ctx context.Context, input domain.RunInput) (*domain.ComparisonResult, error) {
	if input.Horizon < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeHorizon, input.Horizon)
	}

	schedule := BuildSchedule(input.Horizon, input.Events)
	categories := ActiveCategories(input.Horizon, input.Events)
	ce.Logger.Debugf("running comparison: horizon=%d events=%d", input.Horizon, len(input.Events))

	var (
		policyLedger []domain.PolicyRow
		depotLedger  []domain.DepotRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		policyLedger = NewPolicyProjector(input.Policy).Project(schedule, categories)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		depotLedger = NewDepotProjector(input.Depot).Project(schedule, categories)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("projection cancelled: %w", err)
	}

	summary := ce.Payout.Summarize(policyLedger, depotLedger, input.Policy)
	if ce.Debug {
		ce.logTerminalRows(policyLedger[len(policyLedger)-1], depotLedger[len(depotLedger)-1], summary)
	}

	return &domain.ComparisonResult{
		Horizon:      input.Horizon,
		Input:        input,
		PolicyLedger: policyLedger,
		DepotLedger:  depotLedger,
		Summary:      summary,
	}, nil
}

func (ce *CalculationEngine) logTerminalRows(policy domain.PolicyRow, depot domain.DepotRow, summary domain.Summary) {
	ce.Logger.Debugf("FONDSPOLICE (Jahr %d)", policy.Year+1)
	ce.Logger.Debugf("  Jahresende nach Kosten: %s", policy.ClosingAfterCost.StringFixed(2))
	ce.Logger.Debugf("  Erträge:                %s", policy.Gain.StringFixed(2))
	ce.Logger.Debugf("  zu besteuern:           %s", policy.TaxableGain.StringFixed(2))
	ce.Logger.Debugf("  Steuerlast:             %s", policy.TaxDue.StringFixed(2))
	ce.Logger.Debugf("FONDSSPARPLAN (Jahr %d)", depot.Year+1)
	ce.Logger.Debugf("  Jahresende nach Kosten: %s", depot.ClosingAfterCost.StringFixed(2))
	ce.Logger.Debugf("  Vorabpauschale lfd.:    %s", depot.CumulativeAdvanceTax.StringFixed(2))
	ce.Logger.Debugf("  Steuerlast Umschicht.:  %s", depot.FinalWithholdingTax.StringFixed(2))
	ce.Logger.Debugf("  Kapital nach Steuer:    %s", depot.NetCapitalAfterTax.StringFixed(2))
	ce.Logger.Debugf("NETTO: Police=%s Sparplan=%s", summary.PolicyFinalNet.StringFixed(2), summary.DepotFinalNet.StringFixed(2))
}
