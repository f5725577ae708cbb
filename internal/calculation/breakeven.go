package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrNoBreakEven is returned when no policy cost rate inside the search
// range equalizes the two products.
var ErrNoBreakEven = errors.New("no break-even cost rate in search range")

var (
	// MaxBreakEvenCost bounds the search for the policy's Effektivkosten.
	MaxBreakEvenCost = decimal.NewFromFloat(0.10)

	breakEvenTolerance = decimal.NewFromFloat(0.005)     // half a cent of net capital
	breakEvenMinWidth  = decimal.NewFromFloat(0.0000001) // 0.00001 % cost
)

const breakEvenMaxIterations = 60

// BreakEvenResult is the policy cost rate at which both products end with
// the same net capital.
type BreakEvenResult struct {
	CostRate      decimal.Decimal `json:"cost_rate"`
	CurrentCost   decimal.Decimal `json:"current_cost"`
	PolicyFinal   decimal.Decimal `json:"policy_final_net"`
	DepotFinal    decimal.Decimal `json:"depot_final_net"`
	Headroom      decimal.Decimal `json:"headroom"` // CostRate - CurrentCost
	Iterations    int             `json:"iterations"`
	PolicyLeading bool            `json:"policy_leading"` // policy ahead at the current cost
}

// CalculateBreakEvenPolicyCost searches the policy's Effektivkosten for the
// rate at which the policy's net capital matches the depot's. The policy net
// falls monotonically with cost, so a bisection over [0, MaxBreakEvenCost]
// suffices. The depot side does not depend on the policy cost and is
// projected once.
func (ce *CalculationEngine) CalculateBreakEvenPolicyCost(ctx context.Context, input domain.RunInput) (*BreakEvenResult, error) {
	base, err := ce.Run(ctx, input)
	if err != nil {
		return nil, err
	}
	target := base.Summary.DepotFinalNet

	policyNet := func(cost decimal.Decimal) (decimal.Decimal, error) {
		if err := ctx.Err(); err != nil {
			return decimal.Zero, err
		}
		trial := input
		trial.Policy.CostRate = cost
		schedule := BuildSchedule(trial.Horizon, trial.Events)
		ledger := NewPolicyProjector(trial.Policy).Project(schedule, ActiveCategories(trial.Horizon, trial.Events))
		gross := ledger[len(ledger)-1].ClosingAfterCost
		return ce.Payout.Policy(gross, trial.Policy.InitialContribution, trial.Policy).Net, nil
	}

	minCost := decimal.Zero
	maxCost := MaxBreakEvenCost

	low, err := policyNet(minCost)
	if err != nil {
		return nil, err
	}
	if low.LessThan(target) {
		return nil, fmt.Errorf("%w: policy trails the depot even without costs (%s < %s)", ErrNoBreakEven, low.StringFixed(2), target.StringFixed(2))
	}
	high, err := policyNet(maxCost)
	if err != nil {
		return nil, err
	}
	if high.GreaterThan(target) {
		return nil, fmt.Errorf("%w: policy still leads at %s cost", ErrNoBreakEven, maxCost.String())
	}

	two := decimal.NewFromInt(2)
	iterations := 0
	for iterations < breakEvenMaxIterations {
		iterations++
		mid := minCost.Add(maxCost).Div(two)
		net, err := policyNet(mid)
		if err != nil {
			return nil, err
		}
		diff := net.Sub(target)
		ce.Logger.Debugf("break-even iteration %d: cost=%s diff=%s", iterations, mid.String(), diff.StringFixed(4))

		if diff.Abs().LessThan(breakEvenTolerance) {
			minCost, maxCost = mid, mid
			break
		}
		if diff.IsPositive() {
			// policy still ahead, it can afford more cost
			minCost = mid
		} else {
			maxCost = mid
		}
		if maxCost.Sub(minCost).LessThan(breakEvenMinWidth) {
			break
		}
	}

	rate := minCost.Add(maxCost).Div(two)
	final, err := policyNet(rate)
	if err != nil {
		return nil, err
	}

	return &BreakEvenResult{
		CostRate:      rate,
		CurrentCost:   input.Policy.CostRate,
		PolicyFinal:   final,
		DepotFinal:    target,
		Headroom:      rate.Sub(input.Policy.CostRate),
		Iterations:    iterations,
		PolicyLeading: base.Summary.Advantage().IsPositive(),
	}, nil
}
