package calculation

import (
	"github.com/fondsvergleich/vergleichsrechner/internal/domain"
	"github.com/shopspring/decimal"
)

// ScheduleEntry is the resolved Umschichtung state of one year.
type ScheduleEntry struct {
	Triggered bool
	Fraction  decimal.Decimal
	Target    *domain.FundCategory
}

// Flag returns the trigger flag as 0 or 1.
func (e ScheduleEntry) Flag() decimal.Decimal {
	if e.Triggered {
		return decimal.NewFromInt(1)
	}
	return decimal.Zero
}

// Multiplier returns flag × fraction, the share of the balance moved this year.
func (e ScheduleEntry) Multiplier() decimal.Decimal {
	return e.Flag().Mul(e.Fraction)
}

// Schedule holds one entry per year 0..N.
type Schedule []ScheduleEntry

// Horizon returns the last year index covered by the schedule.
func (s Schedule) Horizon() int {
	return len(s) - 1
}

// BuildSchedule resolves events into a per-year schedule. Events outside
// [0, horizon] are dropped; for duplicate years the later event wins.
func BuildSchedule(horizon int, events []domain.ReallocationEvent) Schedule {
	if horizon < 0 {
		return Schedule{}
	}
	schedule := make(Schedule, horizon+1)
	for i := range schedule {
		schedule[i] = ScheduleEntry{Fraction: decimal.Zero}
	}
	for _, ev := range events {
		if ev.Year < 0 || ev.Year > horizon {
			continue
		}
		schedule[ev.Year] = ScheduleEntry{
			Triggered: true,
			Fraction:  ev.Fraction,
			Target:    ev.Target,
		}
	}
	return schedule
}

// DistributeReallocations spreads count reallocations evenly over the
// interior of [1, horizon] and appends a forced full payout at the horizon.
// Positions come from a linear spacing of count+2 points with both endpoints
// dropped, rounded half to even.
func DistributeReallocations(horizon, count int, fraction decimal.Decimal, target *domain.FundCategory) []domain.ReallocationEvent {
	if horizon < 0 {
		return nil
	}
	events := make([]domain.ReallocationEvent, 0, count+1)
	if horizon >= 1 && count > 0 {
		start := decimal.NewFromInt(1)
		span := decimal.NewFromInt(int64(horizon - 1))
		steps := decimal.NewFromInt(int64(count + 1))
		for j := 1; j <= count; j++ {
			pos := start.Add(span.Mul(decimal.NewFromInt(int64(j))).Div(steps)).RoundBank(0)
			events = append(events, domain.ReallocationEvent{
				Year:     int(pos.IntPart()),
				Fraction: fraction,
				Target:   target,
			})
		}
	}
	events = append(events, domain.ReallocationEvent{
		Year:     horizon,
		Fraction: decimal.NewFromInt(1),
	})
	return events
}

// ActiveCategories returns, for every year i, the target of the last listed
// event with year <= i, defaulting to equity. Events without a target and
// events outside [0, horizon] never change the category.
func ActiveCategories(horizon int, events []domain.ReallocationEvent) []domain.FundCategory {
	if horizon < 0 {
		return nil
	}
	lastAt := make([]int, horizon+1)
	for i := range lastAt {
		lastAt[i] = -1
	}
	for idx, ev := range events {
		if ev.Target == nil || ev.Year < 0 || ev.Year > horizon {
			continue
		}
		lastAt[ev.Year] = idx
	}

	categories := make([]domain.FundCategory, horizon+1)
	best := -1
	for i := range categories {
		if lastAt[i] > best {
			best = lastAt[i]
		}
		if best >= 0 {
			categories[i] = *events[best].Target
		} else {
			categories[i] = domain.Equity
		}
	}
	return categories
}
