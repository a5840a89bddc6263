package calculation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/finarch/finance-architect/internal/domain"
	"github.com/finarch/finance-architect/pkg/money"
)

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// planRun holds the working state of a single projection. Each run owns its
// ledger copy and accumulators, so independent runs can execute in parallel
// without synchronization.
type planRun struct {
	profile       domain.ProfileConfig
	ledger        []domain.Creditor
	weightedYield decimal.Decimal

	income   decimal.Decimal
	expenses decimal.Decimal

	emergencyFund decimal.Decimal
	investment    decimal.Decimal
	interestPaid  decimal.Decimal
	taxesPaid     decimal.Decimal

	snapshots   []domain.Snapshot
	payoffs     []domain.PayoffEvent
	fullyFunded *int

	logger Logger
}

func newPlanRun(profile domain.ProfileConfig, ledger []domain.Creditor, logger Logger) *planRun {
	return &planRun{
		profile:       profile,
		ledger:        ledger,
		weightedYield: profile.WeightedYield(),
		income:        profile.Income,
		expenses:      profile.Expenses,
		snapshots:     make([]domain.Snapshot, 0, profile.HorizonMonths()+1),
		logger:        logger,
	}
}

// run drives the month-by-month loop. Month 0 is a baseline observation with
// no allocation. For every later month the order is fixed: escalate on year
// boundaries, compute surplus and phase on the carried-over state, record the
// snapshot, and only then let the allocation mutate state for the next
// iteration. Interest accrued in month m therefore first shows up in month
// m+1's snapshot; that one-step lag is part of the numeric contract.
func (p *planRun) run() {
	horizon := p.profile.HorizonMonths()
	p.observe(0)

	for m := 1; m <= horizon; m++ {
		if m%12 == 0 {
			p.escalate()
		}
		surplus := p.income.Sub(p.expenses)
		phase := p.observe(m)

		// A non-positive surplus freezes this month's allocation; the month
		// is still part of the snapshot series.
		if surplus.IsPositive() {
			p.allocate(phase, surplus, m)
		}
	}
}

// escalate applies the annual raise to income and inflation to expenses,
// before the month's surplus is computed.
func (p *planRun) escalate() {
	p.income = p.income.Mul(one.Add(p.profile.AnnualRaise))
	p.expenses = p.expenses.Mul(one.Add(p.profile.Inflation))
}

// observe classifies the month and appends its snapshot, then returns the
// phase for the allocation step. Rounding to cents happens here and only
// here; the working state stays unrounded. The fully-funded month is pinned
// off the same unrounded fund the classifier sees, so it can never land in a
// month whose snapshot still reads emergency.
func (p *planRun) observe(month int) domain.Phase {
	totalDebt := domain.TotalDebt(p.ledger)
	target := EmergencyTarget(p.profile.EmergencyMonths, p.expenses)
	phase := ClassifyPhase(totalDebt, p.emergencyFund, target)
	if p.fullyFunded == nil && p.emergencyFund.GreaterThanOrEqual(target) {
		m := month
		p.fullyFunded = &m
	}

	debt := money.Round(totalDebt)
	fund := money.Round(p.emergencyFund)
	invested := money.Round(p.investment)
	netWorth := invested.Add(fund).Sub(debt)

	p.snapshots = append(p.snapshots, domain.Snapshot{
		Month:                  month,
		Year:                   yearOf(month),
		Phase:                  phase,
		Income:                 money.Round(p.income),
		Expenses:               money.Round(p.expenses),
		TotalDebt:              debt,
		EmergencyFund:          fund,
		Investment:             invested,
		NetWorth:               netWorth,
		RealNetWorth:           money.Round(netWorth.Div(deflator(p.profile.Inflation, month))),
		CumulativeInterestPaid: money.Round(p.interestPaid),
		CumulativeTaxesPaid:    money.Round(p.taxesPaid),
	})
	return phase
}

// yearOf converts a month index to a fractional year with two decimals.
func yearOf(month int) decimal.Decimal {
	return decimal.NewFromInt(int64(month)).Div(twelve).Round(2)
}

// deflator returns (1+inflation)^(month/12). Fractional exponents go through
// float64, the same shortcut the rest of the codebase uses for non-integer
// powers; the result is deterministic for identical inputs.
func deflator(inflation decimal.Decimal, month int) decimal.Decimal {
	f := math.Pow(one.Add(inflation).InexactFloat64(), float64(month)/12.0)
	return decimal.NewFromFloat(f)
}
