package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/finarch/finance-architect/internal/domain"
)

// SimulationEngine runs deterministic multi-phase projections. The engine
// itself is stateless between runs; every run owns an independent ledger copy,
// so one engine may serve concurrent simulations.
type SimulationEngine struct {
	Logger Logger
}

// NewSimulationEngine creates an engine with a no-op logger.
func NewSimulationEngine() *SimulationEngine {
	return &SimulationEngine{Logger: NopLogger{}}
}

// SetLogger sets the engine logger. A nil logger restores the no-op default.
func (se *SimulationEngine) SetLogger(l Logger) {
	if l == nil {
		se.Logger = NopLogger{}
		return
	}
	se.Logger = l
}

// RunPlan simulates the profile month by month over its horizon and returns
// the snapshot series plus the payoff log. The input creditor list is copied
// before the run and never mutated. Validation failures surface before any
// simulation begins; no partial result is ever returned.
func (se *SimulationEngine) RunPlan(ctx context.Context, profile domain.ProfileConfig, creditors []domain.Creditor) (*domain.PlanResult, error) {
	normalized, err := profile.Normalized()
	if err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if err := domain.ValidateLedger(creditors); err != nil {
		return nil, fmt.Errorf("invalid creditors: %w", err)
	}

	se.Logger.Debugf("running plan: strategy=%s horizon=%d months, %d creditors",
		normalized.Strategy, normalized.HorizonMonths(), len(creditors))

	run := newPlanRun(normalized, domain.CopyLedger(creditors), se.Logger)
	run.run()

	result := &domain.PlanResult{
		Profile:          normalized,
		Snapshots:        run.snapshots,
		Payoffs:          run.payoffs,
		FullyFundedMonth: run.fullyFunded,
	}
	summarize(result, domain.TotalDebt(creditors).IsPositive())
	return result, nil
}

// summarize derives the headline figures from the recorded snapshot series.
func summarize(result *domain.PlanResult, startedWithDebt bool) {
	final := result.FinalSnapshot()
	result.FinalNetWorth = final.NetWorth
	result.TotalInterestPaid = final.CumulativeInterestPaid
	result.TotalTaxesPaid = final.CumulativeTaxesPaid

	if !startedWithDebt {
		return
	}
	for _, s := range result.Snapshots {
		if s.TotalDebt.IsZero() {
			m := s.Month
			result.DebtFreeMonth = &m
			return
		}
	}
}

// CompareStrategies runs the same profile and ledger under avalanche and
// snowball ordering. The two runs execute in parallel on independent ledger
// copies; the engine's ownership contract makes that safe.
func (se *SimulationEngine) CompareStrategies(ctx context.Context, profile domain.ProfileConfig, creditors []domain.Creditor) (*domain.StrategyComparison, error) {
	avalancheProfile := profile
	avalancheProfile.Strategy = domain.StrategyAvalanche
	snowballProfile := profile
	snowballProfile.Strategy = domain.StrategySnowball

	avalancheLedger := domain.CopyLedger(creditors)
	snowballLedger := domain.CopyLedger(creditors)

	cmp := &domain.StrategyComparison{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := se.RunPlan(ctx, avalancheProfile, avalancheLedger)
		cmp.Avalanche = result
		return err
	})
	g.Go(func() error {
		result, err := se.RunPlan(ctx, snowballProfile, snowballLedger)
		cmp.Snowball = result
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cmp.InterestSaved = cmp.Snowball.TotalInterestPaid.Sub(cmp.Avalanche.TotalInterestPaid)
	if cmp.Avalanche.DebtFreeMonth != nil && cmp.Snowball.DebtFreeMonth != nil {
		cmp.MonthsSaved = *cmp.Snowball.DebtFreeMonth - *cmp.Avalanche.DebtFreeMonth
	}
	return cmp, nil
}

// CompareSideIncome contrasts the profile against the same profile boosted by
// extra monthly income, reporting how many months sooner the boosted run
// clears its debt.
func (se *SimulationEngine) CompareSideIncome(ctx context.Context, profile domain.ProfileConfig, creditors []domain.Creditor, sideIncome decimal.Decimal) (*domain.SideIncomeComparison, error) {
	if sideIncome.IsNegative() {
		return nil, fmt.Errorf("side income cannot be negative, got %s", sideIncome)
	}

	boostedProfile := profile
	boostedProfile.Income = profile.Income.Add(sideIncome)

	baselineLedger := domain.CopyLedger(creditors)
	boostedLedger := domain.CopyLedger(creditors)

	cmp := &domain.SideIncomeComparison{SideIncome: sideIncome}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := se.RunPlan(ctx, profile, baselineLedger)
		cmp.Baseline = result
		return err
	})
	g.Go(func() error {
		result, err := se.RunPlan(ctx, boostedProfile, boostedLedger)
		cmp.Boosted = result
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if cmp.Baseline.DebtFreeMonth != nil && cmp.Boosted.DebtFreeMonth != nil {
		cmp.MonthsSaved = *cmp.Baseline.DebtFreeMonth - *cmp.Boosted.DebtFreeMonth
	}
	return cmp, nil
}

// MonthsToClear is a rough debt-freedom estimate: total debt divided by the
// monthly surplus, ignoring interest. The second return is false when the
// surplus is non-positive and the debt can never clear.
func MonthsToClear(totalDebt, surplus decimal.Decimal) (int, bool) {
	if !surplus.IsPositive() {
		return 0, false
	}
	return int(totalDebt.Div(surplus).IntPart()), true
}
