package calculation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finarch/finance-architect/internal/domain"
)

// workedProfile mirrors the documented hand-checked scenario: 2000 surplus,
// one 10k credit card at 20%, avalanche, one-year horizon.
func workedProfile() domain.ProfileConfig {
	return domain.ProfileConfig{
		Income:          decimal.NewFromInt(5000),
		Expenses:        decimal.NewFromInt(3000),
		EmergencyMonths: decimal.NewFromInt(3),
		StockYield:      decimal.NewFromFloat(0.10),
		BondYield:       decimal.NewFromFloat(0.04),
		StockRatio:      decimal.NewFromFloat(0.8),
		Inflation:       decimal.NewFromFloat(0.03),
		TaxRate:         decimal.NewFromFloat(0.15),
		AnnualRaise:     decimal.NewFromFloat(0.02),
		Strategy:        domain.StrategyAvalanche,
		HorizonYears:    1,
	}
}

func workedCreditors() []domain.Creditor {
	return []domain.Creditor{{
		Name:         "Credit Card",
		Balance:      decimal.NewFromInt(10000),
		InterestRate: decimal.NewFromFloat(0.20),
		MinPayment:   decimal.NewFromInt(300),
	}}
}

func assertCents(t *testing.T, expected float64, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, actual.Sub(decimal.NewFromFloat(expected)).Abs().LessThan(decimal.NewFromFloat(0.005)),
		"expected %v, got %s", expected, actual.StringFixed(4))
}

// TestWorkedScenarioMonthOne checks the hand-computed first allocation:
// 166.67 interest, 300 minimum, 1700 extra, all first visible in month 2's
// snapshot because of the observe-then-mutate ordering.
func TestWorkedScenarioMonthOne(t *testing.T) {
	engine := NewSimulationEngine()
	result, err := engine.RunPlan(context.Background(), workedProfile(), workedCreditors())
	require.NoError(t, err)
	require.Len(t, result.Snapshots, 13)

	month1 := result.Snapshots[1]
	assert.Equal(t, domain.PhaseDebt, month1.Phase)
	// Month 1 still shows the carried-over balance; allocation has not run yet.
	assertCents(t, 10000, month1.TotalDebt)
	assert.True(t, month1.CumulativeInterestPaid.IsZero())

	month2 := result.Snapshots[2]
	assertCents(t, 8166.67, month2.TotalDebt)
	assertCents(t, 166.67, month2.CumulativeInterestPaid)
}

func TestAvalanchePrioritizesHighestRate(t *testing.T) {
	profile := workedProfile()
	profile.Strategy = domain.StrategyAvalanche
	creditors := []domain.Creditor{
		{Name: "low-rate", Balance: decimal.NewFromInt(500), InterestRate: decimal.NewFromFloat(0.05)},
		{Name: "high-rate", Balance: decimal.NewFromInt(500), InterestRate: decimal.NewFromFloat(0.30)},
	}

	result, err := NewSimulationEngine().RunPlan(context.Background(), profile, creditors)
	require.NoError(t, err)

	// Surplus (2000) clears both in month 1; the high-rate creditor must be
	// fully paid first, so its payoff event comes first.
	require.GreaterOrEqual(t, len(result.Payoffs), 2)
	assert.Equal(t, "high-rate", result.Payoffs[0].Creditor)
	assert.Equal(t, "low-rate", result.Payoffs[1].Creditor)
	assert.Equal(t, 1, result.Payoffs[0].Month)
}

func TestSnowballPrioritizesLowestBalance(t *testing.T) {
	profile := workedProfile()
	profile.Strategy = domain.StrategySnowball
	creditors := []domain.Creditor{
		{Name: "big", Balance: decimal.NewFromInt(900), InterestRate: decimal.NewFromFloat(0.30)},
		{Name: "small", Balance: decimal.NewFromInt(400), InterestRate: decimal.NewFromFloat(0.05)},
	}

	result, err := NewSimulationEngine().RunPlan(context.Background(), profile, creditors)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(result.Payoffs), 2)
	assert.Equal(t, "small", result.Payoffs[0].Creditor)
	assert.Equal(t, "big", result.Payoffs[1].Creditor)
}

func TestExtraPaymentTiesKeepLedgerOrder(t *testing.T) {
	profile := workedProfile()
	profile.Strategy = domain.StrategySnowball
	// Identical balances and rates: the stable sort must preserve ledger order.
	creditors := []domain.Creditor{
		{Name: "first", Balance: decimal.NewFromInt(600), InterestRate: decimal.NewFromFloat(0.10)},
		{Name: "second", Balance: decimal.NewFromInt(600), InterestRate: decimal.NewFromFloat(0.10)},
	}

	result, err := NewSimulationEngine().RunPlan(context.Background(), profile, creditors)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(result.Payoffs), 2)
	assert.Equal(t, "first", result.Payoffs[0].Creditor)
	assert.Equal(t, "second", result.Payoffs[1].Creditor)
}

func TestMinimumPaymentPayoffsFollowLedgerOrder(t *testing.T) {
	profile := workedProfile()
	// Both creditors are cleared by their minimum payments alone; the pass
	// walks the ledger in order even though the second has the higher rate.
	creditors := []domain.Creditor{
		{Name: "alpha", Balance: decimal.NewFromInt(50), InterestRate: decimal.Zero, MinPayment: decimal.NewFromInt(100)},
		{Name: "beta", Balance: decimal.NewFromInt(50), InterestRate: decimal.NewFromFloat(0.40), MinPayment: decimal.NewFromInt(100)},
	}

	result, err := NewSimulationEngine().RunPlan(context.Background(), profile, creditors)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(result.Payoffs), 2)
	assert.Equal(t, "alpha", result.Payoffs[0].Creditor)
	assert.Equal(t, "beta", result.Payoffs[1].Creditor)
}

// TestDebtOverflowFillsEmergencyFundSameMonth covers the waterfall's final
// step: debt cleared mid-month, leftover surplus flows to the fund at once.
func TestDebtOverflowFillsEmergencyFundSameMonth(t *testing.T) {
	profile := workedProfile()
	creditors := []domain.Creditor{{
		Name:       "last-debt",
		Balance:    decimal.NewFromInt(100),
		MinPayment: decimal.NewFromInt(100),
	}}

	result, err := NewSimulationEngine().RunPlan(context.Background(), profile, creditors)
	require.NoError(t, err)

	month2 := result.Snapshots[2]
	assert.True(t, month2.TotalDebt.IsZero())
	// 2000 surplus minus the 100 payment went straight into the fund.
	assertCents(t, 1900, month2.EmergencyFund)
	assert.Equal(t, domain.PhaseEmergency, month2.Phase)
}

// TestEmergencyOverflowIsDeferred pins the asymmetry with the debt phase:
// surplus beyond the fund gap waits for next month's reclassification instead
// of being invested immediately.
func TestEmergencyOverflowIsDeferred(t *testing.T) {
	profile := workedProfile()
	profile.EmergencyMonths = decimal.NewFromFloat(0.5) // target 1500, surplus 2000

	result, err := NewSimulationEngine().RunPlan(context.Background(), profile, nil)
	require.NoError(t, err)

	month2 := result.Snapshots[2]
	assertCents(t, 1500, month2.EmergencyFund)
	assert.True(t, month2.Investment.IsZero(), "leftover surplus must not reach investments this month")
	assert.Equal(t, domain.PhaseInvesting, month2.Phase)

	// The following month the full surplus invests.
	month3 := result.Snapshots[3]
	assertCents(t, 2000, month3.Investment)
}

// TestFundBeyondTargetTakesNothing drives the fill helper with a fund already
// past its target; the contribution clamps to zero instead of withdrawing.
func TestFundBeyondTargetTakesNothing(t *testing.T) {
	run := newPlanRun(workedProfile(), nil, NopLogger{})
	run.emergencyFund = decimal.NewFromInt(20000) // target is 9000

	run.fillEmergencyFund(decimal.NewFromInt(500))
	assertCents(t, 20000, run.emergencyFund)
}

// TestInvestingGrowthExcludesNewContribution verifies growth and tax apply to
// the pre-existing balance only, with the surplus added afterwards.
func TestInvestingGrowthExcludesNewContribution(t *testing.T) {
	profile := workedProfile()
	profile.EmergencyMonths = decimal.Zero
	profile.StockRatio = decimal.NewFromInt(1)
	profile.StockYield = decimal.NewFromFloat(0.12) // 1% per month
	profile.TaxRate = decimal.NewFromFloat(0.25)
	profile.Inflation = decimal.Zero
	profile.AnnualRaise = decimal.Zero

	result, err := NewSimulationEngine().RunPlan(context.Background(), profile, nil)
	require.NoError(t, err)

	// Month 1 allocation: no prior balance, so no growth; 2000 contributed.
	assertCents(t, 2000, result.Snapshots[2].Investment)
	assert.True(t, result.Snapshots[2].CumulativeTaxesPaid.IsZero())

	// Month 2 allocation: growth 20, tax 5, then another 2000.
	assertCents(t, 4015, result.Snapshots[3].Investment)
	assertCents(t, 5, result.Snapshots[3].CumulativeTaxesPaid)
}

func TestPaidOffCreditorStaysAtZero(t *testing.T) {
	profile := workedProfile()
	profile.HorizonYears = 2

	result, err := NewSimulationEngine().RunPlan(context.Background(), profile, workedCreditors())
	require.NoError(t, err)

	require.Len(t, result.Payoffs, 1)
	require.NotNil(t, result.DebtFreeMonth)

	for _, s := range result.Snapshots[*result.DebtFreeMonth:] {
		assert.True(t, s.TotalDebt.IsZero(), "month %d: debt reappeared after payoff", s.Month)
	}
}

func TestDebtNonIncreasingWhileInDebtPhase(t *testing.T) {
	profile := workedProfile()
	profile.HorizonYears = 3

	result, err := NewSimulationEngine().RunPlan(context.Background(), profile, workedCreditors())
	require.NoError(t, err)

	for i := 1; i < len(result.Snapshots); i++ {
		prev, cur := result.Snapshots[i-1], result.Snapshots[i]
		if prev.Phase != domain.PhaseDebt {
			continue
		}
		assert.True(t, cur.TotalDebt.LessThanOrEqual(prev.TotalDebt),
			"month %d: debt %s grew from %s", cur.Month, cur.TotalDebt, prev.TotalDebt)
	}
}
