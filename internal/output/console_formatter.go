package output

import (
	"bytes"
	"fmt"

	"github.com/finarch/finance-architect/internal/calculation"
	"github.com/finarch/finance-architect/internal/domain"
	"github.com/finarch/finance-architect/pkg/money"
)

// ConsoleFormatter renders a human-readable plan summary: headline figures,
// the payoff log, and one snapshot row per year.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.PlanResult) ([]byte, error) {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "FINANCIAL PROJECTION — %d years, %s strategy\n",
		result.Profile.HorizonYears, result.Profile.Strategy)
	fmt.Fprintf(buf, "=====================================================\n\n")

	final := result.FinalSnapshot()
	fmt.Fprintf(buf, "Final net worth:        %s\n", money.Format(result.FinalNetWorth))
	fmt.Fprintf(buf, "Real net worth:         %s (today's money)\n", money.Format(final.RealNetWorth))
	fmt.Fprintf(buf, "Total interest paid:    %s\n", money.Format(result.TotalInterestPaid))
	fmt.Fprintf(buf, "Total taxes paid:       %s\n", money.Format(result.TotalTaxesPaid))
	if base := result.Snapshots[0]; base.TotalDebt.IsPositive() {
		if est, ok := calculation.MonthsToClear(base.TotalDebt, base.Income.Sub(base.Expenses)); ok {
			fmt.Fprintf(buf, "Months to clear (est):  %d (interest-free)\n", est)
		}
	}
	if result.DebtFreeMonth != nil {
		fmt.Fprintf(buf, "Debt free:              month %d\n", *result.DebtFreeMonth)
	}
	if result.FullyFundedMonth != nil {
		fmt.Fprintf(buf, "Emergency fund full:    month %d\n", *result.FullyFundedMonth)
	}

	if len(result.Payoffs) > 0 {
		fmt.Fprintf(buf, "\nPAYOFF LOG\n")
		for _, e := range result.Payoffs {
			fmt.Fprintf(buf, "  month %3d (year %s): %s paid off\n", e.Month, e.Year.StringFixed(2), e.Creditor)
		}
	}

	fmt.Fprintf(buf, "\n%-6s %-10s %14s %14s %14s %14s\n",
		"Month", "Phase", "Debt", "Emergency", "Investment", "NetWorth")
	for _, s := range result.Snapshots {
		if s.Month%12 != 0 {
			continue
		}
		fmt.Fprintf(buf, "%-6d %-10s %14s %14s %14s %14s\n",
			s.Month, s.Phase,
			money.Format(s.TotalDebt), money.Format(s.EmergencyFund),
			money.Format(s.Investment), money.Format(s.NetWorth))
	}

	return buf.Bytes(), nil
}

// FormatStrategyComparison renders an avalanche-versus-snowball summary.
func FormatStrategyComparison(cmp *domain.StrategyComparison) []byte {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "STRATEGY COMPARISON\n")
	fmt.Fprintf(buf, "===================\n\n")
	writeStrategyLine(buf, cmp.Avalanche)
	writeStrategyLine(buf, cmp.Snowball)

	fmt.Fprintf(buf, "\nAvalanche saves %s in interest", money.Format(cmp.InterestSaved))
	if cmp.MonthsSaved != 0 {
		fmt.Fprintf(buf, " and %d months", cmp.MonthsSaved)
	}
	fmt.Fprintf(buf, " versus snowball.\n")
	return buf.Bytes()
}

func writeStrategyLine(buf *bytes.Buffer, result *domain.PlanResult) {
	debtFree := "never"
	if result.DebtFreeMonth != nil {
		debtFree = fmt.Sprintf("month %d", *result.DebtFreeMonth)
	}
	fmt.Fprintf(buf, "%-10s debt free %s, interest %s, final net worth %s\n",
		result.Profile.Strategy.String()+":", debtFree,
		money.Format(result.TotalInterestPaid), money.Format(result.FinalNetWorth))
}

// FormatSideIncomeComparison renders a baseline-versus-boosted summary.
func FormatSideIncomeComparison(cmp *domain.SideIncomeComparison) []byte {
	buf := &bytes.Buffer{}

	fmt.Fprintf(buf, "SIDE INCOME SCENARIO (+%s/month)\n", money.Format(cmp.SideIncome))
	fmt.Fprintf(buf, "================================\n\n")

	fmt.Fprintf(buf, "Standard: debt cleared %s\n", describeDebtFree(cmp.Baseline))
	fmt.Fprintf(buf, "Boosted:  debt cleared %s\n", describeDebtFree(cmp.Boosted))
	if cmp.MonthsSaved > 0 {
		fmt.Fprintf(buf, "\nTime saved: %d months.\n", cmp.MonthsSaved)
	}
	fmt.Fprintf(buf, "\nFinal net worth: %s standard, %s boosted.\n",
		money.Format(cmp.Baseline.FinalNetWorth), money.Format(cmp.Boosted.FinalNetWorth))
	return buf.Bytes()
}

func describeDebtFree(result *domain.PlanResult) string {
	if result.DebtFreeMonth == nil {
		return "never within the horizon"
	}
	return fmt.Sprintf("in %d months", *result.DebtFreeMonth)
}
