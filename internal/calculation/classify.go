package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finarch/finance-architect/internal/domain"
)

// ClassifyPhase maps the current debt and emergency-fund state to a phase.
// The order of the rules is fixed: outstanding debt wins, then an underfunded
// buffer, then investing. The fund comparison is strict, so a fund exactly at
// its target is already investing.
func ClassifyPhase(totalDebt, emergencyFund, emergencyTarget decimal.Decimal) domain.Phase {
	if totalDebt.IsPositive() {
		return domain.PhaseDebt
	}
	if emergencyFund.LessThan(emergencyTarget) {
		return domain.PhaseEmergency
	}
	return domain.PhaseInvesting
}

// EmergencyTarget computes the buffer target from the current, possibly
// escalated, monthly expenses.
func EmergencyTarget(emergencyMonths, expenses decimal.Decimal) decimal.Decimal {
	return emergencyMonths.Mul(expenses)
}
