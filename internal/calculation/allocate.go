package calculation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finarch/finance-architect/internal/domain"
	"github.com/finarch/finance-architect/pkg/money"
)

// allocate distributes one month's surplus according to the current phase.
// Debt phase runs a waterfall: accrue interest, pay minimums in ledger order,
// pay extras in strategy order, then overflow into the emergency fund if every
// balance cleared this same month. Emergency phase only fills the fund; any
// leftover waits for next month's reclassification. Investing phase grows the
// existing balance, taxes the growth, and adds the surplus afterwards, so new
// contributions earn nothing until the following month.
func (p *planRun) allocate(phase domain.Phase, surplus decimal.Decimal, month int) {
	switch phase {
	case domain.PhaseDebt:
		p.accrueInterest()
		remaining := p.payMinimums(surplus, month)
		remaining = p.payExtras(remaining, month)
		if remaining.IsPositive() && !domain.TotalDebt(p.ledger).IsPositive() {
			p.fillEmergencyFund(remaining)
		}
	case domain.PhaseEmergency:
		p.fillEmergencyFund(surplus)
	case domain.PhaseInvesting:
		p.growInvestment(surplus)
	}
}

// accrueInterest adds one month of interest to every open balance and tracks
// the total accrued over the run.
func (p *planRun) accrueInterest() {
	for i := range p.ledger {
		c := &p.ledger[i]
		if !c.Balance.IsPositive() {
			continue
		}
		interest := c.Balance.Mul(money.Monthly(c.InterestRate))
		c.Balance = c.Balance.Add(interest)
		p.interestPaid = p.interestPaid.Add(interest)
	}
}

// payMinimums walks the ledger in its original order, paying each creditor
// min(minimum, balance, remaining surplus). Returns the surplus left over.
func (p *planRun) payMinimums(remaining decimal.Decimal, month int) decimal.Decimal {
	for i := range p.ledger {
		if !remaining.IsPositive() {
			break
		}
		c := &p.ledger[i]
		if !c.Balance.IsPositive() {
			continue
		}
		payment := money.Min(money.Min(c.MinPayment, c.Balance), remaining)
		if !payment.IsPositive() {
			continue
		}
		c.Balance = c.Balance.Sub(payment)
		remaining = remaining.Sub(payment)
		p.settleIfCleared(i, month)
	}
	return remaining
}

// payExtras applies the leftover surplus to open balances in strategy order,
// fully paying down one creditor before moving to the next. The sort operates
// on a separate index slice; the ledger itself keeps its original order, and
// ties keep it too via the stable sort.
func (p *planRun) payExtras(remaining decimal.Decimal, month int) decimal.Decimal {
	if !remaining.IsPositive() {
		return remaining
	}

	order := make([]int, 0, len(p.ledger))
	for i := range p.ledger {
		if p.ledger[i].Balance.IsPositive() {
			order = append(order, i)
		}
	}

	switch p.profile.Strategy {
	case domain.StrategyAvalanche:
		sort.SliceStable(order, func(a, b int) bool {
			return p.ledger[order[a]].InterestRate.GreaterThan(p.ledger[order[b]].InterestRate)
		})
	default:
		sort.SliceStable(order, func(a, b int) bool {
			return p.ledger[order[a]].Balance.LessThan(p.ledger[order[b]].Balance)
		})
	}

	for _, i := range order {
		if !remaining.IsPositive() {
			break
		}
		c := &p.ledger[i]
		payment := money.Min(c.Balance, remaining)
		c.Balance = c.Balance.Sub(payment)
		remaining = remaining.Sub(payment)
		p.settleIfCleared(i, month)
	}
	return remaining
}

// settleIfCleared zeroes a balance within a cent of zero, pins the payoff
// month, and records the payoff event. Once pinned the balance stays exactly
// zero for the rest of the run.
func (p *planRun) settleIfCleared(i, month int) {
	c := &p.ledger[i]
	if c.Balance.GreaterThan(money.CentEpsilon) {
		return
	}
	c.Balance = decimal.Zero
	if c.PayoffMonth != nil {
		return
	}
	m := month
	c.PayoffMonth = &m
	p.payoffs = append(p.payoffs, domain.PayoffEvent{
		Creditor: c.Name,
		Month:    month,
		Year:     yearOf(month),
	})
	p.logger.Debugf("creditor %q paid off in month %d", c.Name, month)
}

// fillEmergencyFund contributes up to the gap between the fund and its
// current target. Surplus beyond the gap is not redirected this month, and a
// fund already at or above target takes nothing.
func (p *planRun) fillEmergencyFund(remaining decimal.Decimal) {
	gap := money.Max(decimal.Zero, EmergencyTarget(p.profile.EmergencyMonths, p.expenses).Sub(p.emergencyFund))
	p.emergencyFund = p.emergencyFund.Add(money.Min(remaining, gap))
}

// growInvestment applies one month of blended growth to the pre-existing
// balance, taxes that growth, then adds the surplus contribution.
func (p *planRun) growInvestment(surplus decimal.Decimal) {
	growth := p.investment.Mul(money.Monthly(p.weightedYield))
	tax := growth.Mul(p.profile.TaxRate)
	p.investment = p.investment.Add(growth.Sub(tax)).Add(surplus)
	p.taxesPaid = p.taxesPaid.Add(tax)
}
