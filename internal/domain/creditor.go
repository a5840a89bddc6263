package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Creditor is the mutable per-debt state inside one simulation run. Names need
// not be unique; payoff events are attributed by the creditor's position in
// the original ledger. InterestRate is annual; MinPayment is per month.
type Creditor struct {
	Name         string          `yaml:"name" json:"name"`
	Balance      decimal.Decimal `yaml:"balance" json:"balance"`
	InterestRate decimal.Decimal `yaml:"interest_rate" json:"interest_rate"`
	MinPayment   decimal.Decimal `yaml:"min_payment" json:"min_payment"`

	// PayoffMonth stays nil until the balance first reaches zero, then is
	// fixed for the remainder of the run.
	PayoffMonth *int `yaml:"-" json:"payoff_month,omitempty"`
}

// Validate rejects creditors that would corrupt a run. Like profile
// normalization this happens once up front, never in the monthly loop.
func (c Creditor) Validate() error {
	if c.Balance.IsNegative() {
		return fmt.Errorf("creditor %q: balance cannot be negative, got %s", c.Name, c.Balance)
	}
	if c.InterestRate.IsNegative() {
		return fmt.Errorf("creditor %q: interest rate cannot be negative, got %s", c.Name, c.InterestRate)
	}
	if c.MinPayment.IsNegative() {
		return fmt.Errorf("creditor %q: minimum payment cannot be negative, got %s", c.Name, c.MinPayment)
	}
	return nil
}

// ValidateLedger validates every creditor in ledger order.
func ValidateLedger(creditors []Creditor) error {
	for i, c := range creditors {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("ledger position %d: %w", i, err)
		}
	}
	return nil
}

// CopyLedger returns an independent working copy of the creditor list. Each
// run must own its copy; the caller's records are never mutated, and two
// concurrent runs must never share one.
func CopyLedger(creditors []Creditor) []Creditor {
	ledger := make([]Creditor, len(creditors))
	for i, c := range creditors {
		ledger[i] = c
		if c.PayoffMonth != nil {
			m := *c.PayoffMonth
			ledger[i].PayoffMonth = &m
		}
	}
	return ledger
}

// TotalDebt sums the outstanding balances across the ledger.
func TotalDebt(creditors []Creditor) decimal.Decimal {
	total := decimal.Zero
	for _, c := range creditors {
		if c.Balance.IsPositive() {
			total = total.Add(c.Balance)
		}
	}
	return total
}
