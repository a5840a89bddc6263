package domain

import (
	"github.com/shopspring/decimal"
)

// Phase is the financial phase a month is classified into. It is a closed set;
// always switch exhaustively rather than comparing labels.
type Phase int

const (
	PhaseDebt Phase = iota
	PhaseEmergency
	PhaseInvesting
)

func (p Phase) String() string {
	switch p {
	case PhaseDebt:
		return "debt"
	case PhaseEmergency:
		return "emergency"
	case PhaseInvesting:
		return "investing"
	}
	return "unknown"
}

// MarshalJSON serializes the phase as its label for downstream consumers.
func (p Phase) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// Snapshot is the state observed for a single month, recorded before that
// month's allocation mutates anything. Currency fields are rounded to cents at
// recording time only; the run's working state is never rounded.
type Snapshot struct {
	Month int             `json:"month"`
	Year  decimal.Decimal `json:"year"` // month/12, two decimals
	Phase Phase           `json:"phase"`

	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`

	TotalDebt     decimal.Decimal `json:"total_debt"`
	EmergencyFund decimal.Decimal `json:"emergency_fund"`
	Investment    decimal.Decimal `json:"investment"`

	NetWorth     decimal.Decimal `json:"net_worth"`
	RealNetWorth decimal.Decimal `json:"real_net_worth"`

	CumulativeInterestPaid decimal.Decimal `json:"cumulative_interest_paid"`
	CumulativeTaxesPaid    decimal.Decimal `json:"cumulative_taxes_paid"`
}

// PayoffEvent records a creditor balance reaching zero. Events are appended in
// chronological order; within one month the minimum-payment pass emits in
// ledger order and the extra-payment pass in strategy order.
type PayoffEvent struct {
	Creditor string          `json:"creditor"`
	Month    int             `json:"month"`
	Year     decimal.Decimal `json:"year"`
}

// PlanResult is the complete output of one projection run: the snapshot series
// (horizon months + 1 entries), the payoff log, and derived summary figures.
// It is immutable once returned.
type PlanResult struct {
	Profile   ProfileConfig `json:"profile"`
	Snapshots []Snapshot    `json:"snapshots"`
	Payoffs   []PayoffEvent `json:"payoffs"`

	// DebtFreeMonth is the first month whose snapshot shows zero total debt
	// while the run started with debt; nil when debt never clears (or there
	// was none to begin with). FullyFundedMonth is the analogous first month
	// the emergency fund meets its target.
	DebtFreeMonth    *int `json:"debt_free_month,omitempty"`
	FullyFundedMonth *int `json:"fully_funded_month,omitempty"`

	FinalNetWorth     decimal.Decimal `json:"final_net_worth"`
	TotalInterestPaid decimal.Decimal `json:"total_interest_paid"`
	TotalTaxesPaid    decimal.Decimal `json:"total_taxes_paid"`
}

// FinalSnapshot returns the last recorded snapshot, or a zero value for an
// empty series.
func (pr *PlanResult) FinalSnapshot() Snapshot {
	if len(pr.Snapshots) == 0 {
		return Snapshot{}
	}
	return pr.Snapshots[len(pr.Snapshots)-1]
}

// StrategyComparison holds the outcome of running the same profile and ledger
// under both extra-payment strategies.
type StrategyComparison struct {
	Avalanche *PlanResult `json:"avalanche"`
	Snowball  *PlanResult `json:"snowball"`

	// InterestSaved and MonthsSaved express avalanche relative to snowball;
	// negative MonthsSaved means snowball cleared the debt sooner.
	InterestSaved decimal.Decimal `json:"interest_saved"`
	MonthsSaved   int             `json:"months_saved"`
}

// SideIncomeComparison contrasts a baseline run against the same profile with
// extra monthly income.
type SideIncomeComparison struct {
	SideIncome decimal.Decimal `json:"side_income"`
	Baseline   *PlanResult     `json:"baseline"`
	Boosted    *PlanResult     `json:"boosted"`

	// MonthsSaved is how much sooner the boosted run becomes debt free; zero
	// when either run never clears its debt.
	MonthsSaved int `json:"months_saved"`
}
