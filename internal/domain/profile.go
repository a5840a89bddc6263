package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Strategy selects the ordering of extra debt payments once minimums are covered.
type Strategy int

const (
	// StrategySnowball pays the smallest balance first. It is also the
	// documented fallback for unrecognized strategy names.
	StrategySnowball Strategy = iota
	// StrategyAvalanche pays the highest interest rate first.
	StrategyAvalanche
)

// ParseStrategy maps a user-facing name to a Strategy. Unknown names fall back
// to Snowball rather than erroring; that default is part of the contract.
func ParseStrategy(name string) Strategy {
	switch name {
	case "avalanche":
		return StrategyAvalanche
	default:
		return StrategySnowball
	}
}

func (s Strategy) String() string {
	switch s {
	case StrategyAvalanche:
		return "avalanche"
	default:
		return "snowball"
	}
}

// MarshalJSON serializes the strategy as its user-facing name.
func (s Strategy) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalYAML accepts the strategy name from a profile file.
func (s *Strategy) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	*s = ParseStrategy(name)
	return nil
}

// MarshalYAML serializes the strategy as its user-facing name.
func (s Strategy) MarshalYAML() (any, error) {
	return s.String(), nil
}

// ProfileConfig holds the immutable monthly income/expense profile and market
// assumptions for one projection run. All rates are annual fractions
// (0.05 = 5%); income and expenses are currency per month.
type ProfileConfig struct {
	Income          decimal.Decimal `yaml:"income" json:"income"`
	Expenses        decimal.Decimal `yaml:"expenses" json:"expenses"`
	EmergencyMonths decimal.Decimal `yaml:"emergency_months" json:"emergency_months"`
	StockYield      decimal.Decimal `yaml:"stock_yield" json:"stock_yield"`
	BondYield       decimal.Decimal `yaml:"bond_yield" json:"bond_yield"`
	StockRatio      decimal.Decimal `yaml:"stock_ratio" json:"stock_ratio"`
	Inflation       decimal.Decimal `yaml:"inflation" json:"inflation"`
	TaxRate         decimal.Decimal `yaml:"tax_rate" json:"tax_rate"`
	AnnualRaise     decimal.Decimal `yaml:"annual_raise" json:"annual_raise"`
	Strategy        Strategy        `yaml:"strategy" json:"strategy"`
	HorizonYears    int             `yaml:"horizon_years" json:"horizon_years"`
}

// Normalized returns a copy of the profile safe to simulate with. Ratio fields
// are clamped into [0, 1]; negative currency amounts and rates are rejected.
// This runs once at construction so the monthly loop never re-checks ranges.
func (p ProfileConfig) Normalized() (ProfileConfig, error) {
	if p.Income.IsNegative() {
		return ProfileConfig{}, fmt.Errorf("income cannot be negative, got %s", p.Income)
	}
	if p.Expenses.IsNegative() {
		return ProfileConfig{}, fmt.Errorf("expenses cannot be negative, got %s", p.Expenses)
	}
	if p.EmergencyMonths.IsNegative() {
		return ProfileConfig{}, fmt.Errorf("emergency months cannot be negative, got %s", p.EmergencyMonths)
	}
	for name, rate := range map[string]decimal.Decimal{
		"stock_yield":  p.StockYield,
		"bond_yield":   p.BondYield,
		"inflation":    p.Inflation,
		"annual_raise": p.AnnualRaise,
	} {
		if rate.IsNegative() {
			return ProfileConfig{}, fmt.Errorf("%s cannot be negative, got %s", name, rate)
		}
	}
	if p.HorizonYears < 0 {
		return ProfileConfig{}, fmt.Errorf("horizon years cannot be negative, got %d", p.HorizonYears)
	}

	p.StockRatio = clampRatio(p.StockRatio)
	p.TaxRate = clampRatio(p.TaxRate)
	return p, nil
}

// WeightedYield returns the blended annual return of the stock/bond split.
func (p ProfileConfig) WeightedYield() decimal.Decimal {
	one := decimal.NewFromInt(1)
	return p.StockRatio.Mul(p.StockYield).Add(one.Sub(p.StockRatio).Mul(p.BondYield))
}

// HorizonMonths returns the number of simulated months after the baseline.
func (p ProfileConfig) HorizonMonths() int {
	return p.HorizonYears * 12
}

func clampRatio(d decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(one) {
		return one
	}
	return d
}
