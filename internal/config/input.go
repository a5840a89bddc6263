package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finarch/finance-architect/internal/domain"
)

// PlanInput is the on-disk shape of a projection request: one profile plus an
// ordered creditor list. Creditor order is significant (the engine's
// minimum-payment pass follows it) and is preserved as written.
type PlanInput struct {
	Profile   domain.ProfileConfig `yaml:"profile" json:"profile"`
	Creditors []domain.Creditor    `yaml:"creditors" json:"creditors"`
}

// InputParser handles parsing of plan input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan input from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*PlanInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input PlanInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	return &input, nil
}

// ValidateInput validates the loaded plan input. Range checks the engine
// performs at construction are repeated here so a bad file fails with a file
//-level message before any simulation is attempted.
func (ip *InputParser) ValidateInput(input *PlanInput) error {
	if _, err := input.Profile.Normalized(); err != nil {
		return fmt.Errorf("profile validation failed: %w", err)
	}
	if input.Profile.HorizonYears < 1 || input.Profile.HorizonYears > 100 {
		return fmt.Errorf("horizon years must be between 1 and 100, got %d", input.Profile.HorizonYears)
	}
	if err := domain.ValidateLedger(input.Creditors); err != nil {
		return fmt.Errorf("creditor validation failed: %w", err)
	}
	for i, c := range input.Creditors {
		if c.Name == "" {
			return fmt.Errorf("creditor validation failed: position %d has no name", i)
		}
	}
	return nil
}

// CreateExampleInput returns a starter plan input users can save and edit.
func (ip *InputParser) CreateExampleInput() *PlanInput {
	return &PlanInput{
		Profile: domain.ProfileConfig{
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
			HorizonYears:    10,
		},
		Creditors: []domain.Creditor{
			{
				Name:         "Credit Card",
				Balance:      decimal.NewFromInt(10000),
				InterestRate: decimal.NewFromFloat(0.20),
				MinPayment:   decimal.NewFromInt(300),
			},
			{
				Name:         "Car Loan",
				Balance:      decimal.NewFromInt(15000),
				InterestRate: decimal.NewFromFloat(0.06),
				MinPayment:   decimal.NewFromInt(250),
			},
		},
	}
}

// WriteExampleFile writes the example plan input to the given path in YAML.
func (ip *InputParser) WriteExampleFile(filename string) error {
	data, err := yaml.Marshal(ip.CreateExampleInput())
	if err != nil {
		return fmt.Errorf("failed to marshal example input: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
