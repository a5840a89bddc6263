package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finarch/finance-architect/internal/domain"
)

const sampleYAML = `
profile:
  income: 5000
  expenses: 3000
  emergency_months: 3
  stock_yield: 0.10
  bond_yield: 0.04
  stock_ratio: 0.8
  inflation: 0.03
  tax_rate: 0.15
  annual_raise: 0.02
  strategy: avalanche
  horizon_years: 10
creditors:
  - name: Credit Card
    balance: 10000
    interest_rate: 0.20
    min_payment: 300
  - name: Car Loan
    balance: 15000
    interest_rate: 0.06
    min_payment: 250
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	input, err := NewInputParser().LoadFromFile(writeTemp(t, sampleYAML))
	require.NoError(t, err)

	assert.True(t, input.Profile.Income.Equal(decimal.NewFromInt(5000)))
	assert.True(t, input.Profile.StockRatio.Equal(decimal.NewFromFloat(0.8)))
	assert.Equal(t, domain.StrategyAvalanche, input.Profile.Strategy)
	assert.Equal(t, 10, input.Profile.HorizonYears)

	require.Len(t, input.Creditors, 2)
	assert.Equal(t, "Credit Card", input.Creditors[0].Name)
	assert.Equal(t, "Car Loan", input.Creditors[1].Name)
	assert.True(t, input.Creditors[1].Balance.Equal(decimal.NewFromInt(15000)))
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read file")
}

func TestLoadFromFileBadYAML(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(writeTemp(t, "profile: [not: valid"))
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PlanInput)
		wantErr string
	}{
		{
			name:   "valid input",
			mutate: func(*PlanInput) {},
		},
		{
			name:    "negative income",
			mutate:  func(in *PlanInput) { in.Profile.Income = decimal.NewFromInt(-1) },
			wantErr: "profile validation failed",
		},
		{
			name:    "zero horizon",
			mutate:  func(in *PlanInput) { in.Profile.HorizonYears = 0 },
			wantErr: "horizon years must be between 1 and 100",
		},
		{
			name:    "absurd horizon",
			mutate:  func(in *PlanInput) { in.Profile.HorizonYears = 500 },
			wantErr: "horizon years must be between 1 and 100",
		},
		{
			name:    "negative creditor balance",
			mutate:  func(in *PlanInput) { in.Creditors[0].Balance = decimal.NewFromInt(-5) },
			wantErr: "creditor validation failed",
		},
		{
			name:    "unnamed creditor",
			mutate:  func(in *PlanInput) { in.Creditors[1].Name = "" },
			wantErr: "has no name",
		},
	}

	parser := NewInputParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := parser.CreateExampleInput()
			tt.mutate(input)
			err := parser.ValidateInput(input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestExampleRoundTrip(t *testing.T) {
	parser := NewInputParser()
	path := filepath.Join(t.TempDir(), "example.yaml")
	require.NoError(t, parser.WriteExampleFile(path))

	loaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	example := parser.CreateExampleInput()
	assert.True(t, loaded.Profile.Income.Equal(example.Profile.Income))
	assert.Equal(t, example.Profile.Strategy, loaded.Profile.Strategy)
	require.Len(t, loaded.Creditors, len(example.Creditors))
	for i := range example.Creditors {
		assert.Equal(t, example.Creditors[i].Name, loaded.Creditors[i].Name)
		assert.True(t, loaded.Creditors[i].Balance.Equal(example.Creditors[i].Balance))
	}
}
