package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/finarch/finance-architect/internal/domain"
)

// CSVFormatter emits the snapshot series as CSV, one row per month, followed
// by nothing else; the payoff log travels in the JSON format instead. Rows
// keep the engine's chronological order.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.PlanResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{"Month", "Year", "Phase", "Income", "Expenses", "TotalDebt",
		"EmergencyFund", "Investment", "NetWorth", "RealNetWorth",
		"CumulativeInterestPaid", "CumulativeTaxesPaid"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, s := range result.Snapshots {
		row := []string{
			strconv.Itoa(s.Month),
			s.Year.StringFixed(2),
			s.Phase.String(),
			s.Income.StringFixed(2),
			s.Expenses.StringFixed(2),
			s.TotalDebt.StringFixed(2),
			s.EmergencyFund.StringFixed(2),
			s.Investment.StringFixed(2),
			s.NetWorth.StringFixed(2),
			s.RealNetWorth.StringFixed(2),
			s.CumulativeInterestPaid.StringFixed(2),
			s.CumulativeTaxesPaid.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
