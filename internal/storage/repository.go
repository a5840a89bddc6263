package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/finarch/finance-architect/internal/config"
	"github.com/finarch/finance-architect/internal/domain"
)

// ErrNoProfile is returned when no plan input has been saved yet.
var ErrNoProfile = errors.New("no saved profile")

// Repository persists a single plan input (profile + ordered creditor list)
// in SQLite. Amounts are stored as decimal strings, never as floats, so a
// load/save round trip is exact. Creditor order is preserved via an explicit
// position column; the engine's minimum-payment pass depends on it.
type Repository struct {
	db *sql.DB
}

// Open opens (creating if needed) the plan database at dbPath and applies any
// pending migrations.
func Open(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SavePlanInput replaces the stored profile and creditor list atomically.
func (r *Repository) SavePlanInput(ctx context.Context, input *config.PlanInput) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM profile`); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM creditors`); err != nil {
		return fmt.Errorf("clear creditors: %w", err)
	}

	p := input.Profile
	_, err = tx.ExecContext(ctx, `
		INSERT INTO profile (
			id, income, expenses, emergency_months, stock_yield, bond_yield,
			stock_ratio, inflation, tax_rate, annual_raise, strategy,
			horizon_years, updated_at
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))`,
		p.Income.String(), p.Expenses.String(), p.EmergencyMonths.String(),
		p.StockYield.String(), p.BondYield.String(), p.StockRatio.String(),
		p.Inflation.String(), p.TaxRate.String(), p.AnnualRaise.String(),
		p.Strategy.String(), p.HorizonYears)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	for i, c := range input.Creditors {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO creditors (position, name, balance, interest_rate, min_payment)
			VALUES (?, ?, ?, ?, ?)`,
			i, c.Name, c.Balance.String(), c.InterestRate.String(), c.MinPayment.String())
		if err != nil {
			return fmt.Errorf("insert creditor %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// LoadPlanInput returns the stored profile and creditor list, or ErrNoProfile
// when nothing has been saved.
func (r *Repository) LoadPlanInput(ctx context.Context) (*config.PlanInput, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT income, expenses, emergency_months, stock_yield, bond_yield,
		       stock_ratio, inflation, tax_rate, annual_raise, strategy,
		       horizon_years
		FROM profile WHERE id = 1`)

	var (
		income, expenses, emergencyMonths string
		stockYield, bondYield, stockRatio string
		inflation, taxRate, annualRaise   string
		strategy                          string
		horizonYears                      int
	)
	err := row.Scan(&income, &expenses, &emergencyMonths, &stockYield, &bondYield,
		&stockRatio, &inflation, &taxRate, &annualRaise, &strategy, &horizonYears)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}

	profile := domain.ProfileConfig{
		Strategy:     domain.ParseStrategy(strategy),
		HorizonYears: horizonYears,
	}
	for dst, s := range map[*decimal.Decimal]string{
		&profile.Income:          income,
		&profile.Expenses:        expenses,
		&profile.EmergencyMonths: emergencyMonths,
		&profile.StockYield:      stockYield,
		&profile.BondYield:       bondYield,
		&profile.StockRatio:      stockRatio,
		&profile.Inflation:       inflation,
		&profile.TaxRate:         taxRate,
		&profile.AnnualRaise:     annualRaise,
	} {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("parse stored amount %q: %w", s, err)
		}
		*dst = d
	}

	creditors, err := r.loadCreditors(ctx)
	if err != nil {
		return nil, err
	}

	return &config.PlanInput{Profile: profile, Creditors: creditors}, nil
}

func (r *Repository) loadCreditors(ctx context.Context) ([]domain.Creditor, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, balance, interest_rate, min_payment
		FROM creditors ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query creditors: %w", err)
	}
	defer rows.Close()

	var creditors []domain.Creditor
	for rows.Next() {
		var name, balance, rate, minPayment string
		if err := rows.Scan(&name, &balance, &rate, &minPayment); err != nil {
			return nil, fmt.Errorf("scan creditor: %w", err)
		}
		c := domain.Creditor{Name: name}
		if c.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("parse balance for %q: %w", name, err)
		}
		if c.InterestRate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("parse interest rate for %q: %w", name, err)
		}
		if c.MinPayment, err = decimal.NewFromString(minPayment); err != nil {
			return nil, fmt.Errorf("parse minimum payment for %q: %w", name, err)
		}
		creditors = append(creditors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate creditors: %w", err)
	}
	return creditors, nil
}
