package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	portsrepo "github.com/cashflowhq/cashflow_backend/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// NewReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetMonthlySummary retrieves per-month income/expense totals for a year.
func (r *reportingRepository) GetMonthlySummary(ctx context.Context, year int) ([]domain.MonthlySummaryRow, error) {
	query := `
		SELECT
			EXTRACT(YEAR FROM txn_date)::int AS year,
			EXTRACT(MONTH FROM txn_date)::int AS month,
			COALESCE(SUM(CASE WHEN kind = 'INCOME' THEN amount ELSE 0 END), 0) AS income_total,
			COALESCE(SUM(CASE WHEN kind = 'EXPENSE' THEN amount ELSE 0 END), 0) AS expense_total,
			COUNT(*) AS record_count
		FROM transactions
		WHERE EXTRACT(YEAR FROM txn_date) = $1
		GROUP BY 1, 2
		ORDER BY 2 DESC
	`

	rows, err := r.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly summary data: %w", err)
	}
	defer rows.Close()

	var result []domain.MonthlySummaryRow
	for rows.Next() {
		var row domain.MonthlySummaryRow
		if err := rows.Scan(
			&row.Year,
			&row.Month,
			&row.IncomeTotal,
			&row.ExpenseTotal,
			&row.Count,
		); err != nil {
			return nil, fmt.Errorf("error scanning monthly summary row: %w", err)
		}
		row.Net = row.IncomeTotal.Sub(row.ExpenseTotal)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly summary rows: %w", err)
	}

	return result, nil
}

// GetYears lists every year that has at least one record, newest first.
func (r *reportingRepository) GetYears(ctx context.Context) ([]int, error) {
	query := `
		SELECT DISTINCT EXTRACT(YEAR FROM txn_date)::int AS year
		FROM transactions
		ORDER BY year DESC
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying transaction years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("error scanning year row: %w", err)
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating year rows: %w", err)
	}

	return years, nil
}

// GetBalanceSummary aggregates income against expenses over an optional window.
func (r *reportingRepository) GetBalanceSummary(ctx context.Context, from, to *time.Time) (*domain.BalanceSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'INCOME' THEN amount ELSE 0 END), 0) AS income_total,
			COALESCE(SUM(CASE WHEN kind = 'EXPENSE' THEN amount ELSE 0 END), 0) AS expense_total
		FROM transactions
		WHERE ($1::timestamptz IS NULL OR txn_date >= $1)
			AND ($2::timestamptz IS NULL OR txn_date <= $2)
	`

	var summary domain.BalanceSummary
	if err := r.Pool.QueryRow(ctx, query, from, to).Scan(&summary.IncomeTotal, &summary.ExpenseTotal); err != nil {
		return nil, fmt.Errorf("error querying balance summary: %w", err)
	}
	summary.Net = summary.IncomeTotal.Sub(summary.ExpenseTotal)

	return &summary, nil
}

// GetBusinessTotal sums business-category expenses for a year.
func (r *reportingRepository) GetBusinessTotal(ctx context.Context, year int) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE kind = 'EXPENSE'
			AND category = 'BUSINESS'
			AND EXTRACT(YEAR FROM txn_date) = $1
	`

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, year).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("error querying business total: %w", err)
	}

	return total, nil
}
