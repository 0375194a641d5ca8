package repositories

import (
	"context"
	"time"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines operations for retrieving aggregate report data.
type ReportingRepository interface {
	// GetMonthlySummary retrieves per-month income/expense totals for a year.
	GetMonthlySummary(ctx context.Context, year int) ([]domain.MonthlySummaryRow, error)

	// GetYears lists every year that has at least one record, descending.
	GetYears(ctx context.Context) ([]int, error)

	// GetBalanceSummary aggregates income and expenses over an optional window.
	GetBalanceSummary(ctx context.Context, from, to *time.Time) (*domain.BalanceSummary, error)

	// GetBusinessTotal sums business-category expenses for a year.
	GetBusinessTotal(ctx context.Context, year int) (decimal.Decimal, error)
}
