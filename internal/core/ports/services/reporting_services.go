package services

import (
	"context"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingService defines operations for generating aggregate reports.
type ReportingService interface {
	// MonthlySummary returns per-month totals for the given year.
	MonthlySummary(ctx context.Context, year int) ([]domain.MonthlySummaryRow, error)

	// Years lists every year with at least one record, newest first.
	Years(ctx context.Context) ([]int, error)

	// BusinessTotal sums business-category expenses for a year.
	BusinessTotal(ctx context.Context, year int) (decimal.Decimal, error)
}
