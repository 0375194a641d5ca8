package services

import (
	"context"
	"fmt"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	portsrepo "github.com/cashflowhq/cashflow_backend/internal/core/ports/repositories"
	portssvc "github.com/cashflowhq/cashflow_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: repo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// MonthlySummary returns per-month income and expense totals for a year.
func (s *reportingService) MonthlySummary(ctx context.Context, year int) ([]domain.MonthlySummaryRow, error) {
	logger := s.GetLogger(ctx)

	rows, err := s.reportingRepo.GetMonthlySummary(ctx, year)
	if err != nil {
		logger.Error("failed to fetch monthly summary", "year", year, "error", err)
		return nil, fmt.Errorf("failed to fetch monthly summary: %w", err)
	}
	return rows, nil
}

// Years lists every year with at least one record, newest first.
func (s *reportingService) Years(ctx context.Context) ([]int, error) {
	logger := s.GetLogger(ctx)

	years, err := s.reportingRepo.GetYears(ctx)
	if err != nil {
		logger.Error("failed to fetch years", "error", err)
		return nil, fmt.Errorf("failed to fetch years: %w", err)
	}
	return years, nil
}

// BusinessTotal sums business-category expenses for a year.
func (s *reportingService) BusinessTotal(ctx context.Context, year int) (decimal.Decimal, error) {
	logger := s.GetLogger(ctx)

	total, err := s.reportingRepo.GetBusinessTotal(ctx, year)
	if err != nil {
		logger.Error("failed to fetch business total", "year", year, "error", err)
		return decimal.Zero, fmt.Errorf("failed to fetch business total: %w", err)
	}
	return total, nil
}
