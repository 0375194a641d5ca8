package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/cashflowhq/cashflow_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	transactionRepo := newPgxTransactionRepository(dbPool)
	plannedRepo := newPgxPlannedExpenseRepository(dbPool)
	fuelRepo := newPgxFuelLogRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TransactionRepo: transactionRepo,
		PlannedRepo:     plannedRepo,
		FuelRepo:        fuelRepo,
		UserRepo:        userRepo,
		ReportingRepo:   reportingRepo,
	}
}
