package services

import (
	portsrepo "github.com/cashflowhq/cashflow_backend/internal/core/ports/repositories"
	portssvc "github.com/cashflowhq/cashflow_backend/internal/core/ports/services"
	"github.com/cashflowhq/cashflow_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.ReportingRepo)
	container.Ledger = NewLedgerService(repos.TransactionRepo)
	container.Planned = NewPlannedExpenseService(repos.PlannedRepo)
	container.Fuel = NewFuelLogService(repos.FuelRepo, repos.TransactionRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	// Token issuance needs the user service for refresh token persistence
	container.TokenService = NewTokenService(cfg, container.User)

	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
