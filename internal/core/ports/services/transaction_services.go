package services

import (
	"context"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	"github.com/cashflowhq/cashflow_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction records.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific record by its ID.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated, filtered record list, newest first.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListMonths returns the month-grouped totals for a year.
	ListMonths(ctx context.Context, year int) ([]domain.MonthlySummaryRow, error)

	// GetBalance aggregates income and expenses over an optional window.
	GetBalance(ctx context.Context, params dto.BalanceParams) (*domain.BalanceSummary, error)
}

// TransactionWriterSvc defines write operations for transaction records.
type TransactionWriterSvc interface {
	// CreateTransaction persists a new record.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// UpdateTransaction updates description, amount, location, date or category.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error)

	// DeleteTransaction hard-deletes a record.
	DeleteTransaction(ctx context.Context, transactionID string, requestingUserID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
