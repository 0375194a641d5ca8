package repositories

import (
	"context"
	"time"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
)

// ListTransactionsFilter narrows a transaction listing. Zero values mean "no
// filter". Year/Month power the month-grouped UI's lazy expansion.
type ListTransactionsFilter struct {
	Kind       *domain.TransactionKind
	Category   *domain.TransactionCategory
	Year       int
	Month      int // 1..12, only meaningful with Year set
	LedgerOnly bool
}

// TransactionReader defines read operations for transaction records.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific record by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of records using token-based
	// pagination, newest first. It returns the records, a token for the next
	// page, and an error.
	ListTransactions(ctx context.Context, filter ListTransactionsFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListLedgerRecords returns all shared-ledger records (payer tag set),
	// ordered by date ascending, optionally restricted to a date window.
	ListLedgerRecords(ctx context.Context, from, to *time.Time) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction records.
type TransactionWriter interface {
	// SaveTransaction persists a new record.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction persists mutations to an existing record.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction hard-deletes a record.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// MirrorLedgerRecord inserts the mirrored general record and flips the
	// original's added_to_main flag in one database transaction. It fails
	// with ErrDuplicate if the original was already mirrored.
	MirrorLedgerRecord(ctx context.Context, originalID string, mirror domain.Transaction) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends the facade with transaction capabilities.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
