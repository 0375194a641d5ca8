package repositories

import (
	"context"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
)

// PlannedExpenseReader defines read operations for planned expenses.
type PlannedExpenseReader interface {
	// FindPlannedExpenseByID retrieves a planned expense by its identifier.
	FindPlannedExpenseByID(ctx context.Context, plannedExpenseID string) (*domain.PlannedExpense, error)

	// ListPlannedExpenses returns all planned expenses ordered by due date ascending.
	ListPlannedExpenses(ctx context.Context) ([]domain.PlannedExpense, error)
}

// PlannedExpenseWriter defines write operations for planned expenses.
type PlannedExpenseWriter interface {
	SavePlannedExpense(ctx context.Context, planned domain.PlannedExpense) error
	UpdatePlannedExpense(ctx context.Context, planned domain.PlannedExpense) error
	DeletePlannedExpense(ctx context.Context, plannedExpenseID string) error

	// MaterializePlannedExpense deletes the plan and inserts the real
	// transaction it became, in one database transaction.
	MaterializePlannedExpense(ctx context.Context, plannedExpenseID string, txn domain.Transaction) error
}

// PlannedExpenseRepositoryFacade combines the planned expense interfaces.
type PlannedExpenseRepositoryFacade interface {
	PlannedExpenseReader
	PlannedExpenseWriter
}
