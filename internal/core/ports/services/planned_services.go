package services

import (
	"context"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	"github.com/cashflowhq/cashflow_backend/internal/dto"
)

// PlannedExpenseReaderSvc defines read operations for planned expenses.
type PlannedExpenseReaderSvc interface {
	// GetPlannedExpenseByID retrieves a planned expense by its ID.
	GetPlannedExpenseByID(ctx context.Context, plannedExpenseID string) (*domain.PlannedExpense, error)

	// ListPlannedExpenses returns all open plans plus their total amount.
	ListPlannedExpenses(ctx context.Context) (*dto.ListPlannedExpensesResponse, error)
}

// PlannedExpenseWriterSvc defines write operations for planned expenses.
type PlannedExpenseWriterSvc interface {
	CreatePlannedExpense(ctx context.Context, req dto.CreatePlannedExpenseRequest, creatorUserID string) (*domain.PlannedExpense, error)
	UpdatePlannedExpense(ctx context.Context, plannedExpenseID string, req dto.UpdatePlannedExpenseRequest, requestingUserID string) (*domain.PlannedExpense, error)
	DeletePlannedExpense(ctx context.Context, plannedExpenseID string, requestingUserID string) error

	// MaterializePlannedExpense converts a plan into a real expense
	// transaction dated now and removes the plan.
	MaterializePlannedExpense(ctx context.Context, plannedExpenseID string, requestingUserID string) (*domain.Transaction, error)
}

// PlannedExpenseSvcFacade combines the planned expense service interfaces.
type PlannedExpenseSvcFacade interface {
	PlannedExpenseReaderSvc
	PlannedExpenseWriterSvc
}
