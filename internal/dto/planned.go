package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
)

// CreatePlannedExpenseRequest is the payload for creating a planned expense.
type CreatePlannedExpenseRequest struct {
	Description string                     `json:"description" binding:"required"`
	Amount      decimal.Decimal            `json:"amount" binding:"required"`
	Category    domain.TransactionCategory `json:"category" binding:"omitempty,oneof=GENERAL BUSINESS"`
	DueDate     *time.Time                 `json:"dueDate"`
}

// UpdatePlannedExpenseRequest carries the mutable fields of a planned expense.
// Nil fields are left untouched.
type UpdatePlannedExpenseRequest struct {
	Description *string                     `json:"description"`
	Amount      *decimal.Decimal            `json:"amount"`
	Category    *domain.TransactionCategory `json:"category" binding:"omitempty,oneof=GENERAL BUSINESS"`
	DueDate     *time.Time                  `json:"dueDate"`
}

// PlannedExpenseResponse is the API representation of a planned expense.
type PlannedExpenseResponse struct {
	PlannedExpenseID string                     `json:"plannedExpenseID"`
	Description      string                     `json:"description"`
	Amount           decimal.Decimal            `json:"amount"`
	Category         domain.TransactionCategory `json:"category"`
	DueDate          *time.Time                 `json:"dueDate,omitempty"`
	CreatedAt        time.Time                  `json:"createdAt"`
	LastUpdatedAt    time.Time                  `json:"lastUpdatedAt"`
}

// ToPlannedExpenseResponse converts a domain planned expense.
func ToPlannedExpenseResponse(p domain.PlannedExpense) PlannedExpenseResponse {
	return PlannedExpenseResponse{
		PlannedExpenseID: p.PlannedExpenseID,
		Description:      p.Description,
		Amount:           p.Amount,
		Category:         p.Category,
		DueDate:          p.DueDate,
		CreatedAt:        p.CreatedAt,
		LastUpdatedAt:    p.LastUpdatedAt,
	}
}

// ListPlannedExpensesResponse lists planned expenses with their running total.
type ListPlannedExpensesResponse struct {
	PlannedExpenses []PlannedExpenseResponse `json:"plannedExpenses"`
	Total           decimal.Decimal          `json:"total"`
}

// ToListPlannedExpensesResponse builds the list response from domain records.
func ToListPlannedExpensesResponse(planned []domain.PlannedExpense) ListPlannedExpensesResponse {
	out := ListPlannedExpensesResponse{
		PlannedExpenses: make([]PlannedExpenseResponse, 0, len(planned)),
		Total:           decimal.Zero,
	}
	for _, p := range planned {
		out.PlannedExpenses = append(out.PlannedExpenses, ToPlannedExpenseResponse(p))
		out.Total = out.Total.Add(p.Amount)
	}
	return out
}
