package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlannedExpense is a future expense the household intends to make. It is not
// part of any balance until materialized into a real transaction.
type PlannedExpense struct {
	PlannedExpenseID string              `json:"plannedExpenseID"` // Primary Key (UUID)
	Description      string              `json:"description"`
	Amount           decimal.Decimal     `json:"amount"` // Positive magnitude
	Category         TransactionCategory `json:"category"`
	DueDate          *time.Time          `json:"dueDate,omitempty"`
	AuditFields
}
