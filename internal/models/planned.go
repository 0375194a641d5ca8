package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// PlannedExpense is the database row for an upcoming expense.
type PlannedExpense struct {
	PlannedExpenseID string          `db:"planned_expense_id"` // Primary Key (UUID)
	Description      string          `db:"description"`
	Amount           decimal.Decimal `db:"amount"`
	Category         string          `db:"category"`
	DueDate          sql.NullTime    `db:"due_date"`
	AuditFields
}
