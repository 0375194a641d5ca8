package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database row for a single transaction.
// Payer and Relation are null for records outside the shared ledger.
type Transaction struct {
	TransactionID string          `db:"transaction_id"` // Primary Key (UUID)
	Kind          string          `db:"kind"`           // INCOME or EXPENSE (Not Null)
	Amount        decimal.Decimal `db:"amount"`         // Positive value
	Description   string          `db:"description"`
	Location      string          `db:"location"`
	Date          time.Time       `db:"txn_date"`
	Category      string          `db:"category"` // GENERAL or BUSINESS
	AddedToMain   bool            `db:"added_to_main"`
	Payer         sql.NullString  `db:"payer"`    // H or M
	Relation      sql.NullString  `db:"relation"` // SHARED, DEBT_H_OWES_M, DEBT_M_OWES_H, SETTLEMENT
	AuditFields
}
