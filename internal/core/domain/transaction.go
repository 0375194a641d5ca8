package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates whether a record represents money coming in or going out.
type TransactionKind string

const (
	Income  TransactionKind = "INCOME"
	Expense TransactionKind = "EXPENSE"
)

// TransactionCategory distinguishes ordinary household records from business expenses.
type TransactionCategory string

const (
	CategoryGeneral  TransactionCategory = "GENERAL"
	CategoryBusiness TransactionCategory = "BUSINESS"
)

// Transaction is the single persisted entity of the tracker: one income or
// expense record. Amount is always a non-negative magnitude; direction is
// derived from Kind. Ledger is non-nil only for records that belong to the
// two-party shared-expense sub-ledger.
type Transaction struct {
	TransactionID string              `json:"transactionID"` // Primary Key (UUID)
	Kind          TransactionKind     `json:"kind"`
	Amount        decimal.Decimal     `json:"amount"` // Positive magnitude; Precise decimal type
	Description   string              `json:"description"`
	Location      string              `json:"location"`
	Date          time.Time           `json:"date"`
	Category      TransactionCategory `json:"category"`
	AddedToMain   bool                `json:"addedToMain"` // Ledger record already mirrored into the general list
	Ledger        *LedgerTag          `json:"ledger,omitempty"`
	AuditFields
}

// SignedAmount returns the amount with the sign implied by Kind:
// positive for income, negative for expenses.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// IsLedger reports whether the record belongs to the shared-expense sub-ledger.
func (t Transaction) IsLedger() bool {
	return t.Ledger != nil
}
