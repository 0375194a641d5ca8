package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
)

// CreateTransactionRequest is the payload for creating a transaction.
type CreateTransactionRequest struct {
	Kind        domain.TransactionKind     `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Amount      decimal.Decimal            `json:"amount" binding:"required"`
	Description string                     `json:"description" binding:"required"`
	Location    string                     `json:"location"`
	Date        time.Time                  `json:"date" binding:"required"`
	Category    domain.TransactionCategory `json:"category" binding:"omitempty,oneof=GENERAL BUSINESS"`
}

// UpdateTransactionRequest carries the mutable fields of a transaction.
// Nil fields are left untouched.
type UpdateTransactionRequest struct {
	Kind        *domain.TransactionKind     `json:"kind" binding:"omitempty,oneof=INCOME EXPENSE"`
	Amount      *decimal.Decimal            `json:"amount"`
	Description *string                     `json:"description"`
	Location    *string                     `json:"location"`
	Date        *time.Time                  `json:"date"`
	Category    *domain.TransactionCategory `json:"category" binding:"omitempty,oneof=GENERAL BUSINESS"`
}

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	TransactionID string                     `json:"transactionID"`
	Kind          domain.TransactionKind     `json:"kind"`
	Amount        decimal.Decimal            `json:"amount"`
	Description   string                     `json:"description"`
	Location      string                     `json:"location,omitempty"`
	Date          time.Time                  `json:"date"`
	Category      domain.TransactionCategory `json:"category"`
	AddedToMain   bool                       `json:"addedToMain"`
	Payer         *domain.Party              `json:"payer,omitempty"`
	Relation      *domain.LedgerRelation     `json:"relation,omitempty"`
	CreatedAt     time.Time                  `json:"createdAt"`
	LastUpdatedAt time.Time                  `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain transaction to its response shape.
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID: txn.TransactionID,
		Kind:          txn.Kind,
		Amount:        txn.Amount,
		Description:   txn.Description,
		Location:      txn.Location,
		Date:          txn.Date,
		Category:      txn.Category,
		AddedToMain:   txn.AddedToMain,
		CreatedAt:     txn.CreatedAt,
		LastUpdatedAt: txn.LastUpdatedAt,
	}
	if txn.Ledger != nil {
		payer := txn.Ledger.Payer
		relation := txn.Ledger.Relation
		resp.Payer = &payer
		resp.Relation = &relation
	}
	return resp
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, ToTransactionResponse(txn))
	}
	return out
}

// ListTransactionsParams are the query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit      int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken  *string `form:"nextToken"`
	Kind       *string `form:"kind" binding:"omitempty,oneof=INCOME EXPENSE"`
	Category   *string `form:"category" binding:"omitempty,oneof=GENERAL BUSINESS"`
	Year       int     `form:"year"`
	Month      int     `form:"month" binding:"omitempty,min=1,max=12"`
	LedgerOnly bool    `form:"ledgerOnly"`
}

// ListTransactionsResponse is a page of transactions with the pagination token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse builds a page response from domain records.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	return ListTransactionsResponse{
		Transactions: ToTransactionResponses(txns),
		NextToken:    nextToken,
	}
}

// BalanceParams bound the optional date range of a balance query.
type BalanceParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// BalanceResponse summarises income against expenses for a period.
type BalanceResponse struct {
	IncomeTotal  decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal decimal.Decimal `json:"expenseTotal"`
	Net          decimal.Decimal `json:"net"`
}

// ToBalanceResponse converts a domain balance summary.
func ToBalanceResponse(summary domain.BalanceSummary) BalanceResponse {
	return BalanceResponse{
		IncomeTotal:  summary.IncomeTotal,
		ExpenseTotal: summary.ExpenseTotal,
		Net:          summary.Net,
	}
}
