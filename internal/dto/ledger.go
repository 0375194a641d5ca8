package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
)

// CreateLedgerRecordRequest is the payload for recording a shared expense.
type CreateLedgerRecordRequest struct {
	Payer       domain.Party          `json:"payer" binding:"required,ledgerparty"`
	Relation    domain.LedgerRelation `json:"relation" binding:"required,oneof=SHARED DEBT_H_OWES_M DEBT_M_OWES_H"`
	Amount      decimal.Decimal       `json:"amount" binding:"required"`
	Description string                `json:"description" binding:"required"`
	Location    string                `json:"location"`
	Date        time.Time             `json:"date" binding:"required"`
}

// LedgerQueryParams bounds the optional date range of a ledger query.
type LedgerQueryParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// LedgerBalanceResponse is the API representation of a computed balance.
type LedgerBalanceResponse struct {
	HTotal        decimal.Decimal `json:"hTotal"`
	MTotal        decimal.Decimal `json:"mTotal"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetDebt       decimal.Decimal `json:"netDebt"`
	Debtor        *domain.Party   `json:"debtor,omitempty"`
}

// ToLedgerBalanceResponse converts a domain ledger balance.
func ToLedgerBalanceResponse(balance domain.LedgerBalance) LedgerBalanceResponse {
	resp := LedgerBalanceResponse{
		HTotal:        balance.HTotal,
		MTotal:        balance.MTotal,
		TotalExpenses: balance.TotalExpenses,
		NetDebt:       balance.NetDebt,
	}
	if debtor, ok := balance.Debtor(); ok {
		resp.Debtor = &debtor
	}
	return resp
}

// LedgerOverviewResponse carries the ledger records together with the
// lifetime balance and the balance of the current settlement segment.
type LedgerOverviewResponse struct {
	Records  []TransactionResponse `json:"records"`
	Lifetime LedgerBalanceResponse `json:"lifetime"`
	Current  LedgerBalanceResponse `json:"current"`
	Segments int                   `json:"segments"`
}

// SettlementResult reports the outcome of a settle operation.
type SettlementResult struct {
	Settled bool                 `json:"settled"`
	Amount  decimal.Decimal      `json:"amount"`
	Debtor  *domain.Party        `json:"debtor,omitempty"`
	Record  *TransactionResponse `json:"record,omitempty"`
}
