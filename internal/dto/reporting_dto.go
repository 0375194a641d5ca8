package dto

import (
	"github.com/shopspring/decimal"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
)

// MonthlySummaryRowResponse represents one month in the monthly summary report.
type MonthlySummaryRowResponse struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	IncomeTotal  decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal decimal.Decimal `json:"expenseTotal"`
	Net          decimal.Decimal `json:"net"`
	Count        int             `json:"count"`
}

// MonthlySummaryResponse represents the monthly summary report.
type MonthlySummaryResponse struct {
	Rows   []MonthlySummaryRowResponse `json:"rows"`
	Totals struct {
		Income  decimal.Decimal `json:"income"`
		Expense decimal.Decimal `json:"expense"`
		Net     decimal.Decimal `json:"net"`
	} `json:"totals"`
}

// ToMonthlySummaryResponse converts domain summary rows to a DTO response.
func ToMonthlySummaryResponse(rows []domain.MonthlySummaryRow) MonthlySummaryResponse {
	response := MonthlySummaryResponse{
		Rows: make([]MonthlySummaryRowResponse, len(rows)),
	}

	totalIncome := decimal.Zero
	totalExpense := decimal.Zero

	for i, row := range rows {
		response.Rows[i] = MonthlySummaryRowResponse{
			Year:         row.Year,
			Month:        row.Month,
			IncomeTotal:  row.IncomeTotal,
			ExpenseTotal: row.ExpenseTotal,
			Net:          row.Net,
			Count:        row.Count,
		}

		totalIncome = totalIncome.Add(row.IncomeTotal)
		totalExpense = totalExpense.Add(row.ExpenseTotal)
	}

	response.Totals.Income = totalIncome
	response.Totals.Expense = totalExpense
	response.Totals.Net = totalIncome.Sub(totalExpense)

	return response
}

// YearsResponse lists the years that contain at least one transaction.
type YearsResponse struct {
	Years []int `json:"years"`
}

// BusinessTotalResponse reports the running total of business expenses.
type BusinessTotalResponse struct {
	Total decimal.Decimal `json:"total"`
}
