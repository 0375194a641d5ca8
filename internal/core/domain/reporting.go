package domain

import "github.com/shopspring/decimal"

// MonthlySummaryRow is one row of the month-grouped overview: totals for a
// single calendar month. Powers the collapsed month list and the charts.
type MonthlySummaryRow struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"` // 1..12
	IncomeTotal  decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal decimal.Decimal `json:"expenseTotal"`
	Net          decimal.Decimal `json:"net"`
	Count        int             `json:"count"`
}

// BalanceSummary is the aggregate over a (possibly windowed) record set.
type BalanceSummary struct {
	IncomeTotal  decimal.Decimal `json:"incomeTotal"`
	ExpenseTotal decimal.Decimal `json:"expenseTotal"`
	Net          decimal.Decimal `json:"net"`
}
