package mapping

import (
	"database/sql"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	"github.com/cashflowhq/cashflow_backend/internal/models"
)

// ToModelPlannedExpense converts a domain PlannedExpense to its model
func ToModelPlannedExpense(d domain.PlannedExpense) models.PlannedExpense {
	m := models.PlannedExpense{
		PlannedExpenseID: d.PlannedExpenseID,
		Description:      d.Description,
		Amount:           d.Amount,
		Category:         string(d.Category),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
	if d.DueDate != nil {
		m.DueDate = sql.NullTime{Time: *d.DueDate, Valid: true}
	}
	return m
}

// ToDomainPlannedExpense converts a model PlannedExpense to its domain type
func ToDomainPlannedExpense(m models.PlannedExpense) domain.PlannedExpense {
	d := domain.PlannedExpense{
		PlannedExpenseID: m.PlannedExpenseID,
		Description:      m.Description,
		Amount:           m.Amount,
		Category:         domain.TransactionCategory(m.Category),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
	if m.DueDate.Valid {
		t := m.DueDate.Time
		d.DueDate = &t
	}
	return d
}

// ToDomainPlannedExpenseSlice converts a slice of model PlannedExpenses
func ToDomainPlannedExpenseSlice(ms []models.PlannedExpense) []domain.PlannedExpense {
	ds := make([]domain.PlannedExpense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPlannedExpense(m)
	}
	return ds
}
