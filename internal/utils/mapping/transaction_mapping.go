package mapping

import (
	"database/sql"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	"github.com/cashflowhq/cashflow_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID: d.TransactionID,
		Kind:          string(d.Kind),
		Amount:        d.Amount,
		Description:   d.Description,
		Location:      d.Location,
		Date:          d.Date,
		Category:      string(d.Category),
		AddedToMain:   d.AddedToMain,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.Ledger != nil {
		m.Payer = sql.NullString{String: string(d.Ledger.Payer), Valid: true}
		m.Relation = sql.NullString{String: string(d.Ledger.Relation), Valid: true}
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID: m.TransactionID,
		Kind:          domain.TransactionKind(m.Kind),
		Amount:        m.Amount,
		Description:   m.Description,
		Location:      m.Location,
		Date:          m.Date,
		Category:      domain.TransactionCategory(m.Category),
		AddedToMain:   m.AddedToMain,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.Payer.Valid && m.Relation.Valid {
		d.Ledger = &domain.LedgerTag{
			Payer:    domain.Party(m.Payer.String),
			Relation: domain.LedgerRelation(m.Relation.String),
		}
	}
	return d
}

// ToDomainTransactionSlice converts a slice of model Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
