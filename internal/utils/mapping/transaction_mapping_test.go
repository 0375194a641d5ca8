package mapping_test

import (
	"testing"
	"time"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	"github.com/cashflowhq/cashflow_backend/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The location column is NOT NULL, so an empty location must serialize as an
// empty string rather than a SQL NULL. Settlement records never carry a
// location, which makes this the path every settlement insert takes.
func TestToModelTransaction_EmptyLocationStaysEmptyString(t *testing.T) {
	tag := domain.LedgerTag{Payer: domain.PartyM, Relation: domain.RelationSettlement}
	d := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Expense,
		Amount:        decimal.NewFromInt(20),
		Description:   domain.EncodeLegacyDescription(tag, ""),
		Date:          time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		Category:      domain.CategoryGeneral,
		Ledger:        &tag,
	}

	m := mapping.ToModelTransaction(d)

	assert.Equal(t, "", m.Location)
	require.True(t, m.Payer.Valid)
	assert.Equal(t, string(domain.PartyM), m.Payer.String)
	require.True(t, m.Relation.Valid)
	assert.Equal(t, string(domain.RelationSettlement), m.Relation.String)
}

func TestTransactionMapping_LedgerTagRoundTrip(t *testing.T) {
	d := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Expense,
		Amount:        decimal.NewFromFloat(42.40),
		Description:   "H+ Wocheneinkauf Rewe",
		Location:      "Rewe",
		Date:          time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Category:      domain.CategoryGeneral,
		Ledger:        &domain.LedgerTag{Payer: domain.PartyH, Relation: domain.RelationShared},
	}

	back := mapping.ToDomainTransaction(mapping.ToModelTransaction(d))

	assert.Equal(t, d.Location, back.Location)
	require.NotNil(t, back.Ledger)
	assert.Equal(t, domain.PartyH, back.Ledger.Payer)
	assert.Equal(t, domain.RelationShared, back.Ledger.Relation)
}

func TestTransactionMapping_PlainTransactionHasNullLedgerColumns(t *testing.T) {
	d := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Expense,
		Amount:        decimal.NewFromInt(10),
		Description:   "Miete Januar",
		Date:          time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Category:      domain.CategoryGeneral,
	}

	m := mapping.ToModelTransaction(d)

	assert.False(t, m.Payer.Valid)
	assert.False(t, m.Relation.Valid)
	assert.Nil(t, mapping.ToDomainTransaction(m).Ledger)
}
