package accounting_test

import (
	"testing"
	"time"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	"github.com/cashflowhq/cashflow_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerRecord(payer domain.Party, relation domain.LedgerRelation, amount float64, day int) domain.Transaction {
	return domain.Transaction{
		Kind:   domain.Expense,
		Amount: decimal.NewFromFloat(amount),
		Date:   time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC),
		Ledger: &domain.LedgerTag{Payer: payer, Relation: relation},
	}
}

func TestComputeBalance_SharedFiftyFifty(t *testing.T) {
	// H pays 100 shared, M pays 60 shared. Shared total 160, half is 80.
	// H overpaid by 20, so M owes H 20.
	records := []domain.Transaction{
		ledgerRecord(domain.PartyH, domain.RelationShared, 100, 1),
		ledgerRecord(domain.PartyM, domain.RelationShared, 60, 2),
	}

	balance := accounting.ComputeBalance(records)

	assert.True(t, decimal.NewFromInt(100).Equal(balance.HTotal), "HTotal = %s", balance.HTotal)
	assert.True(t, decimal.NewFromInt(60).Equal(balance.MTotal), "MTotal = %s", balance.MTotal)
	assert.True(t, decimal.NewFromInt(160).Equal(balance.TotalExpenses))
	assert.True(t, decimal.NewFromInt(20).Equal(balance.NetDebt), "NetDebt = %s", balance.NetDebt)

	debtor, owing := balance.Debtor()
	require.True(t, owing)
	assert.Equal(t, domain.PartyM, debtor)
}

func TestComputeBalance_DebtOverrideIsNotSplit(t *testing.T) {
	// M lends H 50: the full amount shifts onto H, nothing is halved.
	records := []domain.Transaction{
		ledgerRecord(domain.PartyM, domain.RelationDebtHOwesM, 50, 1),
	}

	balance := accounting.ComputeBalance(records)

	assert.True(t, decimal.NewFromInt(-50).Equal(balance.NetDebt), "NetDebt = %s", balance.NetDebt)

	debtor, owing := balance.Debtor()
	require.True(t, owing)
	assert.Equal(t, domain.PartyH, debtor)
}

func TestComputeBalance_DebtAndSharedCombine(t *testing.T) {
	// Shared 100 paid by H leaves M owing 50; H borrowing 30 from M
	// offsets it down to 20.
	records := []domain.Transaction{
		ledgerRecord(domain.PartyH, domain.RelationShared, 100, 1),
		ledgerRecord(domain.PartyM, domain.RelationDebtHOwesM, 30, 2),
	}

	balance := accounting.ComputeBalance(records)
	assert.True(t, decimal.NewFromInt(20).Equal(balance.NetDebt), "NetDebt = %s", balance.NetDebt)
}

func TestComputeBalance_IsAdditive(t *testing.T) {
	records := []domain.Transaction{
		ledgerRecord(domain.PartyH, domain.RelationShared, 42.40, 1),
		ledgerRecord(domain.PartyM, domain.RelationShared, 18.60, 2),
		ledgerRecord(domain.PartyH, domain.RelationDebtMOwesH, 12.00, 3),
		ledgerRecord(domain.PartyM, domain.RelationShared, 77.77, 4),
	}

	whole := accounting.ComputeBalance(records)

	// Evaluating record by record and summing the net debts must match
	// evaluating everything at once.
	sum := decimal.Zero
	for _, rec := range records {
		sum = sum.Add(accounting.ComputeBalance([]domain.Transaction{rec}).NetDebt)
	}
	assert.True(t, whole.NetDebt.Equal(sum), "whole %s, summed %s", whole.NetDebt, sum)
}

func TestComputeBalance_SettlementExcludedFromDebt(t *testing.T) {
	// The settlement payment counts toward gross totals but does not feed
	// back into the debt partition.
	records := []domain.Transaction{
		ledgerRecord(domain.PartyM, domain.RelationSettlement, 20, 5),
	}

	balance := accounting.ComputeBalance(records)

	assert.True(t, decimal.NewFromInt(20).Equal(balance.MTotal))
	assert.True(t, balance.NetDebt.IsZero(), "NetDebt = %s", balance.NetDebt)

	_, owing := balance.Debtor()
	assert.False(t, owing)
}

func TestCurrentSegment_AfterLatestSettlement(t *testing.T) {
	records := []domain.Transaction{
		ledgerRecord(domain.PartyH, domain.RelationShared, 100, 1),
		ledgerRecord(domain.PartyM, domain.RelationSettlement, 50, 2),
		ledgerRecord(domain.PartyM, domain.RelationShared, 30, 3),
		ledgerRecord(domain.PartyH, domain.RelationSettlement, 15, 4),
		ledgerRecord(domain.PartyH, domain.RelationShared, 8, 5),
	}

	segment := accounting.CurrentSegment(records)
	require.Len(t, segment, 1)
	assert.True(t, decimal.NewFromInt(8).Equal(segment[0].Amount))

	// After settling, the debt of the current period starts from zero.
	balance := accounting.ComputeBalance(accounting.CurrentSegment([]domain.Transaction{
		ledgerRecord(domain.PartyH, domain.RelationShared, 100, 1),
		ledgerRecord(domain.PartyM, domain.RelationSettlement, 50, 2),
	}))
	assert.True(t, balance.NetDebt.IsZero())
}

func TestCurrentSegment_NoSettlementReturnsAll(t *testing.T) {
	records := []domain.Transaction{
		ledgerRecord(domain.PartyH, domain.RelationShared, 10, 1),
		ledgerRecord(domain.PartyM, domain.RelationShared, 20, 2),
	}
	assert.Len(t, accounting.CurrentSegment(records), 2)
}

func TestSegments_SplitAtSettlements(t *testing.T) {
	records := []domain.Transaction{
		ledgerRecord(domain.PartyH, domain.RelationShared, 100, 1),
		ledgerRecord(domain.PartyM, domain.RelationSettlement, 50, 2),
		ledgerRecord(domain.PartyM, domain.RelationShared, 30, 3),
		ledgerRecord(domain.PartyH, domain.RelationSettlement, 15, 4),
	}

	segments := accounting.Segments(records)
	require.Len(t, segments, 3)
	assert.Len(t, segments[0], 2) // closed by the first settlement
	assert.Len(t, segments[1], 2) // closed by the second settlement
	assert.Empty(t, segments[2])  // open period
}

func TestSegments_EmptyInput(t *testing.T) {
	segments := accounting.Segments(nil)
	require.Len(t, segments, 1)
	assert.Empty(t, segments[0])
}

func TestMirrorAmount(t *testing.T) {
	shared := ledgerRecord(domain.PartyH, domain.RelationShared, 40, 1)
	assert.True(t, decimal.NewFromInt(20).Equal(accounting.MirrorAmount(shared)),
		"shared costs mirror at half")

	debt := ledgerRecord(domain.PartyM, domain.RelationDebtHOwesM, 40, 1)
	assert.True(t, decimal.NewFromInt(40).Equal(accounting.MirrorAmount(debt)),
		"debt records mirror in full")
}
