package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/cashflowhq/cashflow_backend/internal/apperrors"
	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	portsrepo "github.com/cashflowhq/cashflow_backend/internal/core/ports/repositories"
	portssvc "github.com/cashflowhq/cashflow_backend/internal/core/ports/services"
	"github.com/cashflowhq/cashflow_backend/internal/core/services"
	"github.com/cashflowhq/cashflow_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

// Ensure MockTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) ListLedgerRecords(ctx context.Context, from, to *time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionRepository) MirrorLedgerRecord(ctx context.Context, originalID string, mirror domain.Transaction) error {
	args := m.Called(ctx, originalID, mirror)
	return args.Error(0)
}

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	service     portssvc.LedgerSvcFacade
	userID      string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewLedgerService(suite.mockTxnRepo)
	suite.userID = uuid.NewString()
}

func sharedBy(payer domain.Party, amount int64, day int) domain.Transaction {
	return taggedRecord(payer, domain.RelationShared, amount, day)
}

func taggedRecord(payer domain.Party, relation domain.LedgerRelation, amount int64, day int) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Expense,
		Amount:        decimal.NewFromInt(amount),
		Date:          time.Date(2025, 4, day, 0, 0, 0, 0, time.UTC),
		Category:      domain.CategoryGeneral,
		Ledger:        &domain.LedgerTag{Payer: payer, Relation: relation},
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestCreateLedgerRecord_EncodesDescription() {
	ctx := context.Background()
	req := dto.CreateLedgerRecordRequest{
		Payer:       domain.PartyH,
		Relation:    domain.RelationShared,
		Amount:      decimal.NewFromFloat(42.40),
		Description: "Wocheneinkauf Rewe",
		Date:        time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	var saved domain.Transaction
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Transaction) }).
		Return(nil).Once()

	created, err := suite.service.CreateLedgerRecord(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal("H+ Wocheneinkauf Rewe", saved.Description)
	suite.Require().NotNil(saved.Ledger)
	suite.Equal(domain.PartyH, saved.Ledger.Payer)
	suite.Equal(domain.RelationShared, saved.Ledger.Relation)
	suite.Equal(domain.Expense, saved.Kind)
	suite.Equal(suite.userID, saved.CreatedBy)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateLedgerRecord_DebtPaidByWrongParty() {
	ctx := context.Background()
	req := dto.CreateLedgerRecordRequest{
		Payer:       domain.PartyH,
		Relation:    domain.RelationDebtHOwesM,
		Amount:      decimal.NewFromInt(50),
		Description: "Konzertkarte",
		Date:        time.Now(),
	}

	created, err := suite.service.CreateLedgerRecord(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestCreateLedgerRecord_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateLedgerRecordRequest{
		Payer:       domain.PartyM,
		Relation:    domain.RelationShared,
		Amount:      decimal.Zero,
		Description: "Nichts",
		Date:        time.Now(),
	}

	_, err := suite.service.CreateLedgerRecord(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
}

func (suite *LedgerServiceTestSuite) TestGetLedgerOverview_FiftyFiftySplit() {
	ctx := context.Background()
	records := []domain.Transaction{
		sharedBy(domain.PartyH, 100, 1),
		sharedBy(domain.PartyM, 60, 2),
	}
	suite.mockTxnRepo.On("ListLedgerRecords", ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(records, nil).Once()

	overview, err := suite.service.GetLedgerOverview(ctx, dto.LedgerQueryParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(overview)
	suite.Len(overview.Records, 2)
	suite.Equal(1, overview.Segments)

	// H overpaid the shared half by 20, so M owes H 20.
	suite.True(decimal.NewFromInt(20).Equal(overview.Current.NetDebt), "NetDebt = %s", overview.Current.NetDebt)
	suite.Require().NotNil(overview.Current.Debtor)
	suite.Equal(domain.PartyM, *overview.Current.Debtor)
	suite.True(decimal.NewFromInt(160).Equal(overview.Lifetime.TotalExpenses))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetLedgerOverview_DebtOverride() {
	ctx := context.Background()
	records := []domain.Transaction{
		taggedRecord(domain.PartyM, domain.RelationDebtHOwesM, 50, 1),
	}
	suite.mockTxnRepo.On("ListLedgerRecords", ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(records, nil).Once()

	overview, err := suite.service.GetLedgerOverview(ctx, dto.LedgerQueryParams{})

	suite.Require().NoError(err)
	// The full 50 shifts onto H, nothing is halved.
	suite.True(decimal.NewFromInt(-50).Equal(overview.Current.NetDebt), "NetDebt = %s", overview.Current.NetDebt)
	suite.Require().NotNil(overview.Current.Debtor)
	suite.Equal(domain.PartyH, *overview.Current.Debtor)
}

func (suite *LedgerServiceTestSuite) TestGetLedgerOverview_CurrentResetsAfterSettlement() {
	ctx := context.Background()
	records := []domain.Transaction{
		sharedBy(domain.PartyH, 100, 1),
		taggedRecord(domain.PartyM, domain.RelationSettlement, 50, 2),
		sharedBy(domain.PartyM, 30, 3),
	}
	suite.mockTxnRepo.On("ListLedgerRecords", ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(records, nil).Once()

	overview, err := suite.service.GetLedgerOverview(ctx, dto.LedgerQueryParams{})

	suite.Require().NoError(err)
	suite.Equal(2, overview.Segments)

	// Only the 30 shared record after the settlement counts: H owes 15.
	suite.True(decimal.NewFromInt(-15).Equal(overview.Current.NetDebt), "NetDebt = %s", overview.Current.NetDebt)

	// Lifetime gross totals still include the settlement payment itself.
	suite.True(decimal.NewFromInt(100).Equal(overview.Lifetime.HTotal))
	suite.True(decimal.NewFromInt(80).Equal(overview.Lifetime.MTotal))
}

func (suite *LedgerServiceTestSuite) TestGetLedgerOverview_WindowScopesCurrentBalance() {
	ctx := context.Background()
	from := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
	all := []domain.Transaction{
		sharedBy(domain.PartyH, 100, 1),
		sharedBy(domain.PartyM, 60, 2),
	}
	windowed := all[1:]

	suite.mockTxnRepo.On("ListLedgerRecords", ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(all, nil).Once()
	suite.mockTxnRepo.On("ListLedgerRecords", ctx, &from, (*time.Time)(nil)).Return(windowed, nil).Once()

	overview, err := suite.service.GetLedgerOverview(ctx, dto.LedgerQueryParams{From: &from})

	suite.Require().NoError(err)
	suite.Len(overview.Records, 1)

	// Current covers only the windowed records: M alone paid 60 shared, so
	// H owes the 30 half. Lifetime still spans the full history.
	suite.True(decimal.NewFromInt(-30).Equal(overview.Current.NetDebt), "NetDebt = %s", overview.Current.NetDebt)
	suite.Require().NotNil(overview.Current.Debtor)
	suite.Equal(domain.PartyH, *overview.Current.Debtor)
	suite.True(decimal.NewFromInt(160).Equal(overview.Lifetime.TotalExpenses))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetLedgerOverview_WindowPastAllRecords() {
	ctx := context.Background()
	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	all := []domain.Transaction{
		sharedBy(domain.PartyH, 100, 1),
	}

	suite.mockTxnRepo.On("ListLedgerRecords", ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(all, nil).Once()
	suite.mockTxnRepo.On("ListLedgerRecords", ctx, &from, (*time.Time)(nil)).Return([]domain.Transaction{}, nil).Once()

	overview, err := suite.service.GetLedgerOverview(ctx, dto.LedgerQueryParams{From: &from})

	suite.Require().NoError(err)
	suite.Empty(overview.Records)

	// An empty window means an even current balance, not the historic debt.
	suite.True(overview.Current.NetDebt.IsZero(), "NetDebt = %s", overview.Current.NetDebt)
	suite.Nil(overview.Current.Debtor)
	suite.True(decimal.NewFromInt(100).Equal(overview.Lifetime.HTotal))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSettleDebts_WritesSettlementRecord() {
	ctx := context.Background()
	records := []domain.Transaction{
		sharedBy(domain.PartyH, 100, 1),
		sharedBy(domain.PartyM, 60, 2),
	}
	suite.mockTxnRepo.On("ListLedgerRecords", ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(records, nil).Once()

	var saved domain.Transaction
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Transaction) }).
		Return(nil).Once()

	result, err := suite.service.SettleDebts(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.Settled)
	suite.True(decimal.NewFromInt(20).Equal(result.Amount), "Amount = %s", result.Amount)
	suite.Require().NotNil(result.Debtor)
	suite.Equal(domain.PartyM, *result.Debtor)

	// The debtor pays, and the record carries the legacy settlement marker.
	suite.Equal("M+ Schuldenausgleich", saved.Description)
	suite.Require().NotNil(saved.Ledger)
	suite.Equal(domain.RelationSettlement, saved.Ledger.Relation)
	suite.Equal(domain.PartyM, saved.Ledger.Payer)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestSettleDebts_ZeroBalanceWritesNothing() {
	ctx := context.Background()
	// Both pay the same shared amount, the ledger is even.
	records := []domain.Transaction{
		sharedBy(domain.PartyH, 50, 1),
		sharedBy(domain.PartyM, 50, 2),
	}
	suite.mockTxnRepo.On("ListLedgerRecords", ctx, (*time.Time)(nil), (*time.Time)(nil)).Return(records, nil).Once()

	result, err := suite.service.SettleDebts(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.False(result.Settled)
	suite.True(result.Amount.IsZero())
	suite.Nil(result.Debtor)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestMirrorToMain_SharedHalvesAmount() {
	ctx := context.Background()
	original := sharedBy(domain.PartyH, 40, 1)
	original.Description = "H+ Wocheneinkauf Rewe"
	suite.mockTxnRepo.On("FindTransactionByID", ctx, original.TransactionID).Return(&original, nil).Once()

	var mirrored domain.Transaction
	suite.mockTxnRepo.On("MirrorLedgerRecord", ctx, original.TransactionID, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { mirrored = args.Get(2).(domain.Transaction) }).
		Return(nil).Once()

	mirror, err := suite.service.MirrorToMain(ctx, original.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(mirror)
	suite.True(decimal.NewFromInt(20).Equal(mirrored.Amount), "mirror Amount = %s", mirrored.Amount)
	suite.Equal("Wocheneinkauf Rewe", mirrored.Description)
	suite.Nil(mirrored.Ledger)
	suite.NotEqual(original.TransactionID, mirrored.TransactionID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestMirrorToMain_DebtKeepsFullAmount() {
	ctx := context.Background()
	original := taggedRecord(domain.PartyM, domain.RelationDebtHOwesM, 40, 1)
	original.Description = "M+ Konzertkarte (H schuldet M)"
	suite.mockTxnRepo.On("FindTransactionByID", ctx, original.TransactionID).Return(&original, nil).Once()

	var mirrored domain.Transaction
	suite.mockTxnRepo.On("MirrorLedgerRecord", ctx, original.TransactionID, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { mirrored = args.Get(2).(domain.Transaction) }).
		Return(nil).Once()

	_, err := suite.service.MirrorToMain(ctx, original.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(40).Equal(mirrored.Amount), "mirror Amount = %s", mirrored.Amount)
	suite.Equal("Konzertkarte", mirrored.Description)
}

func (suite *LedgerServiceTestSuite) TestMirrorToMain_AlreadyMirrored() {
	ctx := context.Background()
	original := sharedBy(domain.PartyH, 40, 1)
	original.AddedToMain = true
	suite.mockTxnRepo.On("FindTransactionByID", ctx, original.TransactionID).Return(&original, nil).Once()

	mirror, err := suite.service.MirrorToMain(ctx, original.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(mirror)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "MirrorLedgerRecord", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestMirrorToMain_RejectsPlainTransaction() {
	ctx := context.Background()
	original := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Expense,
		Amount:        decimal.NewFromInt(10),
		Description:   "Miete Januar",
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, original.TransactionID).Return(&original, nil).Once()

	_, err := suite.service.MirrorToMain(ctx, original.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrNotLedgerRecord)
}

func (suite *LedgerServiceTestSuite) TestMirrorToMain_RejectsSettlement() {
	ctx := context.Background()
	original := taggedRecord(domain.PartyM, domain.RelationSettlement, 20, 1)
	original.Description = "M+ Schuldenausgleich"
	suite.mockTxnRepo.On("FindTransactionByID", ctx, original.TransactionID).Return(&original, nil).Once()

	_, err := suite.service.MirrorToMain(ctx, original.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrMirrorSettlement)
}

func (suite *LedgerServiceTestSuite) TestMirrorToMain_NotFound() {
	ctx := context.Background()
	missingID := uuid.NewString()
	suite.mockTxnRepo.On("FindTransactionByID", ctx, missingID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.MirrorToMain(ctx, missingID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---
func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
