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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock FuelLogRepository ---
type MockFuelLogRepository struct {
	mock.Mock
}

var _ portsrepo.FuelLogRepositoryFacade = (*MockFuelLogRepository)(nil)

func (m *MockFuelLogRepository) FindFuelLogByID(ctx context.Context, fuelLogID string) (*domain.FuelLog, error) {
	args := m.Called(ctx, fuelLogID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FuelLog), args.Error(1)
}

func (m *MockFuelLogRepository) FindFuelLogByTransactionID(ctx context.Context, transactionID string) (*domain.FuelLog, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FuelLog), args.Error(1)
}

func (m *MockFuelLogRepository) ListFuelLogs(ctx context.Context) ([]domain.FuelLog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FuelLog), args.Error(1)
}

func (m *MockFuelLogRepository) SaveFuelLog(ctx context.Context, log domain.FuelLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockFuelLogRepository) UpdateFuelLog(ctx context.Context, log domain.FuelLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockFuelLogRepository) DeleteFuelLog(ctx context.Context, fuelLogID string) error {
	args := m.Called(ctx, fuelLogID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type FuelLogServiceTestSuite struct {
	suite.Suite
	mockFuelRepo *MockFuelLogRepository
	mockTxnRepo  *MockTransactionRepository
	service      portssvc.FuelLogSvcFacade
	userID       string
}

func (suite *FuelLogServiceTestSuite) SetupTest() {
	suite.mockFuelRepo = new(MockFuelLogRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewFuelLogService(suite.mockFuelRepo, suite.mockTxnRepo)
	suite.userID = uuid.NewString()
}

func fuelLog(liters, price, odometer float64, fullTank bool, day int) domain.FuelLog {
	return domain.FuelLog{
		FuelLogID:     uuid.NewString(),
		TransactionID: uuid.NewString(),
		Liters:        decimal.NewFromFloat(liters),
		PricePerLiter: decimal.NewFromFloat(price),
		OdometerKm:    decimal.NewFromFloat(odometer),
		FullTank:      fullTank,
		Date:          time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC),
	}
}

// --- Test Cases ---

func (suite *FuelLogServiceTestSuite) TestCreateFuelLog_WritesBackingExpense() {
	ctx := context.Background()
	req := dto.CreateFuelLogRequest{
		Liters:        decimal.NewFromFloat(41.2),
		PricePerLiter: decimal.NewFromFloat(1.719),
		OdometerKm:    decimal.NewFromInt(183450),
		FullTank:      true,
		Date:          time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Location:      "Aral Hauptstr.",
	}

	var savedTxn domain.Transaction
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { savedTxn = args.Get(1).(domain.Transaction) }).
		Return(nil).Once()

	var savedLog domain.FuelLog
	suite.mockFuelRepo.On("SaveFuelLog", ctx, mock.AnythingOfType("domain.FuelLog")).
		Run(func(args mock.Arguments) { savedLog = args.Get(1).(domain.FuelLog) }).
		Return(nil).Once()

	created, err := suite.service.CreateFuelLog(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)

	// 41.2 l * 1.719 €/l = 70.8228, rounded to cents.
	suite.True(decimal.NewFromFloat(70.82).Equal(savedTxn.Amount), "Amount = %s", savedTxn.Amount)
	suite.Equal(domain.Expense, savedTxn.Kind)
	suite.Equal("Tanken 41.2 l", savedTxn.Description)
	suite.Equal(savedTxn.TransactionID, savedLog.TransactionID)
	suite.True(savedLog.FullTank)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockFuelRepo.AssertExpectations(suite.T())
}

func (suite *FuelLogServiceTestSuite) TestCreateFuelLog_RejectsNonPositiveLiters() {
	ctx := context.Background()
	req := dto.CreateFuelLogRequest{
		Liters:        decimal.Zero,
		PricePerLiter: decimal.NewFromFloat(1.70),
		OdometerKm:    decimal.NewFromInt(100000),
		Date:          time.Now(),
	}

	created, err := suite.service.CreateFuelLog(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *FuelLogServiceTestSuite) TestGetFuelOverview_ConsumptionBetweenFullTanks() {
	ctx := context.Background()
	logs := []domain.FuelLog{
		fuelLog(40, 1.70, 100000, true, 1),
		fuelLog(38, 1.65, 100500, true, 8),
	}
	suite.mockFuelRepo.On("ListFuelLogs", ctx).Return(logs, nil).Once()

	overview, err := suite.service.GetFuelOverview(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(overview.Fills, 2)

	// First full tank has no predecessor, nothing to compute.
	suite.True(overview.Fills[0].DistanceKm.IsZero())
	suite.True(overview.Fills[0].LitersPer100Km.IsZero())

	// Second fill: 38 l over 500 km = 7.6 l/100km.
	suite.True(decimal.NewFromInt(500).Equal(overview.Fills[1].DistanceKm))
	suite.True(decimal.NewFromFloat(7.6).Equal(overview.Fills[1].LitersPer100Km),
		"l/100km = %s", overview.Fills[1].LitersPer100Km)
	suite.True(decimal.NewFromFloat(7.6).Equal(overview.AvgLitersPer100Km))
}

func (suite *FuelLogServiceTestSuite) TestGetFuelOverview_PartialFillJoinsInterval() {
	ctx := context.Background()
	logs := []domain.FuelLog{
		fuelLog(40, 1.70, 100000, true, 1),
		fuelLog(20, 1.80, 100300, false, 5), // partial, no computation
		fuelLog(30, 1.75, 100500, true, 9),
	}
	suite.mockFuelRepo.On("ListFuelLogs", ctx).Return(logs, nil).Once()

	overview, err := suite.service.GetFuelOverview(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(overview.Fills, 3)
	suite.True(overview.Fills[1].LitersPer100Km.IsZero())

	// The partial 20 l count toward the interval closed by the last full
	// tank: (20+30) l over 500 km = 10 l/100km.
	suite.True(decimal.NewFromInt(10).Equal(overview.Fills[2].LitersPer100Km),
		"l/100km = %s", overview.Fills[2].LitersPer100Km)
}

func (suite *FuelLogServiceTestSuite) TestGetFuelOverview_Totals() {
	ctx := context.Background()
	logs := []domain.FuelLog{
		fuelLog(40, 1.50, 100000, true, 1),
		fuelLog(10, 2.00, 100200, false, 3),
	}
	suite.mockFuelRepo.On("ListFuelLogs", ctx).Return(logs, nil).Once()

	overview, err := suite.service.GetFuelOverview(ctx)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(50).Equal(overview.TotalLiters))
	// 40*1.50 + 10*2.00 = 80
	suite.True(decimal.NewFromInt(80).Equal(overview.TotalCost))
	// 80 / 50 = 1.6 €/l
	suite.True(decimal.NewFromFloat(1.6).Equal(overview.AvgPricePerLiter),
		"avg = %s", overview.AvgPricePerLiter)
}

func (suite *FuelLogServiceTestSuite) TestUpdateFuelLog_SyncsBackingExpense() {
	ctx := context.Background()
	existing := fuelLog(40, 1.70, 100000, true, 1)
	suite.mockFuelRepo.On("FindFuelLogByID", ctx, existing.FuelLogID).Return(&existing, nil).Once()
	suite.mockFuelRepo.On("UpdateFuelLog", ctx, mock.AnythingOfType("domain.FuelLog")).Return(nil).Once()

	backing := domain.Transaction{
		TransactionID: existing.TransactionID,
		Kind:          domain.Expense,
		Amount:        decimal.NewFromFloat(68.00),
	}
	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(&backing, nil).Once()

	var updatedTxn domain.Transaction
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { updatedTxn = args.Get(1).(domain.Transaction) }).
		Return(nil).Once()

	newPrice := decimal.NewFromFloat(1.80)
	_, err := suite.service.UpdateFuelLog(ctx, existing.FuelLogID, dto.UpdateFuelLogRequest{
		PricePerLiter: &newPrice,
	}, suite.userID)

	suite.Require().NoError(err)
	// 40 l * 1.80 €/l = 72.00
	suite.True(decimal.NewFromInt(72).Equal(updatedTxn.Amount), "Amount = %s", updatedTxn.Amount)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *FuelLogServiceTestSuite) TestDeleteFuelLog_RemovesBackingExpense() {
	ctx := context.Background()
	existing := fuelLog(40, 1.70, 100000, true, 1)
	suite.mockFuelRepo.On("FindFuelLogByID", ctx, existing.FuelLogID).Return(&existing, nil).Once()
	suite.mockFuelRepo.On("DeleteFuelLog", ctx, existing.FuelLogID).Return(nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, existing.TransactionID).Return(nil).Once()

	err := suite.service.DeleteFuelLog(ctx, existing.FuelLogID, suite.userID)

	suite.Require().NoError(err)
	suite.mockFuelRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestFuelLogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FuelLogServiceTestSuite))
}
