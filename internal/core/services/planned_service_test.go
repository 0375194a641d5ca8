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

// --- Mock PlannedExpenseRepository ---
type MockPlannedExpenseRepository struct {
	mock.Mock
}

var _ portsrepo.PlannedExpenseRepositoryFacade = (*MockPlannedExpenseRepository)(nil)

func (m *MockPlannedExpenseRepository) FindPlannedExpenseByID(ctx context.Context, plannedExpenseID string) (*domain.PlannedExpense, error) {
	args := m.Called(ctx, plannedExpenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlannedExpense), args.Error(1)
}

func (m *MockPlannedExpenseRepository) ListPlannedExpenses(ctx context.Context) ([]domain.PlannedExpense, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlannedExpense), args.Error(1)
}

func (m *MockPlannedExpenseRepository) SavePlannedExpense(ctx context.Context, planned domain.PlannedExpense) error {
	args := m.Called(ctx, planned)
	return args.Error(0)
}

func (m *MockPlannedExpenseRepository) UpdatePlannedExpense(ctx context.Context, planned domain.PlannedExpense) error {
	args := m.Called(ctx, planned)
	return args.Error(0)
}

func (m *MockPlannedExpenseRepository) DeletePlannedExpense(ctx context.Context, plannedExpenseID string) error {
	args := m.Called(ctx, plannedExpenseID)
	return args.Error(0)
}

func (m *MockPlannedExpenseRepository) MaterializePlannedExpense(ctx context.Context, plannedExpenseID string, txn domain.Transaction) error {
	args := m.Called(ctx, plannedExpenseID, txn)
	return args.Error(0)
}

// --- Test Suite Setup ---
type PlannedExpenseServiceTestSuite struct {
	suite.Suite
	mockPlannedRepo *MockPlannedExpenseRepository
	service         portssvc.PlannedExpenseSvcFacade
	userID          string
}

func (suite *PlannedExpenseServiceTestSuite) SetupTest() {
	suite.mockPlannedRepo = new(MockPlannedExpenseRepository)
	suite.service = services.NewPlannedExpenseService(suite.mockPlannedRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *PlannedExpenseServiceTestSuite) TestCreatePlannedExpense_Success() {
	ctx := context.Background()
	due := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreatePlannedExpenseRequest{
		Description: "Winterreifen",
		Amount:      decimal.NewFromInt(480),
		DueDate:     &due,
	}

	var saved domain.PlannedExpense
	suite.mockPlannedRepo.On("SavePlannedExpense", ctx, mock.AnythingOfType("domain.PlannedExpense")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.PlannedExpense) }).
		Return(nil).Once()

	created, err := suite.service.CreatePlannedExpense(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.PlannedExpenseID)
	suite.Equal(domain.CategoryGeneral, saved.Category)
	suite.Require().NotNil(saved.DueDate)
	suite.True(due.Equal(*saved.DueDate))
	suite.mockPlannedRepo.AssertExpectations(suite.T())
}

func (suite *PlannedExpenseServiceTestSuite) TestCreatePlannedExpense_RejectsEmptyDescription() {
	ctx := context.Background()
	req := dto.CreatePlannedExpenseRequest{
		Description: "",
		Amount:      decimal.NewFromInt(100),
	}

	created, err := suite.service.CreatePlannedExpense(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrDescriptionMissing)
}

func (suite *PlannedExpenseServiceTestSuite) TestListPlannedExpenses_SumsTotal() {
	ctx := context.Background()
	planned := []domain.PlannedExpense{
		{PlannedExpenseID: uuid.NewString(), Description: "Winterreifen", Amount: decimal.NewFromInt(480)},
		{PlannedExpenseID: uuid.NewString(), Description: "TÜV", Amount: decimal.NewFromFloat(120.50)},
	}
	suite.mockPlannedRepo.On("ListPlannedExpenses", ctx).Return(planned, nil).Once()

	resp, err := suite.service.ListPlannedExpenses(ctx)

	suite.Require().NoError(err)
	suite.Len(resp.PlannedExpenses, 2)
	suite.True(decimal.NewFromFloat(600.50).Equal(resp.Total), "Total = %s", resp.Total)
}

func (suite *PlannedExpenseServiceTestSuite) TestMaterializePlannedExpense_BuildsExpense() {
	ctx := context.Background()
	planned := domain.PlannedExpense{
		PlannedExpenseID: uuid.NewString(),
		Description:      "Winterreifen",
		Amount:           decimal.NewFromInt(480),
		Category:         domain.CategoryGeneral,
	}
	suite.mockPlannedRepo.On("FindPlannedExpenseByID", ctx, planned.PlannedExpenseID).Return(&planned, nil).Once()

	var materialized domain.Transaction
	suite.mockPlannedRepo.On("MaterializePlannedExpense", ctx, planned.PlannedExpenseID, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { materialized = args.Get(2).(domain.Transaction) }).
		Return(nil).Once()

	txn, err := suite.service.MaterializePlannedExpense(ctx, planned.PlannedExpenseID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.Expense, materialized.Kind)
	suite.Equal(planned.Description, materialized.Description)
	suite.True(planned.Amount.Equal(materialized.Amount))
	suite.WithinDuration(time.Now().UTC(), materialized.Date, 5*time.Second)
	suite.mockPlannedRepo.AssertExpectations(suite.T())
}

func (suite *PlannedExpenseServiceTestSuite) TestMaterializePlannedExpense_NotFound() {
	ctx := context.Background()
	missingID := uuid.NewString()
	suite.mockPlannedRepo.On("FindPlannedExpenseByID", ctx, missingID).Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.MaterializePlannedExpense(ctx, missingID, suite.userID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---
func TestPlannedExpenseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PlannedExpenseServiceTestSuite))
}
