package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashflowhq/cashflow_backend/internal/apperrors"
	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	portsrepo "github.com/cashflowhq/cashflow_backend/internal/core/ports/repositories"
	portssvc "github.com/cashflowhq/cashflow_backend/internal/core/ports/services"
	"github.com/cashflowhq/cashflow_backend/internal/dto"
	"github.com/cashflowhq/cashflow_backend/internal/middleware"
)

// plannedExpenseService manages the list of upcoming expenses.
type plannedExpenseService struct {
	plannedRepo portsrepo.PlannedExpenseRepositoryFacade
}

// NewPlannedExpenseService creates a new PlannedExpenseService.
func NewPlannedExpenseService(plannedRepo portsrepo.PlannedExpenseRepositoryFacade) portssvc.PlannedExpenseSvcFacade {
	return &plannedExpenseService{plannedRepo: plannedRepo}
}

// Ensure plannedExpenseService implements the facade
var _ portssvc.PlannedExpenseSvcFacade = (*plannedExpenseService)(nil)

func (s *plannedExpenseService) CreatePlannedExpense(ctx context.Context, req dto.CreatePlannedExpenseRequest, creatorUserID string) (*domain.PlannedExpense, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrDescriptionMissing)
	}

	now := time.Now().UTC()
	planned := domain.PlannedExpense{
		PlannedExpenseID: uuid.NewString(),
		Description:      req.Description,
		Amount:           req.Amount,
		Category:         normalizeCategory(req.Category),
		DueDate:          req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.plannedRepo.SavePlannedExpense(ctx, planned); err != nil {
		logger.Error("Failed to save planned expense", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create planned expense: %w", err)
	}

	logger.Info("Planned expense created", slog.String("planned_expense_id", planned.PlannedExpenseID))
	return &planned, nil
}

func (s *plannedExpenseService) GetPlannedExpenseByID(ctx context.Context, plannedExpenseID string) (*domain.PlannedExpense, error) {
	planned, err := s.plannedRepo.FindPlannedExpenseByID(ctx, plannedExpenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get planned expense %s: %w", plannedExpenseID, err)
	}
	return planned, nil
}

// ListPlannedExpenses returns every open plan with the summed total.
func (s *plannedExpenseService) ListPlannedExpenses(ctx context.Context) (*dto.ListPlannedExpensesResponse, error) {
	planned, err := s.plannedRepo.ListPlannedExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list planned expenses: %w", err)
	}
	resp := dto.ToListPlannedExpensesResponse(planned)
	return &resp, nil
}

func (s *plannedExpenseService) UpdatePlannedExpense(ctx context.Context, plannedExpenseID string, req dto.UpdatePlannedExpenseRequest, requestingUserID string) (*domain.PlannedExpense, error) {
	planned, err := s.plannedRepo.FindPlannedExpenseByID(ctx, plannedExpenseID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		if *req.Description == "" {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrDescriptionMissing)
		}
		planned.Description = *req.Description
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
		}
		planned.Amount = *req.Amount
	}
	if req.Category != nil {
		planned.Category = normalizeCategory(*req.Category)
	}
	if req.DueDate != nil {
		planned.DueDate = req.DueDate
	}

	planned.LastUpdatedAt = time.Now().UTC()
	planned.LastUpdatedBy = requestingUserID

	if err := s.plannedRepo.UpdatePlannedExpense(ctx, *planned); err != nil {
		return nil, err
	}

	return planned, nil
}

func (s *plannedExpenseService) DeletePlannedExpense(ctx context.Context, plannedExpenseID string, requestingUserID string) error {
	if err := s.plannedRepo.DeletePlannedExpense(ctx, plannedExpenseID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete planned expense %s: %w", plannedExpenseID, err)
	}
	return nil
}

// MaterializePlannedExpense turns a plan into a real expense transaction
// dated now. Plan removal and transaction insert happen atomically in the
// repository.
func (s *plannedExpenseService) MaterializePlannedExpense(ctx context.Context, plannedExpenseID string, requestingUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	planned, err := s.plannedRepo.FindPlannedExpenseByID(ctx, plannedExpenseID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Expense,
		Amount:        planned.Amount,
		Description:   planned.Description,
		Date:          now,
		Category:      planned.Category,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.plannedRepo.MaterializePlannedExpense(ctx, plannedExpenseID, txn); err != nil {
		logger.Error("Failed to materialize planned expense", slog.String("planned_expense_id", plannedExpenseID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Planned expense materialized",
		slog.String("planned_expense_id", plannedExpenseID),
		slog.String("transaction_id", txn.TransactionID))
	return &txn, nil
}
