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

var (
	ErrAmountNotPositive  = errors.New("transaction amount must be positive")
	ErrDescriptionMissing = errors.New("transaction description is required")
)

// transactionService provides the general transaction list operations.
type transactionService struct {
	transactionRepo portsrepo.TransactionRepositoryWithTx
	reportingRepo   portsrepo.ReportingRepository
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryWithTx, reportingRepo portsrepo.ReportingRepository) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		reportingRepo:   reportingRepo,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func normalizeCategory(category domain.TransactionCategory) domain.TransactionCategory {
	if category == "" {
		return domain.CategoryGeneral
	}
	return category
}

// CreateTransaction validates the request and persists a new record.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrDescriptionMissing)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          req.Kind,
		Amount:        req.Amount,
		Description:   req.Description,
		Location:      req.Location,
		Date:          req.Date,
		Category:      normalizeCategory(req.Category),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// A description following the legacy ledger convention makes the record
	// ledger-relevant even when it arrives through the plain endpoint.
	if tag, _, ok := domain.ParseLegacyDescription(req.Description); ok {
		txn.Ledger = &tag
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("kind", string(txn.Kind)))
	return &txn, nil
}

// GetTransactionByID retrieves a specific record.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions retrieves a filtered, paginated record page, newest first.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter := portsrepo.ListTransactionsFilter{
		Year:       params.Year,
		Month:      params.Month,
		LedgerOnly: params.LedgerOnly,
	}
	if params.Kind != nil {
		kind := domain.TransactionKind(*params.Kind)
		filter.Kind = &kind
	}
	if params.Category != nil {
		category := domain.TransactionCategory(*params.Category)
		filter.Category = &category
	}

	records, nextToken, err := s.transactionRepo.ListTransactions(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	resp := dto.ToListTransactionsResponse(records, nextToken)
	return &resp, nil
}

// ListMonths returns the per-month totals of a year for the grouped view.
func (s *transactionService) ListMonths(ctx context.Context, year int) ([]domain.MonthlySummaryRow, error) {
	rows, err := s.reportingRepo.GetMonthlySummary(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list months for year %d: %w", year, err)
	}
	return rows, nil
}

// GetBalance aggregates income against expenses over an optional window.
func (s *transactionService) GetBalance(ctx context.Context, params dto.BalanceParams) (*domain.BalanceSummary, error) {
	summary, err := s.reportingRepo.GetBalanceSummary(ctx, params.From, params.To)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance summary: %w", err)
	}
	return summary, nil
}

// UpdateTransaction applies the non-nil fields of the request.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if req.Kind != nil {
		txn.Kind = *req.Kind
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
		}
		txn.Amount = *req.Amount
	}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrDescriptionMissing)
		}
		txn.Description = *req.Description
		// Re-derive the ledger tag, the legacy markers travel in the text.
		if tag, _, ok := domain.ParseLegacyDescription(*req.Description); ok {
			txn.Ledger = &tag
		} else {
			txn.Ledger = nil
		}
	}
	if req.Location != nil {
		txn.Location = *req.Location
	}
	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.Category != nil {
		txn.Category = normalizeCategory(*req.Category)
	}

	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = requestingUserID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		logger.Error("Failed to update transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, err
	}

	return txn, nil
}

// DeleteTransaction hard-deletes a record.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		logger.Error("Failed to delete transaction", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID), slog.String("deleted_by", requestingUserID))
	return nil
}
