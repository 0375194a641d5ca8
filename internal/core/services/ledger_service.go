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
	"github.com/cashflowhq/cashflow_backend/internal/utils"
	"github.com/cashflowhq/cashflow_backend/internal/utils/accounting"
)

var (
	ErrNotLedgerRecord  = errors.New("transaction is not a ledger record")
	ErrMirrorSettlement = errors.New("settlement records cannot be mirrored")
)

// ledgerService implements the two-party shared-expense ledger on top of the
// transaction repository. Ledger records are ordinary transactions carrying a
// payer/relation tag; the legacy description markers are kept in sync so old
// clients keep working.
type ledgerService struct {
	transactionRepo portsrepo.TransactionRepositoryWithTx
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(transactionRepo portsrepo.TransactionRepositoryWithTx) portssvc.LedgerSvcFacade {
	return &ledgerService{transactionRepo: transactionRepo}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateLedgerRecord persists a new tagged expense record. The description is
// stored in the legacy encoded form with the typed tag alongside it.
func (s *ledgerService) CreateLedgerRecord(ctx context.Context, req dto.CreateLedgerRecordRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	tag := domain.LedgerTag{Payer: req.Payer, Relation: req.Relation}
	if err := tag.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Expense,
		Amount:        req.Amount,
		Description:   domain.EncodeLegacyDescription(tag, req.Description),
		Location:      req.Location,
		Date:          req.Date,
		Category:      domain.CategoryGeneral,
		Ledger:        &tag,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save ledger record", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create ledger record: %w", err)
	}

	logger.Info("Ledger record created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("payer", string(tag.Payer)),
		slog.String("relation", string(tag.Relation)))
	return &txn, nil
}

// GetLedgerOverview returns the ledger records in the requested window, the
// lifetime balance over everything, and the net debt of the current
// post-settlement period. The window applies to the listing and to the
// current balance; lifetime totals and the segment count always cover the
// full history.
func (s *ledgerService) GetLedgerOverview(ctx context.Context, params dto.LedgerQueryParams) (*dto.LedgerOverviewResponse, error) {
	allRecords, err := s.transactionRepo.ListLedgerRecords(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger records: %w", err)
	}

	windowed := allRecords
	if params.From != nil || params.To != nil {
		windowed, err = s.transactionRepo.ListLedgerRecords(ctx, params.From, params.To)
		if err != nil {
			return nil, fmt.Errorf("failed to load windowed ledger records: %w", err)
		}
	}

	lifetime := accounting.ComputeBalance(allRecords)
	current := accounting.ComputeBalance(accounting.CurrentSegment(windowed))

	return &dto.LedgerOverviewResponse{
		Records:  dto.ToTransactionResponses(windowed),
		Lifetime: dto.ToLedgerBalanceResponse(lifetime),
		Current:  dto.ToLedgerBalanceResponse(current),
		Segments: len(accounting.Segments(allRecords)),
	}, nil
}

// SettleDebts closes the current debt period. When the outstanding balance is
// zero nothing is written and the result says so; otherwise a settlement
// record paid by the debtor over the owed amount is appended.
func (s *ledgerService) SettleDebts(ctx context.Context, creatorUserID string) (*dto.SettlementResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	records, err := s.transactionRepo.ListLedgerRecords(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger records for settlement: %w", err)
	}

	balance := accounting.ComputeBalance(accounting.CurrentSegment(records))
	debtor, owing := balance.Debtor()
	if !owing {
		logger.Info("Settle requested with zero balance, nothing to do")
		return &dto.SettlementResult{Settled: false, Amount: decimal.Zero}, nil
	}

	amount := balance.NetDebt.Abs()
	tag := domain.LedgerTag{Payer: debtor, Relation: domain.RelationSettlement}

	now := time.Now().UTC()
	settlement := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Expense,
		Amount:        amount,
		Description:   domain.EncodeLegacyDescription(tag, ""),
		Date:          now,
		Category:      domain.CategoryGeneral,
		Ledger:        &tag,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, settlement); err != nil {
		logger.Error("Failed to save settlement record", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to settle debts: %w", err)
	}

	logger.Info("Debts settled",
		slog.String("debtor", string(debtor)),
		slog.String("amount", utils.FormatEuro(amount)))

	record := dto.ToTransactionResponse(settlement)
	return &dto.SettlementResult{
		Settled: true,
		Amount:  amount,
		Debtor:  &debtor,
		Record:  &record,
	}, nil
}

// MirrorToMain copies a ledger record's personal share into the general
// transaction list: half the amount for a shared cost, the full amount for an
// explicit debt. The original is flagged so a second mirror fails with
// ErrDuplicate.
func (s *ledgerService) MirrorToMain(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if original.Ledger == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNotLedgerRecord)
	}
	if original.Ledger.Relation == domain.RelationSettlement {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrMirrorSettlement)
	}
	if original.AddedToMain {
		return nil, apperrors.ErrDuplicate
	}

	_, note, _ := domain.ParseLegacyDescription(original.Description)

	now := time.Now().UTC()
	mirror := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Expense,
		Amount:        accounting.MirrorAmount(*original),
		Description:   note,
		Location:      original.Location,
		Date:          original.Date,
		Category:      domain.CategoryGeneral,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	if err := s.transactionRepo.MirrorLedgerRecord(ctx, transactionID, mirror); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		logger.Error("Failed to mirror ledger record", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to mirror ledger record %s: %w", transactionID, err)
	}

	logger.Info("Ledger record mirrored",
		slog.String("original_id", transactionID),
		slog.String("mirror_id", mirror.TransactionID),
		slog.String("amount", mirror.Amount.String()))
	return &mirror, nil
}
