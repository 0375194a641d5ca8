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

var ErrOdometerNotIncreasing = errors.New("odometer reading must be positive")

var hundred = decimal.NewFromInt(100)

// fuelLogService tracks refuelling stops. Every log is backed by an expense
// transaction; the consumption report is derived between full-tank fills.
type fuelLogService struct {
	fuelRepo        portsrepo.FuelLogRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryWithTx
}

// NewFuelLogService creates a new FuelLogService.
func NewFuelLogService(fuelRepo portsrepo.FuelLogRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryWithTx) portssvc.FuelLogSvcFacade {
	return &fuelLogService{
		fuelRepo:        fuelRepo,
		transactionRepo: transactionRepo,
	}
}

// Ensure fuelLogService implements the facade
var _ portssvc.FuelLogSvcFacade = (*fuelLogService)(nil)

// CreateFuelLog records a refuelling stop: the backing expense transaction
// and the log entry referencing it.
func (s *fuelLogService) CreateFuelLog(ctx context.Context, req dto.CreateFuelLogRequest, creatorUserID string) (*domain.FuelLog, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Liters.LessThanOrEqual(decimal.Zero) || req.PricePerLiter.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
	}
	if req.OdometerKm.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrOdometerNotIncreasing)
	}

	now := time.Now().UTC()
	cost := req.Liters.Mul(req.PricePerLiter).Round(2)
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Kind:          domain.Expense,
		Amount:        cost,
		Description:   fmt.Sprintf("Tanken %s l", req.Liters.String()),
		Location:      req.Location,
		Date:          req.Date,
		Category:      domain.CategoryGeneral,
		AuditFields:   audit,
	}
	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save fuel expense transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create fuel expense: %w", err)
	}

	log := domain.FuelLog{
		FuelLogID:     uuid.NewString(),
		TransactionID: txn.TransactionID,
		Liters:        req.Liters,
		PricePerLiter: req.PricePerLiter,
		OdometerKm:    req.OdometerKm,
		FullTank:      req.FullTank,
		AuditFields:   audit,
		Date:          req.Date,
		Location:      req.Location,
	}
	if err := s.fuelRepo.SaveFuelLog(ctx, log); err != nil {
		logger.Error("Failed to save fuel log", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create fuel log: %w", err)
	}

	logger.Info("Fuel log created",
		slog.String("fuel_log_id", log.FuelLogID),
		slog.String("transaction_id", txn.TransactionID))
	return &log, nil
}

func (s *fuelLogService) GetFuelLogByID(ctx context.Context, fuelLogID string) (*domain.FuelLog, error) {
	log, err := s.fuelRepo.FindFuelLogByID(ctx, fuelLogID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get fuel log %s: %w", fuelLogID, err)
	}
	return log, nil
}

// GetFuelOverview builds the consumption report. Distance and l/100km are
// only computed for a full-tank fill whose predecessor full-tank fill is
// known; partial fills in between contribute their liters to the interval.
func (s *fuelLogService) GetFuelOverview(ctx context.Context) (*domain.FuelOverview, error) {
	logs, err := s.fuelRepo.ListFuelLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fuel logs: %w", err)
	}

	overview := &domain.FuelOverview{
		Fills:            make([]domain.FuelFill, 0, len(logs)),
		TotalLiters:      decimal.Zero,
		TotalCost:        decimal.Zero,
		AvgPricePerLiter: decimal.Zero,
	}

	// Interval accumulator since the last full-tank fill.
	var lastFullOdometer *decimal.Decimal
	intervalLiters := decimal.Zero

	totalDistance := decimal.Zero
	totalConsumed := decimal.Zero

	for _, log := range logs {
		fill := domain.FuelFill{
			Date:          log.Date,
			Location:      log.Location,
			Liters:        log.Liters,
			PricePerLiter: log.PricePerLiter,
			OdometerKm:    log.OdometerKm,
		}

		overview.TotalLiters = overview.TotalLiters.Add(log.Liters)
		overview.TotalCost = overview.TotalCost.Add(log.Liters.Mul(log.PricePerLiter))

		intervalLiters = intervalLiters.Add(log.Liters)

		if log.FullTank {
			if lastFullOdometer != nil {
				distance := log.OdometerKm.Sub(*lastFullOdometer)
				if distance.IsPositive() {
					fill.DistanceKm = distance
					fill.LitersPer100Km = intervalLiters.Mul(hundred).Div(distance).Round(2)
					totalDistance = totalDistance.Add(distance)
					totalConsumed = totalConsumed.Add(intervalLiters)
				}
			}
			odo := log.OdometerKm
			lastFullOdometer = &odo
			intervalLiters = decimal.Zero
		}

		overview.Fills = append(overview.Fills, fill)
	}

	if overview.TotalLiters.IsPositive() {
		overview.AvgPricePerLiter = overview.TotalCost.Div(overview.TotalLiters).Round(3)
	}
	if totalDistance.IsPositive() {
		overview.AvgLitersPer100Km = totalConsumed.Mul(hundred).Div(totalDistance).Round(2)
	}

	return overview, nil
}

func (s *fuelLogService) UpdateFuelLog(ctx context.Context, fuelLogID string, req dto.UpdateFuelLogRequest, requestingUserID string) (*domain.FuelLog, error) {
	log, err := s.fuelRepo.FindFuelLogByID(ctx, fuelLogID)
	if err != nil {
		return nil, err
	}

	if req.Liters != nil {
		if req.Liters.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
		}
		log.Liters = *req.Liters
	}
	if req.PricePerLiter != nil {
		if req.PricePerLiter.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAmountNotPositive)
		}
		log.PricePerLiter = *req.PricePerLiter
	}
	if req.OdometerKm != nil {
		if req.OdometerKm.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrOdometerNotIncreasing)
		}
		log.OdometerKm = *req.OdometerKm
	}
	if req.FullTank != nil {
		log.FullTank = *req.FullTank
	}

	log.LastUpdatedAt = time.Now().UTC()
	log.LastUpdatedBy = requestingUserID

	if err := s.fuelRepo.UpdateFuelLog(ctx, *log); err != nil {
		return nil, err
	}

	// Keep the backing expense amount in sync with the corrected figures.
	if req.Liters != nil || req.PricePerLiter != nil {
		txn, err := s.transactionRepo.FindTransactionByID(ctx, log.TransactionID)
		if err == nil {
			txn.Amount = log.Liters.Mul(log.PricePerLiter).Round(2)
			txn.LastUpdatedAt = log.LastUpdatedAt
			txn.LastUpdatedBy = requestingUserID
			if updateErr := s.transactionRepo.UpdateTransaction(ctx, *txn); updateErr != nil {
				return nil, fmt.Errorf("failed to update backing fuel expense: %w", updateErr)
			}
		}
	}

	return log, nil
}

// DeleteFuelLog removes the log together with its backing expense.
func (s *fuelLogService) DeleteFuelLog(ctx context.Context, fuelLogID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	log, err := s.fuelRepo.FindFuelLogByID(ctx, fuelLogID)
	if err != nil {
		return err
	}

	if err := s.fuelRepo.DeleteFuelLog(ctx, fuelLogID); err != nil {
		return err
	}
	if err := s.transactionRepo.DeleteTransaction(ctx, log.TransactionID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to delete backing fuel expense", slog.String("transaction_id", log.TransactionID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete backing fuel expense: %w", err)
	}

	logger.Info("Fuel log deleted", slog.String("fuel_log_id", fuelLogID), slog.String("deleted_by", requestingUserID))
	return nil
}
