package services

import (
	"context"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	"github.com/cashflowhq/cashflow_backend/internal/dto"
)

// FuelLogReaderSvc defines read operations for the fuel log.
type FuelLogReaderSvc interface {
	// GetFuelLogByID retrieves a fuel log entry by its ID.
	GetFuelLogByID(ctx context.Context, fuelLogID string) (*domain.FuelLog, error)

	// GetFuelOverview computes the consumption report over the whole log.
	GetFuelOverview(ctx context.Context) (*domain.FuelOverview, error)
}

// FuelLogWriterSvc defines write operations for the fuel log.
type FuelLogWriterSvc interface {
	// CreateFuelLog attaches refuelling details to an existing expense record.
	CreateFuelLog(ctx context.Context, req dto.CreateFuelLogRequest, creatorUserID string) (*domain.FuelLog, error)

	UpdateFuelLog(ctx context.Context, fuelLogID string, req dto.UpdateFuelLogRequest, requestingUserID string) (*domain.FuelLog, error)
	DeleteFuelLog(ctx context.Context, fuelLogID string, requestingUserID string) error
}

// FuelLogSvcFacade combines the fuel log service interfaces.
type FuelLogSvcFacade interface {
	FuelLogReaderSvc
	FuelLogWriterSvc
}
