package repositories

import (
	"context"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
)

// FuelLogReader defines read operations for fuel log entries.
type FuelLogReader interface {
	// FindFuelLogByID retrieves a fuel log entry by its identifier.
	FindFuelLogByID(ctx context.Context, fuelLogID string) (*domain.FuelLog, error)

	// FindFuelLogByTransactionID retrieves the fuel log attached to a
	// transaction, or ErrNotFound.
	FindFuelLogByTransactionID(ctx context.Context, transactionID string) (*domain.FuelLog, error)

	// ListFuelLogs returns all entries with their transaction dates joined
	// in, ordered by transaction date then odometer ascending.
	ListFuelLogs(ctx context.Context) ([]domain.FuelLog, error)
}

// FuelLogWriter defines write operations for fuel log entries.
type FuelLogWriter interface {
	SaveFuelLog(ctx context.Context, log domain.FuelLog) error
	UpdateFuelLog(ctx context.Context, log domain.FuelLog) error
	DeleteFuelLog(ctx context.Context, fuelLogID string) error
}

// FuelLogRepositoryFacade combines the fuel log interfaces.
type FuelLogRepositoryFacade interface {
	FuelLogReader
	FuelLogWriter
}
