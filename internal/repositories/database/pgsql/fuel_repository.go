package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cashflowhq/cashflow_backend/internal/apperrors"
	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	portsrepo "github.com/cashflowhq/cashflow_backend/internal/core/ports/repositories"
	"github.com/cashflowhq/cashflow_backend/internal/models"
	"github.com/cashflowhq/cashflow_backend/internal/utils/mapping"
)

// Fuel log rows are always read joined with their owning transaction so the
// date and location travel with the entry.
const fuelColumns = `f.fuel_log_id, f.transaction_id, f.liters, f.price_per_liter, f.odometer_km, f.full_tank, f.created_at, f.created_by, f.last_updated_at, f.last_updated_by, t.txn_date, t.location`

const fuelFromClause = ` FROM fuel_logs f JOIN transactions t ON f.transaction_id = t.transaction_id`

type PgxFuelLogRepository struct {
	BaseRepository
}

func newPgxFuelLogRepository(pool *pgxpool.Pool) portsrepo.FuelLogRepositoryFacade {
	return &PgxFuelLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FuelLogRepositoryFacade = (*PgxFuelLogRepository)(nil)

func scanFuelLog(row pgx.Row) (models.FuelLog, error) {
	var m models.FuelLog
	err := row.Scan(
		&m.FuelLogID,
		&m.TransactionID,
		&m.Liters,
		&m.PricePerLiter,
		&m.OdometerKm,
		&m.FullTank,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Date,
		&m.Location,
	)
	return m, err
}

func (r *PgxFuelLogRepository) SaveFuelLog(ctx context.Context, log domain.FuelLog) error {
	m := mapping.ToModelFuelLog(log)
	query := `
		INSERT INTO fuel_logs (fuel_log_id, transaction_id, liters, price_per_liter, odometer_km, full_tank, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FuelLogID,
		m.TransactionID,
		m.Liters,
		m.PricePerLiter,
		m.OdometerKm,
		m.FullTank,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save fuel log: %w", err)
	}
	return nil
}

func (r *PgxFuelLogRepository) FindFuelLogByID(ctx context.Context, fuelLogID string) (*domain.FuelLog, error) {
	query := `SELECT ` + fuelColumns + fuelFromClause + ` WHERE f.fuel_log_id = $1;`
	m, err := scanFuelLog(r.Pool.QueryRow(ctx, query, fuelLogID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fuel log by ID %s: %w", fuelLogID, err)
	}
	d := mapping.ToDomainFuelLog(m)
	return &d, nil
}

func (r *PgxFuelLogRepository) FindFuelLogByTransactionID(ctx context.Context, transactionID string) (*domain.FuelLog, error) {
	query := `SELECT ` + fuelColumns + fuelFromClause + ` WHERE f.transaction_id = $1;`
	m, err := scanFuelLog(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fuel log by transaction ID %s: %w", transactionID, err)
	}
	d := mapping.ToDomainFuelLog(m)
	return &d, nil
}

// ListFuelLogs returns every entry oldest first so consumption can be
// computed between consecutive full-tank fills.
func (r *PgxFuelLogRepository) ListFuelLogs(ctx context.Context) ([]domain.FuelLog, error) {
	query := `SELECT ` + fuelColumns + fuelFromClause + ` ORDER BY t.txn_date ASC, f.odometer_km ASC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fuel logs", err)
	}
	defer rows.Close()

	results := make([]models.FuelLog, 0)
	for rows.Next() {
		m, err := scanFuelLog(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fuel log row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fuel log rows", err)
	}

	return mapping.ToDomainFuelLogSlice(results), nil
}

func (r *PgxFuelLogRepository) UpdateFuelLog(ctx context.Context, log domain.FuelLog) error {
	m := mapping.ToModelFuelLog(log)
	query := `
		UPDATE fuel_logs SET
			liters = $2,
			price_per_liter = $3,
			odometer_km = $4,
			full_tank = $5,
			last_updated_at = $6,
			last_updated_by = $7
		WHERE fuel_log_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.FuelLogID,
		m.Liters,
		m.PricePerLiter,
		m.OdometerKm,
		m.FullTank,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update fuel log %s: %w", m.FuelLogID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFuelLogRepository) DeleteFuelLog(ctx context.Context, fuelLogID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM fuel_logs WHERE fuel_log_id = $1;`, fuelLogID)
	if err != nil {
		return fmt.Errorf("failed to delete fuel log %s: %w", fuelLogID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
