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

const plannedColumns = `planned_expense_id, description, amount, category, due_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxPlannedExpenseRepository struct {
	BaseRepository
}

func newPgxPlannedExpenseRepository(pool *pgxpool.Pool) portsrepo.PlannedExpenseRepositoryFacade {
	return &PgxPlannedExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PlannedExpenseRepositoryFacade = (*PgxPlannedExpenseRepository)(nil)

func scanPlannedExpense(row pgx.Row) (models.PlannedExpense, error) {
	var m models.PlannedExpense
	err := row.Scan(
		&m.PlannedExpenseID,
		&m.Description,
		&m.Amount,
		&m.Category,
		&m.DueDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPlannedExpenseRepository) SavePlannedExpense(ctx context.Context, planned domain.PlannedExpense) error {
	m := mapping.ToModelPlannedExpense(planned)
	query := `
		INSERT INTO planned_expenses (` + plannedColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PlannedExpenseID,
		m.Description,
		m.Amount,
		m.Category,
		m.DueDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save planned expense: %w", err)
	}
	return nil
}

func (r *PgxPlannedExpenseRepository) FindPlannedExpenseByID(ctx context.Context, plannedExpenseID string) (*domain.PlannedExpense, error) {
	query := `SELECT ` + plannedColumns + ` FROM planned_expenses WHERE planned_expense_id = $1;`
	m, err := scanPlannedExpense(r.Pool.QueryRow(ctx, query, plannedExpenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find planned expense by ID %s: %w", plannedExpenseID, err)
	}
	d := mapping.ToDomainPlannedExpense(m)
	return &d, nil
}

// ListPlannedExpenses returns every planned expense, soonest due first with
// undated plans last.
func (r *PgxPlannedExpenseRepository) ListPlannedExpenses(ctx context.Context) ([]domain.PlannedExpense, error) {
	query := `SELECT ` + plannedColumns + ` FROM planned_expenses ORDER BY due_date ASC NULLS LAST, created_at ASC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query planned expenses", err)
	}
	defer rows.Close()

	results := make([]models.PlannedExpense, 0)
	for rows.Next() {
		m, err := scanPlannedExpense(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan planned expense row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating planned expense rows", err)
	}

	return mapping.ToDomainPlannedExpenseSlice(results), nil
}

func (r *PgxPlannedExpenseRepository) UpdatePlannedExpense(ctx context.Context, planned domain.PlannedExpense) error {
	m := mapping.ToModelPlannedExpense(planned)
	query := `
		UPDATE planned_expenses SET
			description = $2,
			amount = $3,
			category = $4,
			due_date = $5,
			last_updated_at = $6,
			last_updated_by = $7
		WHERE planned_expense_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PlannedExpenseID,
		m.Description,
		m.Amount,
		m.Category,
		m.DueDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update planned expense %s: %w", m.PlannedExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPlannedExpenseRepository) DeletePlannedExpense(ctx context.Context, plannedExpenseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM planned_expenses WHERE planned_expense_id = $1;`, plannedExpenseID)
	if err != nil {
		return fmt.Errorf("failed to delete planned expense %s: %w", plannedExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MaterializePlannedExpense removes the plan and inserts the transaction it
// became in a single database transaction, so the expense never appears in
// both places.
func (r *PgxPlannedExpenseRepository) MaterializePlannedExpense(ctx context.Context, plannedExpenseID string, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	tag, err := tx.Exec(ctx, `DELETE FROM planned_expenses WHERE planned_expense_id = $1;`, plannedExpenseID)
	if err != nil {
		return fmt.Errorf("failed to delete planned expense %s: %w", plannedExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	m := mapping.ToModelTransaction(txn)
	insertQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.TransactionID,
		m.Kind,
		m.Amount,
		m.Description,
		m.Location,
		m.Date,
		m.Category,
		m.AddedToMain,
		m.Payer,
		m.Relation,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert materialized transaction for plan %s: %w", plannedExpenseID, err)
	}

	return r.Commit(ctx, tx)
}
