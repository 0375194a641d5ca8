package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cashflowhq/cashflow_backend/internal/apperrors"
	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	portsrepo "github.com/cashflowhq/cashflow_backend/internal/core/ports/repositories"
	"github.com/cashflowhq/cashflow_backend/internal/models"
	"github.com/cashflowhq/cashflow_backend/internal/utils/mapping"
	"github.com/cashflowhq/cashflow_backend/internal/utils/pagination"
)

const transactionColumns = `transaction_id, kind, amount, description, location, txn_date, category, added_to_main, payer, relation, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements the full interface
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Kind,
		&m.Amount,
		&m.Description,
		&m.Location,
		&m.Date,
		&m.Category,
		&m.AddedToMain,
		&m.Payer,
		&m.Relation,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
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
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// ListTransactions retrieves a paginated list of transactions using token-based pagination.
// It returns the transactions, a token for the next page, and an error.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	args := []interface{}{}

	appendArg := func(clause string, value interface{}) {
		args = append(args, value)
		baseQuery += " AND " + clause + "$" + strconv.Itoa(len(args))
	}

	if filter.Kind != nil {
		appendArg("kind = ", string(*filter.Kind))
	}
	if filter.Category != nil {
		appendArg("category = ", string(*filter.Category))
	}
	if filter.Year != 0 {
		appendArg("EXTRACT(YEAR FROM txn_date) = ", filter.Year)
	}
	if filter.Year != 0 && filter.Month != 0 {
		appendArg("EXTRACT(MONTH FROM txn_date) = ", filter.Month)
	}
	if filter.LedgerOnly {
		baseQuery += " AND payer IS NOT NULL"
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison is concise and efficient in Postgres
		args = append(args, lastDate, lastCreatedAt)
		baseQuery += " AND (txn_date, created_at) < ($" + strconv.Itoa(len(args)-1) + ", $" + strconv.Itoa(len(args)) + ")"
	}

	// Ordering must be stable: txn_date DESC with created_at DESC as tie-breaker.
	args = append(args, fetchLimit)
	query := baseQuery + " ORDER BY txn_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		// The token points to the last item included in this response page.
		last := results[limit-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		nextTokenVal = &token
		results = results[:limit]
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

// ListLedgerRecords returns every record that carries a payer tag, oldest
// first so balance computation can walk settlements in order.
func (r *PgxTransactionRepository) ListLedgerRecords(ctx context.Context, from, to *time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE payer IS NOT NULL`
	args := []interface{}{}
	if from != nil {
		args = append(args, *from)
		query += " AND txn_date >= $" + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += " AND txn_date <= $" + strconv.Itoa(len(args))
	}
	query += " ORDER BY txn_date ASC, created_at ASC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger records", err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger record row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger record rows", err)
	}

	return mapping.ToDomainTransactionSlice(results), nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions SET
			kind = $2,
			amount = $3,
			description = $4,
			location = $5,
			txn_date = $6,
			category = $7,
			added_to_main = $8,
			payer = $9,
			relation = $10,
			last_updated_at = $11,
			last_updated_by = $12
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
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
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MirrorLedgerRecord inserts the mirrored record and flips the original's
// added_to_main flag in one database transaction. The conditional update
// makes mirroring idempotent: a second attempt matches no row and the whole
// transaction rolls back with ErrDuplicate.
func (r *PgxTransactionRepository) MirrorLedgerRecord(ctx context.Context, originalID string, mirror domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	flagQuery := `
		UPDATE transactions SET added_to_main = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $1 AND added_to_main = FALSE;
	`
	tag, err := tx.Exec(ctx, flagQuery, originalID, mirror.CreatedAt, mirror.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to flag ledger record %s as mirrored: %w", originalID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the record does not exist or it was already mirrored.
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM transactions WHERE transaction_id = $1);`, originalID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check ledger record %s: %w", originalID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrDuplicate
	}

	m := mapping.ToModelTransaction(mirror)
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
		return fmt.Errorf("failed to insert mirrored transaction for %s: %w", originalID, err)
	}

	return r.Commit(ctx, tx)
}
