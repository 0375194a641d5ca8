package services

import (
	"context"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	"github.com/cashflowhq/cashflow_backend/internal/dto"
)

// LedgerReaderSvc defines read operations for the shared-expense ledger.
type LedgerReaderSvc interface {
	// GetLedgerOverview returns the ledger records (optionally windowed), the
	// lifetime balance, and the current post-settlement net debt.
	GetLedgerOverview(ctx context.Context, params dto.LedgerQueryParams) (*dto.LedgerOverviewResponse, error)
}

// LedgerWriterSvc defines the mutations of the shared-expense ledger.
type LedgerWriterSvc interface {
	// CreateLedgerRecord persists a new tagged expense record.
	CreateLedgerRecord(ctx context.Context, req dto.CreateLedgerRecordRequest, creatorUserID string) (*domain.Transaction, error)

	// SettleDebts closes out the current debt period with a settlement
	// record. A zero balance is a no-op, reported as such, not an error.
	SettleDebts(ctx context.Context, creatorUserID string) (*dto.SettlementResult, error)

	// MirrorToMain copies a ledger record's personal share into the general
	// transaction list and marks the original as mirrored. Repeated calls
	// fail with ErrDuplicate.
	MirrorToMain(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error)
}

// LedgerSvcFacade combines the ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
