package accounting

import (
	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// ComputeBalance evaluates a chronological sequence of ledger records and
// returns gross per-party totals plus the signed net debt. It is a pure
// function; callers are responsible for having filtered the input to
// ledger-relevant records (Ledger tag set) and for restricting it to the
// segment after the latest settlement when the "current" debt is wanted.
//
// The debt convention:
//   - every shared record is split 50/50, so H's obligation starts at
//     half of all shared costs minus what H actually paid of them;
//   - an explicit debt record shifts the full amount onto the owing party;
//   - the result is sign-flipped so that a positive NetDebt reads
//     "M owes H" and a negative one "H owes M".
//
// Settlement records count toward the gross totals but are boundaries, not
// costs: they are excluded from the debt partition.
func ComputeBalance(records []domain.Transaction) domain.LedgerBalance {
	hTotal := decimal.Zero
	mTotal := decimal.Zero

	sharedTotal := decimal.Zero
	sharedPaidByH := decimal.Zero
	debtAdjustment := decimal.Zero // positive values increase what H owes

	for _, rec := range records {
		if rec.Ledger == nil {
			continue
		}
		if rec.Ledger.Payer == domain.PartyH {
			hTotal = hTotal.Add(rec.Amount)
		} else {
			mTotal = mTotal.Add(rec.Amount)
		}

		switch rec.Ledger.Relation {
		case domain.RelationShared:
			sharedTotal = sharedTotal.Add(rec.Amount)
			if rec.Ledger.Payer == domain.PartyH {
				sharedPaidByH = sharedPaidByH.Add(rec.Amount)
			}
		case domain.RelationDebtHOwesM:
			debtAdjustment = debtAdjustment.Add(rec.Amount)
		case domain.RelationDebtMOwesH:
			debtAdjustment = debtAdjustment.Sub(rec.Amount)
		case domain.RelationSettlement:
			// boundary record, no effect on the debt partition
		}
	}

	halfShared := sharedTotal.Div(two)
	owedByH := halfShared.Sub(sharedPaidByH).Add(debtAdjustment)

	return domain.LedgerBalance{
		HTotal:        hTotal,
		MTotal:        mTotal,
		TotalExpenses: hTotal.Add(mTotal),
		NetDebt:       owedByH.Neg(),
	}
}

// CurrentSegment returns the records strictly after the most recent
// settlement marker. With no settlement present the full input is returned.
// The input must already be in ascending date order.
func CurrentSegment(records []domain.Transaction) []domain.Transaction {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Ledger != nil && records[i].Ledger.Relation == domain.RelationSettlement {
			return records[i+1:]
		}
	}
	return records
}

// Segments splits chronological records at settlement markers. Each
// settlement record closes the segment it terminates; the final segment is
// the open one (possibly empty). Used for the period-by-period display.
func Segments(records []domain.Transaction) [][]domain.Transaction {
	var segments [][]domain.Transaction
	start := 0
	for i, rec := range records {
		if rec.Ledger != nil && rec.Ledger.Relation == domain.RelationSettlement {
			segments = append(segments, records[start:i+1])
			start = i + 1
		}
	}
	segments = append(segments, records[start:])
	return segments
}

// MirrorAmount returns the personal-share amount a ledger record contributes
// when mirrored into the general transaction list: half for a 50/50 shared
// cost, the full amount for an explicit debt.
func MirrorAmount(rec domain.Transaction) decimal.Decimal {
	if rec.Ledger != nil && rec.Ledger.Relation == domain.RelationShared {
		return rec.Amount.Div(two)
	}
	return rec.Amount
}
