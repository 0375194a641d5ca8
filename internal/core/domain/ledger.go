package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Party identifies one of the two fixed members of the shared-expense ledger.
type Party string

const (
	PartyH Party = "H"
	PartyM Party = "M"
)

// LedgerRelation classifies how a ledger record affects the debt between the
// two parties.
type LedgerRelation string

const (
	// RelationShared is a 50/50 cost: split equally regardless of who paid.
	RelationShared LedgerRelation = "SHARED"
	// RelationDebtHOwesM means H owes M the full amount (M paid).
	RelationDebtHOwesM LedgerRelation = "DEBT_H_OWES_M"
	// RelationDebtMOwesH means M owes H the full amount (H paid).
	RelationDebtMOwesH LedgerRelation = "DEBT_M_OWES_H"
	// RelationSettlement marks a synthetic record that closes out all debt
	// accumulated before it. Balance math for the current period only
	// considers records strictly after the latest settlement.
	RelationSettlement LedgerRelation = "SETTLEMENT"
)

// LedgerTag is the typed form of what the legacy system encoded as substrings
// inside the description field: who paid, and how the amount relates to the
// debt between the parties.
type LedgerTag struct {
	Payer    Party          `json:"payer"`
	Relation LedgerRelation `json:"relation"`
}

// Validate checks the structural invariants of a tag: the payer must be one
// of the two parties, and an explicit debt must be paid by the creditor
// (an "(H schuldet M)" record is one that M actually paid, and vice versa).
func (t LedgerTag) Validate() error {
	if t.Payer != PartyH && t.Payer != PartyM {
		return fmt.Errorf("ledger payer must be %q or %q, got %q", PartyH, PartyM, t.Payer)
	}
	switch t.Relation {
	case RelationShared, RelationSettlement:
		return nil
	case RelationDebtHOwesM:
		if t.Payer != PartyM {
			return fmt.Errorf("debt record 'H schuldet M' must be paid by %q, got %q", PartyM, t.Payer)
		}
		return nil
	case RelationDebtMOwesH:
		if t.Payer != PartyH {
			return fmt.Errorf("debt record 'M schuldet H' must be paid by %q, got %q", PartyH, t.Payer)
		}
		return nil
	default:
		return fmt.Errorf("unknown ledger relation %q", t.Relation)
	}
}

// Other returns the party that is not p.
func (p Party) Other() Party {
	if p == PartyH {
		return PartyM
	}
	return PartyH
}

// LedgerBalance is the result of evaluating a sequence of ledger records.
//
// NetDebt is signed: a positive value means party M owes party H, a negative
// value means party H owes party M. Zero means the parties are even.
type LedgerBalance struct {
	HTotal        decimal.Decimal `json:"hTotal"` // Gross lifetime payments by H
	MTotal        decimal.Decimal `json:"mTotal"` // Gross lifetime payments by M
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetDebt       decimal.Decimal `json:"netDebt"`
}

// Debtor returns the party that currently owes money and true, or false when
// the balance is settled.
func (b LedgerBalance) Debtor() (Party, bool) {
	switch {
	case b.NetDebt.IsPositive():
		return PartyM, true
	case b.NetDebt.IsNegative():
		return PartyH, true
	default:
		return "", false
	}
}
