package domain_test

import (
	"testing"

	"github.com/cashflowhq/cashflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_SignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        decimal.Decimal
	}{
		{
			name:        "income stays positive",
			transaction: domain.Transaction{Kind: domain.Income, Amount: decimal.NewFromInt(120)},
			want:        decimal.NewFromInt(120),
		},
		{
			name:        "expense is negated",
			transaction: domain.Transaction{Kind: domain.Expense, Amount: decimal.NewFromFloat(19.99)},
			want:        decimal.NewFromFloat(-19.99),
		},
		{
			name:        "zero amount",
			transaction: domain.Transaction{Kind: domain.Expense, Amount: decimal.Zero},
			want:        decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.transaction.SignedAmount()),
				"want %s, got %s", tt.want, tt.transaction.SignedAmount())
		})
	}
}

func TestLedgerTag_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tag     domain.LedgerTag
		wantErr bool
	}{
		{"shared paid by H", domain.LedgerTag{Payer: domain.PartyH, Relation: domain.RelationShared}, false},
		{"shared paid by M", domain.LedgerTag{Payer: domain.PartyM, Relation: domain.RelationShared}, false},
		{"H owes M, M paid", domain.LedgerTag{Payer: domain.PartyM, Relation: domain.RelationDebtHOwesM}, false},
		{"H owes M, wrong payer", domain.LedgerTag{Payer: domain.PartyH, Relation: domain.RelationDebtHOwesM}, true},
		{"M owes H, H paid", domain.LedgerTag{Payer: domain.PartyH, Relation: domain.RelationDebtMOwesH}, false},
		{"M owes H, wrong payer", domain.LedgerTag{Payer: domain.PartyM, Relation: domain.RelationDebtMOwesH}, true},
		{"settlement by either party", domain.LedgerTag{Payer: domain.PartyM, Relation: domain.RelationSettlement}, false},
		{"unknown payer", domain.LedgerTag{Payer: "X", Relation: domain.RelationShared}, true},
		{"unknown relation", domain.LedgerTag{Payer: domain.PartyH, Relation: "WEEKLY"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tag.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLegacyDescription(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantTag    domain.LedgerTag
		wantNote   string
		wantLedger bool
	}{
		{
			name:       "shared cost paid by H",
			in:         "H+ Wocheneinkauf Rewe",
			wantTag:    domain.LedgerTag{Payer: domain.PartyH, Relation: domain.RelationShared},
			wantNote:   "Wocheneinkauf Rewe",
			wantLedger: true,
		},
		{
			name:       "explicit debt H owes M",
			in:         "M+ Konzertkarte (H schuldet M)",
			wantTag:    domain.LedgerTag{Payer: domain.PartyM, Relation: domain.RelationDebtHOwesM},
			wantNote:   "Konzertkarte",
			wantLedger: true,
		},
		{
			name:       "explicit debt M owes H",
			in:         "H+ Werkzeug (M schuldet H)",
			wantTag:    domain.LedgerTag{Payer: domain.PartyH, Relation: domain.RelationDebtMOwesH},
			wantNote:   "Werkzeug",
			wantLedger: true,
		},
		{
			name:       "settlement marker",
			in:         "M+ Schuldenausgleich",
			wantTag:    domain.LedgerTag{Payer: domain.PartyM, Relation: domain.RelationSettlement},
			wantNote:   "",
			wantLedger: true,
		},
		{
			name:       "settlement marker wins over debt substring",
			in:         "M+ Schuldenausgleich (H schuldet M)",
			wantTag:    domain.LedgerTag{Payer: domain.PartyM, Relation: domain.RelationSettlement},
			wantNote:   "(H schuldet M)",
			wantLedger: true,
		},
		{
			name:       "both debt substrings fall back to shared",
			in:         "H+ Kaputt (H schuldet M) (M schuldet H)",
			wantTag:    domain.LedgerTag{Payer: domain.PartyH, Relation: domain.RelationShared},
			wantNote:   "Kaputt (H schuldet M) (M schuldet H)",
			wantLedger: true,
		},
		{
			name:       "no payer prefix is not a ledger record",
			in:         "Miete Januar (H schuldet M)",
			wantLedger: false,
		},
		{
			name:       "prefix requires the trailing space",
			in:         "H+Milch",
			wantLedger: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, note, ok := domain.ParseLegacyDescription(tt.in)
			require.Equal(t, tt.wantLedger, ok)
			if !tt.wantLedger {
				return
			}
			assert.Equal(t, tt.wantTag, tag)
			assert.Equal(t, tt.wantNote, note)
		})
	}
}

func TestEncodeLegacyDescription_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tag  domain.LedgerTag
		note string
		want string
	}{
		{
			name: "shared",
			tag:  domain.LedgerTag{Payer: domain.PartyH, Relation: domain.RelationShared},
			note: "Wocheneinkauf Rewe",
			want: "H+ Wocheneinkauf Rewe",
		},
		{
			name: "debt H owes M",
			tag:  domain.LedgerTag{Payer: domain.PartyM, Relation: domain.RelationDebtHOwesM},
			note: "Konzertkarte",
			want: "M+ Konzertkarte (H schuldet M)",
		},
		{
			name: "debt M owes H",
			tag:  domain.LedgerTag{Payer: domain.PartyH, Relation: domain.RelationDebtMOwesH},
			note: "Werkzeug",
			want: "H+ Werkzeug (M schuldet H)",
		},
		{
			name: "settlement",
			tag:  domain.LedgerTag{Payer: domain.PartyM, Relation: domain.RelationSettlement},
			note: "",
			want: "M+ Schuldenausgleich",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.EncodeLegacyDescription(tt.tag, tt.note)
			require.Equal(t, tt.want, got)

			tag, note, ok := domain.ParseLegacyDescription(got)
			require.True(t, ok)
			assert.Equal(t, tt.tag, tag)
			assert.Equal(t, tt.note, note)
		})
	}
}
