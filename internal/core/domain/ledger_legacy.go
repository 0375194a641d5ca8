package domain

import "strings"

// The legacy frontend stored ledger metadata as literal substrings inside the
// free-text description. These markers are the de facto wire format for all
// previously stored data and must be reproduced byte for byte.
const (
	LegacyPrefixH        = "H+ "
	LegacyPrefixM        = "M+ "
	LegacyDebtHOwesM     = "(H schuldet M)"
	LegacyDebtMOwesH     = "(M schuldet H)"
	LegacySettlementMark = "Schuldenausgleich"
)

// ParseLegacyDescription decodes the legacy description convention into a
// typed tag and the remaining free-text note. The third return value is false
// when the description carries no H+/M+ payer prefix, i.e. the record is not
// ledger-relevant.
//
// Classification is best effort, never an error: the settlement marker wins
// over debt substrings, and a description carrying both debt substrings is
// ambiguous and falls back to a shared 50/50 cost.
func ParseLegacyDescription(description string) (LedgerTag, string, bool) {
	var tag LedgerTag
	var rest string
	switch {
	case strings.HasPrefix(description, LegacyPrefixH):
		tag.Payer = PartyH
		rest = description[len(LegacyPrefixH):]
	case strings.HasPrefix(description, LegacyPrefixM):
		tag.Payer = PartyM
		rest = description[len(LegacyPrefixM):]
	default:
		return LedgerTag{}, description, false
	}

	hasHOwesM := strings.Contains(rest, LegacyDebtHOwesM)
	hasMOwesH := strings.Contains(rest, LegacyDebtMOwesH)

	switch {
	case strings.Contains(rest, LegacySettlementMark):
		tag.Relation = RelationSettlement
		rest = strings.Replace(rest, LegacySettlementMark, "", 1)
	case hasHOwesM && hasMOwesH:
		tag.Relation = RelationShared
	case hasHOwesM:
		tag.Relation = RelationDebtHOwesM
		rest = strings.Replace(rest, LegacyDebtHOwesM, "", 1)
	case hasMOwesH:
		tag.Relation = RelationDebtMOwesH
		rest = strings.Replace(rest, LegacyDebtMOwesH, "", 1)
	default:
		tag.Relation = RelationShared
	}

	return tag, strings.TrimSpace(rest), true
}

// EncodeLegacyDescription renders a tag and note back into the exact legacy
// string form, so stored data stays readable by the original clients.
func EncodeLegacyDescription(tag LedgerTag, note string) string {
	var b strings.Builder
	if tag.Payer == PartyM {
		b.WriteString(LegacyPrefixM)
	} else {
		b.WriteString(LegacyPrefixH)
	}

	switch tag.Relation {
	case RelationSettlement:
		b.WriteString(LegacySettlementMark)
		if note != "" {
			b.WriteString(" ")
			b.WriteString(note)
		}
	case RelationDebtHOwesM:
		b.WriteString(strings.TrimSpace(note))
		if note != "" {
			b.WriteString(" ")
		}
		b.WriteString(LegacyDebtHOwesM)
	case RelationDebtMOwesH:
		b.WriteString(strings.TrimSpace(note))
		if note != "" {
			b.WriteString(" ")
		}
		b.WriteString(LegacyDebtMOwesH)
	default:
		b.WriteString(note)
	}
	return b.String()
}
