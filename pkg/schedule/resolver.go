package schedule

import (
	"strings"

	"flightwatch-service/internal/domain/entity"
)

// Unresolved marks a canonical field with no matching source column.
const Unresolved = -1

// ColumnMapping holds, for one feed, the source column index of every
// canonical field. It is computed once per feed and reused for every row;
// header wording and order vary feed to feed, so mappings are never cached
// across feeds.
type ColumnMapping map[entity.CanonicalField]int

// Index returns the source column for a field, or Unresolved.
func (m ColumnMapping) Index(f entity.CanonicalField) int {
	if idx, ok := m[f]; ok {
		return idx
	}
	return Unresolved
}

// Gaps lists the canonical fields left unresolved, in schema order. A gap
// degrades that field to empty values for the whole feed; it is surfaced to
// the operator, not treated as fatal.
func (m ColumnMapping) Gaps() []entity.CanonicalField {
	var gaps []entity.CanonicalField
	for _, f := range entity.AllFields() {
		if m.Index(f) == Unresolved {
			gaps = append(gaps, f)
		}
	}
	return gaps
}

// normalizeHeader lower-cases and strips everything non-alphanumeric so
// "Flight  Code", "flight_code" and "FlightCode" compare equal.
func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResolveColumns maps raw feed headers onto the canonical field set using
// the given alias list. Matching is exact on the normalized forms - no
// substring matching, so a header like "Aircraft" can never leak into a
// different field whose alias happens to contain it. First matching header
// index wins per field. Pure: no state survives between calls.
func ResolveColumns(headers []string, aliases []entity.HeaderAlias) ColumnMapping {
	normHeaders := make([]string, len(headers))
	for i, h := range headers {
		normHeaders[i] = normalizeHeader(h)
	}

	mapping := make(ColumnMapping, len(entity.AllFields()))
	for _, field := range entity.AllFields() {
		idx := Unresolved
	scan:
		for i, nh := range normHeaders {
			if nh == "" {
				continue
			}
			for _, alias := range aliases {
				if alias.Field != field {
					continue
				}
				if normalizeHeader(alias.Alias) == nh {
					idx = i
					break scan
				}
			}
		}
		if idx != Unresolved {
			mapping[field] = idx
		}
	}
	return mapping
}
