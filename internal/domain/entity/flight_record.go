package entity

import (
	"strings"
)

// rowKeySep keeps adjacent field values from running into each other when
// building the composite key ("AB"+"C" must not collide with "A"+"BC").
const rowKeySep = "\x1f"

// FlightRecord is one scheduled flight leg in canonical form. All values are
// trimmed strings exactly as they appeared in the feed; date/time parsing is
// deferred to the consumers that need comparable values. Records are
// immutable once parsed - a later feed supersedes them, never mutates them.
type FlightRecord struct {
	FlightDate string `bson:"flightDate"`
	VehicleReg string `bson:"vehicleReg"`
	Code       string `bson:"code"`
	DepString  string `bson:"depString"`
	ArrString  string `bson:"arrString"`
	STD        string `bson:"std"`
	STA        string `bson:"sta"`
	Updated    bool   `bson:"updated"`
}

// Field returns the record's value for one canonical field in trimmed
// string form. UpdatedFlag normalizes to "Y"/"" so the composite key is
// insensitive to how the source spelled the flag.
func (r FlightRecord) Field(f CanonicalField) string {
	switch f {
	case FieldFlightDate:
		return r.FlightDate
	case FieldVehicleReg:
		return r.VehicleReg
	case FieldCode:
		return r.Code
	case FieldDepString:
		return r.DepString
	case FieldArrString:
		return r.ArrString
	case FieldSTD:
		return r.STD
	case FieldSTA:
		return r.STA
	case FieldUpdatedFlag:
		if r.Updated {
			return "Y"
		}
		return ""
	}
	return ""
}

// RowKey is the composite identity used for exact-match diffing: every
// canonical field value concatenated in schema order. Two records share a
// RowKey iff every field matches value for value.
func (r FlightRecord) RowKey() string {
	fields := AllFields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, r.Field(f))
	}
	return strings.Join(parts, rowKeySep)
}

// IsUpdatedFlag reports whether a raw cell value counts as the manual
// "already handled" override. Only a case-insensitive "Y" qualifies.
func IsUpdatedFlag(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "Y")
}
