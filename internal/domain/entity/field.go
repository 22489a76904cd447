package entity

// CanonicalField names one column of the fixed schedule schema. The set is
// static: feeds vary in wording and column order, never in what the
// canonical record can hold.
type CanonicalField string

const (
	FieldFlightDate  CanonicalField = "flightDate"
	FieldVehicleReg  CanonicalField = "vehicleReg"
	FieldCode        CanonicalField = "code"
	FieldDepString   CanonicalField = "depString"
	FieldArrString   CanonicalField = "arrString"
	FieldSTD         CanonicalField = "std"
	FieldSTA         CanonicalField = "sta"
	FieldUpdatedFlag CanonicalField = "updatedFlag"
)

// AllFields returns every canonical field in schema order. The order is
// load-bearing: row keys concatenate field values in this order and gap
// reports list fields in it.
func AllFields() []CanonicalField {
	return []CanonicalField{
		FieldFlightDate,
		FieldVehicleReg,
		FieldCode,
		FieldDepString,
		FieldArrString,
		FieldSTD,
		FieldSTA,
		FieldUpdatedFlag,
	}
}

// HeaderAlias maps one raw header spelling to a canonical field. Matching
// happens on normalized forms, so an alias covers every casing, spacing
// and punctuation variant of its spelling.
type HeaderAlias struct {
	Alias string
	Field CanonicalField
}

// DefaultAliases is the built-in alias seed covering the spellings seen in
// the feeds so far. Every canonical field has at least one alias; operator
// extension rows from the reference table are appended after these, so
// built-ins win on conflict.
func DefaultAliases() []HeaderAlias {
	return []HeaderAlias{
		{Alias: "Date", Field: FieldFlightDate},
		{Alias: "Flight Date", Field: FieldFlightDate},
		{Alias: "Day", Field: FieldFlightDate},

		{Alias: "Registration", Field: FieldVehicleReg},
		{Alias: "Reg", Field: FieldVehicleReg},
		{Alias: "Aircraft", Field: FieldVehicleReg},
		{Alias: "Tail", Field: FieldVehicleReg},

		{Alias: "Flight Code", Field: FieldCode},
		{Alias: "Flight", Field: FieldCode},
		{Alias: "Flight No", Field: FieldCode},
		{Alias: "Flight Number", Field: FieldCode},

		{Alias: "From", Field: FieldDepString},
		{Alias: "Dep", Field: FieldDepString},
		{Alias: "Departure", Field: FieldDepString},
		{Alias: "Origin", Field: FieldDepString},

		{Alias: "To", Field: FieldArrString},
		{Alias: "Arr", Field: FieldArrString},
		{Alias: "Arrival", Field: FieldArrString},
		{Alias: "Destination", Field: FieldArrString},

		{Alias: "STD", Field: FieldSTD},
		{Alias: "Dep Time", Field: FieldSTD},
		{Alias: "Departure Time", Field: FieldSTD},

		{Alias: "STA", Field: FieldSTA},
		{Alias: "Arr Time", Field: FieldSTA},
		{Alias: "Arrival Time", Field: FieldSTA},

		{Alias: "Updated", Field: FieldUpdatedFlag},
		{Alias: "Updated?", Field: FieldUpdatedFlag},
		{Alias: "Update Done", Field: FieldUpdatedFlag},
	}
}
