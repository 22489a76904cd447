package entity

import "testing"

func TestAllFields_SchemaOrder(t *testing.T) {
	fields := AllFields()

	want := []CanonicalField{
		FieldFlightDate,
		FieldVehicleReg,
		FieldCode,
		FieldDepString,
		FieldArrString,
		FieldSTD,
		FieldSTA,
		FieldUpdatedFlag,
	}
	if len(fields) != len(want) {
		t.Fatalf("AllFields() has %d fields, want %d", len(fields), len(want))
	}
	for i, f := range want {
		if fields[i] != f {
			t.Errorf("AllFields()[%d] = %s, want %s", i, fields[i], f)
		}
	}
}

func TestDefaultAliases_CoverEveryField(t *testing.T) {
	// A field with no alias can never resolve, which degrades it to empty
	// values for every feed. The built-in seed must cover the whole schema.
	covered := make(map[CanonicalField]bool)
	for _, a := range DefaultAliases() {
		if a.Alias == "" {
			t.Errorf("alias for %s is empty", a.Field)
		}
		covered[a.Field] = true
	}

	for _, f := range AllFields() {
		if !covered[f] {
			t.Errorf("field %s has no built-in alias", f)
		}
	}
}
