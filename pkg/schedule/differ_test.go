package schedule

import (
	"testing"

	"flightwatch-service/internal/domain/entity"
)

func rec(code, std string) entity.FlightRecord {
	return entity.FlightRecord{FlightDate: "02JAN2026", Code: code, STD: std}
}

func TestDiffSnapshots_TimeChangeIsModified(t *testing.T) {
	previous := []entity.FlightRecord{rec("BA123", "10:00")}
	current := []entity.FlightRecord{rec("BA123", "11:00")}

	result := DiffSnapshots(previous, current)

	if result.Modified != 1 || result.New != 0 || result.Unchanged != 0 || result.Removed != 0 {
		t.Errorf("result = %+v, want exactly one Modified", result)
	}
	if result.Classes[0] != entity.ChangeModified {
		t.Errorf("Classes[0] = %q, want MODIFIED", result.Classes[0])
	}
}

func TestDiffSnapshots_Classification(t *testing.T) {
	previous := []entity.FlightRecord{
		rec("BA100", "08:00"), // survives untouched
		rec("BA200", "10:00"), // time changes
		rec("BA300", "12:00"), // disappears entirely
	}
	current := []entity.FlightRecord{
		rec("BA100", "08:00"),
		rec("BA200", "10:30"),
		rec("BA400", "14:00"), // brand new code
	}

	result := DiffSnapshots(previous, current)

	if result.Unchanged != 1 || result.Modified != 1 || result.New != 1 {
		t.Errorf("result = %+v", result)
	}
	if result.Removed != 1 {
		t.Errorf("Removed = %d, want 1 (BA300 only; BA200 is captured as Modified)", result.Removed)
	}
}

func TestDiffSnapshots_Complete(t *testing.T) {
	// Every new-snapshot row is classified exactly once.
	previous := []entity.FlightRecord{
		rec("BA100", "08:00"),
		rec("BA200", "10:00"),
	}
	current := []entity.FlightRecord{
		rec("BA100", "08:00"),
		rec("BA200", "10:30"),
		rec("BA300", "12:00"),
		rec("BA400", "14:00"),
	}

	result := DiffSnapshots(previous, current)

	if len(result.Classes) != len(current) {
		t.Fatalf("len(Classes) = %d, want %d", len(result.Classes), len(current))
	}
	for i, class := range result.Classes {
		if class == "" {
			t.Errorf("Classes[%d] unclassified", i)
		}
	}
	if total := result.New + result.Modified + result.Unchanged; total != len(current) {
		t.Errorf("New+Modified+Unchanged = %d, want %d", total, len(current))
	}
}

func TestDiffSnapshots_DuplicateCodes(t *testing.T) {
	// Two legs sharing one code are legal; RowKey matching keeps them
	// straight.
	previous := []entity.FlightRecord{
		rec("BA123", "08:00"),
		rec("BA123", "16:00"),
	}
	current := []entity.FlightRecord{
		rec("BA123", "08:00"),
		rec("BA123", "16:30"),
	}

	result := DiffSnapshots(previous, current)

	if result.Unchanged != 1 || result.Modified != 1 {
		t.Errorf("result = %+v, want one Unchanged and one Modified", result)
	}
	if result.Removed != 0 {
		t.Errorf("Removed = %d, want 0 (code still present)", result.Removed)
	}
}

func TestDiffSnapshots_NoPreviousSnapshot(t *testing.T) {
	current := []entity.FlightRecord{
		rec("BA100", "08:00"),
		rec("BA200", "10:00"),
	}

	result := DiffSnapshots(nil, current)

	if result.New != len(current) {
		t.Errorf("New = %d, want %d for a first import", result.New, len(current))
	}
	if result.Removed != 0 {
		t.Errorf("Removed = %d, want 0", result.Removed)
	}
}
