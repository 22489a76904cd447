package schedule

import (
	"testing"
	"time"

	"flightwatch-service/internal/domain/entity"
)

func TestTargetDay_MajorityVote(t *testing.T) {
	records := []entity.FlightRecord{
		{FlightDate: "02JAN2026", Code: "BA1"},
		{FlightDate: "03JAN2026", Code: "BA2"},
		{FlightDate: "02JAN2026", Code: "BA3"},
		{FlightDate: "02JAN2026", Code: "BA4"},
	}

	day, ok := TargetDay(records)
	if !ok {
		t.Fatal("TargetDay found no day")
	}
	if want := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC); !day.Equal(want) {
		t.Errorf("TargetDay = %v, want %v", day, want)
	}
}

func TestTargetDay_TieBreaksFirstSeen(t *testing.T) {
	records := []entity.FlightRecord{
		{FlightDate: "03JAN2026", Code: "BA1"},
		{FlightDate: "02JAN2026", Code: "BA2"},
		{FlightDate: "03JAN2026", Code: "BA3"},
		{FlightDate: "02JAN2026", Code: "BA4"},
	}

	day, ok := TargetDay(records)
	if !ok {
		t.Fatal("TargetDay found no day")
	}
	if want := time.Date(2026, time.January, 3, 0, 0, 0, 0, time.UTC); !day.Equal(want) {
		t.Errorf("TargetDay = %v, want first-seen %v", day, want)
	}
}

func TestTargetDay_MixedSpellingsCountTogether(t *testing.T) {
	records := []entity.FlightRecord{
		{FlightDate: "02JAN2026"},
		{FlightDate: "2026-01-02"},
		{FlightDate: "03JAN2026"},
	}

	day, ok := TargetDay(records)
	if !ok {
		t.Fatal("TargetDay found no day")
	}
	if want := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC); !day.Equal(want) {
		t.Errorf("TargetDay = %v, want %v (two spellings of one day)", day, want)
	}
}

func TestTargetDay_NoParseableDates(t *testing.T) {
	records := []entity.FlightRecord{
		{FlightDate: "", Code: "BA1"},
		{FlightDate: "garbage", Code: "BA2"},
	}

	if _, ok := TargetDay(records); ok {
		t.Error("TargetDay succeeded with no parseable dates")
	}
}

func TestFilterByDay(t *testing.T) {
	records := []entity.FlightRecord{
		{FlightDate: "02JAN2026", Code: "KEEP1"},
		{FlightDate: "03JAN2026", Code: "STRAY"},
		{FlightDate: "2026-01-02", Code: "KEEP2"},
		{FlightDate: "bogus", Code: "BAD"},
		{FlightDate: "", Code: "EMPTY"},
	}
	day := time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC)

	var report ParseReport
	kept := FilterByDay(records, day, &report)

	if len(kept) != 2 {
		t.Fatalf("kept %d records, want 2", len(kept))
	}
	if kept[0].Code != "KEEP1" || kept[1].Code != "KEEP2" {
		t.Errorf("kept wrong records: %+v", kept)
	}
	// Stray other-day rows are excluded silently; only parse failures are
	// reported.
	if report.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2 (bogus and empty dates)", report.Dropped)
	}
}
