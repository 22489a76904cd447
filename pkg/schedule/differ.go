package schedule

import (
	"flightwatch-service/internal/domain/entity"
)

// DiffResult classifies every row of the new snapshot and counts the rows
// present only in the previous one. Classes is parallel to the new
// snapshot's records; New+Modified+Unchanged always equals its length.
type DiffResult struct {
	Classes   []string
	New       int
	Modified  int
	Unchanged int
	Removed   int
}

// DiffSnapshots compares two snapshots of the same schedule day, both
// already date-filtered and sorted. Identity is the full-content RowKey;
// a new row whose key is unknown falls back to Code matching only to
// distinguish Modified (same logical flight, different content) from New.
// Duplicate codes within one snapshot are legal - exact RowKey matching is
// what keeps multi-leg codes from being misclassified; the Code fallback
// never asserts equality.
func DiffSnapshots(previous, current []entity.FlightRecord) DiffResult {
	result := DiffResult{Classes: make([]string, len(current))}

	prevKeys := make(map[string]int, len(previous))
	prevCodes := make(map[string]int, len(previous))
	for _, rec := range previous {
		prevKeys[rec.RowKey()]++
		prevCodes[rec.Code]++
	}

	curKeys := make(map[string]int, len(current))
	curCodes := make(map[string]int, len(current))
	for _, rec := range current {
		curKeys[rec.RowKey()]++
		curCodes[rec.Code]++
	}

	for i, rec := range current {
		switch {
		case prevKeys[rec.RowKey()] > 0:
			result.Classes[i] = entity.ChangeUnchanged
			result.Unchanged++
		case prevCodes[rec.Code] > 0:
			result.Classes[i] = entity.ChangeModified
			result.Modified++
		default:
			result.Classes[i] = entity.ChangeNew
			result.New++
		}
	}

	// A previous row counts as removed only when both its exact content and
	// its code have vanished; a surviving code is already captured as
	// Modified on the new side.
	for _, rec := range previous {
		if curKeys[rec.RowKey()] == 0 && curCodes[rec.Code] == 0 {
			result.Removed++
		}
	}

	return result
}
