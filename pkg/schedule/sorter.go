package schedule

import (
	"sort"

	"flightwatch-service/internal/domain/entity"
)

// SortByCode returns the records ordered by flight code, ascending,
// lexicographic on the raw string. The sort is stable so equal codes keep
// their original relative order - two independently fetched snapshots of
// the same day then line up positionally and the displayed sheet stays
// human-scannable. The input slice is not modified.
func SortByCode(records []entity.FlightRecord) []entity.FlightRecord {
	sorted := make([]entity.FlightRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Code < sorted[j].Code
	})
	return sorted
}
