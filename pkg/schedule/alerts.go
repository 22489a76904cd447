package schedule

import (
	"flightwatch-service/internal/domain/entity"
)

// Evaluated pairs one record with its freshly computed status.
type Evaluated struct {
	Record entity.FlightRecord
	Status Status
}

// SelectUrgent returns the flights needing an urgent notification: the
// UrgentNow subset in encounter order, truncated to the first cap entries.
// The second return reports truncation so the caller can warn that more
// exist. No prioritization beyond first-seen-first-alerted.
func SelectUrgent(evaluated []Evaluated, cap int) ([]Evaluated, bool) {
	var urgent []Evaluated
	truncated := false

	for _, e := range evaluated {
		if e.Status.Kind != StatusUrgentNow {
			continue
		}
		if cap > 0 && len(urgent) == cap {
			truncated = true
			break
		}
		urgent = append(urgent, e)
	}
	return urgent, truncated
}
