package schedule

import (
	"time"

	"flightwatch-service/internal/domain/entity"
)

// TargetDay picks the schedule day a feed predominantly represents: the
// most frequent parseable FlightDate across the batch, ties broken by
// first-seen order. A feed is assumed to carry one day's schedule with the
// occasional stray next/previous-day row to be excluded, not imported.
// Returns false when no record carries a parseable date.
func TargetDay(records []entity.FlightRecord) (time.Time, bool) {
	counts := make(map[time.Time]int)
	var order []time.Time

	for _, rec := range records {
		day, err := ParseFlightDate(rec.FlightDate)
		if err != nil {
			continue
		}
		if _, seen := counts[day]; !seen {
			order = append(order, day)
		}
		counts[day]++
	}

	if len(order) == 0 {
		return time.Time{}, false
	}

	best := order[0]
	for _, day := range order[1:] {
		if counts[day] > counts[best] {
			best = day
		}
	}
	return best, true
}

// FilterByDay narrows a batch to the records whose normalized FlightDate
// equals the target day. Records whose date is empty or fails to parse are
// excluded with a reason - never defaulted to "matches".
func FilterByDay(records []entity.FlightRecord, day time.Time, report *ParseReport) []entity.FlightRecord {
	target := Midnight(day)
	var kept []entity.FlightRecord

	for _, rec := range records {
		d, err := ParseFlightDate(rec.FlightDate)
		if err != nil {
			if report != nil {
				report.drop("unparseable flight date: " + rec.FlightDate)
			}
			continue
		}
		if d.Equal(target) {
			kept = append(kept, rec)
		}
	}
	return kept
}
