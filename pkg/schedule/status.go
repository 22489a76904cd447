package schedule

import (
	"fmt"
	"time"
)

// StatusKind enumerates the derived per-flight alert states.
type StatusKind string

const (
	StatusSatisfied     StatusKind = "SATISFIED"
	StatusTooFar        StatusKind = "TOO_FAR"
	StatusUrgentNow     StatusKind = "URGENT_NOW"
	StatusActionDue     StatusKind = "ACTION_DUE"
	StatusActionPending StatusKind = "ACTION_PENDING"
	StatusError         StatusKind = "ERROR"
)

// Status is a derived display value, recomputed on every evaluation from
// the record and the clock - never persisted as authoritative truth.
type Status struct {
	Kind           StatusKind
	HoursUntil     float64
	RemainingHours float64 // ActionPending only
	Reason         string  // Error only
}

// String renders the status the way it is written to the sheet and alert
// text. Remaining hours show one decimal place.
func (s Status) String() string {
	switch s.Kind {
	case StatusSatisfied:
		return "OK"
	case StatusTooFar:
		return "Not yet"
	case StatusUrgentNow:
		return "URGENT - departs soon"
	case StatusActionDue:
		return "UPDATE DUE"
	case StatusActionPending:
		return fmt.Sprintf("Update in %.1fh", s.RemainingHours)
	case StatusError:
		return "ERROR: " + s.Reason
	}
	return string(s.Kind)
}

// Urgent window: a flight departing within this many hours needs immediate
// attention. The boundary is exclusive - exactly 3.0 hours out is not
// urgent yet.
const urgentWindowHours = 3.0

// Departure-time bands and their update deadlines. Domain policy constants,
// not derived values - shifting any of them shifts real alerting behavior.
// The two night bands (19:10-24:00 and 00:00-01:10) share one deadline
// because both represent departures whose update deadline falls the
// previous afternoon.
const (
	bandEarlyStart   = 1 + 10.0/60  // 01:10
	bandMorningStart = 7 + 10.0/60  // 07:10
	bandAfternoon    = 13 + 10.0/60 // 13:10
	bandEvening      = 19 + 10.0/60 // 19:10

	deadlineLateNight = 22 + 5.0/60 // 22:05
	deadlineEarly     = 4 + 5.0/60  // 04:05
	deadlineMorning   = 10 + 5.0/60 // 10:05
	deadlineAfternoon = 16 + 5.0/60 // 16:05
)

type deadlineBand struct {
	start, end float64
	deadline   float64
}

// Evaluated top to bottom; bands are non-overlapping and boundary-exact,
// so each boundary value is independently testable and future band edits
// are a data change.
var deadlineBands = []deadlineBand{
	{bandEarlyStart, bandMorningStart, deadlineLateNight},
	{bandMorningStart, bandAfternoon, deadlineEarly},
	{bandAfternoon, bandEvening, deadlineMorning},
	{bandEvening, 24, deadlineAfternoon},
	{0, bandEarlyStart, deadlineAfternoon},
}

func deadlineFor(stdHours float64) float64 {
	for _, b := range deadlineBands {
		if stdHours >= b.start && stdHours < b.end {
			return b.deadline
		}
	}
	// Unreachable: the bands cover [0, 24).
	return deadlineAfternoon
}

// EvaluateStatus computes the current alert status of one flight from its
// raw date and STD values, the manual completion flag, and the wall-clock
// now. Pure; all inputs are read in the same UTC reference frame. Parse
// failures surface as an Error status with the failure description - a
// malformed feed is flagged, never masked as Satisfied or TooFar.
func EvaluateStatus(flightDate, std string, updated bool, now time.Time) Status {
	if updated || flightDate == "" || std == "" {
		return Status{Kind: StatusSatisfied}
	}

	day, err := ParseFlightDate(flightDate)
	if err != nil {
		return Status{Kind: StatusError, Reason: err.Error()}
	}
	stdHours, err := ParseHoursOfDay(std)
	if err != nil {
		return Status{Kind: StatusError, Reason: err.Error()}
	}

	nowHours := HoursOfClock(now)
	daysDiff := int(day.Sub(Midnight(now)).Hours() / 24)

	// daysDiff and the hour delta combine additively, so the window spans
	// midnight without wrapping at 24.
	hoursUntil := float64(daysDiff)*24 + (stdHours - nowHours)

	if hoursUntil >= 0 && hoursUntil < urgentWindowHours {
		return Status{Kind: StatusUrgentNow, HoursUntil: hoursUntil}
	}
	if hoursUntil > 24 || daysDiff > 0 {
		return Status{Kind: StatusTooFar, HoursUntil: hoursUntil}
	}

	deadline := deadlineFor(stdHours)
	if nowHours >= deadline {
		return Status{Kind: StatusActionDue, HoursUntil: hoursUntil}
	}
	return Status{
		Kind:           StatusActionPending,
		HoursUntil:     hoursUntil,
		RemainingHours: deadline - nowHours,
	}
}
