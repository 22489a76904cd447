package repository

import "time"

// Clock supplies the wall-clock "now" in the fixed reference timezone (UTC).
// The status and diff logic assume this single convention; feeding local
// times in would silently corrupt the hour arithmetic.
type Clock interface {
	Now() time.Time
}

// UTCClock is the production clock.
type UTCClock struct{}

func (UTCClock) Now() time.Time {
	return time.Now().UTC()
}
