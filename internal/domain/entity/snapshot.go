package entity

import (
	"time"
)

// Change classifications attached to snapshot rows after a diff.
const (
	ChangeNew       = "NEW"
	ChangeModified  = "MODIFIED"
	ChangeUnchanged = "UNCHANGED"
)

// Snapshot is one schedule day's full set of flight records at one point in
// time. A revised snapshot for the same day retires the previous one -
// retired snapshots are kept with their retirement timestamp, never deleted.
type Snapshot struct {
	ID          string         `bson:"_id,omitempty"`
	Day         string         `bson:"day"` // canonical 2006-01-02 form
	Revision    int            `bson:"revision"`
	Records     []FlightRecord `bson:"records"`
	ChangeMarks []string       `bson:"changeMarks,omitempty"` // parallel to Records
	SourceFeed  string         `bson:"sourceFeed,omitempty"`
	ImportedAt  time.Time      `bson:"importedAt"`
	RetiredAt   *time.Time     `bson:"retiredAt,omitempty"`

	// Display values only, parallel to Records. Overwritten on every
	// status pass; never read back as the source of truth.
	DisplayStatuses []string   `bson:"displayStatuses,omitempty"`
	StatusesAt      *time.Time `bson:"statusesAt,omitempty"`
}
