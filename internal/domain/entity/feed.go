package entity

import (
	"time"
)

// Feed Process Status
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
	StatusSkipped    = "SKIPPED"
)

// Feed is one raw tabular schedule batch as pulled from the mailbox. The
// first source row is split off into Headers; Rows holds the data rows
// untouched so the import pipeline can be re-run against the stored feed.
type Feed struct {
	FeedID        string                 `bson:"feedId"`
	From          string                 `bson:"from"`
	Subject       string                 `bson:"subject"`
	ReceivedAt    time.Time              `bson:"receivedAt"`
	SourceKind    string                 `bson:"sourceKind"` // attachment | body
	Headers       []string               `bson:"headers"`
	Rows          [][]string             `bson:"rows"`
	ProcessStatus string                 `bson:"processStatus"`
	ProcessedAt   time.Time              `bson:"processedAt,omitempty"`
	ErrorDetail   string                 `bson:"errorDetail,omitempty"`
	Summary       map[string]interface{} `bson:"summary,omitempty"`
}
