package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
)

// SnapshotRepository is the key-value snapshot store, one key per schedule
// day. Get returns the active (non-retired) snapshot for a day or nil when
// none exists. Put appends a new snapshot; Retire stamps the previously
// active one - Put then Retire is the import pipeline's ordering, so a
// failed import never touches the stored snapshot.
type SnapshotRepository interface {
	Get(ctx context.Context, day string) (*entity.Snapshot, error)
	Put(ctx context.Context, snapshot *entity.Snapshot) error
	Retire(ctx context.Context, day string, retiredAt time.Time) error
	ActiveDays(ctx context.Context) ([]string, error)

	// UpdateStatuses writes the freshly computed display statuses onto the
	// active snapshot of a day, parallel to its records. Display only; a
	// later pass overwrites them wholesale.
	UpdateStatuses(ctx context.Context, day string, statuses []string, at time.Time) error
}
