package usecase

import (
	"context"
	"errors"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"
)

// Shared across the package's tests: promauto registers against the global
// registry, so the metric set must be built exactly once per test binary.
var testMetrics = metrics.NewMetrics("flightwatch_test")

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Warn(string, ...interface{})         {}
func (nopLogger) Error(string, ...interface{})        {}
func (nopLogger) Fatal(string, ...interface{})        {}
func (l nopLogger) With(...interface{}) logger.Logger { return l }

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fakeSnapshotRepo struct {
	active   map[string]*entity.Snapshot
	puts     []*entity.Snapshot
	retired  map[string]time.Time
	statuses map[string][]string
	putErr   error
}

func newFakeSnapshotRepo() *fakeSnapshotRepo {
	return &fakeSnapshotRepo{
		active:   make(map[string]*entity.Snapshot),
		retired:  make(map[string]time.Time),
		statuses: make(map[string][]string),
	}
}

func (r *fakeSnapshotRepo) Get(ctx context.Context, day string) (*entity.Snapshot, error) {
	return r.active[day], nil
}

func (r *fakeSnapshotRepo) Put(ctx context.Context, snapshot *entity.Snapshot) error {
	if r.putErr != nil {
		return r.putErr
	}
	r.puts = append(r.puts, snapshot)
	r.active[snapshot.Day] = snapshot
	return nil
}

func (r *fakeSnapshotRepo) Retire(ctx context.Context, day string, retiredAt time.Time) error {
	r.retired[day] = retiredAt
	return nil
}

func (r *fakeSnapshotRepo) UpdateStatuses(ctx context.Context, day string, statuses []string, at time.Time) error {
	r.statuses[day] = statuses
	return nil
}

func (r *fakeSnapshotRepo) ActiveDays(ctx context.Context) ([]string, error) {
	days := make([]string, 0, len(r.active))
	for day := range r.active {
		days = append(days, day)
	}
	return days, nil
}

type fakeFeedRepo struct {
	pending []*entity.Feed
	marks   map[string]string
	summary map[string]map[string]interface{}
}

func newFakeFeedRepo() *fakeFeedRepo {
	return &fakeFeedRepo{
		marks:   make(map[string]string),
		summary: make(map[string]map[string]interface{}),
	}
}

func (r *fakeFeedRepo) Save(ctx context.Context, feed *entity.Feed) error {
	r.pending = append(r.pending, feed)
	return nil
}

func (r *fakeFeedRepo) FindByFeedIDs(ctx context.Context, feedIDs []string) (map[string]*entity.Feed, error) {
	return map[string]*entity.Feed{}, nil
}

func (r *fakeFeedRepo) FindPending(ctx context.Context, limit int) ([]*entity.Feed, error) {
	return r.pending, nil
}

func (r *fakeFeedRepo) GetLastFeed(ctx context.Context) (*entity.Feed, error) {
	return nil, nil
}

func (r *fakeFeedRepo) UpdateStatus(ctx context.Context, feedID string, status string, startedAt time.Time) error {
	r.marks[feedID] = status
	return nil
}

func (r *fakeFeedRepo) MarkProcessed(ctx context.Context, feedID string, status string, errorDetail string, summary map[string]interface{}) error {
	r.marks[feedID] = status
	r.summary[feedID] = summary
	return nil
}

type fakeAliasRepo struct {
	aliases []entity.HeaderAlias
	err     error
}

func (r *fakeAliasRepo) List(ctx context.Context) ([]entity.HeaderAlias, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.aliases, nil
}

type fakeNotifier struct {
	sent    []*entity.AlertPayload
	sendErr error
}

func (n *fakeNotifier) SendAlert(ctx context.Context, payload *entity.AlertPayload) (string, error) {
	if n.sendErr != nil {
		return "", n.sendErr
	}
	n.sent = append(n.sent, payload)
	return "task-1", nil
}

var errStorage = errors.New("storage unavailable")
