package usecase

import (
	"context"
	"testing"
	"time"

	"flightwatch-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFeed(id string, headers []string, rows [][]string) *entity.Feed {
	return &entity.Feed{
		FeedID:        id,
		Subject:       "Flight Schedule 02JAN2026",
		ReceivedAt:    time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC),
		Headers:       headers,
		Rows:          rows,
		ProcessStatus: entity.StatusPending,
	}
}

func standardHeaders() []string {
	return []string{"Date", "Registration", "Flight Code", "From", "To", "Dep Time", "Arr Time", "Updated"}
}

func newTestImportProcessor(feeds *fakeFeedRepo, snaps *fakeSnapshotRepo, notifier *fakeNotifier) *ImportProcessor {
	return NewImportProcessor(
		feeds,
		snaps,
		&fakeAliasRepo{},
		notifier,
		fixedClock{now: time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)},
		testMetrics,
		nopLogger{},
		"ops-channel",
	)
}

func TestImportFeed_FirstImport(t *testing.T) {
	feeds := newFakeFeedRepo()
	snaps := newFakeSnapshotRepo()
	notifier := &fakeNotifier{}
	p := newTestImportProcessor(feeds, snaps, notifier)

	feed := testFeed("feed-1", standardHeaders(), [][]string{
		{"02JAN2026", "G-ABCD", "BA900", "LHR", "JFK", "10:00", "13:05", ""},
		{"02JAN2026", "G-EFGH", "BA123", "LHR", "CDG", "08:00", "10:05", ""},
	})

	summary, err := p.ImportFeed(context.Background(), feed)
	require.NoError(t, err)

	require.Len(t, snaps.puts, 1)
	snapshot := snapshotOrFail(t, snaps, "2026-01-02")
	assert.Equal(t, 1, snapshot.Revision)
	require.Len(t, snapshot.Records, 2)
	// Sorted by code, not arrival order.
	assert.Equal(t, "BA123", snapshot.Records[0].Code)
	assert.Equal(t, "BA900", snapshot.Records[1].Code)

	assert.Equal(t, 2, summary["new"])
	assert.Equal(t, 0, summary["removed"])
	assert.Empty(t, snaps.retired, "nothing to retire on a first import")
	assert.Empty(t, notifier.sent, "no change summary without a previous snapshot")
}

func TestImportFeed_RevisionDiffAndRetire(t *testing.T) {
	feeds := newFakeFeedRepo()
	snaps := newFakeSnapshotRepo()
	notifier := &fakeNotifier{}
	p := newTestImportProcessor(feeds, snaps, notifier)

	snaps.active["2026-01-02"] = &entity.Snapshot{
		Day:      "2026-01-02",
		Revision: 1,
		Records: []entity.FlightRecord{
			{FlightDate: "02JAN2026", VehicleReg: "G-EFGH", Code: "BA123", DepString: "LHR", ArrString: "CDG", STD: "10:00", STA: "12:05"},
		},
	}

	feed := testFeed("feed-2", standardHeaders(), [][]string{
		{"02JAN2026", "G-EFGH", "BA123", "LHR", "CDG", "11:00", "13:05", ""},
	})

	summary, err := p.ImportFeed(context.Background(), feed)
	require.NoError(t, err)

	assert.Equal(t, 1, summary["modified"])
	assert.Equal(t, 0, summary["new"])
	assert.Equal(t, 0, summary["removed"])

	stored := snaps.puts[len(snaps.puts)-1]
	assert.Equal(t, 2, stored.Revision)
	assert.Equal(t, []string{entity.ChangeModified}, stored.ChangeMarks)

	_, retired := snaps.retired["2026-01-02"]
	assert.True(t, retired, "previous snapshot must be retired after the new one lands")

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, entity.ChangeSummary, notifier.sent[0].Type)
}

func TestImportFeed_ResolutionGapsSurfaced(t *testing.T) {
	feeds := newFakeFeedRepo()
	snaps := newFakeSnapshotRepo()
	p := newTestImportProcessor(feeds, snaps, &fakeNotifier{})

	// No STD/STA/Updated columns at all.
	feed := testFeed("feed-3",
		[]string{"Date", "Flight Code"},
		[][]string{{"02JAN2026", "BA123"}},
	)

	summary, err := p.ImportFeed(context.Background(), feed)
	require.NoError(t, err)

	gaps, ok := summary["resolutionGaps"].([]string)
	require.True(t, ok, "summary missing resolutionGaps")
	assert.Contains(t, gaps, "std")
	assert.Contains(t, gaps, "updatedFlag")

	// Degraded, not fatal: the snapshot still lands.
	require.Len(t, snaps.puts, 1)
	assert.Equal(t, "", snaps.puts[0].Records[0].STD)
}

func TestImportFeed_EmptyAfterFiltering(t *testing.T) {
	feeds := newFakeFeedRepo()
	snaps := newFakeSnapshotRepo()
	p := newTestImportProcessor(feeds, snaps, &fakeNotifier{})

	feed := testFeed("feed-4", standardHeaders(), [][]string{
		{"notadate", "", "BA123", "", "", "", "", ""},
		{"", "", "", "", "", "", "", ""},
	})

	summary, err := p.ImportFeed(context.Background(), feed)
	require.NoError(t, err)

	assert.Equal(t, true, summary["emptyResult"])
	assert.Empty(t, snaps.puts, "empty result must not write a snapshot")
}

func TestImportFeed_StorageFailureLeavesPreviousActive(t *testing.T) {
	feeds := newFakeFeedRepo()
	snaps := newFakeSnapshotRepo()
	snaps.putErr = errStorage
	previous := &entity.Snapshot{
		Day:      "2026-01-02",
		Revision: 1,
		Records:  []entity.FlightRecord{{FlightDate: "02JAN2026", Code: "BA123", STD: "10:00"}},
	}
	snaps.active["2026-01-02"] = previous

	p := newTestImportProcessor(feeds, snaps, &fakeNotifier{})
	feed := testFeed("feed-5", standardHeaders(), [][]string{
		{"02JAN2026", "G-EFGH", "BA123", "LHR", "CDG", "11:00", "13:05", ""},
	})

	_, err := p.ImportFeed(context.Background(), feed)
	require.Error(t, err)

	assert.Empty(t, snaps.retired, "failed import must not retire the previous snapshot")
	assert.Same(t, previous, snaps.active["2026-01-02"])
}

func TestProcessFeed_MarksTerminalState(t *testing.T) {
	feeds := newFakeFeedRepo()
	snaps := newFakeSnapshotRepo()
	p := newTestImportProcessor(feeds, snaps, &fakeNotifier{})

	feed := testFeed("feed-6", standardHeaders(), [][]string{
		{"02JAN2026", "G-ABCD", "BA900", "LHR", "JFK", "10:00", "13:05", ""},
	})

	require.NoError(t, p.ProcessFeed(context.Background(), feed))
	assert.Equal(t, entity.StatusCompleted, feeds.marks["feed-6"])
	assert.NotNil(t, feeds.summary["feed-6"])

	snaps.putErr = errStorage
	bad := testFeed("feed-7", standardHeaders(), [][]string{
		{"02JAN2026", "G-ABCD", "BA901", "LHR", "JFK", "10:00", "13:05", ""},
	})
	require.NoError(t, p.ProcessFeed(context.Background(), bad))
	assert.Equal(t, entity.StatusFailed, feeds.marks["feed-7"])
}

func snapshotOrFail(t *testing.T, snaps *fakeSnapshotRepo, day string) *entity.Snapshot {
	t.Helper()
	snapshot := snaps.active[day]
	if snapshot == nil {
		t.Fatalf("no active snapshot for %s", day)
	}
	return snapshot
}
