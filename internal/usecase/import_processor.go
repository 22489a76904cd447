package usecase

import (
	"context"
	"fmt"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"
	"flightwatch-service/pkg/schedule"
	"flightwatch-service/templates"

	"github.com/google/uuid"
)

// ImportProcessor runs the feed import pipeline: resolve columns, parse
// records, narrow to the feed's schedule day, sort, diff against the stored
// snapshot and persist the result. One feed is processed to completion at a
// time; a failure marks that feed FAILED and leaves the stored snapshot
// untouched.
type ImportProcessor struct {
	feedRepo     repository.FeedRepository
	snapshotRepo repository.SnapshotRepository
	aliasRepo    repository.AliasRepository
	notifier     repository.NotifierRepository
	clock        repository.Clock
	metrics      *metrics.Metrics
	logger       logger.Logger
	destination  string
}

// NewImportProcessor creates a new import processor
func NewImportProcessor(
	feedRepo repository.FeedRepository,
	snapshotRepo repository.SnapshotRepository,
	aliasRepo repository.AliasRepository,
	notifier repository.NotifierRepository,
	clock repository.Clock,
	m *metrics.Metrics,
	logger logger.Logger,
	destination string,
) *ImportProcessor {
	return &ImportProcessor{
		feedRepo:     feedRepo,
		snapshotRepo: snapshotRepo,
		aliasRepo:    aliasRepo,
		notifier:     notifier,
		clock:        clock,
		metrics:      m,
		logger:       logger,
		destination:  destination,
	}
}

// ProcessFeed imports one feed and records the terminal state on the feed
// document. Import failures are recorded, not returned - one bad feed must
// not stall the rest of the batch.
func (p *ImportProcessor) ProcessFeed(ctx context.Context, feed *entity.Feed) error {
	summary, err := p.ImportFeed(ctx, feed)
	status := entity.StatusCompleted
	errorDetail := ""
	if err != nil {
		status = entity.StatusFailed
		errorDetail = err.Error()
		p.metrics.ErrorsCount.WithLabelValues("import").Inc()
		p.logger.Error("Feed import failed", "feedID", feed.FeedID, "error", err)
	}

	if err := p.feedRepo.MarkProcessed(ctx, feed.FeedID, status, errorDetail, summary); err != nil {
		p.logger.Error("Failed to mark feed as processed", "feedID", feed.FeedID, "error", err)
		return err
	}

	p.logger.Info("Feed marked as processed", "feedID", feed.FeedID, "status", status)
	p.metrics.FeedsProcessed.Inc()
	return nil
}

// ImportFeed runs the pipeline for one feed and returns the import summary.
// The summary is written to the feed document either way; the error return
// covers storage failures, which abort the feed without touching the
// previously stored snapshot.
func (p *ImportProcessor) ImportFeed(ctx context.Context, feed *entity.Feed) (map[string]interface{}, error) {
	started := p.clock.Now()
	defer func() {
		p.metrics.ImportTime.Observe(time.Since(started).Seconds())
	}()

	summary := make(map[string]interface{})

	aliases, err := p.loadAliases(ctx)
	if err != nil {
		return summary, err
	}

	mapping := schedule.ResolveColumns(feed.Headers, aliases)
	gaps := mapping.Gaps()
	if len(gaps) > 0 {
		names := make([]string, len(gaps))
		for i, g := range gaps {
			names[i] = string(g)
		}
		summary["resolutionGaps"] = names
		p.logger.Warn("Unresolved canonical fields for feed",
			"feedID", feed.FeedID,
			"gaps", names)
	}

	records, report := schedule.ParseRecords(feed.Rows, mapping)
	summary["parsed"] = report.Parsed
	summary["dropped"] = report.Dropped

	day, ok := schedule.TargetDay(records)
	if !ok {
		summary["emptyResult"] = true
		summary["droppedReasons"] = report.Reasons
		p.logger.Warn("Feed yielded no datable records", "feedID", feed.FeedID)
		return summary, nil
	}
	dayKey := day.Format(schedule.DayLayout)
	summary["day"] = dayKey

	filtered := schedule.FilterByDay(records, day, &report)
	if len(report.Reasons) > 0 {
		summary["droppedReasons"] = report.Reasons
	}
	if len(filtered) == 0 {
		summary["emptyResult"] = true
		p.logger.Warn("Feed empty after date filtering", "feedID", feed.FeedID, "day", dayKey)
		return summary, nil
	}

	sorted := schedule.SortByCode(filtered)

	previous, err := p.snapshotRepo.Get(ctx, dayKey)
	if err != nil {
		return summary, fmt.Errorf("failed to load previous snapshot for %s: %w", dayKey, err)
	}

	var prevRecords []entity.FlightRecord
	revision := 1
	if previous != nil {
		prevRecords = previous.Records
		revision = previous.Revision + 1
	}

	diff := schedule.DiffSnapshots(prevRecords, sorted)
	summary["new"] = diff.New
	summary["modified"] = diff.Modified
	summary["unchanged"] = diff.Unchanged
	summary["removed"] = diff.Removed
	p.metrics.DiffChanges.WithLabelValues("new").Add(float64(diff.New))
	p.metrics.DiffChanges.WithLabelValues("modified").Add(float64(diff.Modified))
	p.metrics.DiffChanges.WithLabelValues("removed").Add(float64(diff.Removed))

	snapshot := &entity.Snapshot{
		ID:          uuid.NewString(),
		Day:         dayKey,
		Revision:    revision,
		Records:     sorted,
		ChangeMarks: diff.Classes,
		SourceFeed:  feed.FeedID,
		ImportedAt:  p.clock.Now(),
	}

	// Put before Retire: a failure here leaves the old snapshot active.
	if err := p.snapshotRepo.Put(ctx, snapshot); err != nil {
		return summary, fmt.Errorf("failed to store snapshot for %s: %w", dayKey, err)
	}
	if previous != nil {
		if err := p.snapshotRepo.Retire(ctx, dayKey, p.clock.Now()); err != nil {
			return summary, fmt.Errorf("failed to retire previous snapshot for %s: %w", dayKey, err)
		}
	}
	p.metrics.RowsImported.Add(float64(len(sorted)))

	p.logger.Info("Snapshot imported",
		"feedID", feed.FeedID,
		"day", dayKey,
		"revision", revision,
		"records", len(sorted),
		"new", diff.New,
		"modified", diff.Modified,
		"unchanged", diff.Unchanged,
		"removed", diff.Removed)

	if previous != nil && diff.New+diff.Modified+diff.Removed > 0 {
		p.sendChangeSummary(ctx, dayKey, diff)
	}

	return summary, nil
}

// loadAliases combines the built-in alias seed with operator extension rows.
// Built-ins come first so they win on conflict; a missing alias table only
// costs the extensions.
func (p *ImportProcessor) loadAliases(ctx context.Context) ([]entity.HeaderAlias, error) {
	aliases := entity.DefaultAliases()

	if p.aliasRepo == nil {
		return aliases, nil
	}
	extra, err := p.aliasRepo.List(ctx)
	if err != nil {
		p.logger.Warn("Failed to load alias extensions, using built-ins only", "error", err)
		return aliases, nil
	}
	return append(aliases, extra...), nil
}

func (p *ImportProcessor) sendChangeSummary(ctx context.Context, day string, diff schedule.DiffResult) {
	payload := &entity.AlertPayload{
		ID:          uuid.NewString(),
		Type:        entity.ChangeSummary,
		Destination: p.destination,
		Text:        templates.ChangeSummaryMessage(day, diff),
		CreatedAt:   p.clock.Now(),
	}

	if _, err := p.notifier.SendAlert(ctx, payload); err != nil {
		p.metrics.ErrorsCount.WithLabelValues("notify").Inc()
		p.logger.Error("Failed to send change summary", "day", day, "error", err)
		return
	}
	p.metrics.AlertsSent.Inc()
}
