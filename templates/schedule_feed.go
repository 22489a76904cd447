package templates

import (
	"context"
	"strings"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/pkg/logger"
)

// FeedImporter runs the import pipeline for one feed.
type FeedImporter interface {
	ProcessFeed(ctx context.Context, feed *entity.Feed) error
}

// ScheduleFeedHandler handles flight schedule feed emails
type ScheduleFeedHandler struct {
	importProcessor FeedImporter
	subjectMatch    string
	logger          logger.Logger
}

// NewScheduleFeedHandler creates a new schedule feed handler
func NewScheduleFeedHandler(importProcessor FeedImporter, subjectMatch string, logger logger.Logger) *ScheduleFeedHandler {
	return &ScheduleFeedHandler{
		importProcessor: importProcessor,
		subjectMatch:    subjectMatch,
		logger:          logger,
	}
}

// CanHandle determines if this handler can process the given mail subject
func (h *ScheduleFeedHandler) CanHandle(subject string) bool {
	return strings.Contains(strings.ToLower(subject), strings.ToLower(h.subjectMatch))
}

// Process imports the feed through the import pipeline
func (h *ScheduleFeedHandler) Process(ctx context.Context, feed *entity.Feed) error {
	h.logger.Info("Processing schedule feed",
		"feedID", feed.FeedID,
		"subject", feed.Subject,
		"rows", len(feed.Rows))

	if err := h.importProcessor.ProcessFeed(ctx, feed); err != nil {
		h.logger.Error("Failed to import schedule feed", "feedID", feed.FeedID, "error", err)
		return err
	}

	return nil
}
