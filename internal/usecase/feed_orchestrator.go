package usecase

import (
	"context"
	"fmt"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
)

// FeedOrchestrator manages feed processing with multiple handlers
type FeedOrchestrator struct {
	feedRepo repository.FeedRepository
	router   SubjectRouter
	clock    repository.Clock
	logger   logger.Logger
}

// NewFeedOrchestrator creates a new feed orchestrator
func NewFeedOrchestrator(
	feedRepo repository.FeedRepository,
	router SubjectRouter,
	clock repository.Clock,
	logger logger.Logger,
) *FeedOrchestrator {
	return &FeedOrchestrator{
		feedRepo: feedRepo,
		router:   router,
		clock:    clock,
		logger:   logger,
	}
}

const pendingFeedBatch = 10

// ProcessPending routes each pending feed to its handler, oldest first.
// Feeds with no matching handler are marked skipped, not failed.
func (o *FeedOrchestrator) ProcessPending(ctx context.Context) error {
	feeds, err := o.feedRepo.FindPending(ctx, pendingFeedBatch)
	if err != nil {
		return fmt.Errorf("failed to find pending feeds: %w", err)
	}

	for _, feed := range feeds {
		if err := o.ProcessFeed(ctx, feed); err != nil {
			o.logger.Error("Feed processing failed",
				"feedID", feed.FeedID,
				"error", err)
		}
	}
	return nil
}

// ProcessFeed processes a single feed
func (o *FeedOrchestrator) ProcessFeed(ctx context.Context, feed *entity.Feed) error {
	handler := o.router.GetHandler(feed.Subject)
	if handler == nil {
		o.logger.Debug("No handler found for feed",
			"subject", feed.Subject,
			"feedID", feed.FeedID)

		// Not an error, just no matching handler
		return o.feedRepo.MarkProcessed(
			ctx,
			feed.FeedID,
			entity.StatusSkipped,
			"No matching handler found",
			map[string]interface{}{
				"subject": feed.Subject,
				"reason":  "no_matching_handler",
			},
		)
	}

	handlerType := fmt.Sprintf("%T", handler)
	o.logger.Info("Processing feed with handler",
		"feedID", feed.FeedID,
		"handler", handlerType,
		"subject", feed.Subject)

	if err := o.feedRepo.UpdateStatus(ctx, feed.FeedID, entity.StatusProcessing, o.clock.Now()); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if err := handler.Process(ctx, feed); err != nil {
		o.logger.Error("Handler failed to process feed",
			"feedID", feed.FeedID,
			"handler", handlerType,
			"error", err)

		// Mark as failed but keep going - the handler may not have managed
		// to record its own terminal state.
		o.feedRepo.MarkProcessed(
			ctx,
			feed.FeedID,
			entity.StatusFailed,
			err.Error(),
			map[string]interface{}{"handler": handlerType},
		)
		return err
	}

	return nil
}
