package usecase

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// FeedHandler defines the interface for feed handlers
type FeedHandler interface {
	// CanHandle determines if this handler can process the given mail subject
	CanHandle(subject string) bool

	// Process imports the feed
	Process(ctx context.Context, feed *entity.Feed) error
}

// SubjectRouter routes feeds to the appropriate handler based on subject
type SubjectRouter interface {
	// Register registers a handler for specific subject patterns
	Register(handler FeedHandler)

	// GetHandler returns the appropriate handler for a given subject
	GetHandler(subject string) FeedHandler
}
