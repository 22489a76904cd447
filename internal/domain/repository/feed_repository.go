package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
)

// FeedRepository defines the interface for raw feed storage
type FeedRepository interface {
	Save(ctx context.Context, feed *entity.Feed) error
	FindByFeedIDs(ctx context.Context, feedIDs []string) (map[string]*entity.Feed, error)
	FindPending(ctx context.Context, limit int) ([]*entity.Feed, error)
	GetLastFeed(ctx context.Context) (*entity.Feed, error)
	UpdateStatus(ctx context.Context, feedID string, status string, startedAt time.Time) error
	MarkProcessed(ctx context.Context, feedID string, status string, errorDetail string, summary map[string]interface{}) error
}
