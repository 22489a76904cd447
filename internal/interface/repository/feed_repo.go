// internal/interface/repository/feed_repo.go
package repository

import (
	"context"
	"fmt"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFeedRepository implements the FeedRepository interface
type MongoFeedRepository struct {
	collection *mongo.Collection
}

// NewMongoFeedRepository creates a new MongoDB feed repository
func NewMongoFeedRepository(db *mongo.Database) repository.FeedRepository {
	collection := db.Collection("feedLogs")

	// Create indexes for better performance
	ctx := context.Background()

	feedIDIndex := mongo.IndexModel{
		Keys:    bson.M{"feedId": 1},
		Options: options.Index().SetUnique(true),
	}

	// Index on processStatus for finding feeds by status
	processStatusIndex := mongo.IndexModel{
		Keys: bson.M{"processStatus": 1},
	}

	// Index on receivedAt for sorting and filtering
	receivedAtIndex := mongo.IndexModel{
		Keys: bson.M{"receivedAt": -1},
	}

	// Compound index for finding pending feeds efficiently
	pendingIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "processStatus", Value: 1},
			{Key: "receivedAt", Value: 1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		feedIDIndex,
		processStatusIndex,
		receivedAtIndex,
		pendingIndex,
	})

	return &MongoFeedRepository{
		collection: collection,
	}
}

// Save saves a feed to MongoDB
func (r *MongoFeedRepository) Save(ctx context.Context, feed *entity.Feed) error {
	if feed.ProcessStatus == "" {
		feed.ProcessStatus = entity.StatusPending
	}

	_, err := r.collection.InsertOne(ctx, feed)
	return err
}

// FindByFeedIDs finds feeds by their feed IDs for batch dedup checks
func (r *MongoFeedRepository) FindByFeedIDs(ctx context.Context, feedIDs []string) (map[string]*entity.Feed, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"feedId": bson.M{"$in": feedIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	found := make(map[string]*entity.Feed)
	for cursor.Next(ctx) {
		var feed entity.Feed
		if err := cursor.Decode(&feed); err != nil {
			return nil, err
		}
		found[feed.FeedID] = &feed
	}

	return found, cursor.Err()
}

// FindPending finds pending feeds (PENDING status or empty), oldest first
func (r *MongoFeedRepository) FindPending(ctx context.Context, limit int) ([]*entity.Feed, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"processStatus": ""},
			{"processStatus": entity.StatusPending},
			{"processStatus": bson.M{"$exists": false}},
		},
	}

	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "receivedAt", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var feeds []*entity.Feed
	if err := cursor.All(ctx, &feeds); err != nil {
		return nil, err
	}

	return feeds, nil
}

// GetLastFeed returns the most recently received feed, or nil when none
// exist yet
func (r *MongoFeedRepository) GetLastFeed(ctx context.Context) (*entity.Feed, error) {
	var feed entity.Feed
	err := r.collection.FindOne(ctx, bson.M{}, &options.FindOneOptions{
		Sort: bson.D{{Key: "receivedAt", Value: -1}},
	}).Decode(&feed)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &feed, nil
}

// UpdateStatus updates just the status and started time
func (r *MongoFeedRepository) UpdateStatus(ctx context.Context, feedID string, status string, startedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"processStatus": status,
		},
	}

	// Only set processedAt when moving to PROCESSING
	if status == entity.StatusProcessing && !startedAt.IsZero() {
		update["$set"].(bson.M)["processedAt"] = startedAt
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"feedId": feedID},
		update,
	)

	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no feed found with id: %s", feedID)
	}

	return nil
}

// MarkProcessed records the terminal state of a feed import
func (r *MongoFeedRepository) MarkProcessed(ctx context.Context, feedID string, status string, errorDetail string, summary map[string]interface{}) error {
	update := bson.M{
		"$set": bson.M{
			"processStatus": status,
			"processedAt":   time.Now(),
			"errorDetail":   errorDetail,
			"summary":       summary,
		},
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"feedId": feedID},
		update,
	)

	if err != nil {
		return fmt.Errorf("failed to mark feed as processed: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no feed found with id: %s", feedID)
	}

	return nil
}
