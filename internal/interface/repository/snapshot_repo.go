package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSnapshotRepository implements SnapshotRepository. One active
// (non-retired) snapshot per day; revisions accumulate, retired ones keep
// their retirement timestamp.
type MongoSnapshotRepository struct {
	collection *mongo.Collection
}

// NewMongoSnapshotRepository creates a new snapshot repository
func NewMongoSnapshotRepository(db *mongo.Database) repository.SnapshotRepository {
	collection := db.Collection("snapshots")

	ctx := context.Background()

	// Unique index on (day, revision)
	revisionIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "day", Value: 1},
			{Key: "revision", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	collection.Indexes().CreateOne(ctx, revisionIndex)

	// Index for active snapshot lookups
	activeIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "day", Value: 1},
			{Key: "retiredAt", Value: 1},
		},
	}
	collection.Indexes().CreateOne(ctx, activeIndex)

	return &MongoSnapshotRepository{
		collection: collection,
	}
}

// Get returns the active snapshot for a day, or nil when none exists
func (r *MongoSnapshotRepository) Get(ctx context.Context, day string) (*entity.Snapshot, error) {
	var snapshot entity.Snapshot
	err := r.collection.FindOne(ctx, bson.M{
		"day":       day,
		"retiredAt": nil,
	}).Decode(&snapshot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Put appends a new snapshot for its day. It never touches existing
// documents - retiring the previous revision is a separate step, done only
// after the new snapshot is fully stored.
func (r *MongoSnapshotRepository) Put(ctx context.Context, snapshot *entity.Snapshot) error {
	if snapshot.ImportedAt.IsZero() {
		snapshot.ImportedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, snapshot)
	return err
}

// Retire stamps every still-active snapshot of a day except the newest
// revision with the retirement timestamp
func (r *MongoSnapshotRepository) Retire(ctx context.Context, day string, retiredAt time.Time) error {
	// Find the newest revision first; everything active below it retires.
	var newest entity.Snapshot
	err := r.collection.FindOne(ctx, bson.M{"day": day}, &options.FindOneOptions{
		Sort: bson.D{{Key: "revision", Value: -1}},
	}).Decode(&newest)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateMany(
		ctx,
		bson.M{
			"day":       day,
			"retiredAt": nil,
			"revision":  bson.M{"$lt": newest.Revision},
		},
		bson.M{"$set": bson.M{"retiredAt": retiredAt}},
	)
	return err
}

// UpdateStatuses overwrites the display statuses on the active snapshot of
// a day
func (r *MongoSnapshotRepository) UpdateStatuses(ctx context.Context, day string, statuses []string, at time.Time) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"day":       day,
			"retiredAt": nil,
		},
		bson.M{"$set": bson.M{
			"displayStatuses": statuses,
			"statusesAt":      at,
		}},
	)
	return err
}

// ActiveDays lists the days that currently have an active snapshot
func (r *MongoSnapshotRepository) ActiveDays(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "day", bson.M{"retiredAt": nil})
	if err != nil {
		return nil, err
	}

	days := make([]string, 0, len(values))
	for _, v := range values {
		if day, ok := v.(string); ok {
			days = append(days, day)
		}
	}
	return days, nil
}
