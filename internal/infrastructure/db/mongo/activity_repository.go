package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gigboard/marketplace/internal/core/domain"
)

const collectionActivity = "marketplace_activity"

// activityDocument is the stored shape of a domain.ActivityEvent.
type activityDocument struct {
	Kind       string    `bson:"kind"`
	JobID      string    `bson:"job_id,omitempty"`
	UserID     string    `bson:"user_id"`
	Status     string    `bson:"status,omitempty"`
	Delta      int64     `bson:"delta,omitempty"`
	Timestamp  time.Time `bson:"timestamp"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// ActivityRepository appends marketplace audit events to MongoDB.
type ActivityRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity), now: time.Now}
}

// InsertActivity persists a single audit event.
func (r *ActivityRepository) InsertActivity(ctx context.Context, event domain.ActivityEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toActivityDocument(event, r.now().UTC()))
	return err
}

// EnsureIndexes creates the lookup indexes on the activity collection.
func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "timestamp", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func toActivityDocument(e domain.ActivityEvent, recordedAt time.Time) activityDocument {
	return activityDocument{
		Kind:       string(e.Kind),
		JobID:      e.JobID,
		UserID:     e.UserID,
		Status:     string(e.Status),
		Delta:      e.Delta,
		Timestamp:  e.Timestamp.UTC(),
		RecordedAt: recordedAt,
	}
}
