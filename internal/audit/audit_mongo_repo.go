package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const auditCollection = "audit_logs"

type mongoEntry struct {
	ID           string         `bson:"_id"`
	UserID       string         `bson:"user_id"`
	Action       string         `bson:"action"`
	ResourceType string         `bson:"resource_type"`
	ResourceID   string         `bson:"resource_id"`
	Details      map[string]any `bson:"details,omitempty"`
	CreatedAt    time.Time      `bson:"created_at"`
}

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{collection: db.Collection(auditCollection)}
}

// EnsureMongoIndexes creates the (resource_type, resource_id, created_at) index used by history reads.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(auditCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "resource_type", Value: 1},
			{Key: "resource_id", Value: 1},
			{Key: "created_at", Value: 1},
		},
	})
	return err
}

func (r *mongoRepository) Create(ctx context.Context, e *Entry) error {
	_, err := r.collection.InsertOne(ctx, toMongoEntry(*e))
	return err
}

func (r *mongoRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, resourceFilter(resourceType, resourceID), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []mongoEntry
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, fromMongoEntry(d))
	}
	return entries, nil
}

func resourceFilter(resourceType, resourceID string) bson.M {
	return bson.M{"resource_type": resourceType, "resource_id": resourceID}
}

func toMongoEntry(e Entry) mongoEntry {
	return mongoEntry{
		ID:           e.ID.String(),
		UserID:       e.UserID.String(),
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Details:      e.Details,
		CreatedAt:    e.CreatedAt,
	}
}

func fromMongoEntry(d mongoEntry) Entry {
	id, _ := uuid.Parse(d.ID)
	userID, _ := uuid.Parse(d.UserID)
	return Entry{
		ID:           id,
		UserID:       userID,
		Action:       d.Action,
		ResourceType: d.ResourceType,
		ResourceID:   d.ResourceID,
		Details:      d.Details,
		CreatedAt:    d.CreatedAt,
	}
}
