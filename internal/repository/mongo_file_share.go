package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/driveboxhq/drivebox/internal/domain"
	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	fileShareCollectionName = "file_shares"
)

// MongoFileShareRepository implements domain.FileShareRepository using MongoDB
type MongoFileShareRepository struct {
	collection *mongo.Collection
}

// NewMongoFileShareRepository creates a new MongoDB file share repository
func NewMongoFileShareRepository(db *mongo.Database) *MongoFileShareRepository {
	collection := db.Collection(fileShareCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Index on file_id for per-file share listings
	_, _ = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "file_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})

	return &MongoFileShareRepository{
		collection: collection,
	}
}

// Create saves a new share record. Share records are append-only: two
// shares of the same file produce two independent rows.
func (r *MongoFileShareRepository) Create(ctx context.Context, share *domain.FileShare) error {
	if share.ID == "" {
		share.ID = ulid.Make().String()
	}
	if share.CreatedAt.IsZero() {
		share.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, share)
	if err != nil {
		return fmt.Errorf("failed to insert file share: %w", err)
	}

	return nil
}

// GetByFileID retrieves all shares of a file, newest first
func (r *MongoFileShareRepository) GetByFileID(ctx context.Context, fileID string) ([]*domain.FileShare, error) {
	filter := bson.M{"file_id": fileID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find file shares: %w", err)
	}
	defer cursor.Close(ctx)

	shares := []*domain.FileShare{}
	if err := cursor.All(ctx, &shares); err != nil {
		return nil, fmt.Errorf("failed to decode file shares: %w", err)
	}

	return shares, nil
}
