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
	fileCollectionName = "files"
)

// MongoFileRepository implements domain.FileRepository using MongoDB
type MongoFileRepository struct {
	collection *mongo.Collection
}

// NewMongoFileRepository creates a new MongoDB file repository
func NewMongoFileRepository(db *mongo.Database) *MongoFileRepository {
	collection := db.Collection(fileCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Index on owner_id and created_at for the listing query, newest first
	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	}
	_, _ = collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoFileRepository{
		collection: collection,
	}
}

// Create saves a new file record to MongoDB
func (r *MongoFileRepository) Create(ctx context.Context, file *domain.File) error {
	if file.ID == "" {
		file.ID = ulid.Make().String()
	}
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, file)
	if err != nil {
		return fmt.Errorf("failed to insert file record: %w", err)
	}

	return nil
}

// GetByID retrieves a file by id, returning domain.ErrNotFound when absent
func (r *MongoFileRepository) GetByID(ctx context.Context, id string) (*domain.File, error) {
	var file domain.File
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&file)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find file: %w", err)
	}

	return &file, nil
}

// GetByOwner retrieves all files owned by a user, newest first
func (r *MongoFileRepository) GetByOwner(ctx context.Context, ownerID string) ([]*domain.File, error) {
	filter := bson.M{"owner_id": ownerID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find files: %w", err)
	}
	defer cursor.Close(ctx)

	files := []*domain.File{}
	if err := cursor.All(ctx, &files); err != nil {
		return nil, fmt.Errorf("failed to decode files: %w", err)
	}

	return files, nil
}
