package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/aurenz-max/LiftTrack/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exportCollectionName = "exports"

// mongoExportRepository implements repository.ExportRepository
type mongoExportRepository struct {
	collection *mongo.Collection
}

// NewMongoExportRepository creates a new Export repository backed by MongoDB.
func NewMongoExportRepository(db *mongo.Database) repository.ExportRepository {
	return &mongoExportRepository{
		collection: db.Collection(exportCollectionName),
	}
}

// Create inserts export metadata once the archive is in the bucket.
func (r *mongoExportRepository) Create(ctx context.Context, export *domain.Export) (primitive.ObjectID, error) {
	if export.UserID == primitive.NilObjectID || export.ObjectKey == "" {
		return primitive.NilObjectID, errors.New("export requires userId and objectKey")
	}

	export.ID = primitive.NewObjectID()
	export.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, export)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

func (r *mongoExportRepository) GetByID(ctx context.Context, userID, id primitive.ObjectID) (*domain.Export, error) {
	var export domain.Export
	filter := bson.M{"_id": id, "userId": userID}

	err := r.collection.FindOne(ctx, filter).Decode(&export)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &export, nil
}

// ListByUser returns a user's exports, newest first.
func (r *mongoExportRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Export, error) {
	filter := bson.M{"userId": userID}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exports := []domain.Export{}
	if err = cursor.All(ctx, &exports); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exports, nil
}

// Delete removes metadata only; the caller deletes the object from storage.
func (r *mongoExportRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "userId": userID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureExportIndexes creates necessary indexes for the exports collection.
func EnsureExportIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// object keys are unique within the bucket
			Keys:    bson.D{{Key: "objectKey", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
