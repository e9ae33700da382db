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

const customExerciseCollectionName = "custom_exercises"

// mongoCustomExerciseRepository implements repository.CustomExerciseRepository
type mongoCustomExerciseRepository struct {
	collection *mongo.Collection
}

func NewMongoCustomExerciseRepository(db *mongo.Database) repository.CustomExerciseRepository {
	return &mongoCustomExerciseRepository{
		collection: db.Collection(customExerciseCollectionName),
	}
}

// Create inserts a custom exercise. IDs are ObjectID hex strings so they can
// never collide with the slug IDs of the built-in catalog.
func (r *mongoCustomExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (string, error) {
	if exercise.Name == "" || exercise.CreatedBy == "" {
		return "", errors.New("exercise name and owner are required")
	}

	exercise.ID = primitive.NewObjectID().Hex()
	exercise.IsCustom = true
	exercise.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, exercise); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", err
	}
	return exercise.ID, nil
}

func (r *mongoCustomExerciseRepository) GetByID(ctx context.Context, userID primitive.ObjectID, id string) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"_id": id, "createdBy": userID.Hex()}

	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// ListByUser returns a user's custom exercises sorted by name.
func (r *mongoCustomExerciseRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	filter := bson.M{"createdBy": userID.Hex()}
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Delete removes an exercise only if userID owns it.
func (r *mongoCustomExerciseRepository) Delete(ctx context.Context, userID primitive.ObjectID, id string) error {
	filter := bson.M{"_id": id, "createdBy": userID.Hex()}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCustomExerciseIndexes creates necessary indexes for the custom_exercises collection.
func EnsureCustomExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// one exercise name per user
			Keys:    bson.D{{Key: "createdBy", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
