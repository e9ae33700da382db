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

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user into the database.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("user email and password hash are required")
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		// email carries a unique index
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByEmail retrieves a user by their email address.
func (r *mongoUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByID retrieves a user by their MongoDB ObjectID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile replaces the display name and profile of a user.
func (r *mongoUserRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, displayName string, profile domain.UserProfile) error {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{
			"displayName": displayName,
			"profile":     profile,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	// ModifiedCount is 0 when nothing changed, which is fine
	return nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
func EnsureUserIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
