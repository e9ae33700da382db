// internal/repository/mongo/session_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/aurenz-max/LiftTrack/internal/repository"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionCollectionName = "workout_sessions"

// mongoSessionRepository implements repository.SessionRepository
type mongoSessionRepository struct {
	collection *mongo.Collection
}

func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// newestFirst orders sessions by completion, falling back to insertion order.
var newestFirst = bson.D{{Key: "completedAt", Value: -1}, {Key: "_id", Value: -1}}

// Create stores a finished session, upserting on (userId, workoutId). A retry
// of a save that already landed overwrites the stored session with the newer
// one, keeping its ID and CompletedAt.
func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	if session.UserID == primitive.NilObjectID || session.WorkoutID == "" {
		return primitive.NilObjectID, errors.New("session requires userId and workoutId")
	}
	if session.CompletedAt == nil {
		now := time.Now().UTC()
		session.CompletedAt = &now
	}

	update, err := SessionUpsert(session)
	if err != nil {
		return primitive.NilObjectID, err
	}
	filter := bson.M{"userId": session.UserID, "workoutId": session.WorkoutID}
	opts := options.Update().SetUpsert(true)

	result, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// lost an upsert race with a concurrent save; the document exists now
		result, err = r.collection.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	if result.UpsertedID != nil {
		insertedID, ok := result.UpsertedID.(primitive.ObjectID)
		if !ok {
			return primitive.NilObjectID, errors.New("failed to convert inserted session ID")
		}
		session.ID = insertedID
		return insertedID, nil
	}
	return r.existing(ctx, session)
}

// SessionUpsert builds the update document for Create: every field of session
// is set, except _id and completedAt, which are only written on insert.
func SessionUpsert(session *domain.WorkoutSession) (bson.M, error) {
	raw, err := bson.Marshal(session)
	if err != nil {
		return nil, err
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	delete(fields, "_id")
	delete(fields, "completedAt")

	onInsert := bson.M{"_id": primitive.NewObjectID()}
	if session.CompletedAt != nil {
		onInsert["completedAt"] = *session.CompletedAt
	}
	return bson.M{"$set": fields, "$setOnInsert": onInsert}, nil
}

// existing copies the stored ID and CompletedAt of an overwritten session back
// onto session.
func (r *mongoSessionRepository) existing(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	var stored struct {
		ID          primitive.ObjectID `bson:"_id"`
		CompletedAt *time.Time         `bson:"completedAt"`
	}
	filter := bson.M{"userId": session.UserID, "workoutId": session.WorkoutID}
	opts := options.FindOne().SetProjection(bson.M{"_id": 1, "completedAt": 1})
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&stored); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// deleted between the update and this read
			return primitive.NilObjectID, repository.ErrNotFound
		}
		return primitive.NilObjectID, err
	}
	log.Debugf("session for workout %s already stored as %s, overwritten", session.WorkoutID, stored.ID.Hex())
	session.ID = stored.ID
	if stored.CompletedAt != nil {
		session.CompletedAt = stored.CompletedAt
	}
	return stored.ID, nil
}

// GetByID retrieves a single session owned by userID.
func (r *mongoSessionRepository) GetByID(ctx context.Context, userID, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	filter := bson.M{"_id": id, "userId": userID}
	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *mongoSessionRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.WorkoutSession, error) {
	return r.find(ctx, bson.M{"userId": userID}, limit)
}

func (r *mongoSessionRepository) ListByType(ctx context.Context, userID primitive.ObjectID, split domain.SplitType, limit int) ([]domain.WorkoutSession, error) {
	return r.find(ctx, bson.M{"userId": userID, "splitType": split}, limit)
}

// ExerciseHistory deliberately reads only the window most recent sessions,
// so older performances of a rarely trained exercise are not found.
func (r *mongoSessionRepository) ExerciseHistory(ctx context.Context, userID primitive.ObjectID, exerciseID string, limit, window int) ([]domain.ExerciseHistoryEntry, error) {
	sessions, err := r.find(ctx, bson.M{"userId": userID}, window)
	if err != nil {
		return nil, err
	}
	return HistoryFromSessions(sessions, exerciseID, limit), nil
}

// HistoryFromSessions turns sessions (newest first) into one history entry
// per session that contains exerciseID, keeping at most limit of them.
// Sessions without a completion stamp are skipped.
func HistoryFromSessions(sessions []domain.WorkoutSession, exerciseID string, limit int) []domain.ExerciseHistoryEntry {
	entries := []domain.ExerciseHistoryEntry{}
	for _, s := range sessions {
		if s.CompletedAt == nil {
			continue
		}
		for _, ex := range s.Exercises {
			if ex.ExerciseID != exerciseID {
				continue
			}
			entries = append(entries, domain.ExerciseHistoryEntry{
				SessionID:   s.ID,
				Date:        *s.CompletedAt,
				Sets:        domain.CloneSets(ex.Sets),
				VolumeTotal: ex.VolumeTotal,
			})
			break
		}
		if limit > 0 && len(entries) >= limit {
			break
		}
	}
	return entries
}

func (r *mongoSessionRepository) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "userId": userID}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		// not found or owned by someone else
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoSessionRepository) find(ctx context.Context, filter bson.M, limit int) ([]domain.WorkoutSession, error) {
	findOptions := options.Find().SetSort(newestFirst)
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := []domain.WorkoutSession{}
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// EnsureSessionIndexes creates the indexes the session queries rely on.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// idempotent saves
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "workoutId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_workout_unique"),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "completedAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "splitType", Value: 1}, {Key: "completedAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
