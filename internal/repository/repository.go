package repository

import (
	"context"

	"github.com/aurenz-max/LiftTrack/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
	ErrDuplicate    = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

//go:generate mockgen -source=repository.go -destination=../service/repository_mocks_test.go -package=service_test

// SessionRepository stores completed workout sessions.
type SessionRepository interface {
	// Create stamps CompletedAt and stores the session. Saving the same
	// (UserID, WorkoutID) again overwrites the stored session and returns
	// the ID of the first save.
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, userID, id primitive.ObjectID) (*domain.WorkoutSession, error)
	// ListByUser returns sessions most recent first. limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]domain.WorkoutSession, error)
	ListByType(ctx context.Context, userID primitive.ObjectID, split domain.SplitType, limit int) ([]domain.WorkoutSession, error)
	// ExerciseHistory inspects at most window recent sessions and returns up
	// to limit entries for exerciseID, most recent first.
	ExerciseHistory(ctx context.Context, userID primitive.ObjectID, exerciseID string, limit, window int) ([]domain.ExerciseHistoryEntry, error)
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
}

// CustomExerciseRepository stores user-authored exercises.
type CustomExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (string, error)
	GetByID(ctx context.Context, userID primitive.ObjectID, id string) (*domain.Exercise, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	Delete(ctx context.Context, userID primitive.ObjectID, id string) error
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, displayName string, profile domain.UserProfile) error
}

// ExportRepository stores metadata of history archives kept in object storage.
type ExportRepository interface {
	Create(ctx context.Context, export *domain.Export) (primitive.ObjectID, error)
	GetByID(ctx context.Context, userID, id primitive.ObjectID) (*domain.Export, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Export, error)
	Delete(ctx context.Context, userID, id primitive.ObjectID) error
}
