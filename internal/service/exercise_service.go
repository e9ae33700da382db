package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aurenz-max/LiftTrack/internal/catalog"
	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/aurenz-max/LiftTrack/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("built-in exercises cannot be modified")
	ErrValidationFailed     = errors.New("validation failed")
)

// NewCustomExercise carries the fields a user provides for a custom exercise.
type NewCustomExercise struct {
	Name          string
	PrimaryMuscle domain.MuscleGroup
	Equipment     domain.Equipment
	Category      domain.ExerciseCategory
	Instructions  string
}

type ExerciseService interface {
	// Search runs over the built-in catalog followed by the user's custom
	// exercises. A nil userID searches only the built-in catalog.
	Search(ctx context.Context, userID primitive.ObjectID, filter catalog.Filter) ([]domain.Exercise, error)
	Lookup(ctx context.Context, userID primitive.ObjectID, exerciseID string) (*domain.Exercise, error)
	CreateCustom(ctx context.Context, userID primitive.ObjectID, in NewCustomExercise) (*domain.Exercise, error)
	ListCustom(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error)
	DeleteCustom(ctx context.Context, userID primitive.ObjectID, exerciseID string) error
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	customRepo repository.CustomExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(customRepo repository.CustomExerciseRepository) ExerciseService {
	return &exerciseService{
		customRepo: customRepo,
	}
}

func (s *exerciseService) Search(ctx context.Context, userID primitive.ObjectID, filter catalog.Filter) ([]domain.Exercise, error) {
	all := append([]domain.Exercise{}, catalog.Builtin...)
	if userID != primitive.NilObjectID {
		custom, err := s.customRepo.ListByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("list custom exercises: %w", err)
		}
		all = append(all, custom...)
	}
	return catalog.Search(all, filter), nil
}

// Lookup resolves built-in IDs first, then the user's custom exercises.
func (s *exerciseService) Lookup(ctx context.Context, userID primitive.ObjectID, exerciseID string) (*domain.Exercise, error) {
	if ex, ok := catalog.Lookup(exerciseID); ok {
		return &ex, nil
	}
	if userID == primitive.NilObjectID {
		return nil, ErrExerciseNotFound
	}
	ex, err := s.customRepo.GetByID(ctx, userID, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return ex, nil
}

func (s *exerciseService) CreateCustom(ctx context.Context, userID primitive.ObjectID, in NewCustomExercise) (*domain.Exercise, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrValidationFailed)
	}
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create an exercise")
	}
	if !in.PrimaryMuscle.Valid() {
		return nil, fmt.Errorf("%w: unknown muscle group %q", ErrValidationFailed, in.PrimaryMuscle)
	}
	if in.Equipment == "" {
		in.Equipment = domain.EquipmentOther
	}
	if !in.Equipment.Valid() {
		return nil, fmt.Errorf("%w: unknown equipment %q", ErrValidationFailed, in.Equipment)
	}
	if in.Category == "" {
		in.Category = domain.CategoryIsolation
	}

	exercise := &domain.Exercise{
		Name:           name,
		Aliases:        []string{},
		PrimaryMuscles: []domain.MuscleGroup{in.PrimaryMuscle},
		Equipment:      in.Equipment,
		Category:       in.Category,
		Instructions:   in.Instructions,
		CreatedBy:      userID.Hex(),
	}
	if _, err := s.customRepo.Create(ctx, exercise); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: you already have an exercise named %q", ErrValidationFailed, name)
		}
		return nil, err
	}
	return exercise, nil
}

func (s *exerciseService) ListCustom(ctx context.Context, userID primitive.ObjectID) ([]domain.Exercise, error) {
	exercises, err := s.customRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(exercises, func(i, j int) bool {
		return strings.ToLower(exercises[i].Name) < strings.ToLower(exercises[j].Name)
	})
	return exercises, nil
}

// DeleteCustom removes a custom exercise. Past sessions keep their copied
// exercise names, so history is unaffected.
func (s *exerciseService) DeleteCustom(ctx context.Context, userID primitive.ObjectID, exerciseID string) error {
	if _, ok := catalog.Lookup(exerciseID); ok {
		return ErrExerciseAccessDenied
	}
	err := s.customRepo.Delete(ctx, userID, exerciseID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrExerciseNotFound
	}
	return err
}
