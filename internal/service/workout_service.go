package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/calc"
	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/aurenz-max/LiftTrack/internal/repository"
	"github.com/aurenz-max/LiftTrack/internal/workout"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrWorkoutInProgress = errors.New("a workout is already in progress")
	ErrTemplateNotFound  = errors.New("no template for this split")
	ErrSessionNotFound   = errors.New("workout session not found")
)

// RestStarter is the part of the rest timer the controller starts after a set.
type RestStarter interface {
	Start(seconds int) bool
	Stop()
}

// ProfileReader supplies the per-user rest default.
type ProfileReader interface {
	Profile(ctx context.Context, userID primitive.ObjectID) (domain.UserProfile, error)
}

// ExerciseLookup resolves catalog entries by ID; ExerciseService satisfies it.
type ExerciseLookup interface {
	Lookup(ctx context.Context, userID primitive.ObjectID, exerciseID string) (*domain.Exercise, error)
}

// ActiveLoader reads the durable snapshot of the in-progress workout.
type ActiveLoader interface {
	LoadActive(ctx context.Context) (domain.ActiveWorkout, bool, error)
}

// SetResult reports what CompleteSet did.
type SetResult struct {
	Applied     bool
	IsPR        bool
	RestSeconds int // 0 when no rest timer was started
}

// WorkoutOptions tune the controller.
type WorkoutOptions struct {
	DefaultRestSeconds int // used when the profile cannot be read
	HistoryLimit       int
	HistoryWindow      int
}

type WorkoutService interface {
	Active() (domain.ActiveWorkout, bool)

	StartFromTemplate(split domain.SplitType) (domain.ActiveWorkout, error)
	// StartFromPrior repeats a past session, prefilling weights and reps.
	StartFromPrior(ctx context.Context, userID, sessionID primitive.ObjectID) (domain.ActiveWorkout, error)
	// RepeatLast repeats the most recent session of a split, falling back to
	// the split's template when there is none.
	RepeatLast(ctx context.Context, userID primitive.ObjectID, split domain.SplitType) (domain.ActiveWorkout, error)
	StartCustom(name string, seeds []workout.ExerciseSeed) (domain.ActiveWorkout, error)
	// Restore resumes the workout found in the local snapshot, if any.
	Restore(ctx context.Context) (domain.ActiveWorkout, bool, error)
	Discard()

	SelectExercise(i int) bool
	AddExercise(ctx context.Context, userID primitive.ObjectID, exerciseID string, sets, reps int) (*domain.Exercise, error)
	RemoveExercise(i int) bool
	MoveExercise(from, to int) bool

	UpdateSet(ei, si int, update workout.SetUpdate) bool
	// CompleteSet marks a set done, flags it as a PR when it beats the
	// exercise's recent history, and starts the rest timer when rest is true.
	CompleteSet(ctx context.Context, userID primitive.ObjectID, ei, si int, rest bool) (SetResult, error)
	AddSet(ei int) bool
	RemoveSet(ei, si int) bool

	// StartRest starts the rest countdown. seconds <= 0 uses the profile default.
	StartRest(ctx context.Context, userID primitive.ObjectID, seconds int) int
	StopRest()
}

type workoutService struct {
	engine    workout.Engine
	sessions  repository.SessionRepository
	profiles  ProfileReader
	exercises ExerciseLookup
	snapshot  ActiveLoader
	timer     RestStarter
	opts      WorkoutOptions
	now       func() time.Time

	historyMu sync.Mutex
	history   map[string][]domain.ExerciseHistoryEntry // userID/exerciseID, filled once per process
}

func NewWorkoutService(
	engine workout.Engine,
	sessions repository.SessionRepository,
	profiles ProfileReader,
	exercises ExerciseLookup,
	snapshot ActiveLoader,
	timer RestStarter,
	opts WorkoutOptions,
) WorkoutService {
	if opts.DefaultRestSeconds <= 0 {
		opts.DefaultRestSeconds = domain.DefaultRestTimerSeconds
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 20
	}
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 100
	}
	return &workoutService{
		engine:    engine,
		sessions:  sessions,
		profiles:  profiles,
		exercises: exercises,
		snapshot:  snapshot,
		timer:     timer,
		opts:      opts,
		now:       time.Now,
		history:   make(map[string][]domain.ExerciseHistoryEntry),
	}
}

func (s *workoutService) Active() (domain.ActiveWorkout, bool) {
	return s.engine.Active()
}

func (s *workoutService) StartFromTemplate(split domain.SplitType) (domain.ActiveWorkout, error) {
	tmpl, ok := domain.TemplateFor(split)
	if !ok {
		return domain.ActiveWorkout{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, split)
	}
	seeds := make([]workout.ExerciseSeed, 0, len(tmpl.Exercises))
	for _, ex := range tmpl.Exercises {
		seeds = append(seeds, workout.ExerciseSeed{
			ExerciseID:   ex.ExerciseID,
			ExerciseName: ex.ExerciseName,
			DefaultSets:  ex.DefaultSets,
			DefaultReps:  ex.DefaultReps,
		})
	}
	return s.start(tmpl.SplitType, tmpl.Name, seeds)
}

func (s *workoutService) StartFromPrior(ctx context.Context, userID, sessionID primitive.ObjectID) (domain.ActiveWorkout, error) {
	if w, ok := s.engine.Active(); ok {
		return w, ErrWorkoutInProgress
	}
	prior, err := s.sessions.GetByID(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ActiveWorkout{}, ErrSessionNotFound
		}
		return domain.ActiveWorkout{}, err
	}
	return s.start(prior.SplitType, prior.Name, seedsFromSession(prior))
}

func (s *workoutService) RepeatLast(ctx context.Context, userID primitive.ObjectID, split domain.SplitType) (domain.ActiveWorkout, error) {
	if w, ok := s.engine.Active(); ok {
		return w, ErrWorkoutInProgress
	}
	last, err := s.sessions.ListByType(ctx, userID, split, 1)
	if err != nil {
		return domain.ActiveWorkout{}, fmt.Errorf("find last %s workout: %w", split, err)
	}
	if len(last) == 0 {
		log.Debugf("no previous %s workout, starting from template", split)
		return s.StartFromTemplate(split)
	}
	return s.start(last[0].SplitType, last[0].Name, seedsFromSession(&last[0]))
}

func (s *workoutService) StartCustom(name string, seeds []workout.ExerciseSeed) (domain.ActiveWorkout, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ActiveWorkout{}, fmt.Errorf("%w: workout name is required", ErrValidationFailed)
	}
	return s.start(domain.SplitCustom, name, seeds)
}

func (s *workoutService) start(split domain.SplitType, name string, seeds []workout.ExerciseSeed) (domain.ActiveWorkout, error) {
	if !s.engine.Start(split, name, seeds) {
		w, _ := s.engine.Active()
		return w, ErrWorkoutInProgress
	}
	w, _ := s.engine.Active()
	log.Infof("started workout %s (%s) with %d exercises", w.ID, w.Name, len(w.Exercises))
	return w, nil
}

// seedsFromSession prefills every exercise with the sets performed last time.
func seedsFromSession(session *domain.WorkoutSession) []workout.ExerciseSeed {
	seeds := make([]workout.ExerciseSeed, 0, len(session.Exercises))
	for _, ex := range session.Exercises {
		count, reps := len(ex.Sets), workout.DefaultReps
		if count == 0 {
			count = workout.DefaultSetCount
		} else if ex.Sets[0].Reps > 0 {
			reps = ex.Sets[0].Reps
		}
		seeds = append(seeds, workout.ExerciseSeed{
			ExerciseID:   ex.ExerciseID,
			ExerciseName: ex.ExerciseName,
			DefaultSets:  count,
			DefaultReps:  reps,
			PriorSets:    ex.Sets,
		})
	}
	return seeds
}

func (s *workoutService) Restore(ctx context.Context) (domain.ActiveWorkout, bool, error) {
	if w, ok := s.engine.Active(); ok {
		return w, true, nil
	}
	w, found, err := s.snapshot.LoadActive(ctx)
	if err != nil {
		return domain.ActiveWorkout{}, false, fmt.Errorf("load workout snapshot: %w", err)
	}
	if !found {
		return domain.ActiveWorkout{}, false, nil
	}
	if !s.engine.Restore(w) {
		return domain.ActiveWorkout{}, false, nil
	}
	restored, ok := s.engine.Active()
	return restored, ok, nil
}

func (s *workoutService) Discard() {
	if w, ok := s.engine.Active(); ok {
		log.Infof("discarding workout %s", w.ID)
	}
	s.engine.Discard()
}

func (s *workoutService) SelectExercise(i int) bool {
	return s.engine.SetCurrentExerciseIndex(i)
}

func (s *workoutService) AddExercise(ctx context.Context, userID primitive.ObjectID, exerciseID string, sets, reps int) (*domain.Exercise, error) {
	if _, ok := s.engine.Active(); !ok {
		return nil, ErrNoActiveWorkout
	}
	ex, err := s.exercises.Lookup(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}
	if !s.engine.AddExercise(ex.ID, ex.Name, sets, reps) {
		return nil, ErrNoActiveWorkout
	}
	return ex, nil
}

func (s *workoutService) RemoveExercise(i int) bool { return s.engine.RemoveExercise(i) }

func (s *workoutService) MoveExercise(from, to int) bool { return s.engine.ReorderExercise(from, to) }

func (s *workoutService) UpdateSet(ei, si int, update workout.SetUpdate) bool {
	return s.engine.UpdateSet(ei, si, update)
}

func (s *workoutService) AddSet(ei int) bool { return s.engine.AddSet(ei) }

func (s *workoutService) RemoveSet(ei, si int) bool { return s.engine.RemoveSet(ei, si) }

func (s *workoutService) CompleteSet(ctx context.Context, userID primitive.ObjectID, ei, si int, rest bool) (SetResult, error) {
	w, ok := s.engine.Active()
	if !ok {
		return SetResult{}, ErrNoActiveWorkout
	}
	if ei < 0 || ei >= len(w.Exercises) || si < 0 || si >= len(w.Exercises[ei].Sets) {
		return SetResult{}, nil
	}
	ex := w.Exercises[ei]
	set := ex.Sets[si]
	if set.Completed {
		return SetResult{}, nil
	}

	var result SetResult
	if !set.IsWarmup {
		isPR, err := s.isPersonalRecord(ctx, userID, ex, si)
		if err != nil {
			// the set still counts; it just is not flagged
			log.Warnf("PR check for %s skipped: %s", ex.ExerciseName, err)
		}
		result.IsPR = isPR
	}
	result.Applied = s.engine.CompleteSet(ei, si, s.now(), result.IsPR)
	if !result.Applied {
		return SetResult{}, nil
	}

	if rest {
		result.RestSeconds = s.StartRest(ctx, userID, 0)
	}
	return result, nil
}

// isPersonalRecord compares set si against the exercise's recent history and
// against the sets already completed for it in this workout.
func (s *workoutService) isPersonalRecord(ctx context.Context, userID primitive.ObjectID, ex domain.WorkoutExercise, si int) (bool, error) {
	set := ex.Sets[si]
	if calc.EstimatedOneRepMax(set.Weight, set.Reps) == 0 {
		return false, nil
	}
	history, err := s.exerciseHistory(ctx, userID, ex.ExerciseID)
	if err != nil {
		return false, err
	}
	var today []domain.WorkoutSet
	for i, other := range ex.Sets {
		if i != si && other.Completed {
			today = append(today, other)
		}
	}
	if len(today) > 0 {
		history = append(history, domain.ExerciseHistoryEntry{Date: s.now(), Sets: today})
	}
	return calc.IsPersonalRecord(set.Weight, set.Reps, history), nil
}

func (s *workoutService) exerciseHistory(ctx context.Context, userID primitive.ObjectID, exerciseID string) ([]domain.ExerciseHistoryEntry, error) {
	key := userID.Hex() + "/" + exerciseID

	s.historyMu.Lock()
	cached, ok := s.history[key]
	s.historyMu.Unlock()
	if ok {
		return append([]domain.ExerciseHistoryEntry(nil), cached...), nil
	}

	entries, err := s.sessions.ExerciseHistory(ctx, userID, exerciseID, s.opts.HistoryLimit, s.opts.HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("load history of %s: %w", exerciseID, err)
	}

	s.historyMu.Lock()
	s.history[key] = entries
	s.historyMu.Unlock()
	return append([]domain.ExerciseHistoryEntry(nil), entries...), nil
}

func (s *workoutService) StartRest(ctx context.Context, userID primitive.ObjectID, seconds int) int {
	if seconds <= 0 {
		seconds = s.opts.DefaultRestSeconds
		profile, err := s.profiles.Profile(ctx, userID)
		if err != nil {
			log.Warnf("reading rest preference: %s", err)
		} else if profile.DefaultRestTimer > 0 {
			seconds = profile.DefaultRestTimer
		}
	}
	if !s.timer.Start(seconds) {
		return 0
	}
	return seconds
}

func (s *workoutService) StopRest() {
	s.timer.Stop()
}
