package workout

import (
	"github.com/aurenz-max/LiftTrack/internal/calc"
	"github.com/aurenz-max/LiftTrack/internal/domain"
)

const (
	DefaultSetCount = 3
	DefaultReps     = 10
)

// ExerciseSeed describes one exercise a workout starts with.
// PriorSets, when present, prefill weight and reps by position.
type ExerciseSeed struct {
	ExerciseID   string
	ExerciseName string
	DefaultSets  int
	DefaultReps  int
	PriorSets    []domain.WorkoutSet
}

// BuildDefaultSets returns count fresh sets numbered 1..count. Set i takes
// its weight and reps from priorSets[i] when that exists, otherwise weight 0
// and defaultReps. Flags are never carried over.
func BuildDefaultSets(count, defaultReps int, priorSets []domain.WorkoutSet) []domain.WorkoutSet {
	if count < 0 {
		count = 0
	}
	sets := make([]domain.WorkoutSet, count)
	for i := range sets {
		sets[i] = domain.WorkoutSet{SetNumber: i + 1, Reps: defaultReps}
		if i < len(priorSets) {
			sets[i].Weight = priorSets[i].Weight
			sets[i].Reps = priorSets[i].Reps
		}
	}
	return sets
}

// SetUpdate is a partial edit of one set. Nil fields are left untouched.
type SetUpdate struct {
	Weight    *float64
	Reps      *int
	RPE       *float64
	IsWarmup  *bool
	IsDropset *bool
	IsPR      *bool
}

func (u SetUpdate) empty() bool {
	return u.Weight == nil && u.Reps == nil && u.RPE == nil &&
		u.IsWarmup == nil && u.IsDropset == nil && u.IsPR == nil
}

func (u SetUpdate) valid() bool {
	if u.Weight != nil && *u.Weight < 0 {
		return false
	}
	if u.Reps != nil && *u.Reps < 0 {
		return false
	}
	if u.RPE != nil && (*u.RPE < 0 || *u.RPE > 10) {
		return false
	}
	return true
}

func (u SetUpdate) apply(s *domain.WorkoutSet) {
	if u.Weight != nil {
		s.Weight = *u.Weight
	}
	if u.Reps != nil {
		s.Reps = *u.Reps
	}
	if u.RPE != nil {
		rpe := *u.RPE
		s.RPE = &rpe
	}
	if u.IsWarmup != nil {
		s.IsWarmup = *u.IsWarmup
	}
	if u.IsDropset != nil {
		s.IsDropset = *u.IsDropset
	}
	if u.IsPR != nil {
		s.IsPR = *u.IsPR
	}
}

func renumberSets(ex *domain.WorkoutExercise) {
	for i := range ex.Sets {
		ex.Sets[i].SetNumber = i + 1
	}
	ex.VolumeTotal = calc.ExerciseVolume(ex.Sets)
}

func renumberExercises(w *domain.ActiveWorkout) {
	for i := range w.Exercises {
		w.Exercises[i].Order = i
	}
}

// normalize restores every structural invariant of a workout loaded from
// outside the machine.
func normalize(w *domain.ActiveWorkout) {
	renumberExercises(w)
	for i := range w.Exercises {
		renumberSets(&w.Exercises[i])
	}
	w.CurrentExerciseIndex = clampIndex(w.CurrentExerciseIndex, len(w.Exercises))
}

func clampIndex(i, n int) int {
	if n == 0 {
		return NoCurrentExercise
	}
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
