package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SplitType tags a workout with its muscle-group focus.
type SplitType string

const (
	SplitChest  SplitType = "chest"
	SplitBack   SplitType = "back"
	SplitLegs   SplitType = "legs"
	SplitCustom SplitType = "custom"
)

// SplitTypes lists every known split in display order.
var SplitTypes = []SplitType{SplitChest, SplitBack, SplitLegs, SplitCustom}

func (s SplitType) Valid() bool {
	switch s {
	case SplitChest, SplitBack, SplitLegs, SplitCustom:
		return true
	}
	return false
}

// ParseSplitType accepts a split name in any case.
func ParseSplitType(s string) (SplitType, error) {
	split := SplitType(strings.ToLower(strings.TrimSpace(s)))
	if !split.Valid() {
		return "", fmt.Errorf("unknown split type %q", s)
	}
	return split, nil
}

// WorkoutSet is one performed or planned set of an exercise.
type WorkoutSet struct {
	SetNumber   int        `bson:"setNumber" json:"setNumber"` // 1-based, dense within the exercise
	Weight      float64    `bson:"weight" json:"weight"`
	Reps        int        `bson:"reps" json:"reps"`
	RPE         *float64   `bson:"rpe,omitempty" json:"rpe,omitempty"`
	IsWarmup    bool       `bson:"isWarmup" json:"isWarmup"`
	IsDropset   bool       `bson:"isDropset" json:"isDropset"`
	IsPR        bool       `bson:"isPR" json:"isPR"`
	Completed   bool       `bson:"completed" json:"completed"`
	CompletedAt *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// WorkoutExercise is one exercise's performance within a session.
// ExerciseName is copied from the catalog when the exercise is added and is
// never refreshed afterwards, so renames do not rewrite history.
type WorkoutExercise struct {
	ExerciseID   string       `bson:"exerciseId" json:"exerciseId"`
	ExerciseName string       `bson:"exerciseName" json:"exerciseName"`
	Order        int          `bson:"order" json:"order"` // 0-based, dense
	Sets         []WorkoutSet `bson:"sets" json:"sets"`
	VolumeTotal  float64      `bson:"volumeTotal" json:"volumeTotal"`
}

// ActiveWorkout is the single in-progress session.
type ActiveWorkout struct {
	ID                   string            `json:"id"`
	SplitType            SplitType         `json:"splitType"`
	Name                 string            `json:"name"`
	StartedAt            time.Time         `json:"startedAt"`
	Exercises            []WorkoutExercise `json:"exercises"`
	CurrentExerciseIndex int               `json:"currentExerciseIndex"` // -1 when Exercises is empty
	Revision             int64             `json:"revision"`
}

// CurrentExercise returns the exercise under the cursor, if any.
func (w *ActiveWorkout) CurrentExercise() (*WorkoutExercise, bool) {
	if w.CurrentExerciseIndex < 0 || w.CurrentExerciseIndex >= len(w.Exercises) {
		return nil, false
	}
	return &w.Exercises[w.CurrentExerciseIndex], true
}

// Clone returns a deep copy, so callers can never alias engine state.
func (w ActiveWorkout) Clone() ActiveWorkout {
	w.Exercises = CloneExercises(w.Exercises)
	return w
}

// CloneExercises deep-copies exercises and their sets.
func CloneExercises(exercises []WorkoutExercise) []WorkoutExercise {
	if exercises == nil {
		return nil
	}
	out := make([]WorkoutExercise, len(exercises))
	for i, ex := range exercises {
		ex.Sets = CloneSets(ex.Sets)
		out[i] = ex
	}
	return out
}

// CloneSets deep-copies sets, including the optional pointer fields.
func CloneSets(sets []WorkoutSet) []WorkoutSet {
	if sets == nil {
		return nil
	}
	out := make([]WorkoutSet, len(sets))
	for i, s := range sets {
		if s.RPE != nil {
			rpe := *s.RPE
			s.RPE = &rpe
		}
		if s.CompletedAt != nil {
			at := *s.CompletedAt
			s.CompletedAt = &at
		}
		out[i] = s
	}
	return out
}

// WorkoutSession is the immutable record of a completed workout, as stored by
// the session repository.
type WorkoutSession struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	WorkoutID    string             `bson:"workoutId" json:"workoutId"` // ActiveWorkout.ID the session was frozen from
	TemplateID   string             `bson:"templateId,omitempty" json:"templateId,omitempty"`
	SplitType    SplitType          `bson:"splitType" json:"splitType"`
	Name         string             `bson:"name" json:"name"`
	StartedAt    time.Time          `bson:"startedAt" json:"startedAt"`
	CompletedAt  *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"` // stamped by the store
	Duration     int64              `bson:"duration" json:"duration"`                           // seconds
	TotalVolume  float64            `bson:"totalVolume" json:"totalVolume"`
	Exercises    []WorkoutExercise  `bson:"exercises" json:"exercises"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	AICommentary string             `bson:"aiCommentary,omitempty" json:"aiCommentary,omitempty"`
}

// PendingSession is a finalized session that has been frozen locally but not
// yet confirmed by the remote store.
type PendingSession struct {
	Session   WorkoutSession `json:"session"`
	Revision  int64          `json:"revision"` // ActiveWorkout.Revision at freeze time
	FrozenAt  time.Time      `json:"frozenAt"`
	Attempts  int            `json:"attempts"`
	LastError string         `json:"lastError,omitempty"`
}

// ExerciseHistoryEntry is one exercise's performance in one past session.
type ExerciseHistoryEntry struct {
	SessionID   primitive.ObjectID `json:"sessionId"`
	Date        time.Time          `json:"date"`
	Sets        []WorkoutSet       `json:"sets"`
	VolumeTotal float64            `json:"volumeTotal"`
}

// RestTimerState is the visible state of the rest countdown. It is never persisted.
type RestTimerState struct {
	Running  bool `json:"running"`
	Seconds  int  `json:"seconds"`
	Duration int  `json:"duration"`
}

// Expired reports the terminal-but-visible state after a natural countdown end.
func (s RestTimerState) Expired() bool {
	return !s.Running && s.Seconds == 0
}
