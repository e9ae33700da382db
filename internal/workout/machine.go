// Package workout owns the single in-progress workout and every mutation of it.
//
// A Machine is either Idle or InProgress. Each operation replaces the whole
// ActiveWorkout under one lock, so readers never see a half-applied change.
// Operations that cannot apply (wrong state, index out of range, completed
// set) return false and leave the workout untouched.
package workout

import (
	"sync"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/calc"
	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/google/uuid"
)

// NoCurrentExercise is the cursor value of a workout with no exercises.
const NoCurrentExercise = -1

type State int

const (
	Idle State = iota
	InProgress
)

func (s State) String() string {
	if s == InProgress {
		return "in_progress"
	}
	return "idle"
}

// Listener receives a copy of the workout after every applied change, or nil
// once the machine returns to Idle. Listeners must not mutate the machine.
type Listener func(w *domain.ActiveWorkout)

// Stopper is the part of the rest timer the machine clears on End and Discard.
type Stopper interface {
	Stop()
}

// Engine is the contract the application layer drives.
type Engine interface {
	Start(split domain.SplitType, name string, seeds []ExerciseSeed) bool
	End() (domain.ActiveWorkout, bool)
	Discard()
	Restore(w domain.ActiveWorkout) bool

	SetCurrentExerciseIndex(i int) bool
	AddExercise(exerciseID, exerciseName string, defaultSets, defaultReps int) bool
	RemoveExercise(i int) bool
	ReorderExercise(from, to int) bool

	UpdateSet(ei, si int, update SetUpdate) bool
	CompleteSet(ei, si int, at time.Time, isPR bool) bool
	AddSet(ei int) bool
	RemoveSet(ei, si int) bool

	Active() (domain.ActiveWorkout, bool)
	State() State
	Subscribe(l Listener) (unsubscribe func())
}

type Option func(*Machine)

// WithRestTimer attaches the timer that End and Discard stop.
func WithRestTimer(t Stopper) Option {
	return func(m *Machine) { m.timer = t }
}

func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(m *Machine) { m.newID = newID }
}

type Machine struct {
	mu     sync.Mutex
	active *domain.ActiveWorkout

	// notifyMu keeps listener calls in mutation order without holding mu.
	notifyMu   sync.Mutex
	listeners  map[int]Listener
	nextListen int

	timer Stopper
	now   func() time.Time
	newID func() string
}

var _ Engine = (*Machine)(nil)

func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		listeners: make(map[int]Listener),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return Idle
	}
	return InProgress
}

// Active returns a deep copy of the in-progress workout.
func (m *Machine) Active() (domain.ActiveWorkout, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return domain.ActiveWorkout{}, false
	}
	return m.active.Clone(), true
}

func (m *Machine) Subscribe(l Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextListen
	m.nextListen++
	m.listeners[id] = l
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Start begins a workout. It is ignored while another workout is in progress.
func (m *Machine) Start(split domain.SplitType, name string, seeds []ExerciseSeed) bool {
	m.mu.Lock()
	if m.active != nil {
		m.mu.Unlock()
		return false
	}

	w := domain.ActiveWorkout{
		ID:                   m.newID(),
		SplitType:            split,
		Name:                 name,
		StartedAt:            m.now(),
		Exercises:            make([]domain.WorkoutExercise, 0, len(seeds)),
		CurrentExerciseIndex: NoCurrentExercise,
		Revision:             1,
	}
	for i, seed := range seeds {
		ex := domain.WorkoutExercise{
			ExerciseID:   seed.ExerciseID,
			ExerciseName: seed.ExerciseName,
			Order:        i,
			Sets:         BuildDefaultSets(seed.DefaultSets, seed.DefaultReps, seed.PriorSets),
		}
		ex.VolumeTotal = calc.ExerciseVolume(ex.Sets)
		w.Exercises = append(w.Exercises, ex)
	}
	if len(w.Exercises) > 0 {
		w.CurrentExerciseIndex = 0
	}
	m.active = &w
	m.commit()
	return true
}

// End hands back the final snapshot and returns to Idle. It does not persist
// anything; the caller turns the snapshot into a session.
func (m *Machine) End() (domain.ActiveWorkout, bool) {
	m.mu.Lock()
	if m.active == nil {
		m.mu.Unlock()
		return domain.ActiveWorkout{}, false
	}
	snapshot := m.active.Clone()
	m.active = nil
	m.commit()
	m.stopTimer()
	return snapshot, true
}

// Discard drops the workout unconditionally. The data is unrecoverable.
func (m *Machine) Discard() {
	m.mu.Lock()
	if m.active == nil {
		m.mu.Unlock()
		m.stopTimer()
		return
	}
	m.active = nil
	m.commit()
	m.stopTimer()
}

// Restore loads a previously persisted workout while Idle, repairing any
// broken numbering, volume or cursor on the way in.
func (m *Machine) Restore(w domain.ActiveWorkout) bool {
	m.mu.Lock()
	if m.active != nil {
		m.mu.Unlock()
		return false
	}
	restored := w.Clone()
	if restored.ID == "" {
		restored.ID = m.newID()
	}
	if restored.StartedAt.IsZero() {
		restored.StartedAt = m.now()
	}
	if restored.Exercises == nil {
		restored.Exercises = []domain.WorkoutExercise{}
	}
	normalize(&restored)
	m.active = &restored
	m.commit()
	return true
}

// SetCurrentExerciseIndex moves the cursor, clamping to the exercise list.
func (m *Machine) SetCurrentExerciseIndex(i int) bool {
	return m.mutate(func(w *domain.ActiveWorkout) bool {
		if len(w.Exercises) == 0 {
			return false
		}
		i = clampIndex(i, len(w.Exercises))
		if i == w.CurrentExerciseIndex {
			return false
		}
		w.CurrentExerciseIndex = i
		return true
	})
}

// AddExercise appends an exercise and moves the cursor to it. Non-positive
// set and rep counts fall back to 3 x 10.
func (m *Machine) AddExercise(exerciseID, exerciseName string, defaultSets, defaultReps int) bool {
	if defaultSets <= 0 {
		defaultSets = DefaultSetCount
	}
	if defaultReps <= 0 {
		defaultReps = DefaultReps
	}
	return m.mutate(func(w *domain.ActiveWorkout) bool {
		w.Exercises = append(w.Exercises, domain.WorkoutExercise{
			ExerciseID:   exerciseID,
			ExerciseName: exerciseName,
			Order:        len(w.Exercises),
			Sets:         BuildDefaultSets(defaultSets, defaultReps, nil),
		})
		w.CurrentExerciseIndex = len(w.Exercises) - 1
		return true
	})
}

// RemoveExercise drops the exercise at i. Removing the last one leaves the
// cursor at NoCurrentExercise.
func (m *Machine) RemoveExercise(i int) bool {
	return m.mutate(func(w *domain.ActiveWorkout) bool {
		if i < 0 || i >= len(w.Exercises) {
			return false
		}
		w.Exercises = append(w.Exercises[:i], w.Exercises[i+1:]...)
		renumberExercises(w)
		w.CurrentExerciseIndex = clampIndex(w.CurrentExerciseIndex, len(w.Exercises))
		return true
	})
}

// ReorderExercise removes the exercise at from and inserts it at to.
// An out-of-range to is clamped to the ends of the list. The cursor follows
// the exercise it was on.
func (m *Machine) ReorderExercise(from, to int) bool {
	return m.mutate(func(w *domain.ActiveWorkout) bool {
		n := len(w.Exercises)
		if from < 0 || from >= n {
			return false
		}
		to = clampIndex(to, n)
		if from == to {
			return false
		}
		moved := w.Exercises[from]
		rest := append(w.Exercises[:from:from], w.Exercises[from+1:]...)
		exercises := make([]domain.WorkoutExercise, 0, n)
		exercises = append(exercises, rest[:to]...)
		exercises = append(exercises, moved)
		exercises = append(exercises, rest[to:]...)
		w.Exercises = exercises
		renumberExercises(w)
		// the cursor stays on the exercise it pointed at
		switch cur := w.CurrentExerciseIndex; {
		case cur == from:
			w.CurrentExerciseIndex = to
		case from < cur && cur <= to:
			w.CurrentExerciseIndex--
		case to <= cur && cur < from:
			w.CurrentExerciseIndex++
		}
		return true
	})
}

// UpdateSet applies a partial edit. Completed sets are frozen, so edits to
// them are dropped, as are negative weights or reps.
func (m *Machine) UpdateSet(ei, si int, update SetUpdate) bool {
	if update.empty() || !update.valid() {
		return false
	}
	return m.mutateSet(ei, si, func(ex *domain.WorkoutExercise, s *domain.WorkoutSet) bool {
		if s.Completed {
			return false
		}
		update.apply(s)
		ex.VolumeTotal = calc.ExerciseVolume(ex.Sets)
		return true
	})
}

// CompleteSet marks a set done and stamps it with at, or now when at is zero.
// isPR flags the set as a personal record in the same change. Completing an
// already completed set changes nothing.
func (m *Machine) CompleteSet(ei, si int, at time.Time, isPR bool) bool {
	if at.IsZero() {
		at = m.now()
	}
	return m.mutateSet(ei, si, func(ex *domain.WorkoutExercise, s *domain.WorkoutSet) bool {
		if s.Completed {
			return false
		}
		s.Completed = true
		s.CompletedAt = &at
		if isPR {
			s.IsPR = true
		}
		ex.VolumeTotal = calc.ExerciseVolume(ex.Sets)
		return true
	})
}

// AddSet appends a set copying the previous set's weight and reps.
func (m *Machine) AddSet(ei int) bool {
	return m.mutate(func(w *domain.ActiveWorkout) bool {
		if ei < 0 || ei >= len(w.Exercises) {
			return false
		}
		ex := &w.Exercises[ei]
		next := domain.WorkoutSet{SetNumber: len(ex.Sets) + 1, Reps: DefaultReps}
		if n := len(ex.Sets); n > 0 {
			next.Weight = ex.Sets[n-1].Weight
			next.Reps = ex.Sets[n-1].Reps
		}
		ex.Sets = append(ex.Sets, next)
		return true
	})
}

func (m *Machine) RemoveSet(ei, si int) bool {
	return m.mutate(func(w *domain.ActiveWorkout) bool {
		if ei < 0 || ei >= len(w.Exercises) {
			return false
		}
		ex := &w.Exercises[ei]
		if si < 0 || si >= len(ex.Sets) {
			return false
		}
		ex.Sets = append(ex.Sets[:si], ex.Sets[si+1:]...)
		renumberSets(ex)
		return true
	})
}

func (m *Machine) mutateSet(ei, si int, fn func(ex *domain.WorkoutExercise, s *domain.WorkoutSet) bool) bool {
	return m.mutate(func(w *domain.ActiveWorkout) bool {
		if ei < 0 || ei >= len(w.Exercises) {
			return false
		}
		ex := &w.Exercises[ei]
		if si < 0 || si >= len(ex.Sets) {
			return false
		}
		return fn(ex, &ex.Sets[si])
	})
}

// mutate runs fn against a private copy and swaps it in only if fn applied.
func (m *Machine) mutate(fn func(w *domain.ActiveWorkout) bool) bool {
	m.mu.Lock()
	if m.active == nil {
		m.mu.Unlock()
		return false
	}
	next := m.active.Clone()
	if !fn(&next) {
		m.mu.Unlock()
		return false
	}
	next.Revision++
	m.active = &next
	m.commit()
	return true
}

// commit must be called with mu held; it releases mu and notifies listeners.
func (m *Machine) commit() {
	var snapshot *domain.ActiveWorkout
	if m.active != nil {
		c := m.active.Clone()
		snapshot = &c
	}
	listeners := make([]Listener, 0, len(m.listeners))
	for i := 0; i < m.nextListen; i++ {
		if l, ok := m.listeners[i]; ok {
			listeners = append(listeners, l)
		}
	}
	m.notifyMu.Lock()
	m.mu.Unlock()
	defer m.notifyMu.Unlock()

	for _, l := range listeners {
		if snapshot == nil {
			l(nil)
			continue
		}
		c := snapshot.Clone()
		l(&c)
	}
}

func (m *Machine) stopTimer() {
	if m.timer != nil {
		m.timer.Stop()
	}
}
