package workout_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/aurenz-max/LiftTrack/internal/workout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC)

func newTestMachine(opts ...workout.Option) *workout.Machine {
	opts = append([]workout.Option{
		workout.WithClock(func() time.Time { return testStart }),
		workout.WithIDGenerator(func() string { return "w-1" }),
	}, opts...)
	return workout.NewMachine(opts...)
}

func benchSeed() []workout.ExerciseSeed {
	return []workout.ExerciseSeed{{ExerciseID: "bench", ExerciseName: "Bench Press", DefaultSets: 3, DefaultReps: 8}}
}

func ptr[T any](v T) *T { return &v }

func active(t *testing.T, m *workout.Machine) domain.ActiveWorkout {
	t.Helper()
	w, ok := m.Active()
	require.True(t, ok)
	return w
}

func assertDense(t *testing.T, w domain.ActiveWorkout) {
	t.Helper()
	for i, ex := range w.Exercises {
		assert.Equal(t, i, ex.Order)
		for j, s := range ex.Sets {
			assert.Equal(t, j+1, s.SetNumber)
		}
	}
}

func TestMachine_Start(t *testing.T) {
	m := newTestMachine()
	assert.Equal(t, workout.Idle, m.State())

	require.True(t, m.Start(domain.SplitChest, "Chest Day", benchSeed()))
	assert.Equal(t, workout.InProgress, m.State())

	w := active(t, m)
	assert.Equal(t, "w-1", w.ID)
	assert.Equal(t, testStart, w.StartedAt)
	assert.Equal(t, 0, w.CurrentExerciseIndex)
	require.Len(t, w.Exercises, 1)
	ex := w.Exercises[0]
	assert.Equal(t, "Bench Press", ex.ExerciseName)
	assert.Equal(t, 0.0, ex.VolumeTotal)
	require.Len(t, ex.Sets, 3)
	for i, s := range ex.Sets {
		assert.Equal(t, i+1, s.SetNumber)
		assert.Equal(t, 8, s.Reps)
		assert.Equal(t, 0.0, s.Weight)
		assert.False(t, s.Completed)
	}

	assert.False(t, m.Start(domain.SplitBack, "Back Day", nil), "second start must not replace the workout")
	assert.Equal(t, "Chest Day", active(t, m).Name)
}

func TestMachine_StartWithoutSeeds(t *testing.T) {
	m := newTestMachine()
	require.True(t, m.Start(domain.SplitCustom, "Freestyle", nil))
	w := active(t, m)
	assert.Empty(t, w.Exercises)
	assert.Equal(t, workout.NoCurrentExercise, w.CurrentExerciseIndex)
}

func TestBuildDefaultSets_PriorSetsByPosition(t *testing.T) {
	prior := []domain.WorkoutSet{
		{Weight: 100, Reps: 5, IsPR: true, Completed: true},
		{Weight: 95, Reps: 6},
	}
	sets := workout.BuildDefaultSets(3, 10, prior)
	require.Len(t, sets, 3)
	assert.Equal(t, domain.WorkoutSet{SetNumber: 1, Weight: 100, Reps: 5}, sets[0])
	assert.Equal(t, domain.WorkoutSet{SetNumber: 2, Weight: 95, Reps: 6}, sets[1])
	assert.Equal(t, domain.WorkoutSet{SetNumber: 3, Weight: 0, Reps: 10}, sets[2])
	assert.Empty(t, workout.BuildDefaultSets(-1, 10, nil))
}

func TestMachine_UpdateAndCompleteSet(t *testing.T) {
	m := newTestMachine()
	require.True(t, m.Start(domain.SplitChest, "Chest Day", benchSeed()))

	require.True(t, m.UpdateSet(0, 0, workout.SetUpdate{Weight: ptr(100.0), Reps: ptr(8)}))
	assert.Equal(t, 0.0, active(t, m).Exercises[0].VolumeTotal, "incomplete sets carry no volume")

	doneAt := testStart.Add(3 * time.Minute)
	require.True(t, m.CompleteSet(0, 0, doneAt, false))
	w := active(t, m)
	assert.Equal(t, 800.0, w.Exercises[0].VolumeTotal)
	require.NotNil(t, w.Exercises[0].Sets[0].CompletedAt)
	assert.Equal(t, doneAt, *w.Exercises[0].Sets[0].CompletedAt)

	rev := w.Revision
	assert.False(t, m.CompleteSet(0, 0, doneAt.Add(time.Minute), false))
	w = active(t, m)
	assert.Equal(t, 800.0, w.Exercises[0].VolumeTotal)
	assert.Equal(t, doneAt, *w.Exercises[0].Sets[0].CompletedAt)
	assert.Equal(t, rev, w.Revision)

	assert.False(t, m.UpdateSet(0, 0, workout.SetUpdate{Weight: ptr(500.0)}), "completed sets are frozen")
	assert.Equal(t, 100.0, active(t, m).Exercises[0].Sets[0].Weight)
}

func TestMachine_UpdateSet_Rejects(t *testing.T) {
	m := newTestMachine()
	require.True(t, m.Start(domain.SplitChest, "Chest Day", benchSeed()))

	assert.False(t, m.UpdateSet(0, 0, workout.SetUpdate{}))
	assert.False(t, m.UpdateSet(0, 0, workout.SetUpdate{Weight: ptr(-5.0)}))
	assert.False(t, m.UpdateSet(0, 0, workout.SetUpdate{RPE: ptr(11.0)}))
	assert.False(t, m.UpdateSet(3, 0, workout.SetUpdate{Reps: ptr(5)}))
	assert.False(t, m.UpdateSet(0, 9, workout.SetUpdate{Reps: ptr(5)}))

	require.True(t, m.UpdateSet(0, 1, workout.SetUpdate{IsWarmup: ptr(true), Weight: ptr(60.0), RPE: ptr(6.5)}))
	require.True(t, m.CompleteSet(0, 1, time.Time{}, false))
	w := active(t, m)
	assert.Equal(t, 0.0, w.Exercises[0].VolumeTotal, "warmups carry no volume")
	assert.Equal(t, 6.5, *w.Exercises[0].Sets[1].RPE)
	assert.Equal(t, testStart, *w.Exercises[0].Sets[1].CompletedAt)
}

func TestMachine_AddAndRemoveSets(t *testing.T) {
	m := newTestMachine()
	require.True(t, m.Start(domain.SplitChest, "Chest Day", benchSeed()))
	require.True(t, m.UpdateSet(0, 2, workout.SetUpdate{Weight: ptr(90.0), Reps: ptr(6)}))

	require.True(t, m.AddSet(0))
	w := active(t, m)
	require.Len(t, w.Exercises[0].Sets, 4)
	assert.Equal(t, 90.0, w.Exercises[0].Sets[3].Weight)
	assert.Equal(t, 6, w.Exercises[0].Sets[3].Reps)
	assert.Equal(t, 4, w.Exercises[0].Sets[3].SetNumber)

	require.True(t, m.CompleteSet(0, 3, time.Time{}, false))
	require.True(t, m.RemoveSet(0, 0))
	require.True(t, m.RemoveSet(0, 1))
	w = active(t, m)
	require.Len(t, w.Exercises[0].Sets, 2)
	assertDense(t, w)
	assert.Equal(t, 540.0, w.Exercises[0].VolumeTotal)

	assert.False(t, m.RemoveSet(0, 2))
	assert.False(t, m.AddSet(-1))

	require.True(t, m.RemoveSet(0, 0))
	require.True(t, m.RemoveSet(0, 0))
	require.True(t, m.AddSet(0))
	w = active(t, m)
	assert.Equal(t, domain.WorkoutSet{SetNumber: 1, Weight: 0, Reps: 10}, w.Exercises[0].Sets[0])
}

func TestMachine_CompleteSetAsRecord(t *testing.T) {
	m := newTestMachine()
	require.True(t, m.Start(domain.SplitChest, "Chest Day", benchSeed()))
	rev := active(t, m).Revision

	require.True(t, m.CompleteSet(0, 0, time.Time{}, true))
	w := active(t, m)
	assert.True(t, w.Exercises[0].Sets[0].Completed)
	assert.True(t, w.Exercises[0].Sets[0].IsPR)
	assert.Equal(t, rev+1, w.Revision, "flag and completion are one change")

	// a completion that does not apply flags nothing
	assert.False(t, m.CompleteSet(0, 9, time.Time{}, true))
	require.True(t, m.CompleteSet(0, 1, time.Time{}, false))
	assert.False(t, m.CompleteSet(0, 1, time.Time{}, true))
	w = active(t, m)
	assert.False(t, w.Exercises[0].Sets[1].IsPR)
	assert.False(t, w.Exercises[0].Sets[2].IsPR)
	assert.Equal(t, rev+2, w.Revision)
}

func TestMachine_ExerciseList(t *testing.T) {
	m := newTestMachine()
	require.True(t, m.Start(domain.SplitChest, "Chest Day", benchSeed()))

	require.True(t, m.AddExercise("dips", "Dips", 0, 0))
	w := active(t, m)
	require.Len(t, w.Exercises, 2)
	assert.Equal(t, 1, w.CurrentExerciseIndex)
	assert.Len(t, w.Exercises[1].Sets, 3)
	assert.Equal(t, 10, w.Exercises[1].Sets[0].Reps)

	require.True(t, m.AddExercise("flyes", "Cable Flyes", 2, 12))
	require.True(t, m.ReorderExercise(2, 0))
	w = active(t, m)
	assert.Equal(t, []string{"flyes", "bench", "dips"}, ids(w))
	assert.Equal(t, 0, w.CurrentExerciseIndex, "cursor follows the moved exercise")
	assertDense(t, w)

	require.True(t, m.ReorderExercise(0, 99))
	assert.Equal(t, []string{"bench", "dips", "flyes"}, ids(active(t, m)))
	assert.False(t, m.ReorderExercise(5, 0))
	assert.False(t, m.ReorderExercise(1, 1))

	require.True(t, m.RemoveExercise(2))
	w = active(t, m)
	assert.Equal(t, []string{"bench", "dips"}, ids(w))
	assert.Equal(t, 1, w.CurrentExerciseIndex)
	assertDense(t, w)

	assert.False(t, m.RemoveExercise(-1))
	assert.False(t, m.RemoveExercise(2))
}

func TestMachine_ReorderKeepsCursorOnExercise(t *testing.T) {
	m := newTestMachine()
	require.True(t, m.Start(domain.SplitChest, "Chest Day", []workout.ExerciseSeed{
		{ExerciseID: "a", ExerciseName: "A"},
		{ExerciseID: "b", ExerciseName: "B"},
		{ExerciseID: "c", ExerciseName: "C"},
	}))
	require.True(t, m.SetCurrentExerciseIndex(1))

	current := func() string {
		w := active(t, m)
		return w.Exercises[w.CurrentExerciseIndex].ExerciseID
	}

	require.True(t, m.ReorderExercise(0, 2))
	assert.Equal(t, []string{"b", "c", "a"}, ids(active(t, m)))
	assert.Equal(t, "b", current())

	require.True(t, m.ReorderExercise(2, 0))
	assert.Equal(t, []string{"a", "b", "c"}, ids(active(t, m)))
	assert.Equal(t, "b", current())

	require.True(t, m.ReorderExercise(2, 1))
	assert.Equal(t, []string{"a", "c", "b"}, ids(active(t, m)))
	assert.Equal(t, "b", current())

	// a move that does not cross the cursor leaves it alone
	require.True(t, m.ReorderExercise(0, 1))
	assert.Equal(t, []string{"c", "a", "b"}, ids(active(t, m)))
	assert.Equal(t, "b", current())
}

func TestMachine_RemoveLastExercise(t *testing.T) {
	m := newTestMachine()
	require.True(t, m.Start(domain.SplitChest, "Chest Day", benchSeed()))
	require.True(t, m.RemoveExercise(0))

	w := active(t, m)
	assert.Empty(t, w.Exercises)
	assert.Equal(t, workout.NoCurrentExercise, w.CurrentExerciseIndex)
	assert.False(t, m.SetCurrentExerciseIndex(0))

	require.True(t, m.AddExercise("bench", "Bench Press", 3, 8))
	assert.Equal(t, 0, active(t, m).CurrentExerciseIndex)
}

func TestMachine_SetCurrentExerciseIndexClamps(t *testing.T) {
	m := newTestMachine()
	require.True(t, m.Start(domain.SplitChest, "Chest Day", benchSeed()))
	require.True(t, m.AddExercise("dips", "Dips", 3, 10))

	require.True(t, m.SetCurrentExerciseIndex(-4))
	assert.Equal(t, 0, active(t, m).CurrentExerciseIndex)
	require.True(t, m.SetCurrentExerciseIndex(40))
	assert.Equal(t, 1, active(t, m).CurrentExerciseIndex)
	assert.False(t, m.SetCurrentExerciseIndex(1))
}

func TestMachine_IdleIgnoresMutations(t *testing.T) {
	m := newTestMachine()
	assert.False(t, m.AddExercise("bench", "Bench", 3, 10))
	assert.False(t, m.AddSet(0))
	assert.False(t, m.CompleteSet(0, 0, time.Time{}, false))
	assert.False(t, m.SetCurrentExerciseIndex(0))
	_, ok := m.End()
	assert.False(t, ok)
	m.Discard()
	assert.Equal(t, workout.Idle, m.State())
}

type countingStopper struct{ stops int }

func (s *countingStopper) Stop() { s.stops++ }

func TestMachine_EndAndDiscard(t *testing.T) {
	timer := &countingStopper{}
	m := newTestMachine(workout.WithRestTimer(timer))
	require.True(t, m.Start(domain.SplitChest, "Chest Day", benchSeed()))
	require.True(t, m.UpdateSet(0, 0, workout.SetUpdate{Weight: ptr(100.0)}))

	snapshot, ok := m.End()
	require.True(t, ok)
	assert.Equal(t, 100.0, snapshot.Exercises[0].Sets[0].Weight)
	assert.Equal(t, workout.Idle, m.State())
	assert.Equal(t, 1, timer.stops)

	require.True(t, m.Start(domain.SplitBack, "Back Day", nil))
	m.Discard()
	assert.Equal(t, workout.Idle, m.State())
	assert.Equal(t, 2, timer.stops)
}

func TestMachine_ActiveReturnsCopy(t *testing.T) {
	m := newTestMachine()
	require.True(t, m.Start(domain.SplitChest, "Chest Day", benchSeed()))

	w := active(t, m)
	w.Exercises[0].Sets[0].Weight = 999
	w.Exercises[0].ExerciseName = "changed"
	again := active(t, m)
	assert.Equal(t, 0.0, again.Exercises[0].Sets[0].Weight)
	assert.Equal(t, "Bench Press", again.Exercises[0].ExerciseName)
}

func TestMachine_Restore(t *testing.T) {
	m := newTestMachine()
	broken := domain.ActiveWorkout{
		ID:        "saved",
		SplitType: domain.SplitLegs,
		Name:      "Leg Day",
		StartedAt: testStart.Add(-time.Hour),
		Exercises: []domain.WorkoutExercise{
			{ExerciseID: "squat", Order: 7, Sets: []domain.WorkoutSet{
				{SetNumber: 4, Weight: 100, Reps: 5, Completed: true},
				{SetNumber: 9, Weight: 100, Reps: 5},
			}},
		},
		CurrentExerciseIndex: 3,
		Revision:             12,
	}
	require.True(t, m.Restore(broken))

	w := active(t, m)
	assert.Equal(t, "saved", w.ID)
	assert.Equal(t, 0, w.CurrentExerciseIndex)
	assert.Equal(t, 500.0, w.Exercises[0].VolumeTotal)
	assert.Equal(t, int64(12), w.Revision)
	assertDense(t, w)

	assert.False(t, m.Restore(broken), "restore only applies while idle")
}

func TestMachine_Subscribe(t *testing.T) {
	m := newTestMachine()
	var seen []*domain.ActiveWorkout
	unsubscribe := m.Subscribe(func(w *domain.ActiveWorkout) {
		seen = append(seen, w)
	})

	require.True(t, m.Start(domain.SplitChest, "Chest Day", benchSeed()))
	require.True(t, m.AddSet(0))
	assert.False(t, m.RemoveSet(0, 42))
	m.Discard()

	require.Len(t, seen, 3)
	assert.Equal(t, int64(1), seen[0].Revision)
	assert.Equal(t, int64(2), seen[1].Revision)
	assert.Len(t, seen[1].Exercises[0].Sets, 4)
	assert.Nil(t, seen[2])

	seen[1].Exercises[0].Sets[0].Weight = 1
	unsubscribe()
	require.True(t, m.Start(domain.SplitChest, "Chest Day", benchSeed()))
	assert.Len(t, seen, 3)
	assert.Equal(t, 0.0, active(t, m).Exercises[0].Sets[0].Weight)
}

func TestMachine_ConcurrentMutations(t *testing.T) {
	m := workout.NewMachine()
	require.True(t, m.Start(domain.SplitChest, "Chest Day", benchSeed()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.AddSet(0)
			m.Active()
		}()
	}
	wg.Wait()

	w := active(t, m)
	assert.Len(t, w.Exercises[0].Sets, 23)
	assert.Equal(t, int64(21), w.Revision)
	assertDense(t, w)
}

func ids(w domain.ActiveWorkout) []string {
	out := make([]string, len(w.Exercises))
	for i, ex := range w.Exercises {
		out[i] = ex.ExerciseID
	}
	return out
}
