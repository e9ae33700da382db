// Package calc holds the pure volume, one-rep-max and personal record math.
// Nothing in here keeps state or touches I/O.
package calc

import (
	"math"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/domain"
)

// SetVolume is weight x reps for a single row, with no filtering.
func SetVolume(set domain.WorkoutSet) float64 {
	return set.Weight * float64(set.Reps)
}

// ExerciseVolume sums weight x reps over completed working sets.
// Warmup and incomplete sets contribute nothing.
func ExerciseVolume(sets []domain.WorkoutSet) float64 {
	var total float64
	for _, s := range sets {
		if s.Completed && !s.IsWarmup {
			total += s.Weight * float64(s.Reps)
		}
	}
	return total
}

// WorkoutVolume trusts the precomputed per-exercise totals.
func WorkoutVolume(exercises []domain.WorkoutExercise) float64 {
	var total float64
	for _, ex := range exercises {
		total += ex.VolumeTotal
	}
	return total
}

// EstimatedOneRepMax uses the Epley formula, rounded half-up to an integer.
// A single rep returns the weight unchanged.
func EstimatedOneRepMax(weight float64, reps int) float64 {
	if weight <= 0 || reps <= 0 {
		return 0
	}
	if reps == 1 {
		return weight
	}
	return math.Floor(weight*(1+float64(reps)/30) + 0.5)
}

// IsPersonalRecord reports whether weight x reps beats the estimated 1RM of
// every completed set in history. Ties are not records.
func IsPersonalRecord(weight float64, reps int, history []domain.ExerciseHistoryEntry) bool {
	candidate := EstimatedOneRepMax(weight, reps)
	if candidate == 0 {
		return false
	}
	for _, entry := range history {
		for _, s := range entry.Sets {
			if s.Completed && EstimatedOneRepMax(s.Weight, s.Reps) >= candidate {
				return false
			}
		}
	}
	return true
}

// BestOneRepMax returns the highest estimated 1RM among completed sets, or 0.
func BestOneRepMax(history []domain.ExerciseHistoryEntry) float64 {
	var best float64
	for _, entry := range history {
		for _, s := range entry.Sets {
			if !s.Completed {
				continue
			}
			if e := EstimatedOneRepMax(s.Weight, s.Reps); e > best {
				best = e
			}
		}
	}
	return best
}

// WorkoutDuration returns whole elapsed seconds between startedAt and
// completedAt. A zero completedAt means now. The result is never negative.
func WorkoutDuration(startedAt, completedAt time.Time) int64 {
	if completedAt.IsZero() {
		completedAt = time.Now()
	}
	d := int64(completedAt.Sub(startedAt) / time.Second)
	if d < 0 {
		return 0
	}
	return d
}

// CompletedSetCount counts completed sets, warmups included.
func CompletedSetCount(exercises []domain.WorkoutExercise) int {
	n := 0
	for _, ex := range exercises {
		for _, s := range ex.Sets {
			if s.Completed {
				n++
			}
		}
	}
	return n
}

func TotalSetCount(exercises []domain.WorkoutExercise) int {
	n := 0
	for _, ex := range exercises {
		n += len(ex.Sets)
	}
	return n
}

// PRCount counts sets flagged as personal records.
func PRCount(exercises []domain.WorkoutExercise) int {
	n := 0
	for _, ex := range exercises {
		for _, s := range ex.Sets {
			if s.IsPR {
				n++
			}
		}
	}
	return n
}

const week = 7 * 24 * time.Hour

// WeeklyVolume sums TotalVolume of sessions completed within the last seven days.
func WeeklyVolume(sessions []domain.WorkoutSession, now time.Time) float64 {
	var total float64
	for _, s := range sessions {
		if completedWithinWeek(s, now) {
			total += s.TotalVolume
		}
	}
	return total
}

// WeeklySessionCount counts sessions completed within the last seven days.
func WeeklySessionCount(sessions []domain.WorkoutSession, now time.Time) int {
	n := 0
	for _, s := range sessions {
		if completedWithinWeek(s, now) {
			n++
		}
	}
	return n
}

func completedWithinWeek(s domain.WorkoutSession, now time.Time) bool {
	return s.CompletedAt != nil && s.CompletedAt.After(now.Add(-week))
}
