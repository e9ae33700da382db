// Package catalog searches the built-in exercise list together with a
// user's custom exercises.
package catalog

import (
	"strings"

	"github.com/aurenz-max/LiftTrack/internal/domain"
)

// Filter narrows a search. Zero fields match everything.
type Filter struct {
	Query     string
	Muscle    domain.MuscleGroup
	Equipment domain.Equipment
}

// Lookup finds a built-in exercise by ID.
func Lookup(id string) (domain.Exercise, bool) {
	for _, ex := range Builtin {
		if ex.ID == id {
			return ex, true
		}
	}
	return domain.Exercise{}, false
}

// Search returns exercises matching every set field of f, in input order.
// Query matches a case-insensitive substring of the name or any alias; Muscle
// matches primary or secondary muscles.
func Search(exercises []domain.Exercise, f Filter) []domain.Exercise {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := []domain.Exercise{}
	for _, ex := range exercises {
		if query != "" && !matchesQuery(ex, query) {
			continue
		}
		if f.Muscle != "" && !trains(ex, f.Muscle) {
			continue
		}
		if f.Equipment != "" && ex.Equipment != f.Equipment {
			continue
		}
		out = append(out, ex)
	}
	return out
}

func matchesQuery(ex domain.Exercise, query string) bool {
	if strings.Contains(strings.ToLower(ex.Name), query) {
		return true
	}
	for _, a := range ex.Aliases {
		if strings.Contains(strings.ToLower(a), query) {
			return true
		}
	}
	return false
}

func trains(ex domain.Exercise, muscle domain.MuscleGroup) bool {
	for _, mg := range ex.PrimaryMuscles {
		if mg == muscle {
			return true
		}
	}
	for _, mg := range ex.SecondaryMuscles {
		if mg == muscle {
			return true
		}
	}
	return false
}
