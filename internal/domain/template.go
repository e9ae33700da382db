// internal/domain/template.go
package domain

// Template is a predefined workout layout a session can be started from.
type Template struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"` // e.g., "Chest Day"
	SplitType SplitType          `json:"splitType"`
	Exercises []TemplateExercise `json:"exercises"`
}

// TemplateExercise is one planned exercise of a template.
type TemplateExercise struct {
	ExerciseID   string `json:"exerciseId"`
	ExerciseName string `json:"exerciseName"`
	Order        int    `json:"order"`
	DefaultSets  int    `json:"defaultSets"`
	DefaultReps  int    `json:"defaultReps"`
	Notes        string `json:"notes,omitempty"`
}

// DefaultTemplates are the built-in split templates.
var DefaultTemplates = []Template{
	{
		ID:        "chest-day",
		Name:      "Chest Day",
		SplitType: SplitChest,
		Exercises: []TemplateExercise{
			{ExerciseID: "flat-barbell-bench-press", ExerciseName: "Flat Barbell Bench Press", Order: 0, DefaultSets: 4, DefaultReps: 8},
			{ExerciseID: "incline-dumbbell-press", ExerciseName: "Incline Dumbbell Press", Order: 1, DefaultSets: 3, DefaultReps: 10},
			{ExerciseID: "cable-flyes", ExerciseName: "Cable Flyes", Order: 2, DefaultSets: 3, DefaultReps: 12},
			{ExerciseID: "dips", ExerciseName: "Dips", Order: 3, DefaultSets: 3, DefaultReps: 10},
			{ExerciseID: "pec-deck", ExerciseName: "Pec Deck", Order: 4, DefaultSets: 3, DefaultReps: 12},
		},
	},
	{
		ID:        "back-day",
		Name:      "Back Day",
		SplitType: SplitBack,
		Exercises: []TemplateExercise{
			{ExerciseID: "barbell-row", ExerciseName: "Barbell Row", Order: 0, DefaultSets: 4, DefaultReps: 8},
			{ExerciseID: "pull-ups", ExerciseName: "Pull-ups", Order: 1, DefaultSets: 3, DefaultReps: 8},
			{ExerciseID: "seated-cable-row", ExerciseName: "Seated Cable Row", Order: 2, DefaultSets: 3, DefaultReps: 10},
			{ExerciseID: "lat-pulldown", ExerciseName: "Lat Pulldown", Order: 3, DefaultSets: 3, DefaultReps: 10},
			{ExerciseID: "face-pulls", ExerciseName: "Face Pulls", Order: 4, DefaultSets: 3, DefaultReps: 15},
		},
	},
	{
		ID:        "leg-day",
		Name:      "Leg Day",
		SplitType: SplitLegs,
		Exercises: []TemplateExercise{
			{ExerciseID: "barbell-squat", ExerciseName: "Barbell Squat", Order: 0, DefaultSets: 4, DefaultReps: 8},
			{ExerciseID: "romanian-deadlift", ExerciseName: "Romanian Deadlift", Order: 1, DefaultSets: 3, DefaultReps: 10},
			{ExerciseID: "leg-press", ExerciseName: "Leg Press", Order: 2, DefaultSets: 3, DefaultReps: 12},
			{ExerciseID: "leg-curl", ExerciseName: "Leg Curl", Order: 3, DefaultSets: 3, DefaultReps: 12},
			{ExerciseID: "calf-raises", ExerciseName: "Calf Raises", Order: 4, DefaultSets: 4, DefaultReps: 15},
		},
	},
}

// TemplateFor returns the built-in template of a split, if there is one.
func TemplateFor(split SplitType) (*Template, bool) {
	for i := range DefaultTemplates {
		if DefaultTemplates[i].SplitType == split {
			return &DefaultTemplates[i], true
		}
	}
	return nil, false
}
