// internal/domain/exercise.go
package domain

import (
	"time"
)

type MuscleGroup string

const (
	MuscleChest      MuscleGroup = "chest"
	MuscleUpperBack  MuscleGroup = "upper_back"
	MuscleLats       MuscleGroup = "lats"
	MuscleTraps      MuscleGroup = "traps"
	MuscleFrontDelts MuscleGroup = "front_delts"
	MuscleSideDelts  MuscleGroup = "side_delts"
	MuscleRearDelts  MuscleGroup = "rear_delts"
	MuscleBiceps     MuscleGroup = "biceps"
	MuscleTriceps    MuscleGroup = "triceps"
	MuscleForearms   MuscleGroup = "forearms"
	MuscleQuads      MuscleGroup = "quads"
	MuscleHamstrings MuscleGroup = "hamstrings"
	MuscleGlutes     MuscleGroup = "glutes"
	MuscleCalves     MuscleGroup = "calves"
	MuscleAbs        MuscleGroup = "abs"
	MuscleObliques   MuscleGroup = "obliques"
	MuscleLowerBack  MuscleGroup = "lower_back"
)

// MuscleGroupLabels maps muscle groups to display labels.
var MuscleGroupLabels = map[MuscleGroup]string{
	MuscleChest:      "Chest",
	MuscleUpperBack:  "Upper Back",
	MuscleLats:       "Lats",
	MuscleTraps:      "Traps",
	MuscleFrontDelts: "Front Delts",
	MuscleSideDelts:  "Side Delts",
	MuscleRearDelts:  "Rear Delts",
	MuscleBiceps:     "Biceps",
	MuscleTriceps:    "Triceps",
	MuscleForearms:   "Forearms",
	MuscleQuads:      "Quads",
	MuscleHamstrings: "Hamstrings",
	MuscleGlutes:     "Glutes",
	MuscleCalves:     "Calves",
	MuscleAbs:        "Abs",
	MuscleObliques:   "Obliques",
	MuscleLowerBack:  "Lower Back",
}

func (m MuscleGroup) Valid() bool {
	_, ok := MuscleGroupLabels[m]
	return ok
}

type Equipment string

const (
	EquipmentBarbell    Equipment = "barbell"
	EquipmentDumbbell   Equipment = "dumbbell"
	EquipmentCable      Equipment = "cable"
	EquipmentMachine    Equipment = "machine"
	EquipmentBodyweight Equipment = "bodyweight"
	EquipmentKettlebell Equipment = "kettlebell"
	EquipmentBands      Equipment = "bands"
	EquipmentOther      Equipment = "other"
)

var EquipmentLabels = map[Equipment]string{
	EquipmentBarbell:    "Barbell",
	EquipmentDumbbell:   "Dumbbell",
	EquipmentCable:      "Cable",
	EquipmentMachine:    "Machine",
	EquipmentBodyweight: "Bodyweight",
	EquipmentKettlebell: "Kettlebell",
	EquipmentBands:      "Bands",
	EquipmentOther:      "Other",
}

func (e Equipment) Valid() bool {
	_, ok := EquipmentLabels[e]
	return ok
}

type ExerciseCategory string

const (
	CategoryCompound  ExerciseCategory = "compound"
	CategoryIsolation ExerciseCategory = "isolation"
	CategoryCardio    ExerciseCategory = "cardio"
	CategoryStretch   ExerciseCategory = "stretch"
)

// Exercise is a catalog entry. Built-in entries use slug IDs; custom entries
// are authored by a user and stored in the custom exercise collection.
type Exercise struct {
	ID               string           `bson:"_id,omitempty" json:"id"`
	Name             string           `bson:"name" json:"name"`
	Aliases          []string         `bson:"aliases,omitempty" json:"aliases,omitempty"`
	PrimaryMuscles   []MuscleGroup    `bson:"primaryMuscles" json:"primaryMuscles"`
	SecondaryMuscles []MuscleGroup    `bson:"secondaryMuscles,omitempty" json:"secondaryMuscles,omitempty"`
	Equipment        Equipment        `bson:"equipment" json:"equipment"`
	Category         ExerciseCategory `bson:"category" json:"category"`
	Instructions     string           `bson:"instructions,omitempty" json:"instructions,omitempty"`

	IsCustom  bool      `bson:"isCustom" json:"isCustom"`
	CreatedBy string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"` // user ID hex for custom entries
	CreatedAt time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}
