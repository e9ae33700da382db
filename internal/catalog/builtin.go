package catalog

import "github.com/aurenz-max/LiftTrack/internal/domain"

type (
	m = domain.MuscleGroup
	e = domain.Equipment
)

func ex(id, name string, aliases []string, primary, secondary []m, equipment e, category domain.ExerciseCategory) domain.Exercise {
	return domain.Exercise{
		ID:               id,
		Name:             name,
		Aliases:          aliases,
		PrimaryMuscles:   primary,
		SecondaryMuscles: secondary,
		Equipment:        equipment,
		Category:         category,
	}
}

// Builtin is the fixed exercise catalog shipped with the app. Template
// exercise IDs all resolve here.
var Builtin = []domain.Exercise{
	// chest
	ex("flat-barbell-bench-press", "Flat Barbell Bench Press", []string{"bench", "bench press", "bb bench"},
		[]m{domain.MuscleChest}, []m{domain.MuscleFrontDelts, domain.MuscleTriceps}, domain.EquipmentBarbell, domain.CategoryCompound),
	ex("incline-dumbbell-press", "Incline Dumbbell Press", []string{"incline db press", "incline press"},
		[]m{domain.MuscleChest}, []m{domain.MuscleFrontDelts, domain.MuscleTriceps}, domain.EquipmentDumbbell, domain.CategoryCompound),
	ex("cable-flyes", "Cable Flyes", []string{"cable fly", "cable crossover"},
		[]m{domain.MuscleChest}, nil, domain.EquipmentCable, domain.CategoryIsolation),
	ex("dips", "Dips", []string{"chest dips", "parallel bar dips"},
		[]m{domain.MuscleChest, domain.MuscleTriceps}, []m{domain.MuscleFrontDelts}, domain.EquipmentBodyweight, domain.CategoryCompound),
	ex("pec-deck", "Pec Deck", []string{"machine fly", "butterfly"},
		[]m{domain.MuscleChest}, nil, domain.EquipmentMachine, domain.CategoryIsolation),
	ex("push-ups", "Push-ups", []string{"pushup", "press up"},
		[]m{domain.MuscleChest}, []m{domain.MuscleTriceps, domain.MuscleFrontDelts}, domain.EquipmentBodyweight, domain.CategoryCompound),
	ex("overhead-press", "Overhead Press", []string{"ohp", "military press", "shoulder press"},
		[]m{domain.MuscleFrontDelts}, []m{domain.MuscleSideDelts, domain.MuscleTriceps}, domain.EquipmentBarbell, domain.CategoryCompound),
	ex("lateral-raise", "Lateral Raise", []string{"side raise", "db lateral"},
		[]m{domain.MuscleSideDelts}, nil, domain.EquipmentDumbbell, domain.CategoryIsolation),
	ex("tricep-pushdown", "Tricep Pushdown", []string{"rope pushdown", "cable pushdown"},
		[]m{domain.MuscleTriceps}, nil, domain.EquipmentCable, domain.CategoryIsolation),

	// back
	ex("barbell-row", "Barbell Row", []string{"bent over row", "bb row"},
		[]m{domain.MuscleUpperBack, domain.MuscleLats}, []m{domain.MuscleBiceps, domain.MuscleRearDelts}, domain.EquipmentBarbell, domain.CategoryCompound),
	ex("pull-ups", "Pull-ups", []string{"pullup", "chin up"},
		[]m{domain.MuscleLats}, []m{domain.MuscleBiceps, domain.MuscleUpperBack}, domain.EquipmentBodyweight, domain.CategoryCompound),
	ex("seated-cable-row", "Seated Cable Row", []string{"cable row", "low row"},
		[]m{domain.MuscleUpperBack}, []m{domain.MuscleLats, domain.MuscleBiceps}, domain.EquipmentCable, domain.CategoryCompound),
	ex("lat-pulldown", "Lat Pulldown", []string{"pulldown"},
		[]m{domain.MuscleLats}, []m{domain.MuscleBiceps}, domain.EquipmentCable, domain.CategoryCompound),
	ex("face-pulls", "Face Pulls", []string{"face pull", "rope face pull"},
		[]m{domain.MuscleRearDelts}, []m{domain.MuscleTraps, domain.MuscleUpperBack}, domain.EquipmentCable, domain.CategoryIsolation),
	ex("deadlift", "Deadlift", []string{"conventional deadlift", "dl"},
		[]m{domain.MuscleLowerBack, domain.MuscleHamstrings, domain.MuscleGlutes}, []m{domain.MuscleTraps, domain.MuscleForearms}, domain.EquipmentBarbell, domain.CategoryCompound),
	ex("barbell-shrug", "Barbell Shrug", []string{"shrugs"},
		[]m{domain.MuscleTraps}, nil, domain.EquipmentBarbell, domain.CategoryIsolation),
	ex("barbell-curl", "Barbell Curl", []string{"bb curl", "bicep curl"},
		[]m{domain.MuscleBiceps}, []m{domain.MuscleForearms}, domain.EquipmentBarbell, domain.CategoryIsolation),
	ex("hammer-curl", "Hammer Curl", []string{"db hammer curl"},
		[]m{domain.MuscleBiceps, domain.MuscleForearms}, nil, domain.EquipmentDumbbell, domain.CategoryIsolation),

	// legs
	ex("barbell-squat", "Barbell Squat", []string{"squat", "back squat"},
		[]m{domain.MuscleQuads, domain.MuscleGlutes}, []m{domain.MuscleHamstrings, domain.MuscleLowerBack}, domain.EquipmentBarbell, domain.CategoryCompound),
	ex("romanian-deadlift", "Romanian Deadlift", []string{"rdl", "stiff leg deadlift"},
		[]m{domain.MuscleHamstrings, domain.MuscleGlutes}, []m{domain.MuscleLowerBack}, domain.EquipmentBarbell, domain.CategoryCompound),
	ex("leg-press", "Leg Press", []string{"sled press"},
		[]m{domain.MuscleQuads}, []m{domain.MuscleGlutes}, domain.EquipmentMachine, domain.CategoryCompound),
	ex("leg-curl", "Leg Curl", []string{"hamstring curl", "lying leg curl"},
		[]m{domain.MuscleHamstrings}, nil, domain.EquipmentMachine, domain.CategoryIsolation),
	ex("calf-raises", "Calf Raises", []string{"standing calf raise", "calves"},
		[]m{domain.MuscleCalves}, nil, domain.EquipmentMachine, domain.CategoryIsolation),
	ex("leg-extension", "Leg Extension", []string{"quad extension"},
		[]m{domain.MuscleQuads}, nil, domain.EquipmentMachine, domain.CategoryIsolation),
	ex("bulgarian-split-squat", "Bulgarian Split Squat", []string{"split squat", "bss"},
		[]m{domain.MuscleQuads, domain.MuscleGlutes}, []m{domain.MuscleHamstrings}, domain.EquipmentDumbbell, domain.CategoryCompound),
	ex("hip-thrust", "Hip Thrust", []string{"barbell hip thrust", "glute bridge"},
		[]m{domain.MuscleGlutes}, []m{domain.MuscleHamstrings}, domain.EquipmentBarbell, domain.CategoryCompound),

	// core
	ex("hanging-leg-raise", "Hanging Leg Raise", []string{"leg raise"},
		[]m{domain.MuscleAbs}, []m{domain.MuscleObliques}, domain.EquipmentBodyweight, domain.CategoryIsolation),
	ex("cable-crunch", "Cable Crunch", []string{"kneeling crunch"},
		[]m{domain.MuscleAbs}, nil, domain.EquipmentCable, domain.CategoryIsolation),
}
