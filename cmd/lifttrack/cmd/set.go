package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/calc"
	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/aurenz-max/LiftTrack/internal/workout"
	"github.com/spf13/cobra"
)

var noRest bool

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Log and edit sets",
	Long: `Log and edit the sets of the workout in progress. Exercises and sets
are numbered from 1 as shown by ` + "`lifttrack status`" + `.`,
}

var setUpdateCmd = &cobra.Command{
	Use:     "update <exercise> <set>",
	Short:   "Change the weight, reps or flags of a set",
	Example: `  lifttrack set update 1 2 --weight 185 --reps 8 --rpe 8.5`,
	Args:    cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ei, si, err := parseSetRef(args)
		if err != nil {
			return err
		}
		update, err := setUpdateFromFlags(cmd)
		if err != nil {
			return err
		}
		if _, ok := a.workouts.Active(); !ok {
			return errNoWorkout
		}
		if !a.workouts.UpdateSet(ei, si, update) {
			return fmt.Errorf("set %s of exercise %s was not changed; completed sets are final", args[1], args[0])
		}
		w, _ := a.workouts.Active()
		printWorkout(cmd.OutOrStdout(), w, a.units(cmd.Context()), time.Now())
		return nil
	}),
}

var setDoneCmd = &cobra.Command{
	Use:   "done [<exercise> <set>]",
	Short: "Mark a set complete and start resting",
	Long: `Mark a set complete. Without arguments the next open set of the current
exercise is used. Weight and reps can be corrected in the same step with
--weight and --reps. The rest countdown starts unless --no-rest is given.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return errors.New("give both an exercise and a set number, or neither")
		}
		return nil
	},
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		userID, err := a.userID(ctx)
		if err != nil {
			return err
		}
		w, ok := a.workouts.Active()
		if !ok {
			return errNoWorkout
		}

		var ei, si int
		if len(args) == 2 {
			if ei, si, err = parseSetRef(args); err != nil {
				return err
			}
		} else if ei, si, ok = nextOpenSet(w); !ok {
			return errors.New("every set of the current exercise is done")
		}

		update, err := setUpdateFromFlags(cmd)
		if err != nil {
			return err
		}
		if update != (workout.SetUpdate{}) && !a.workouts.UpdateSet(ei, si, update) {
			return fmt.Errorf("there is no open set %d of exercise %d", si+1, ei+1)
		}

		result, err := a.workouts.CompleteSet(ctx, userID, ei, si, !noRest)
		if err != nil {
			return err
		}
		if !result.Applied {
			return fmt.Errorf("there is no open set %d of exercise %d", si+1, ei+1)
		}

		out := cmd.OutOrStdout()
		w, _ = a.workouts.Active()
		set := w.Exercises[ei].Sets[si]
		fmt.Fprintf(out, "%s set %d: %s\n", w.Exercises[ei].ExerciseName, si+1, formatSet(set, a.units(ctx)))
		if result.IsPR {
			fmt.Fprintln(out, "New personal record!")
		}
		fmt.Fprintf(out, "%d/%d sets done\n", calc.CompletedSetCount(w.Exercises), calc.TotalSetCount(w.Exercises))
		if result.RestSeconds > 0 {
			runRest(ctx, out, a.timer, result.RestSeconds)
		}
		return nil
	}),
}

var setAddCmd = &cobra.Command{
	Use:   "add <exercise>",
	Short: "Add a set, copying the last one",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ei, err := parseIndex(args[0], "exercise")
		if err != nil {
			return err
		}
		if _, ok := a.workouts.Active(); !ok {
			return errNoWorkout
		}
		if !a.workouts.AddSet(ei) {
			return fmt.Errorf("there is no exercise %s", args[0])
		}
		w, _ := a.workouts.Active()
		printWorkout(cmd.OutOrStdout(), w, a.units(cmd.Context()), time.Now())
		return nil
	}),
}

var setRemoveCmd = &cobra.Command{
	Use:     "remove <exercise> <set>",
	Aliases: []string{"rm"},
	Short:   "Remove a set",
	Args:    cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ei, si, err := parseSetRef(args)
		if err != nil {
			return err
		}
		if _, ok := a.workouts.Active(); !ok {
			return errNoWorkout
		}
		if !a.workouts.RemoveSet(ei, si) {
			return fmt.Errorf("there is no set %s of exercise %s", args[1], args[0])
		}
		w, _ := a.workouts.Active()
		printWorkout(cmd.OutOrStdout(), w, a.units(cmd.Context()), time.Now())
		return nil
	}),
}

func parseSetRef(args []string) (ei, si int, err error) {
	if ei, err = parseIndex(args[0], "exercise"); err != nil {
		return 0, 0, err
	}
	if si, err = parseIndex(args[1], "set"); err != nil {
		return 0, 0, err
	}
	return ei, si, nil
}

// nextOpenSet finds the first incomplete set of the current exercise.
func nextOpenSet(w domain.ActiveWorkout) (ei, si int, ok bool) {
	ex, found := w.CurrentExercise()
	if !found {
		return 0, 0, false
	}
	for i, s := range ex.Sets {
		if !s.Completed {
			return w.CurrentExerciseIndex, i, true
		}
	}
	return 0, 0, false
}

// setUpdateFromFlags reads only the flags the user actually passed.
func setUpdateFromFlags(cmd *cobra.Command) (workout.SetUpdate, error) {
	var u workout.SetUpdate
	flags := cmd.Flags()
	if flags.Changed("weight") {
		v, _ := flags.GetFloat64("weight")
		if v < 0 {
			return u, errors.New("weight cannot be negative")
		}
		u.Weight = &v
	}
	if flags.Changed("reps") {
		v, _ := flags.GetInt("reps")
		if v < 0 {
			return u, errors.New("reps cannot be negative")
		}
		u.Reps = &v
	}
	if flags.Changed("rpe") {
		v, _ := flags.GetFloat64("rpe")
		if v < 1 || v > 10 {
			return u, errors.New("RPE must be between 1 and 10")
		}
		u.RPE = &v
	}
	if flags.Changed("warmup") {
		v, _ := flags.GetBool("warmup")
		u.IsWarmup = &v
	}
	if flags.Changed("drop") {
		v, _ := flags.GetBool("drop")
		u.IsDropset = &v
	}
	return u, nil
}

func addSetFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("weight", 0, "weight lifted")
	cmd.Flags().Int("reps", 0, "repetitions")
	cmd.Flags().Float64("rpe", 0, "rate of perceived exertion, 1 to 10")
	cmd.Flags().Bool("warmup", false, "warmup set, excluded from volume and records")
	cmd.Flags().Bool("drop", false, "drop set")
}

func init() {
	addSetFlags(setUpdateCmd)
	addSetFlags(setDoneCmd)
	setDoneCmd.Flags().BoolVar(&noRest, "no-rest", false, "do not start the rest countdown")

	setCmd.AddCommand(setUpdateCmd, setDoneCmd, setAddCmd, setRemoveCmd)
	rootCmd.AddCommand(setCmd)
}
