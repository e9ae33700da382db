package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	addSets int
	addReps int
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Change the exercises of the workout in progress",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <exercise-id>",
	Short: "Append an exercise from the catalog",
	Long: `Append an exercise to the workout in progress. Find IDs with
` + "`lifttrack catalog <query>`" + `.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		// built-in exercises resolve without signing in
		userID, _ := a.userID(ctx)
		ex, err := a.workouts.AddExercise(ctx, userID, args[0], addSets, addReps)
		if err != nil {
			return err
		}
		w, _ := a.workouts.Active()
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s as exercise %d.\n\n", ex.Name, len(w.Exercises))
		printWorkout(cmd.OutOrStdout(), w, a.units(ctx), time.Now())
		return nil
	}),
}

var exerciseRemoveCmd = &cobra.Command{
	Use:     "remove <exercise>",
	Aliases: []string{"rm"},
	Short:   "Remove an exercise and its sets",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		i, err := parseIndex(args[0], "exercise")
		if err != nil {
			return err
		}
		w, ok := a.workouts.Active()
		if !ok {
			return errNoWorkout
		}
		if i >= len(w.Exercises) {
			return fmt.Errorf("there is no exercise %s", args[0])
		}
		ok, err = confirm(cmd, fmt.Sprintf("Remove %s?", w.Exercises[i].ExerciseName))
		if err != nil || !ok {
			return err
		}
		a.workouts.RemoveExercise(i)
		w, _ = a.workouts.Active()
		printWorkout(cmd.OutOrStdout(), w, a.units(cmd.Context()), time.Now())
		return nil
	}),
}

var exerciseMoveCmd = &cobra.Command{
	Use:   "move <exercise> <position>",
	Short: "Move an exercise to another position",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		from, err := parseIndex(args[0], "exercise")
		if err != nil {
			return err
		}
		to, err := parseIndex(args[1], "position")
		if err != nil {
			return err
		}
		if _, ok := a.workouts.Active(); !ok {
			return errNoWorkout
		}
		if !a.workouts.MoveExercise(from, to) {
			return fmt.Errorf("there is no exercise %s", args[0])
		}
		w, _ := a.workouts.Active()
		printWorkout(cmd.OutOrStdout(), w, a.units(cmd.Context()), time.Now())
		return nil
	}),
}

func init() {
	exerciseAddCmd.Flags().IntVar(&addSets, "sets", 0, "number of sets (default 3)")
	exerciseAddCmd.Flags().IntVar(&addReps, "reps", 0, "target reps per set (default 10)")

	exerciseCmd.AddCommand(exerciseAddCmd, exerciseRemoveCmd, exerciseMoveCmd)
	rootCmd.AddCommand(exerciseCmd)
}
