package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aurenz-max/LiftTrack/internal/calc"
	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/aurenz-max/LiftTrack/internal/resttimer"
	"github.com/aurenz-max/LiftTrack/internal/service"
	"github.com/aurenz-max/LiftTrack/internal/workout"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	errNoWorkout  = errors.New("no workout in progress, start one with `lifttrack start <split>`")
	errBadSession = errors.New("IDs are 24 hex characters, as shown by `lifttrack history`")
)

var (
	repeatLast  bool
	fromSession string
	customSeeds []string
	watchStatus bool
	finishNotes string
)

var startCmd = &cobra.Command{
	Use:   "start <chest|back|legs>",
	Short: "Start a workout from a split",
	Long: `Start a workout from the built-in template of a split.

With --repeat-last the exercises and weights of your most recent workout of
the split are used instead, falling back to the template when there is
none. With --from a specific past session is repeated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()

		var w domain.ActiveWorkout
		var err error
		switch {
		case fromSession != "":
			userID, uerr := a.userID(ctx)
			if uerr != nil {
				return uerr
			}
			id, perr := primitive.ObjectIDFromHex(fromSession)
			if perr != nil {
				return errBadSession
			}
			w, err = a.workouts.StartFromPrior(ctx, userID, id)
		case len(args) == 0:
			return errors.New("name a split: chest, back or legs")
		default:
			split, perr := domain.ParseSplitType(args[0])
			if perr != nil {
				return perr
			}
			if repeatLast {
				userID, uerr := a.userID(ctx)
				if uerr != nil {
					return uerr
				}
				w, err = a.workouts.RepeatLast(ctx, userID, split)
			} else {
				w, err = a.workouts.StartFromTemplate(split)
			}
		}
		if errors.Is(err, service.ErrWorkoutInProgress) {
			return fmt.Errorf("%w: %s, finish or discard it first", err, w.Name)
		}
		if err != nil {
			return err
		}
		printWorkout(cmd.OutOrStdout(), w, a.units(ctx), time.Now())
		return nil
	}),
}

var startCustomCmd = &cobra.Command{
	Use:     "start-custom <name>",
	Short:   "Start an empty or hand-picked workout",
	Example: `  lifttrack start-custom "Arms" --exercise barbell-curl --exercise tricep-pushdown`,
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		var userID primitive.ObjectID
		if len(customSeeds) > 0 {
			// custom exercises need the owner; built-ins resolve without one
			userID, _ = a.userID(ctx)
		}

		seeds := make([]workout.ExerciseSeed, 0, len(customSeeds))
		for _, id := range customSeeds {
			ex, err := a.exercises.Lookup(ctx, userID, id)
			if err != nil {
				return fmt.Errorf("%s: %w", id, err)
			}
			seeds = append(seeds, workout.ExerciseSeed{
				ExerciseID:   ex.ID,
				ExerciseName: ex.Name,
				DefaultSets:  workout.DefaultSetCount,
				DefaultReps:  workout.DefaultReps,
			})
		}

		w, err := a.workouts.StartCustom(args[0], seeds)
		if errors.Is(err, service.ErrWorkoutInProgress) {
			return fmt.Errorf("%w: %s, finish or discard it first", err, w.Name)
		}
		if err != nil {
			return err
		}
		printWorkout(cmd.OutOrStdout(), w, a.units(ctx), time.Now())
		return nil
	}),
}

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st"},
	Short:   "Show the workout in progress",
	Args:    cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		p, pending, err := a.sessions.Pending(ctx)
		if err != nil {
			return err
		}
		w, ok := a.workouts.Active()
		if pending && (!ok || p.Session.WorkoutID != w.ID) {
			fmt.Fprintf(out, "%s from %s is waiting to be saved (%d attempts). Run `lifttrack retry`.\n\n",
				p.Session.Name, p.FrozenAt.Local().Format("Jan 2 15:04"), p.Attempts)
		}
		if !ok {
			return errNoWorkout
		}
		if pending && p.Session.WorkoutID == w.ID {
			fmt.Fprintf(out, "Last save failed: %s\nRun `lifttrack finish` again when you are back online.\n\n", p.LastError)
		}

		printWorkout(out, w, a.units(ctx), time.Now())
		if !watchStatus {
			return nil
		}
		fmt.Fprintln(out)
		resttimer.Elapsed(ctx, w.StartedAt, time.Second, func(d time.Duration) {
			fmt.Fprintf(out, "\rElapsed %-12s", calc.FormatDuration(int64(d/time.Second)))
		})
		fmt.Fprintln(out)
		return nil
	}),
}

var gotoCmd = &cobra.Command{
	Use:   "goto <exercise>",
	Short: "Move the cursor to an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		i, err := parseIndex(args[0], "exercise")
		if err != nil {
			return err
		}
		if _, ok := a.workouts.Active(); !ok {
			return errNoWorkout
		}
		if !a.workouts.SelectExercise(i) {
			return fmt.Errorf("there is no exercise %s", args[0])
		}
		w, _ := a.workouts.Active()
		printWorkout(cmd.OutOrStdout(), w, a.units(cmd.Context()), time.Now())
		return nil
	}),
}

var discardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Throw away the workout in progress",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		w, ok := a.workouts.Active()
		if !ok {
			return errNoWorkout
		}
		ok, err := confirm(cmd, fmt.Sprintf("Discard %s? Logged sets will be lost.", w.Name))
		if err != nil || !ok {
			return err
		}

		a.workouts.Discard()
		if p, found, err := a.sessions.Pending(ctx); err == nil && found && p.Session.WorkoutID == w.ID {
			if err := a.store.ClearPending(ctx); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Workout discarded.")
		return nil
	}),
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Save the workout in progress to your history",
	Args:  cobra.NoArgs,
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

		done, total := calc.CompletedSetCount(w.Exercises), calc.TotalSetCount(w.Exercises)
		message := fmt.Sprintf("Finish %s?", w.Name)
		if done < total {
			message = fmt.Sprintf("Finish %s with %d of %d sets done?", w.Name, done, total)
		}
		if ok, err := confirm(cmd, message); err != nil || !ok {
			return err
		}

		summary, err := a.sessions.Finish(ctx, userID, finishNotes)
		if errors.Is(err, service.ErrSaveFailed) {
			fmt.Fprintln(cmd.ErrOrStderr(), "The workout could not be saved. It is still in progress on this device and nothing was lost.")
			fmt.Fprintln(cmd.ErrOrStderr(), "Run `lifttrack finish` again when you are back online.")
		}
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), summary, a.units(ctx))
		return nil
	}),
}

var retryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Save a finished workout that failed to save earlier",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		userID, err := a.userID(ctx)
		if err != nil {
			return err
		}
		summary, err := retryPending(ctx, a, userID)
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), summary, a.units(ctx))
		return nil
	}),
}

func retryPending(ctx context.Context, a *app, userID primitive.ObjectID) (*service.Summary, error) {
	summary, err := a.sessions.RetryPending(ctx, userID)
	if errors.Is(err, service.ErrNoPendingSession) {
		return nil, fmt.Errorf("%w; workouts in progress are saved with `lifttrack finish`", err)
	}
	return summary, err
}

func init() {
	startCmd.Flags().BoolVar(&repeatLast, "repeat-last", false, "repeat your most recent workout of this split")
	startCmd.Flags().StringVar(&fromSession, "from", "", "repeat the session with this ID")
	startCustomCmd.Flags().StringArrayVarP(&customSeeds, "exercise", "e", nil, "exercise ID to include (repeatable)")
	statusCmd.Flags().BoolVarP(&watchStatus, "watch", "w", false, "keep the elapsed time ticking")
	finishCmd.Flags().StringVarP(&finishNotes, "notes", "n", "", "notes to keep with the session")

	rootCmd.AddCommand(startCmd, startCustomCmd, statusCmd, gotoCmd, discardCmd, finishCmd, retryCmd)
}
