package cmd

import (
	"errors"
	"fmt"

	"github.com/aurenz-max/LiftTrack/internal/calc"
	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/aurenz-max/LiftTrack/internal/service"
	"github.com/aurenz-max/LiftTrack/internal/storage"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	historyType  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"log"},
	Short:   "List saved workouts, newest first",
	Args:    cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		userID, err := a.userID(ctx)
		if err != nil {
			return err
		}

		var sessions []domain.WorkoutSession
		if historyType != "" {
			split, perr := domain.ParseSplitType(historyType)
			if perr != nil {
				return perr
			}
			sessions, err = a.history.ListByType(ctx, userID, split, historyLimit)
		} else {
			sessions, err = a.history.List(ctx, userID, historyLimit)
		}
		if err != nil {
			return err
		}
		printSessions(cmd.OutOrStdout(), sessions, a.units(ctx))
		return nil
	}),
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show every set of a saved workout",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		userID, id, err := sessionRef(cmd, a, args[0])
		if err != nil {
			return err
		}
		session, found, err := a.history.Get(ctx, userID, id)
		if err != nil {
			return err
		}
		if !found {
			return service.ErrSessionNotFound
		}
		printSession(cmd.OutOrStdout(), session, a.units(ctx))
		return nil
	}),
}

var historyDeleteCmd = &cobra.Command{
	Use:     "delete <session-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved workout",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		userID, id, err := sessionRef(cmd, a, args[0])
		if err != nil {
			return err
		}
		ok, err := confirm(cmd, "Delete this workout from your history? This cannot be undone.")
		if err != nil || !ok {
			return err
		}
		if err := a.history.Delete(cmd.Context(), userID, id); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Workout deleted.")
		return nil
	}),
}

var historyProgressCmd = &cobra.Command{
	Use:   "progress <exercise-id>",
	Short: "Show recent performance of one exercise",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		userID, err := a.userID(ctx)
		if err != nil {
			return err
		}
		name := args[0]
		if ex, err := a.exercises.Lookup(ctx, userID, args[0]); err == nil {
			name = ex.Name
		}
		progress, err := a.history.ExerciseHistory(ctx, userID, args[0])
		if err != nil {
			return err
		}
		printProgress(cmd.OutOrStdout(), name, progress, a.units(ctx))
		return nil
	}),
}

var historyWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show volume and workouts of the last seven days",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		userID, err := a.userID(ctx)
		if err != nil {
			return err
		}
		stats, err := a.history.Weekly(ctx, userID)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Last 7 days: %d workouts, %s %s lifted\n", stats.Sessions, calc.FormatVolume(stats.Volume), a.units(ctx))
		fmt.Fprintf(out, "%d workouts in recent history\n", stats.Total)
		return nil
	}),
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Upload your whole history as a JSON archive",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		userID, err := a.userID(ctx)
		if err != nil {
			return err
		}
		export, err := a.history.Export(ctx, userID)
		if errors.Is(err, storage.ErrNotConfigured) {
			return fmt.Errorf("%w: set s3.bucket_name and s3.region in config.yaml to enable exports", err)
		}
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Exported %d workouts to %s\n", export.SessionCount, export.FileName)
		fmt.Fprintf(out, "Download link (temporary, `lifttrack history export list` makes a new one):\n  %s\n", export.DownloadURL)
		return nil
	}),
}

var exportListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List earlier exports with fresh download links",
	Args:    cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		userID, err := a.userID(ctx)
		if err != nil {
			return err
		}
		exports, err := a.history.ListExports(ctx, userID)
		if err != nil {
			return err
		}
		printExports(cmd.OutOrStdout(), exports)
		return nil
	}),
}

var exportDeleteCmd = &cobra.Command{
	Use:     "delete <export-id>",
	Aliases: []string{"rm"},
	Short:   "Delete an export and its archive",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		userID, id, err := sessionRef(cmd, a, args[0])
		if err != nil {
			return err
		}
		ok, err := confirm(cmd, "Delete this export?")
		if err != nil || !ok {
			return err
		}
		if err := a.history.DeleteExport(cmd.Context(), userID, id); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Export deleted.")
		return nil
	}),
}

// sessionRef resolves the signed-in user and an object ID argument.
func sessionRef(cmd *cobra.Command, a *app, raw string) (userID, id primitive.ObjectID, err error) {
	userID, err = a.userID(cmd.Context())
	if err != nil {
		return
	}
	id, err = primitive.ObjectIDFromHex(raw)
	if err != nil {
		err = errBadSession
	}
	return
}

func init() {
	historyCmd.Flags().StringVarP(&historyType, "type", "t", "", "only this split: chest, back, legs or custom")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 0, "number of workouts to show")

	exportCmd.AddCommand(exportListCmd, exportDeleteCmd)
	historyCmd.AddCommand(historyShowCmd, historyDeleteCmd, historyProgressCmd, historyWeekCmd, exportCmd)
	rootCmd.AddCommand(historyCmd)
}
