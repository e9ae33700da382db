package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aurenz-max/LiftTrack/internal/calc"
	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/aurenz-max/LiftTrack/internal/resttimer"
	"github.com/spf13/cobra"
)

var restCmd = &cobra.Command{
	Use:   "rest [seconds]",
	Short: "Count down a rest period",
	Long: `Count down a rest period in the terminal. Without an argument your
profile's default rest is used. Press Ctrl-C to skip the rest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		seconds := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("rest must be a positive number of seconds, got %q", args[0])
			}
			seconds = n
		}
		// the profile default needs a signed-in user; without one the configured default applies
		userID, _ := a.userID(ctx)
		seconds = a.workouts.StartRest(ctx, userID, seconds)
		if seconds == 0 {
			return errors.New("could not start the rest timer")
		}
		runRest(ctx, cmd.OutOrStdout(), a.timer, seconds)
		return nil
	}),
}

// runRest drives a started timer in the foreground until it expires or ctx
// is cancelled.
func runRest(ctx context.Context, out io.Writer, timer *resttimer.Timer, seconds int) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintf(out, "Rest %s ", calc.FormatTimer(seconds))
	driver := &resttimer.Driver{
		Timer: timer,
		OnTick: func(s domain.RestTimerState) {
			fmt.Fprintf(out, "\rRest %s ", calc.FormatTimer(s.Seconds))
		},
		OnExpire: func() {
			fmt.Fprint(out, "\rRest over, next set!\a\n")
			cancel()
		},
	}
	driver.Run(ctx)

	if !timer.Expired() {
		timer.Stop()
		fmt.Fprintln(out, "\nRest skipped.")
	}
}

func init() {
	rootCmd.AddCommand(restCmd)
}
