package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aurenz-max/LiftTrack/internal/config"
	"github.com/aurenz-max/LiftTrack/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	verbose bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lifttrack",
	Short: "Log strength workouts from the terminal",
	Long: `LiftTrack logs strength training sessions: start a workout from a
split template or from your last session, record sets as you go, and
finish to save the session to your history.

The workout in progress is kept on this device, so it survives closing
the terminal. Set and exercise numbers on the command line start at 1.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logging.Setup(logging.LoggerSetupParams{
			LogFileName:   cfg.Log.File,
			LogToStdout:   cfg.Log.ToStdout,
			LogLevel:      level,
			LogFormatJSON: cfg.Log.JSON,
		})
		return nil
	},
}

// Execute runs the root command. Ctrl-C cancels the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "directory containing config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "skip confirmation prompts")
}
