package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/aurenz-max/LiftTrack/internal/catalog"
	"github.com/aurenz-max/LiftTrack/internal/domain"
	"github.com/aurenz-max/LiftTrack/internal/service"
	"github.com/spf13/cobra"
)

var (
	muscleFlag       string
	equipmentFlag    string
	categoryFlag     string
	instructionsFlag string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [query]",
	Short: "Search exercises",
	Long: `Search the built-in exercises and your custom ones by name or alias.

  lifttrack catalog press --muscle chest
  lifttrack catalog --equipment dumbbell`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		filter := catalog.Filter{
			Muscle:    domain.MuscleGroup(strings.ToLower(muscleFlag)),
			Equipment: domain.Equipment(strings.ToLower(equipmentFlag)),
		}
		if len(args) == 1 {
			filter.Query = args[0]
		}
		if filter.Muscle != "" && !filter.Muscle.Valid() {
			return fmt.Errorf("unknown muscle group %q, one of: %s", muscleFlag, strings.Join(muscleNames(), ", "))
		}

		// signed out, only the built-in catalog is searched
		userID, _ := a.userID(ctx)
		exercises, err := a.exercises.Search(ctx, userID, filter)
		if err != nil {
			return err
		}
		printExercises(cmd.OutOrStdout(), exercises)
		return nil
	}),
}

var customCmd = &cobra.Command{
	Use:   "custom",
	Short: "Manage your custom exercises",
}

var customAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a custom exercise",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		userID, err := a.userID(ctx)
		if err != nil {
			return err
		}

		muscle := strings.ToLower(muscleFlag)
		if muscle == "" {
			prompt := &survey.Select{
				Message: "Primary muscle:",
				Options: muscleNames(),
			}
			if err := survey.AskOne(prompt, &muscle); err != nil {
				return err
			}
		}

		ex, err := a.exercises.CreateCustom(ctx, userID, service.NewCustomExercise{
			Name:          args[0],
			PrimaryMuscle: domain.MuscleGroup(muscle),
			Equipment:     domain.Equipment(strings.ToLower(equipmentFlag)),
			Category:      domain.ExerciseCategory(strings.ToLower(categoryFlag)),
			Instructions:  instructionsFlag,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s. Add it to a workout with `lifttrack exercise add %s`.\n", ex.Name, ex.ID)
		return nil
	}),
}

var customListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your custom exercises",
	Args:    cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		userID, err := a.userID(ctx)
		if err != nil {
			return err
		}
		exercises, err := a.exercises.ListCustom(ctx, userID)
		if err != nil {
			return err
		}
		printExercises(cmd.OutOrStdout(), exercises)
		return nil
	}),
}

var customRemoveCmd = &cobra.Command{
	Use:     "remove <exercise-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a custom exercise; past workouts keep it",
	Args:    cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		userID, err := a.userID(ctx)
		if err != nil {
			return err
		}
		ok, err := confirm(cmd, fmt.Sprintf("Delete custom exercise %s?", args[0]))
		if err != nil || !ok {
			return err
		}
		if err := a.exercises.DeleteCustom(ctx, userID, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Exercise deleted.")
		return nil
	}),
}

func muscleNames() []string {
	names := make([]string, 0, len(domain.MuscleGroupLabels))
	for m := range domain.MuscleGroupLabels {
		names = append(names, string(m))
	}
	sort.Strings(names)
	return names
}

func init() {
	catalogCmd.Flags().StringVarP(&muscleFlag, "muscle", "m", "", "muscle group, e.g. chest or lats")
	catalogCmd.Flags().StringVarP(&equipmentFlag, "equipment", "e", "", "equipment, e.g. barbell or cable")

	customAddCmd.Flags().StringVarP(&muscleFlag, "muscle", "m", "", "primary muscle group (prompted when empty)")
	customAddCmd.Flags().StringVarP(&equipmentFlag, "equipment", "e", "", "equipment (default other)")
	customAddCmd.Flags().StringVar(&categoryFlag, "category", "", "compound, isolation, cardio or stretch (default isolation)")
	customAddCmd.Flags().StringVar(&instructionsFlag, "instructions", "", "how to perform it")

	customCmd.AddCommand(customAddCmd, customListCmd, customRemoveCmd)
	catalogCmd.AddCommand(customCmd)
	rootCmd.AddCommand(catalogCmd)
}
